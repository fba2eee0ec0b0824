package posts

import (
	"context"
	"fmt"
	"strings"

	"github.com/growly/growly-web/pkg/db"
	"github.com/growly/growly-web/pkg/db/models"
	pkgerrors "github.com/growly/growly-web/pkg/errors"
	"github.com/growly/growly-web/pkg/pagination"
	"gorm.io/gorm"
)

// Service reads and writes blog posts.
type Service interface {
	List(ctx context.Context, params pagination.Params) (*ListResult, error)
	View(ctx context.Context, id uint) (*models.Post, error)
	Create(ctx context.Context, input CreatePostDTO) (*models.Post, error)
}

type service struct {
	repo *Repository
	tx   db.TxRunner
}

// NewService builds the blog service.
func NewService(repo *Repository, tx db.TxRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("posts repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*ListResult, error) {
	rows, err := s.repo.List(ctx, params.Offset(), pagination.LimitWithBuffer(params.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list posts")
	}
	page := params.Resolve(len(rows))
	if len(rows) > page.Limit {
		rows = rows[:page.Limit]
	}
	if rows == nil {
		rows = []models.Post{}
	}
	return &ListResult{Posts: rows, Page: page}, nil
}

// View counts one view and returns the post as stored afterwards.
func (s *service) View(ctx context.Context, id uint) (*models.Post, error) {
	var post *models.Post
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		found, err := repo.IncrementViews(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count post view")
		}
		if !found {
			return pkgerrors.NotFound("post")
		}
		post, err = repo.FindByID(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load post")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (s *service) Create(ctx context.Context, input CreatePostDTO) (*models.Post, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return nil, pkgerrors.Validation("title", "title is required")
	}
	post := input.ToModel()
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create post")
	}
	return post, nil
}
