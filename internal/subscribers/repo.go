package subscribers

import (
	"context"
	"strings"

	"github.com/growly/growly-web/internal/repo"
	"github.com/growly/growly-web/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists newsletter subscribers.
type Repository struct {
	repo.Base
}

// NewRepository constructs a subscribers repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts a subscriber. Duplicate emails are allowed.
func (r *Repository) Create(ctx context.Context, email string) (*models.Subscriber, error) {
	s := &models.Subscriber{Email: strings.ToLower(strings.TrimSpace(email))}
	if err := r.DB(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// Count returns the number of subscriber rows.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	return r.Base.Count(ctx, &models.Subscriber{})
}
