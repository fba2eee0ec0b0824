package subscribers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/growly/growly-web/pkg/db/models"
	pkgerrors "github.com/growly/growly-web/pkg/errors"
)

var validate = validator.New()

// Service records newsletter sign-ups.
type Service interface {
	Subscribe(ctx context.Context, email string) (*models.Subscriber, error)
}

type service struct {
	repo *Repository
}

func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("subscribers repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Subscribe(ctx context.Context, email string) (*models.Subscriber, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, pkgerrors.Validation("email", "email is required")
	}
	if err := validate.Var(email, "email,max=255"); err != nil {
		return nil, pkgerrors.Validation("email", "email must be a valid email")
	}
	sub, err := s.repo.Create(ctx, email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create subscriber")
	}
	return sub, nil
}
