package plans

import (
	"context"
	"fmt"

	"github.com/growly/growly-web/pkg/db"
	"github.com/growly/growly-web/pkg/enums"
	pkgerrors "github.com/growly/growly-web/pkg/errors"
)

// Service exposes the plan catalog priced in a display currency.
type Service interface {
	List(ctx context.Context, c enums.Currency) ([]PlanDTO, error)
	Get(ctx context.Context, id uint, c enums.Currency) (*PlanDTO, error)
}

type service struct {
	repo *Repository
}

// NewService builds the plan service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("plans repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, c enums.Currency) ([]PlanDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list plans")
	}
	out := make([]PlanDTO, 0, len(rows))
	for _, p := range rows {
		out = append(out, FromModel(p, c))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id uint, c enums.Currency) (*PlanDTO, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.NotFound("plan")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load plan")
	}
	dto := FromModel(*p, c)
	return &dto, nil
}
