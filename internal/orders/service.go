package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/growly/growly-web/pkg/db"
	"github.com/growly/growly-web/pkg/db/models"
	"github.com/growly/growly-web/pkg/enums"
	pkgerrors "github.com/growly/growly-web/pkg/errors"
	"gorm.io/gorm"
)


// Service defines order-level operations beyond repository reads.
type Service interface {
	Checkout(ctx context.Context, userID uint, input CheckoutInput) (*models.Order, error)
	Transition(ctx context.Context, id uint, to enums.OrderStatus) (*models.Order, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Order, error)
}

// CheckoutInput carries the checkout form.
type CheckoutInput struct {
	PlanID    uint   `json:"plan_id" form:"plan_id"`
	Instagram string `json:"instagram" form:"instagram" validate:"max=64"`
	Notes     string `json:"notes" form:"notes" validate:"max=2000"`
}

type service struct {
	repo    *Repository
	tx      db.TxRunner
	gateway Gateway
}

// NewService builds an order service with the required dependencies.
func NewService(repo *Repository, tx db.TxRunner, gateway Gateway) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if gateway == nil {
		return nil, fmt.Errorf("payment gateway required")
	}
	return &service{repo: repo, tx: tx, gateway: gateway}, nil
}

// Checkout records a pending order for the plan and settles it through the
// gateway.
func (s *service) Checkout(ctx context.Context, userID uint, input CheckoutInput) (*models.Order, error) {
	if userID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in to check out")
	}
	if input.PlanID == 0 {
		return nil, pkgerrors.Validation("plan_id", "plan is required")
	}

	var order *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		var plan models.Plan
		if err := tx.WithContext(ctx).First(&plan, "id = ?", input.PlanID).Error; err != nil {
			if db.IsNotFound(err) {
				return pkgerrors.NotFound("plan")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load plan")
		}

		repo := NewRepository(tx)
		o := &models.Order{
			UserID:    userID,
			PlanID:    plan.ID,
			Instagram: strings.TrimPrefix(strings.TrimSpace(input.Instagram), "@"),
			Notes:     strings.TrimSpace(input.Notes),
			Status:    enums.OrderStatusPending,
		}
		if err := repo.Create(ctx, o); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
		}

		next, err := s.gateway.Settle(ctx, o)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "settle order")
		}
		if err := transition(ctx, repo, o, next); err != nil {
			return err
		}
		o.Plan = &plan
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Transition moves an order through the status graph.
func (s *service) Transition(ctx context.Context, id uint, to enums.OrderStatus) (*models.Order, error) {
	if !to.IsValid() {
		return nil, pkgerrors.Validation("status", fmt.Sprintf("unknown status %q", to))
	}
	var order *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		o, err := repo.FindByID(ctx, id)
		if err != nil {
			if db.IsNotFound(err) {
				return pkgerrors.NotFound("order")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
		}
		if err := transition(ctx, repo, o, to); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *service) ListByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	out, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	return out, nil
}

var errConcurrentUpdate = errors.New("order status changed concurrently")

func transition(ctx context.Context, repo *Repository, o *models.Order, to enums.OrderStatus) error {
	if !o.Status.CanTransitionTo(to) {
		return pkgerrors.Transition("order", o.Status, to)
	}
	ok, err := repo.UpdateStatus(ctx, o.ID, o.Status, to)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update order status")
	}
	if !ok {
		return pkgerrors.Wrap(pkgerrors.CodeStateConflict, errConcurrentUpdate, "order status changed concurrently")
	}
	o.Status = to
	return nil
}
