package tickets

import (
	"context"
	"fmt"
	"strings"

	"github.com/growly/growly-web/pkg/db"
	"github.com/growly/growly-web/pkg/db/models"
	"github.com/growly/growly-web/pkg/enums"
	pkgerrors "github.com/growly/growly-web/pkg/errors"
	"gorm.io/gorm"
)

// openListLimit bounds the open-ticket queue shown on dashboards.
const openListLimit = 50

// ContactInput is a contact form submission.
type ContactInput struct {
	Email     string `json:"email" form:"email" validate:"omitempty,email,max=254"`
	Instagram string `json:"instagram" form:"instagram" validate:"max=64"`
	Subject   string `json:"subject" form:"subject" validate:"max=200"`
	Message   string `json:"message" form:"message" validate:"max=5000"`
}

// Service files and resolves support tickets.
type Service interface {
	Submit(ctx context.Context, userID *uint, input ContactInput) (*models.Ticket, error)
	Close(ctx context.Context, id uint) error
	ListOpen(ctx context.Context) ([]models.Ticket, error)
}

type service struct {
	repo *Repository
	tx   db.TxRunner
}

// NewService builds the ticket service.
func NewService(repo *Repository, tx db.TxRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("tickets repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

// Submit stores a ticket. userID is nil for anonymous visitors.
func (s *service) Submit(ctx context.Context, userID *uint, input ContactInput) (*models.Ticket, error) {
	t := &models.Ticket{
		UserID:    userID,
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		Instagram: strings.TrimSpace(input.Instagram),
		Subject:   strings.TrimSpace(input.Subject),
		Message:   strings.TrimSpace(input.Message),
		Status:    enums.TicketStatusOpen,
	}
	if t.Message == "" {
		return nil, pkgerrors.Validation("message", "message is required")
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create ticket")
	}
	return t, nil
}

// Close moves an open ticket to closed.
func (s *service) Close(ctx context.Context, id uint) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		t, err := repo.FindByID(ctx, id)
		if err != nil {
			if db.IsNotFound(err) {
				return pkgerrors.NotFound("ticket")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load ticket")
		}
		if !t.Status.CanTransitionTo(enums.TicketStatusClosed) {
			return pkgerrors.Transition("ticket", t.Status, enums.TicketStatusClosed)
		}
		ok, err := repo.UpdateStatus(ctx, id, t.Status, enums.TicketStatusClosed)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "close ticket")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "ticket changed concurrently")
		}
		return nil
	})
}

func (s *service) ListOpen(ctx context.Context) ([]models.Ticket, error) {
	out, err := s.repo.ListOpen(ctx, openListLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list tickets")
	}
	return out, nil
}
