package dashboard

import (
	"context"
	"fmt"

	"github.com/growly/growly-web/internal/orders"
	"github.com/growly/growly-web/internal/subscribers"
	"github.com/growly/growly-web/internal/tickets"
	"github.com/growly/growly-web/internal/users"
	"github.com/growly/growly-web/pkg/db/models"
	"github.com/growly/growly-web/pkg/enums"
	pkgerrors "github.com/growly/growly-web/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	// recentOrdersLimit bounds the recent-orders table.
	recentOrdersLimit = 20
	openTicketsLimit  = 50
)

// Summary is the admin dashboard payload.
type Summary struct {
	TotalUsers          int64           `json:"total_users"`
	PendingOrders       int64           `json:"pending_orders"`
	DeclinedOrCancelled int64           `json:"declined_or_cancelled_orders"`
	Subscribers         int64           `json:"subscribers"`
	Accounting          decimal.Decimal `json:"total_accounting"`
	RecentOrders        []models.Order  `json:"recent_orders"`
	OpenTickets         []models.Ticket `json:"open_tickets"`
}

// Service computes the admin aggregates.
type Service interface {
	Summary(ctx context.Context) (*Summary, error)
}

// ServiceParams groups the repositories the dashboard reads.
type ServiceParams struct {
	Users       *users.Repository
	Orders      *orders.Repository
	Tickets     *tickets.Repository
	Subscribers *subscribers.Repository
}

type service struct {
	users       *users.Repository
	orders      *orders.Repository
	tickets     *tickets.Repository
	subscribers *subscribers.Repository
}

// NewService builds the dashboard service.
func NewService(params ServiceParams) (Service, error) {
	if params.Users == nil || params.Orders == nil || params.Tickets == nil || params.Subscribers == nil {
		return nil, fmt.Errorf("dashboard repositories required")
	}
	return &service{
		users:       params.Users,
		orders:      params.Orders,
		tickets:     params.Tickets,
		subscribers: params.Subscribers,
	}, nil
}

func (s *service) Summary(ctx context.Context) (*Summary, error) {
	var (
		out Summary
		err error
	)
	if out.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count users")
	}
	if out.PendingOrders, err = s.orders.CountByStatus(ctx, enums.OrderStatusPending); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count pending orders")
	}
	if out.DeclinedOrCancelled, err = s.orders.CountByStatus(ctx, enums.OrderStatusDeclined, enums.OrderStatusCancelled); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count closed orders")
	}
	if out.Subscribers, err = s.subscribers.Count(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count subscribers")
	}
	if out.Accounting, err = s.orders.PaidTotal(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sum paid orders")
	}
	if out.RecentOrders, err = s.orders.ListRecent(ctx, recentOrdersLimit); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list recent orders")
	}
	if out.OpenTickets, err = s.tickets.ListOpen(ctx, openTicketsLimit); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list open tickets")
	}
	return &out, nil
}
