package dashboard

import (
	"context"
	"testing"

	"github.com/growly/growly-web/internal/orders"
	"github.com/growly/growly-web/internal/subscribers"
	"github.com/growly/growly-web/internal/tickets"
	"github.com/growly/growly-web/internal/users"
	"github.com/growly/growly-web/pkg/db/dbtest"
	"github.com/growly/growly-web/pkg/db/models"
	"github.com/growly/growly-web/pkg/enums"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryAggregates(t *testing.T) {
	client := dbtest.Open(t)
	gdb := client.DB()
	orderRepo := orders.NewRepository(gdb)
	ticketRepo := tickets.NewRepository(gdb)
	subRepo := subscribers.NewRepository(gdb)
	userRepo := users.NewRepository(gdb)
	svc, err := NewService(ServiceParams{Users: userRepo, Orders: orderRepo, Tickets: ticketRepo, Subscribers: subRepo})
	require.NoError(t, err)
	ctx := context.Background()

	empty, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.True(t, empty.Accounting.IsZero())
	assert.Zero(t, empty.TotalUsers)

	require.NoError(t, userRepo.Create(ctx, &models.User{Email: "a@x.io", PasswordHash: "x", Role: enums.RoleUser}))
	require.NoError(t, userRepo.Create(ctx, &models.User{Email: "b@x.io", PasswordHash: "x", Role: enums.RoleStaff}))
	for _, o := range []models.Order{
		{UserID: 1, PlanID: 2, Status: enums.OrderStatusPaid},
		{UserID: 1, PlanID: 2, Status: enums.OrderStatusPaid},
		{UserID: 2, PlanID: 1, Status: enums.OrderStatusPending},
		{UserID: 2, PlanID: 3, Status: enums.OrderStatusDeclined},
		{UserID: 2, PlanID: 3, Status: enums.OrderStatusCancelled},
	} {
		o := o
		require.NoError(t, orderRepo.Create(ctx, &o))
	}
	_, err = subRepo.Create(ctx, "n@x.io")
	require.NoError(t, err)
	require.NoError(t, ticketRepo.Create(ctx, &models.Ticket{Message: "help", Status: enums.TicketStatusOpen}))
	require.NoError(t, ticketRepo.Create(ctx, &models.Ticket{Message: "done", Status: enums.TicketStatusClosed}))

	sum, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), sum.TotalUsers)
	assert.Equal(t, int64(1), sum.PendingOrders)
	assert.Equal(t, int64(2), sum.DeclinedOrCancelled)
	assert.Equal(t, int64(1), sum.Subscribers)
	assert.True(t, decimal.NewFromInt(118).Equal(sum.Accounting), "got %s", sum.Accounting)
	assert.Len(t, sum.RecentOrders, 5)
	assert.Len(t, sum.OpenTickets, 1)
}

func TestSummaryBoundsTablesIndependently(t *testing.T) {
	client := dbtest.Open(t)
	gdb := client.DB()
	orderRepo := orders.NewRepository(gdb)
	ticketRepo := tickets.NewRepository(gdb)
	svc, err := NewService(ServiceParams{
		Users:       users.NewRepository(gdb),
		Orders:      orderRepo,
		Tickets:     ticketRepo,
		Subscribers: subscribers.NewRepository(gdb),
	})
	require.NoError(t, err)
	ctx := context.Background()

	for i := 0; i < recentOrdersLimit+5; i++ {
		require.NoError(t, orderRepo.Create(ctx, &models.Order{UserID: 1, PlanID: 1, Status: enums.OrderStatusPending}))
		require.NoError(t, ticketRepo.Create(ctx, &models.Ticket{Message: "help", Status: enums.TicketStatusOpen}))
	}

	sum, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Len(t, sum.RecentOrders, recentOrdersLimit)
	assert.Len(t, sum.OpenTickets, recentOrdersLimit+5)
	assert.Greater(t, openTicketsLimit, recentOrdersLimit)
}
