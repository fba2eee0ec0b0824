package orders

import (
	"context"

	"github.com/growly/growly-web/pkg/db/models"
	"github.com/growly/growly-web/pkg/enums"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository persists plan orders.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an orders repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts an order.
func (r *Repository) Create(ctx context.Context, o *models.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

// FindByID loads an order with its plan.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var o models.Order
	if err := r.db.WithContext(ctx).Preload("Plan").First(&o, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// UpdateStatus performs a compare-and-set on the status column. It reports
// false when the row no longer holds from.
func (r *Repository) UpdateStatus(ctx context.Context, id uint, from, to enums.OrderStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// ListRecent returns the newest orders with their plans.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]models.Order, error) {
	var out []models.Order
	q := r.db.WithContext(ctx).Preload("Plan").Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}

// ListByUser returns userID's orders, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var out []models.Order
	err := r.db.WithContext(ctx).
		Preload("Plan").
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&out).Error
	return out, err
}

// CountByStatus counts orders whose status is any of statuses.
func (r *Repository) CountByStatus(ctx context.Context, statuses ...enums.OrderStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).Where("status IN ?", statuses).Count(&n).Error
	return n, err
}

// PaidTotal sums the plan price of every paid order. Orders whose plan no
// longer exists contribute nothing.
func (r *Repository) PaidTotal(ctx context.Context) (decimal.Decimal, error) {
	var prices []decimal.Decimal
	err := r.db.WithContext(ctx).
		Table("orders").
		Joins("JOIN plans ON plans.id = orders.plan_id").
		Where("orders.status = ?", enums.OrderStatusPaid).
		Pluck("plans.price", &prices).Error
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, p := range prices {
		total = total.Add(p)
	}
	return total, nil
}

// DeleteByUser removes every order placed by userID.
func (r *Repository) DeleteByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Order{}).Error
}

// CountByUser returns how many orders reference userID.
func (r *Repository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}
