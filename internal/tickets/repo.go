package tickets

import (
	"context"

	"github.com/growly/growly-web/pkg/db/models"
	"github.com/growly/growly-web/pkg/enums"
	"gorm.io/gorm"
)

// Repository persists support tickets.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a tickets repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a ticket.
func (r *Repository) Create(ctx context.Context, t *models.Ticket) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// FindByID loads a ticket by id.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Ticket, error) {
	var t models.Ticket
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// ListOpen returns open tickets, newest first.
func (r *Repository) ListOpen(ctx context.Context, limit int) ([]models.Ticket, error) {
	var out []models.Ticket
	q := r.db.WithContext(ctx).
		Where("status = ?", enums.TicketStatusOpen).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}

// UpdateStatus moves a ticket from one status to another. It reports false
// when the row was not in the expected state.
func (r *Repository) UpdateStatus(ctx context.Context, id uint, from, to enums.TicketStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// DeleteByUser removes every ticket filed by userID.
func (r *Repository) DeleteByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Ticket{}).Error
}

// DetachUser nulls the owner and blanks the contact email on userID's tickets.
func (r *Repository) DetachUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Ticket{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{"user_id": nil, "email": ""}).Error
}

// CountByUser returns how many tickets reference userID.
func (r *Repository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Ticket{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}
