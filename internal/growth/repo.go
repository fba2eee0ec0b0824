package growth

import (
	"context"
	"errors"

	"github.com/growly/growly-web/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists metric snapshots.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a metrics repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create appends one snapshot.
func (r *Repository) Create(ctx context.Context, m *models.Metric) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// CreateBatch appends snapshots in order.
func (r *Repository) CreateBatch(ctx context.Context, ms []models.Metric) error {
	if len(ms) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&ms).Error
}

// Latest returns the newest snapshot for userID, or nil when there is none.
// Snapshots are append-only so insertion order is chronological.
func (r *Repository) Latest(ctx context.Context, userID uint) (*models.Metric, error) {
	var m models.Metric
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// History returns every snapshot for userID, oldest first.
func (r *Repository) History(ctx context.Context, userID uint) ([]models.Metric, error) {
	var ms []models.Metric
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&ms).Error
	return ms, err
}

// CountByUser returns how many snapshots userID has.
func (r *Repository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Metric{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

// DeleteByUser removes all snapshots for userID.
func (r *Repository) DeleteByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Metric{}).Error
}
