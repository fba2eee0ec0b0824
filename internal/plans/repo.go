package plans

import (
	"context"

	"github.com/growly/growly-web/pkg/db/models"
	"gorm.io/gorm"
)

// Repository reads the plan catalog.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a plans repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every plan, cheapest first.
func (r *Repository) List(ctx context.Context) ([]models.Plan, error) {
	var out []models.Plan
	err := r.db.WithContext(ctx).Order("price ASC, sort_order ASC, id ASC").Find(&out).Error
	return out, err
}

// FindByID loads one plan.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Plan, error) {
	var p models.Plan
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
