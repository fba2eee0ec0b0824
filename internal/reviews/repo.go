package reviews

import (
	"context"

	"github.com/growly/growly-web/internal/repo"
	"github.com/growly/growly-web/pkg/db/models"
	"gorm.io/gorm"
)

// Repository reads customer reviews.
type Repository struct {
	repo.Base
}

// NewRepository constructs a reviews repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// List returns up to limit reviews, best rated first.
func (r *Repository) List(ctx context.Context, limit int) ([]models.Review, error) {
	var out []models.Review
	q := r.DB(ctx).Order("rating DESC, created_at DESC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&out).Error
	return out, err
}
