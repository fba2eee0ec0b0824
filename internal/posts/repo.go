package posts

import (
	"context"

	"github.com/growly/growly-web/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists blog posts.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a posts repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a post.
func (r *Repository) Create(ctx context.Context, p *models.Post) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// FindByID loads a post by id.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Post, error) {
	var p models.Post
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns up to limit posts starting at offset, newest first.
func (r *Repository) List(ctx context.Context, offset, limit int) ([]models.Post, error) {
	var out []models.Post
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// IncrementViews bumps view_count by one in a single statement. It reports
// false when no post has that id.
func (r *Repository) IncrementViews(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
