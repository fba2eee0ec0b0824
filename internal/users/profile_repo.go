package users

import (
	"context"
	"errors"

	"github.com/growly/growly-web/pkg/db/models"
	"gorm.io/gorm"
)

// ProfileRepository persists the per-user status and targets rows.
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository constructs the status/targets repo.
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// CreateDefaults inserts empty status and targets rows for userID.
func (r *ProfileRepository) CreateDefaults(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).Create(&models.Status{UserID: userID}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(&models.Targets{UserID: userID}).Error
}

// Status returns the status row, or nil when missing.
func (r *ProfileRepository) Status(ctx context.Context, userID uint) (*models.Status, error) {
	var s models.Status
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Targets returns the targets row, or nil when missing.
func (r *ProfileRepository) Targets(ctx context.Context, userID uint) (*models.Targets, error) {
	var t models.Targets
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// SaveStatus overwrites every status column for userID.
func (r *ProfileRepository) SaveStatus(ctx context.Context, userID uint, in StatusInput) error {
	return r.db.WithContext(ctx).Model(&models.Status{}).Where("user_id = ?", userID).Updates(map[string]any{
		"auto_like":    in.AutoLike,
		"auto_follow":  in.AutoFollow,
		"auto_comment": in.AutoComment,
		"story_views":  in.StoryViews,
		"paused":       in.Paused,
		"complaint":    in.Complaint,
		"staff_notes":  in.StaffNotes,
	}).Error
}

// SaveTargets overwrites every targets column for userID.
func (r *ProfileRepository) SaveTargets(ctx context.Context, userID uint, in TargetsInput) error {
	return r.db.WithContext(ctx).Model(&models.Targets{}).Where("user_id = ?", userID).Updates(map[string]any{
		"niche":       in.Niche,
		"competitors": in.Competitors,
		"hashtags":    in.Hashtags,
		"geo":         in.Geo,
		"notes":       in.Notes,
	}).Error
}

// DeleteByUser removes the status and targets rows for userID.
func (r *ProfileRepository) DeleteByUser(ctx context.Context, userID uint) error {
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Status{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Targets{}).Error
}
