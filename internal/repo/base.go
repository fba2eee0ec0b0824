// Package repo holds helpers shared by the small read-mostly repositories.
package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base binds a GORM connection to request contexts.
type Base struct {
	db *gorm.DB
}

func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the connection bound to ctx, or the raw connection for a nil ctx.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// Count returns the number of rows in model's table.
func (b Base) Count(ctx context.Context, model any) (int64, error) {
	var n int64
	err := b.DB(ctx).Model(model).Count(&n).Error
	return n, err
}
