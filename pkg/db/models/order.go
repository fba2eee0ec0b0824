package models

import (
	"time"

	"github.com/growly/growly-web/pkg/enums"
)

// Order records a plan purchase. UserID is not a foreign key so orders
// can outlive their user under the retain delete policy.
type Order struct {
	ID        uint              `gorm:"primaryKey"`
	UserID    uint              `gorm:"column:user_id;not null;index"`
	PlanID    uint              `gorm:"column:plan_id;not null;index"`
	Instagram string            `gorm:"column:instagram;not null;default:''"`
	Notes     string            `gorm:"column:notes;not null;default:''"`
	Status    enums.OrderStatus `gorm:"column:status;not null;default:pending"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`

	Plan *Plan `gorm:"foreignKey:PlanID"`
}
