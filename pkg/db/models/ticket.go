package models

import (
	"time"

	"github.com/growly/growly-web/pkg/enums"
)

// Ticket is a support request. UserID is nil for anonymous submissions.
type Ticket struct {
	ID        uint               `gorm:"primaryKey"`
	UserID    *uint              `gorm:"column:user_id;index"`
	Email     string             `gorm:"column:email;not null;default:''"`
	Instagram string             `gorm:"column:instagram;not null;default:''"`
	Subject   string             `gorm:"column:subject;not null;default:''"`
	Message   string             `gorm:"column:message;not null;default:''"`
	Status    enums.TicketStatus `gorm:"column:status;not null;default:open"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime"`
}
