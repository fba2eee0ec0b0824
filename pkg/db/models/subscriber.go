package models

import "time"

// Subscriber is a newsletter signup. Duplicates are allowed.
type Subscriber struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"column:email;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
