package models

import "time"

// Metric is an append-only growth snapshot for a user.
type Metric struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"column:user_id;not null;index"`
	Likes     int64     `gorm:"column:likes;not null;default:0"`
	Follows   int64     `gorm:"column:follows;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at"`
}
