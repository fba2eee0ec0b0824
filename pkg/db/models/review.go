package models

import "time"

type Review struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Rating    int       `gorm:"column:rating;not null"`
	Content   string    `gorm:"column:content;not null;default:''"`
	AvatarURL string    `gorm:"column:avatar_url;not null;default:''"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
