package models

import "time"

// Post is a blog article. Body holds markdown.
type Post struct {
	ID        uint      `gorm:"primaryKey"`
	Title     string    `gorm:"column:title;not null"`
	Author    string    `gorm:"column:author;not null;default:''"`
	ImageURL  string    `gorm:"column:image_url;not null;default:''"`
	Excerpt   string    `gorm:"column:excerpt;not null;default:''"`
	Body      string    `gorm:"column:body;not null;default:''"`
	ViewCount int64     `gorm:"column:view_count;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
