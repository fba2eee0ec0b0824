package models

import (
	"time"

	"github.com/growly/growly-web/pkg/enums"
)

// User is an account on the site. Email is stored trimmed and lower-cased.
type User struct {
	ID           uint       `gorm:"primaryKey"`
	Email        string     `gorm:"column:email;not null;uniqueIndex"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	Name         string     `gorm:"column:name;not null;default:''"`
	Role         enums.Role `gorm:"column:role;not null;default:user"`
	Instagram    string     `gorm:"column:instagram;not null;default:''"`
	Unsubscribed bool       `gorm:"column:unsubscribed;not null;default:false"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
}
