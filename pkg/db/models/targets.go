package models

type Targets struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"column:user_id;not null;uniqueIndex"`
	Niche       string `gorm:"column:niche;not null;default:''"`
	Competitors string `gorm:"column:competitors;not null;default:''"`
	Hashtags    string `gorm:"column:hashtags;not null;default:''"`
	Geo         string `gorm:"column:geo;not null;default:''"`
	Notes       string `gorm:"column:notes;not null;default:''"`
}

func (Targets) TableName() string { return "targets" }
