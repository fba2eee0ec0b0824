package models

// Status holds the per-user automation toggles and complaint notes.
type Status struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"column:user_id;not null;uniqueIndex"`
	AutoLike    bool   `gorm:"column:auto_like;not null;default:false"`
	AutoFollow  bool   `gorm:"column:auto_follow;not null;default:false"`
	AutoComment bool   `gorm:"column:auto_comment;not null;default:false"`
	StoryViews  bool   `gorm:"column:story_views;not null;default:false"`
	Paused      bool   `gorm:"column:paused;not null;default:false"`
	Complaint   string `gorm:"column:complaint;not null;default:''"`
	StaffNotes  string `gorm:"column:staff_notes;not null;default:''"`
}

func (Status) TableName() string { return "statuses" }
