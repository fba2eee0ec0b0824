package users

import (
	"strings"
	"time"

	"github.com/growly/growly-web/pkg/db/models"
	"github.com/growly/growly-web/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID           uint       `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Role         enums.Role `json:"role"`
	Instagram    string     `json:"instagram"`
	Unsubscribed bool       `json:"unsubscribed"`
	CreatedAt    time.Time  `json:"created_at"`
}

// CreateAccountInput holds what the service needs to open an account.
type CreateAccountInput struct {
	Email     string
	Password  string
	Name      string
	Instagram string
	Role      enums.Role
}

// StatusInput replaces a user's automation toggles and notes.
type StatusInput struct {
	AutoLike    bool   `json:"auto_like"`
	AutoFollow  bool   `json:"auto_follow"`
	AutoComment bool   `json:"auto_comment"`
	StoryViews  bool   `json:"story_views"`
	Paused      bool   `json:"paused"`
	Complaint   string `json:"complaint" validate:"max=2000"`
	StaffNotes  string `json:"staff_notes" validate:"max=2000"`
}

// TargetsInput replaces a user's targeting preferences.
type TargetsInput struct {
	Niche       string `json:"niche" validate:"max=200"`
	Competitors string `json:"competitors" validate:"max=1000"`
	Hashtags    string `json:"hashtags" validate:"max=1000"`
	Geo         string `json:"geo" validate:"max=200"`
	Notes       string `json:"notes" validate:"max=2000"`
}

// DetailDTO is the staff view of a single user.
type DetailDTO struct {
	User    UserDTO         `json:"user"`
	Latest  *models.Metric  `json:"latest_metric,omitempty"`
	Status  *models.Status  `json:"status,omitempty"`
	Targets *models.Targets `json:"targets,omitempty"`
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Role:         u.Role,
		Instagram:    u.Instagram,
		Unsubscribed: u.Unsubscribed,
		CreatedAt:    u.CreatedAt,
	}
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizeInstagram(handle string) string {
	return strings.TrimPrefix(strings.TrimSpace(handle), "@")
}
