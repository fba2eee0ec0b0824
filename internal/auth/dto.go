package auth

import (
	"github.com/growly/growly-web/internal/users"
	"github.com/growly/growly-web/pkg/enums"
)

// LoginRequest captures the credentials posted to /login.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// SignupRequest captures the fields posted to /signup.
type SignupRequest struct {
	Email     string `json:"email" form:"email" validate:"required"`
	Password  string `json:"password" form:"password" validate:"required"`
	Name      string `json:"name" form:"name" validate:"max=120"`
	Instagram string `json:"instagram" form:"instagram" validate:"max=64"`
}

// LoginResult tells the caller who signed in and where to send them.
type LoginResult struct {
	User     *users.UserDTO `json:"user"`
	Redirect string         `json:"redirect"`
}

// LockoutDetails is attached to lockout errors.
type LockoutDetails struct {
	WaitSeconds int `json:"wait_seconds"`
}

// RedirectFor maps a role to its landing page.
func RedirectFor(role enums.Role) string {
	switch role {
	case enums.RoleAdmin:
		return "/dashboard"
	case enums.RoleStaff:
		return "/staff"
	default:
		return "/"
	}
}
