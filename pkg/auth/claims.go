package auth

import "github.com/golang-jwt/jwt/v5"

// SessionPayload is the state carried in the signed session cookie.
type SessionPayload struct {
	SessionID      string
	UserID         uint
	FailedAttempts int
	LockedUntil    *int64
}

// SessionClaims is the JWT body of the session cookie. Subject is unused;
// anonymous sessions carry UserID 0.
type SessionClaims struct {
	UserID         uint   `json:"uid,omitempty"`
	FailedAttempts int    `json:"fa,omitempty"`
	LockedUntil    *int64 `json:"lu,omitempty"`
	jwt.RegisteredClaims
}
