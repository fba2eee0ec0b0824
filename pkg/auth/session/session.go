package session

import (
	"time"

	"github.com/google/uuid"
)

// LockoutPolicy bounds consecutive failed logins within one session.
type LockoutPolicy struct {
	Threshold int
	Window    time.Duration
}

// DefaultLockoutPolicy locks a session for five minutes after six failures.
var DefaultLockoutPolicy = LockoutPolicy{Threshold: 6, Window: 5 * time.Minute}

// Session is the per-client state decoded from the cookie on each request.
// A zero UserID means nobody is signed in.
type Session struct {
	ID             string
	UserID         uint
	FailedAttempts int
	LockedUntil    *time.Time
}

// New returns an anonymous session with a fresh identifier.
func New() Session {
	return Session{ID: uuid.NewString()}
}

// Authenticated reports whether a user is signed in.
func (s Session) Authenticated() bool {
	return s.UserID != 0
}

// Locked reports whether login attempts are blocked at now, and for how long.
func (s Session) Locked(now time.Time) (time.Duration, bool) {
	if s.LockedUntil == nil || !now.Before(*s.LockedUntil) {
		return 0, false
	}
	return s.LockedUntil.Sub(now), true
}

// ClearExpiredLock drops a lock whose window has passed.
func (s *Session) ClearExpiredLock(now time.Time) {
	if s.LockedUntil != nil && !now.Before(*s.LockedUntil) {
		s.LockedUntil = nil
	}
}

// RecordFailure counts a failed login. Reaching the threshold locks the
// session for the policy window and resets the counter. It reports whether
// the session became locked.
func (s *Session) RecordFailure(now time.Time, policy LockoutPolicy) bool {
	s.FailedAttempts++
	if policy.Threshold <= 0 || s.FailedAttempts < policy.Threshold {
		return false
	}
	until := now.Add(policy.Window)
	s.LockedUntil = &until
	s.FailedAttempts = 0
	return true
}

// SignIn binds the session to userID and clears all lockout state.
func (s *Session) SignIn(userID uint) {
	s.UserID = userID
	s.FailedAttempts = 0
	s.LockedUntil = nil
}

// WaitSeconds renders a remaining lock duration as whole seconds, rounded up.
func WaitSeconds(remaining time.Duration) int {
	if remaining <= 0 {
		return 0
	}
	secs := remaining / time.Second
	if remaining%time.Second != 0 {
		secs++
	}
	return int(secs)
}
