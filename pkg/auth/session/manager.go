package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/growly/growly-web/pkg/auth"
	"github.com/growly/growly-web/pkg/config"
)

// Registry records logged-out session ids so a copied cookie cannot be replayed.
type Registry interface {
	RevokeSession(ctx context.Context, sessionID string, ttl time.Duration) error
	IsSessionRevoked(ctx context.Context, sessionID string) (bool, error)
}

// Manager reads and writes the signed session cookie.
type Manager struct {
	cfg      config.SessionConfig
	registry Registry
	now      func() time.Time
}

// NewManager builds a cookie manager. registry may be nil, in which case
// logout only expires the cookie.
func NewManager(cfg config.SessionConfig, registry Registry) (*Manager, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("session secret is required")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "growly_session"
	}
	return &Manager{cfg: cfg, registry: registry, now: time.Now}, nil
}

// Policy returns the configured lockout policy.
func (m *Manager) Policy() LockoutPolicy {
	p := LockoutPolicy{Threshold: m.cfg.LockoutThreshold, Window: m.cfg.LockoutWindow}
	if p.Threshold <= 0 || p.Window <= 0 {
		return DefaultLockoutPolicy
	}
	return p
}

// Load decodes the request cookie. A missing, invalid, expired or revoked
// cookie yields a fresh anonymous session; the error is only set when the
// registry lookup failed.
func (m *Manager) Load(r *http.Request) (Session, error) {
	cookie, err := r.Cookie(m.cfg.CookieName)
	if err != nil || cookie.Value == "" {
		return New(), nil
	}
	claims, err := auth.ParseSessionToken(m.cfg, cookie.Value)
	if err != nil {
		return New(), nil
	}

	if m.registry != nil {
		revoked, err := m.registry.IsSessionRevoked(r.Context(), claims.ID)
		if err != nil {
			return New(), fmt.Errorf("checking session registry: %w", err)
		}
		if revoked {
			return New(), nil
		}
	}

	sess := Session{
		ID:             claims.ID,
		UserID:         claims.UserID,
		FailedAttempts: claims.FailedAttempts,
	}
	if claims.LockedUntil != nil {
		until := time.Unix(*claims.LockedUntil, 0)
		sess.LockedUntil = &until
	}
	return sess, nil
}

// Save writes sess to the response cookie.
func (m *Manager) Save(w http.ResponseWriter, sess Session) error {
	payload := auth.SessionPayload{
		SessionID:      sess.ID,
		UserID:         sess.UserID,
		FailedAttempts: sess.FailedAttempts,
	}
	if sess.LockedUntil != nil {
		// round up so the lock never ends early after truncation to seconds
		unix := sess.LockedUntil.Unix()
		if sess.LockedUntil.Nanosecond() > 0 {
			unix++
		}
		payload.LockedUntil = &unix
	}

	now := m.now()
	token, err := auth.MintSessionToken(m.cfg, now, payload)
	if err != nil {
		return err
	}
	http.SetCookie(w, m.cookie(token, now.Add(m.cfg.TTL), int(m.cfg.TTL.Seconds())))
	return nil
}

// Clear revokes the session id and expires the cookie.
func (m *Manager) Clear(ctx context.Context, w http.ResponseWriter, sess Session) error {
	http.SetCookie(w, m.cookie("", time.Unix(0, 0), -1))
	if m.registry == nil || sess.ID == "" {
		return nil
	}
	return m.registry.RevokeSession(ctx, sess.ID, m.cfg.TTL)
}

func (m *Manager) cookie(value string, expires time.Time, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
