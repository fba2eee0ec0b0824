package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"math"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/growly/growly-web/api/validators"
	pkgerrors "github.com/growly/growly-web/pkg/errors"
	"github.com/growly/growly-web/pkg/logger"
)

const maxRateLimitBody = 1 << 20

type rateLimiterStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// AuthRateLimitPolicy defines the throttling parameters for a traffic surface.
type AuthRateLimitPolicy struct {
	name       string
	window     time.Duration
	ipLimit    int
	emailLimit int
}

// NewAuthRateLimitPolicy builds a policy with the supplied window and limits.
func NewAuthRateLimitPolicy(name string, window time.Duration, ipLimit, emailLimit int) AuthRateLimitPolicy {
	return AuthRateLimitPolicy{
		name:       strings.ToLower(strings.TrimSpace(name)),
		window:     window,
		ipLimit:    ipLimit,
		emailLimit: emailLimit,
	}
}

func (p AuthRateLimitPolicy) enabled() bool {
	return p.window > 0 && (p.ipLimit > 0 || p.emailLimit > 0)
}

func (p AuthRateLimitPolicy) label() string {
	if p.name == "" {
		return "auth"
	}
	return p.name
}

// limitCheck is one counter consulted for a request.
type limitCheck struct {
	kind  string
	key   string
	limit int
}

func (c limitCheck) scope(policy string) string {
	return c.kind + ":" + policy + ":" + c.key
}

// AuthRateLimit enforces per-IP and per-email counters for auth endpoints.
// The email is read from a JSON or urlencoded body, which is restored for
// the next handler.
func AuthRateLimit(policy AuthRateLimitPolicy, store rateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			checks := make([]limitCheck, 0, 2)
			if ip := clientIP(r); policy.ipLimit > 0 && ip != "" {
				checks = append(checks, limitCheck{kind: "ip", key: ip, limit: policy.ipLimit})
			}
			if policy.emailLimit > 0 && r.Body != nil {
				body, err := io.ReadAll(io.LimitReader(r.Body, maxRateLimitBody))
				if err != nil {
					writeError(w, r, logg, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read request"))
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(body))
				if email := normalizeEmail(extractEmail(r, body)); email != "" {
					checks = append(checks, limitCheck{kind: "email", key: hashValue(email), limit: policy.emailLimit})
				}
			}

			for _, c := range checks {
				allowed, count, err := store.FixedWindowAllow(r.Context(), c.scope(policy.label()), int64(c.limit), policy.window)
				if err != nil {
					writeError(w, r, logg, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
					return
				}
				if !allowed {
					rateLimited(w, r, logg, policy, c, count)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func rateLimited(w http.ResponseWriter, r *http.Request, logg *logger.Logger, policy AuthRateLimitPolicy, c limitCheck, count int64) {
	if logg != nil {
		keyField := "ip"
		if c.kind == "email" {
			keyField = "email_hash"
		}
		ctx := logg.WithFields(r.Context(), map[string]any{
			"scope":          c.kind,
			"policy":         policy.label(),
			"attempts":       count,
			"limit":          c.limit,
			"window_seconds": int(policy.window.Seconds()),
			keyField:         c.key,
		})
		logg.Warn(ctx, "auth.rate_limit.blocked")
	}
	w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(policy.window.Seconds()))))
	writeError(w, r, nil, pkgerrors.New(pkgerrors.CodeRateLimit, "Too many requests. Please slow down."))
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

func extractEmail(r *http.Request, payload []byte) string {
	if validators.IsJSON(r) {
		var body struct {
			Email string `json:"email"`
		}
		if err := json.Unmarshal(payload, &body); err != nil {
			return ""
		}
		return body.Email
	}
	values, err := url.ParseQuery(string(payload))
	if err != nil {
		return ""
	}
	return values.Get("email")
}

func normalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func hashValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
