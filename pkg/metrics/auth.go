package metrics

import "github.com/prometheus/client_golang/prometheus"

// AuthMetrics counts login outcomes.
type AuthMetrics struct {
	attempts *prometheus.CounterVec
	lockouts prometheus.Counter
	signups  prometheus.Counter
}

// Login outcome labels.
const (
	LoginSuccess  = "success"
	LoginFailure  = "failure"
	LoginRejected = "locked"
)

// NewAuthMetrics registers the auth metrics on the provided registerer.
func NewAuthMetrics(reg prometheus.Registerer) *AuthMetrics {
	if reg == nil {
		return &AuthMetrics{}
	}
	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_login_attempts_total",
		Help: "Login attempts by outcome.",
	}, []string{"outcome"})
	lockouts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "auth_session_lockouts_total",
		Help: "Sessions locked after repeated login failures.",
	})
	signups := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "auth_signups_total",
		Help: "Accounts created through signup.",
	})
	reg.MustRegister(attempts, lockouts, signups)
	return &AuthMetrics{attempts: attempts, lockouts: lockouts, signups: signups}
}

// IncLogin counts a login attempt with the given outcome.
func (a *AuthMetrics) IncLogin(outcome string) {
	if a == nil || a.attempts == nil {
		return
	}
	a.attempts.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncLockout counts a session entering lockout.
func (a *AuthMetrics) IncLockout() {
	if a == nil || a.lockouts == nil {
		return
	}
	a.lockouts.Inc()
}

// IncSignup counts a created account.
func (a *AuthMetrics) IncSignup() {
	if a == nil || a.signups == nil {
		return
	}
	a.signups.Inc()
}
