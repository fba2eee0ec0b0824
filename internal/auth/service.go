package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/growly/growly-web/internal/users"
	"github.com/growly/growly-web/pkg/auth/session"
	"github.com/growly/growly-web/pkg/db"
	"github.com/growly/growly-web/pkg/db/models"
	pkgerrors "github.com/growly/growly-web/pkg/errors"
	"github.com/growly/growly-web/pkg/metrics"
)

const invalidCredentialsMessage = "invalid credentials"

// Service defines the behavior needed by the auth controller.
type Service interface {
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	CheckLockout(sess *session.Session) error
	Login(ctx context.Context, sess *session.Session, req LoginRequest) (*LoginResult, error)
	Signup(ctx context.Context, sess *session.Session, req SignupRequest) (*LoginResult, error)
}

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id uint, digest string) error
}

type accountCreator interface {
	CreateAccount(ctx context.Context, input users.CreateAccountInput) (*models.User, error)
}

type passwordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) (bool, error)
	NeedsRehash(digest string) bool
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo userRepository
	Accounts accountCreator
	Hasher   passwordHasher
	Policy   session.LockoutPolicy
	Metrics  *metrics.AuthMetrics
	Now      func() time.Time
}

type service struct {
	users    userRepository
	accounts accountCreator
	hasher   passwordHasher
	policy   session.LockoutPolicy
	metrics  *metrics.AuthMetrics
	now      func() time.Time
}

// NewService constructs the login/signup service.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.Accounts == nil {
		return nil, fmt.Errorf("account creator is required")
	}
	if params.Hasher == nil {
		return nil, fmt.Errorf("password hasher is required")
	}
	policy := params.Policy
	if policy.Threshold <= 0 || policy.Window <= 0 {
		policy = session.DefaultLockoutPolicy
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		users:    params.UserRepo,
		accounts: params.Accounts,
		hasher:   params.Hasher,
		policy:   policy,
		metrics:  params.Metrics,
		now:      now,
	}, nil
}

// Authenticate checks credentials against the stored digest.
func (s *service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	normalized := users.NormalizeEmail(email)
	if normalized == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	user, err := s.users.FindByEmail(ctx, normalized)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil || !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	if s.hasher.NeedsRehash(user.PasswordHash) {
		// Best effort; the old digest keeps working.
		if digest, err := s.hasher.Hash(password); err == nil {
			_ = s.users.UpdatePasswordHash(ctx, user.ID, digest)
		}
	}
	return user, nil
}

// Login applies the session lockout around Authenticate. sess is mutated in
// place and must be saved by the caller whatever the outcome.
func (s *service) Login(ctx context.Context, sess *session.Session, req LoginRequest) (*LoginResult, error) {
	if sess == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session missing")
	}
	if err := s.CheckLockout(sess); err != nil {
		return nil, err
	}
	now := s.now()
	sess.ClearExpiredLock(now)

	user, err := s.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
			return nil, err
		}
		s.metrics.IncLogin(metrics.LoginFailure)
		if sess.RecordFailure(now, s.policy) {
			s.metrics.IncLockout()
			return nil, lockoutError(s.policy.Window)
		}
		return nil, err
	}

	sess.SignIn(user.ID)
	s.metrics.IncLogin(metrics.LoginSuccess)
	return &LoginResult{User: users.FromModel(user), Redirect: RedirectFor(user.Role)}, nil
}

// CheckLockout rejects a locked session before any credentials are read.
func (s *service) CheckLockout(sess *session.Session) error {
	if sess == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "session missing")
	}
	if remaining, locked := sess.Locked(s.now()); locked {
		s.metrics.IncLogin(metrics.LoginRejected)
		return lockoutError(remaining)
	}
	return nil
}

// Signup opens a user account and signs the session in.
func (s *service) Signup(ctx context.Context, sess *session.Session, req SignupRequest) (*LoginResult, error) {
	if sess == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session missing")
	}
	user, err := s.accounts.CreateAccount(ctx, users.CreateAccountInput{
		Email:     req.Email,
		Password:  req.Password,
		Name:      req.Name,
		Instagram: req.Instagram,
	})
	if err != nil {
		return nil, err
	}
	s.metrics.IncSignup()
	sess.SignIn(user.ID)
	return &LoginResult{User: users.FromModel(user), Redirect: RedirectFor(user.Role)}, nil
}

func lockoutError(remaining time.Duration) error {
	wait := session.WaitSeconds(remaining)
	return pkgerrors.New(pkgerrors.CodeRateLimit,
		fmt.Sprintf("Too many failed attempts. Try again in %d seconds.", wait)).
		WithDetails(LockoutDetails{WaitSeconds: wait})
}
