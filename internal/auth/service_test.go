package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/growly/growly-web/internal/users"
	"github.com/growly/growly-web/pkg/auth/session"
	"github.com/growly/growly-web/pkg/config"
	"github.com/growly/growly-web/pkg/db/dbtest"
	"github.com/growly/growly-web/pkg/db/models"
	"github.com/growly/growly-web/pkg/enums"
	pkgerrors "github.com/growly/growly-web/pkg/errors"
	"github.com/growly/growly-web/pkg/security"
	"gorm.io/gorm"
)

type stubUserRepository struct {
	data    map[string]*models.User
	lookups int
	updated map[uint]string
}

func newStubUserRepository(us ...*models.User) *stubUserRepository {
	repo := &stubUserRepository{data: map[string]*models.User{}, updated: map[uint]string{}}
	for _, u := range us {
		repo.data[u.Email] = u
	}
	return repo
}

func (s *stubUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.lookups++
	if user, ok := s.data[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepository) UpdatePasswordHash(ctx context.Context, id uint, digest string) error {
	s.updated[id] = digest
	return nil
}

type stubAccounts struct {
	next    uint
	created []users.CreateAccountInput
	err     error
}

func (s *stubAccounts) CreateAccount(ctx context.Context, input users.CreateAccountInput) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.next++
	s.created = append(s.created, input)
	return &models.User{ID: s.next, Email: users.NormalizeEmail(input.Email), Role: enums.RoleUser}, nil
}

// plainHasher stores "h:<password>" digests; "old:" digests need a rehash.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "h:" + password, nil }

func (plainHasher) Verify(password, digest string) (bool, error) {
	return strings.TrimPrefix(strings.TrimPrefix(digest, "old:"), "h:") == password, nil
}

func (plainHasher) NeedsRehash(digest string) bool { return strings.HasPrefix(digest, "old:") }

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestService(t *testing.T, repo *stubUserRepository, accounts *stubAccounts, c *clock) Service {
	t.Helper()
	if accounts == nil {
		accounts = &stubAccounts{}
	}
	svc, err := NewService(ServiceParams{
		UserRepo: repo,
		Accounts: accounts,
		Hasher:   plainHasher{},
		Now:      c.now,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestLoginRedirectsByRole(t *testing.T) {
	repo := newStubUserRepository(
		&models.User{ID: 1, Email: "admin@x.io", PasswordHash: "h:pw", Role: enums.RoleAdmin},
		&models.User{ID: 2, Email: "staff@x.io", PasswordHash: "h:pw", Role: enums.RoleStaff},
		&models.User{ID: 3, Email: "user@x.io", PasswordHash: "h:pw", Role: enums.RoleUser},
	)
	svc := newTestService(t, repo, nil, &clock{t: time.Now()})

	cases := map[string]string{
		"admin@x.io": "/dashboard",
		"staff@x.io": "/staff",
		" USER@x.io": "/",
	}
	for email, want := range cases {
		sess := session.New()
		res, err := svc.Login(context.Background(), &sess, LoginRequest{Email: email, Password: "pw"})
		if err != nil {
			t.Fatalf("login %s: %v", email, err)
		}
		if res.Redirect != want {
			t.Fatalf("login %s: expected redirect %s, got %s", email, want, res.Redirect)
		}
		if sess.UserID != res.User.ID {
			t.Fatalf("session not bound to user %d", res.User.ID)
		}
	}
}

func TestLoginLocksAfterSixFailuresWithoutStoreLookup(t *testing.T) {
	repo := newStubUserRepository(&models.User{ID: 1, Email: "a@b.com", PasswordHash: "h:pw1", Role: enums.RoleUser})
	c := &clock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestService(t, repo, nil, c)
	sess := session.New()
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		_, err := svc.Login(ctx, &sess, LoginRequest{Email: "a@b.com", Password: "wrong"})
		if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
			t.Fatalf("attempt %d: expected unauthorized, got %v", i, err)
		}
	}
	_, err := svc.Login(ctx, &sess, LoginRequest{Email: "a@b.com", Password: "wrong"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeRateLimit) {
		t.Fatalf("sixth failure should lock, got %v", err)
	}
	if sess.LockedUntil == nil {
		t.Fatal("expected session to carry a lock")
	}

	lookups := repo.lookups
	previous := 301
	for _, step := range []time.Duration{0, 30 * time.Second, 2 * time.Minute, 4*time.Minute + 59*time.Second} {
		c.t = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC).Add(step)
		_, err := svc.Login(ctx, &sess, LoginRequest{Email: "a@b.com", Password: "pw1"})
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeRateLimit {
			t.Fatalf("at +%s expected lockout, got %v", step, err)
		}
		details, ok := typed.Details().(LockoutDetails)
		if !ok {
			t.Fatalf("expected lockout details, got %T", typed.Details())
		}
		if details.WaitSeconds >= previous {
			t.Fatalf("wait must decrease: %d then %d", previous, details.WaitSeconds)
		}
		previous = details.WaitSeconds
	}
	if repo.lookups != lookups {
		t.Fatalf("locked attempts must not touch the store: %d extra lookups", repo.lookups-lookups)
	}

	c.t = time.Date(2025, 1, 1, 12, 5, 0, 0, time.UTC)
	res, err := svc.Login(ctx, &sess, LoginRequest{Email: "a@b.com", Password: "pw1"})
	if err != nil {
		t.Fatalf("login after window: %v", err)
	}
	if res.Redirect != "/" || sess.LockedUntil != nil || sess.FailedAttempts != 0 {
		t.Fatalf("unexpected state after success: %+v", sess)
	}
}

func TestCheckLockoutIgnoresCredentials(t *testing.T) {
	c := &clock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestService(t, newStubUserRepository(), nil, c)
	sess := session.New()
	if err := svc.CheckLockout(&sess); err != nil {
		t.Fatalf("fresh session should not be locked: %v", err)
	}

	until := c.t.Add(time.Minute)
	sess.LockedUntil = &until
	if err := svc.CheckLockout(&sess); !pkgerrors.IsCode(err, pkgerrors.CodeRateLimit) {
		t.Fatalf("expected lockout, got %v", err)
	}

	c.t = until
	if err := svc.CheckLockout(&sess); err != nil {
		t.Fatalf("expired lock should pass: %v", err)
	}
}

func TestLoginUnknownEmailCountsAsFailure(t *testing.T) {
	svc := newTestService(t, newStubUserRepository(), nil, &clock{t: time.Now()})
	sess := session.New()

	_, err := svc.Login(context.Background(), &sess, LoginRequest{Email: "ghost@x.io", Password: "pw"})
	if !pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if sess.FailedAttempts != 1 {
		t.Fatalf("expected one failed attempt, got %d", sess.FailedAttempts)
	}
}

func TestAuthenticateRehashesLegacyDigest(t *testing.T) {
	repo := newStubUserRepository(&models.User{ID: 9, Email: "a@b.com", PasswordHash: "old:pw"})
	svc := newTestService(t, repo, nil, &clock{t: time.Now()})

	if _, err := svc.Authenticate(context.Background(), "a@b.com", "pw"); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if repo.updated[9] != "h:pw" {
		t.Fatalf("expected digest upgrade, got %q", repo.updated[9])
	}
}

func TestSignupSignsIn(t *testing.T) {
	accounts := &stubAccounts{}
	svc := newTestService(t, newStubUserRepository(), accounts, &clock{t: time.Now()})
	sess := session.New()

	res, err := svc.Signup(context.Background(), &sess, SignupRequest{Email: "New@x.io", Password: "pw"})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if res.Redirect != "/" || sess.UserID != 1 {
		t.Fatalf("unexpected signup result %+v session %+v", res, sess)
	}
	if len(accounts.created) != 1 {
		t.Fatalf("expected one account, got %d", len(accounts.created))
	}
}

func TestSignupLoginDuplicateScenario(t *testing.T) {
	client := dbtest.Open(t)
	repo := users.NewRepository(client.DB())
	hasher := security.NewHasher(config.PasswordConfig{
		ArgonMemoryKB: 64, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32,
	})
	accounts, err := users.NewService(users.ServiceParams{Repo: repo, Tx: client, Hasher: hasher})
	if err != nil {
		t.Fatalf("users.NewService: %v", err)
	}
	svc, err := NewService(ServiceParams{UserRepo: repo, Accounts: accounts, Hasher: hasher})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	ctx := context.Background()

	signupSess := session.New()
	if _, err := svc.Signup(ctx, &signupSess, SignupRequest{Email: "a@b.com", Password: "pw1"}); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	loginSess := session.New()
	res, err := svc.Login(ctx, &loginSess, LoginRequest{Email: "a@b.com", Password: "pw1"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Redirect != "/" || !loginSess.Authenticated() {
		t.Fatalf("expected redirect to / with active session, got %+v", res)
	}

	dupSess := session.New()
	_, err = svc.Signup(ctx, &dupSess, SignupRequest{Email: "a@b.com", Password: "pw2"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if !strings.Contains(typed.Message(), "already exists") {
		t.Fatalf("unexpected message %q", typed.Message())
	}
	if dupSess.Authenticated() {
		t.Fatal("failed signup must not sign in")
	}
	n, err := repo.Count(ctx)
	if err != nil || n != 1 {
		t.Fatalf("expected exactly one user, got %d (%v)", n, err)
	}
}
