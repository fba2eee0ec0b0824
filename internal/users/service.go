package users

import (
	"context"
	"fmt"
	"strings"

	"github.com/growly/growly-web/internal/growth"
	"github.com/growly/growly-web/internal/orders"
	"github.com/growly/growly-web/internal/tickets"
	"github.com/growly/growly-web/pkg/config"
	"github.com/growly/growly-web/pkg/db"
	"github.com/growly/growly-web/pkg/db/models"
	"github.com/growly/growly-web/pkg/enums"
	pkgerrors "github.com/growly/growly-web/pkg/errors"
	"gorm.io/gorm"
)

// MsgEmailTaken is shown when signup collides with an existing account.
const MsgEmailTaken = "An account with that email already exists."

// PasswordHasher produces password digests.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// Service owns account lifecycle and staff-side user management.
type Service interface {
	CreateAccount(ctx context.Context, input CreateAccountInput) (*models.User, error)
	Principal(ctx context.Context, id uint) (*models.User, error)
	List(ctx context.Context) ([]UserDTO, error)
	Count(ctx context.Context) (int64, error)
	Detail(ctx context.Context, id uint) (*DetailDTO, error)
	Promote(ctx context.Context, id uint) error
	Demote(ctx context.Context, id uint) error
	AssignRole(ctx context.Context, email, role string) (*models.User, error)
	ToggleUnsubscribe(ctx context.Context, id uint) (bool, error)
	UpdateStatus(ctx context.Context, id uint, input StatusInput) error
	UpdateTargets(ctx context.Context, id uint, input TargetsInput) error
	Delete(ctx context.Context, id uint) error
	EnsureAdmin(ctx context.Context, cfg config.AdminConfig) (*models.User, bool, error)
}

// ServiceParams groups the dependencies for NewService.
type ServiceParams struct {
	Repo         *Repository
	Tx           db.TxRunner
	Hasher       PasswordHasher
	DeletePolicy enums.DeletePolicy
}

type service struct {
	repo   *Repository
	tx     db.TxRunner
	hasher PasswordHasher
	policy enums.DeletePolicy
}

// NewService validates params and builds the users service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Hasher == nil {
		return nil, fmt.Errorf("password hasher required")
	}
	policy := params.DeletePolicy
	if policy == "" {
		policy = enums.DeletePolicyRetain
	}
	if !policy.IsValid() {
		return nil, fmt.Errorf("invalid delete policy %q", policy)
	}
	return &service{
		repo:   params.Repo,
		tx:     params.Tx,
		hasher: params.Hasher,
		policy: policy,
	}, nil
}

// CreateAccount inserts the user with its status, targets and initial metric
// in one transaction.
func (s *service) CreateAccount(ctx context.Context, input CreateAccountInput) (*models.User, error) {
	email := NormalizeEmail(input.Email)
	if email == "" {
		return nil, pkgerrors.Validation("email", "Email is required.")
	}
	if input.Password == "" {
		return nil, pkgerrors.Validation("password", "Password is required.")
	}
	role := input.Role
	if role == "" {
		role = enums.RoleUser
	}
	if !role.IsValid() {
		return nil, pkgerrors.Validation("role", fmt.Sprintf("unknown role %q", role))
	}

	digest, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		Email:        email,
		PasswordHash: digest,
		Name:         strings.TrimSpace(input.Name),
		Role:         role,
		Instagram:    normalizeInstagram(input.Instagram),
	}
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		if _, err := repo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.FieldConflict("email", MsgEmailTaken)
		} else if !db.IsNotFound(err) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
		}
		if err := repo.Create(ctx, user); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, MsgEmailTaken).WithDetails(pkgerrors.FieldErrors{"email": MsgEmailTaken})
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}
		if err := NewProfileRepository(tx).CreateDefaults(ctx, user.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user profile")
		}
		if err := growth.NewRepository(tx).Create(ctx, &models.Metric{UserID: user.ID}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create initial metric")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Principal loads the signed-in user. Missing ids yield NotFound.
func (s *service) Principal(ctx context.Context, id uint) (*models.User, error) {
	return s.load(ctx, s.repo, id)
}

func (s *service) List(ctx context.Context) ([]UserDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list users")
	}
	out := make([]UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Count(ctx context.Context) (int64, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count users")
	}
	return n, nil
}

func (s *service) Detail(ctx context.Context, id uint) (*DetailDTO, error) {
	user, err := s.load(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	detail := &DetailDTO{User: *FromModel(user)}
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		if detail.Latest, err = growth.NewRepository(tx).Latest(ctx, id); err != nil {
			return err
		}
		profiles := NewProfileRepository(tx)
		if detail.Status, err = profiles.Status(ctx, id); err != nil {
			return err
		}
		detail.Targets, err = profiles.Targets(ctx, id)
		return err
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user detail")
	}
	return detail, nil
}

func (s *service) Promote(ctx context.Context, id uint) error {
	return s.setRole(ctx, id, enums.RoleStaff)
}

func (s *service) Demote(ctx context.Context, id uint) error {
	return s.setRole(ctx, id, enums.RoleUser)
}

// AssignRole sets the role of the account registered under email.
func (s *service) AssignRole(ctx context.Context, email, role string) (*models.User, error) {
	parsed, err := enums.ParseRole(role)
	if err != nil {
		return nil, pkgerrors.Validation("role", "Role must be user, staff or admin.")
	}
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return nil, pkgerrors.Validation("email", "Email is required.")
	}
	user, err := s.repo.FindByEmail(ctx, normalized)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.NotFound("user")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	if err := s.setRole(ctx, user.ID, parsed); err != nil {
		return nil, err
	}
	user.Role = parsed
	return user, nil
}

// ToggleUnsubscribe flips the newsletter flag and returns the new value.
func (s *service) ToggleUnsubscribe(ctx context.Context, id uint) (bool, error) {
	var next bool
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		user, err := s.load(ctx, repo, id)
		if err != nil {
			return err
		}
		next = !user.Unsubscribed
		if err := repo.SetUnsubscribed(ctx, id, next); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "toggle unsubscribe")
		}
		return nil
	})
	return next, err
}

func (s *service) UpdateStatus(ctx context.Context, id uint, input StatusInput) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.load(ctx, NewRepository(tx), id); err != nil {
			return err
		}
		input.Complaint = strings.TrimSpace(input.Complaint)
		input.StaffNotes = strings.TrimSpace(input.StaffNotes)
		if err := NewProfileRepository(tx).SaveStatus(ctx, id, input); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update status")
		}
		return nil
	})
}

func (s *service) UpdateTargets(ctx context.Context, id uint, input TargetsInput) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.load(ctx, NewRepository(tx), id); err != nil {
			return err
		}
		if err := NewProfileRepository(tx).SaveTargets(ctx, id, input); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update targets")
		}
		return nil
	})
}

// Delete removes the user with its status, targets and metrics. Orders and
// tickets are handled by the configured delete policy.
func (s *service) Delete(ctx context.Context, id uint) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		found, err := NewRepository(tx).Delete(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete user")
		}
		if !found {
			return pkgerrors.NotFound("user")
		}
		if err := NewProfileRepository(tx).DeleteByUser(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete user profile")
		}
		if err := growth.NewRepository(tx).DeleteByUser(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete user metrics")
		}

		switch s.policy {
		case enums.DeletePolicyHard:
			if err := orders.NewRepository(tx).DeleteByUser(ctx, id); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete user orders")
			}
			if err := tickets.NewRepository(tx).DeleteByUser(ctx, id); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete user tickets")
			}
		case enums.DeletePolicyAnonymize:
			if err := tickets.NewRepository(tx).DetachUser(ctx, id); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "detach user tickets")
			}
		}
		return nil
	})
}

// EnsureAdmin creates the configured admin account, or promotes it when the
// email is already registered. The bool reports whether a row was created.
func (s *service) EnsureAdmin(ctx context.Context, cfg config.AdminConfig) (*models.User, bool, error) {
	if !cfg.Enabled() {
		return nil, false, nil
	}
	existing, err := s.repo.FindByEmail(ctx, NormalizeEmail(cfg.Email))
	switch {
	case err == nil:
		if existing.Role != enums.RoleAdmin {
			if err := s.setRole(ctx, existing.ID, enums.RoleAdmin); err != nil {
				return nil, false, err
			}
			existing.Role = enums.RoleAdmin
		}
		return existing, false, nil
	case !db.IsNotFound(err):
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup admin")
	}
	user, err := s.CreateAccount(ctx, CreateAccountInput{
		Email:    cfg.Email,
		Password: cfg.Password,
		Name:     cfg.Name,
		Role:     enums.RoleAdmin,
	})
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (s *service) setRole(ctx context.Context, id uint, role enums.Role) error {
	found, err := s.repo.UpdateRole(ctx, id, role)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update role")
	}
	if !found {
		return pkgerrors.NotFound("user")
	}
	return nil
}

func (s *service) load(ctx context.Context, repo *Repository, id uint) (*models.User, error) {
	user, err := repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.NotFound("user")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}
	return user, nil
}
