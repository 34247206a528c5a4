package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/sps/users-api/internal/core/domain"
	"github.com/sps/users-api/internal/core/policy"
	"github.com/sps/users-api/internal/core/ports"
)

var (
	errMissingFields = fmt.Errorf("%w: name, email, type and password are required", domain.ErrInvalidInput)
	errBadEmail      = fmt.Errorf("%w: email is invalid", domain.ErrInvalidInput)
	errBadRole       = fmt.Errorf("%w: type must be 'admin' or 'user'", domain.ErrInvalidInput)
)

// UserService composes validation, the authorization policy and the store.
type UserService struct {
	repo         ports.UserRepository
	registration policy.Registration
	log          zerolog.Logger
}

func NewUserService(repo ports.UserRepository, registration policy.Registration, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, registration: registration, log: log}
}

// Create registers a new account. It is open to anonymous callers.
func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	if in.Name == "" || in.Email == "" || in.Role == "" || in.Password == "" {
		return nil, errMissingFields
	}
	if !domain.IsValidEmail(in.Email) {
		return nil, errBadEmail
	}
	if !in.Role.Valid() {
		return nil, errBadRole
	}
	if err := s.registration.Check(in.Role); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, in.Email, ""); err != nil {
		return nil, err
	}

	user, err := s.repo.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if user.Role == domain.RoleAdmin {
		s.log.Warn().Str("user_id", user.ID).Msg("admin account created through open registration")
	}
	s.log.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("user created")
	return user, nil
}

func (s *UserService) List(ctx context.Context, p *domain.Principal) ([]*domain.User, error) {
	if err := policy.CanView(p); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, p *domain.Principal, id string) (*domain.User, error) {
	if err := policy.CanView(p); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// Update applies a partial update. Checks run in this order: edit
// permission, target existence, email format and uniqueness, role tag,
// role escalation. Empty email and type strings count as absent.
func (s *UserService) Update(ctx context.Context, p *domain.Principal, id string, in ports.UpdateUserInput) (*domain.User, error) {
	if err := policy.CanUpdate(p, id); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, err
	}

	patch := ports.UpdateUserInput{Name: in.Name, Password: in.Password}

	if in.Email != nil && *in.Email != "" {
		if !domain.IsValidEmail(*in.Email) {
			return nil, errBadEmail
		}
		if err := s.ensureEmailFree(ctx, *in.Email, id); err != nil {
			return nil, err
		}
		patch.Email = in.Email
	}

	if in.Role != nil && *in.Role != "" {
		if !in.Role.Valid() {
			return nil, errBadRole
		}
		if err := policy.CanAssignRole(p, *in.Role); err != nil {
			s.log.Warn().Str("requester", p.Subject).Str("target", id).Msg("role escalation denied")
			return nil, err
		}
		patch.Role = in.Role
	}

	user, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", id).Str("requester", p.Subject).Msg("user updated")
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, p *domain.Principal, id string) error {
	if err := policy.CanDelete(p, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("user_id", id).Str("requester", p.Subject).Msg("user deleted")
	return nil
}

// ensureEmailFree fails with ErrEmailTaken when another account (not
// exceptID) already uses email, compared case-insensitively.
func (s *UserService) ensureEmailFree(ctx context.Context, email, exceptID string) error {
	existing, err := s.repo.FindByEmail(ctx, domain.NormalizeEmail(email))
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("check email: %w", err)
	case existing.ID == exceptID:
		return nil
	default:
		return domain.ErrEmailTaken
	}
}
