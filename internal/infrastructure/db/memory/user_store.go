// Package memory holds the in-process user store. Records live for the
// lifetime of the process only.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sps/users-api/internal/core/domain"
	"github.com/sps/users-api/internal/core/ports"
)

// UserStore implements ports.UserRepository over a slice kept in insertion
// order. Password hashing happens before the lock is taken.
type UserStore struct {
	mu     sync.RWMutex
	users  []*domain.User
	hasher ports.PasswordHasher
	now    func() time.Time
}

func NewUserStore(hasher ports.PasswordHasher) *UserStore {
	return &UserStore{
		hasher: hasher,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *UserStore) List(_ context.Context) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.User, len(s.users))
	for i, u := range s.users {
		out[i] = clone(u)
	}
	return out, nil
}

func (s *UserStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *UserStore) FindByID(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return clone(s.users[i]), nil
	}
	return nil, domain.ErrUserNotFound
}

// Create appends a new record. Email uniqueness is the caller's job.
func (s *UserStore) Create(_ context.Context, in ports.CreateUserInput) (*domain.User, error) {
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	u := &domain.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        domain.NormalizeEmail(in.Email),
		Role:         in.Role,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	s.mu.Lock()
	s.users = append(s.users, u)
	s.mu.Unlock()

	return clone(u), nil
}

// Update applies the non-nil fields of in and always bumps UpdatedAt.
// A blank password (after trimming) keeps the current hash.
func (s *UserStore) Update(_ context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	var hash string
	if in.Password != nil && strings.TrimSpace(*in.Password) != "" {
		h, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		hash = h
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, domain.ErrUserNotFound
	}
	u := s.users[i]

	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Email != nil {
		u.Email = domain.NormalizeEmail(*in.Email)
	}
	if in.Role != nil && in.Role.Valid() {
		u.Role = *in.Role
	}
	if hash != "" {
		u.PasswordHash = hash
	}

	now := s.now()
	if !now.After(u.UpdatedAt) {
		now = u.UpdatedAt.Add(time.Microsecond)
	}
	u.UpdatedAt = now

	return clone(u), nil
}

func (s *UserStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.ErrUserNotFound
	}
	s.users = append(s.users[:i], s.users[i+1:]...)
	return nil
}

func (s *UserStore) Reset(ctx context.Context, seedAdmin bool) error {
	s.mu.Lock()
	s.users = nil
	s.mu.Unlock()

	if seedAdmin {
		return s.SeedAdmin(ctx)
	}
	return nil
}

// SeedAdmin creates the well-known administrator unless its email is taken.
func (s *UserStore) SeedAdmin(ctx context.Context) error {
	if _, err := s.FindByEmail(ctx, domain.SeedAdminEmail); err == nil {
		return nil
	}

	hash, err := s.hasher.Hash(domain.SeedAdminPassword)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == domain.SeedAdminEmail {
			return nil
		}
	}

	now := s.now()
	s.users = append(s.users, &domain.User{
		ID:           uuid.NewString(),
		Name:         domain.SeedAdminName,
		Email:        domain.SeedAdminEmail,
		Role:         domain.RoleAdmin,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	return nil
}

func (s *UserStore) Ping(_ context.Context) error {
	return nil
}

// indexOf must be called with s.mu held.
func (s *UserStore) indexOf(id string) int {
	for i, u := range s.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func clone(u *domain.User) *domain.User {
	c := *u
	return &c
}
