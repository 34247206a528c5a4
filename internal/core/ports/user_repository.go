package ports

import (
	"context"

	"github.com/sps/users-api/internal/core/domain"
)

// CreateUserInput carries the fields of a new account. Email is normalised
// and the password hashed by the repository.
type CreateUserInput struct {
	Name     string
	Email    string
	Role     domain.Role
	Password string
}

// UpdateUserInput is a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Role     *domain.Role
	Password *string
}

// UserRepository owns every user record. Returned users are copies.
type UserRepository interface {
	List(ctx context.Context) ([]*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Create stores a new user. Callers must check email uniqueness first.
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	// Reset drops every record and optionally recreates the seed admin.
	Reset(ctx context.Context, seedAdmin bool) error
	Ping(ctx context.Context) error
}
