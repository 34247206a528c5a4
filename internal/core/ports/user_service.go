package ports

import (
	"context"

	"github.com/sps/users-api/internal/core/domain"
)

// UserService defines the user management use cases. The principal is the
// authenticated requester; Create is open to anonymous callers.
type UserService interface {
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	List(ctx context.Context, p *domain.Principal) ([]*domain.User, error)
	Get(ctx context.Context, p *domain.Principal, id string) (*domain.User, error)
	Update(ctx context.Context, p *domain.Principal, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, p *domain.Principal, id string) error
}
