package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/mysite/internal/core/domain"
)

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	RevokeTokens(ctx context.Context, id uuid.UUID) error
}

type CreateUserInput struct {
	Username string
	Email    string
	Password string
	IsStaff  bool
}

// UpdateUserInput carries optional fields; nil leaves the value untouched.
type UpdateUserInput struct {
	Username *string
	Email    *string
	Password *string
	IsStaff  *bool
}

type UserService interface {
	List(ctx context.Context, actor domain.Actor) ([]*domain.User, error)
	Get(ctx context.Context, actor domain.Actor, id string) (*domain.User, error)
	Create(ctx context.Context, actor domain.Actor, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, actor domain.Actor, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}
