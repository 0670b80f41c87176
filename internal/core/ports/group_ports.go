package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/mysite/internal/core/domain"
)

type GroupRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error)
	List(ctx context.Context) ([]*domain.Group, error)
	Create(ctx context.Context, group *domain.Group) error
	Update(ctx context.Context, group *domain.Group) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type GroupService interface {
	List(ctx context.Context) ([]*domain.Group, error)
	Get(ctx context.Context, id string) (*domain.Group, error)
	Create(ctx context.Context, actor domain.Actor, name string) (*domain.Group, error)
	Rename(ctx context.Context, actor domain.Actor, id string, name string) (*domain.Group, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
}
