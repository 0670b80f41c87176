package ports

import (
	"context"

	"github.com/vncsmyrnk/mysite/internal/core/domain"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, error) // returns access_token, error
	ParseToken(ctx context.Context, token string) (domain.Actor, error)
	Logout(ctx context.Context, actor domain.Actor) error
}
