package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/mysite/internal/core/domain"
	"github.com/vncsmyrnk/mysite/internal/core/ports"
)

type UserService struct {
	repo ports.UserRepository
}

func NewUserService(repo ports.UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

// List returns every user to staff and only the caller's own record to
// everyone else.
func (s *UserService) List(ctx context.Context, actor domain.Actor) ([]*domain.User, error) {
	if actor.IsStaff {
		users, err := s.repo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list users: %w", err)
		}
		return users, nil
	}

	user, err := s.repo.GetByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return []*domain.User{}, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return []*domain.User{user}, nil
}

func (s *UserService) Get(ctx context.Context, actor domain.Actor, id string) (*domain.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	if !actor.Owns(userID) {
		return nil, domain.ErrUserNotFound
	}

	return s.repo.GetByID(ctx, userID)
}

func (s *UserService) Create(ctx context.Context, actor domain.Actor, input ports.CreateUserInput) (*domain.User, error) {
	if !actor.IsStaff {
		return nil, domain.ErrForbidden
	}

	username := strings.TrimSpace(input.Username)
	if err := validateUser(username, input.Email); err != nil {
		return nil, err
	}
	if input.Password == "" {
		return nil, fmt.Errorf("%w: password is required", domain.ErrValidation)
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        input.Email,
		PasswordHash: hash,
		IsStaff:      input.IsStaff,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) Update(ctx context.Context, actor domain.Actor, id string, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.IsStaff != nil && *input.IsStaff != user.IsStaff && !actor.IsStaff {
		return nil, domain.ErrForbidden
	}

	if input.Username != nil {
		user.Username = strings.TrimSpace(*input.Username)
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.IsStaff != nil {
		user.IsStaff = *input.IsStaff
	}
	if err := validateUser(user.Username, user.Email); err != nil {
		return nil, err
	}
	if input.Password != nil {
		if *input.Password == "" {
			return nil, fmt.Errorf("%w: password may not be blank", domain.ErrValidation)
		}
		hash, err := hashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
		user.TokenVersion++
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	user, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}

	return s.repo.Delete(ctx, user.ID)
}

func validateUser(username, email string) error {
	if username == "" {
		return fmt.Errorf("%w: username is required", domain.ErrValidation)
	}
	if err := checkLength("username", username, maxUsernameLength); err != nil {
		return err
	}
	if err := checkLength("email", email, maxEmailLength); err != nil {
		return err
	}
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return fmt.Errorf("%w: enter a valid email address", domain.ErrValidation)
		}
	}
	return nil
}
