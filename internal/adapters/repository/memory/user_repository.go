package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/mysite/internal/core/domain"
	"github.com/vncsmyrnk/mysite/internal/core/ports"
)

type userRepository struct {
	store *Store
}

func NewUserRepository(store *Store) ports.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *userRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	u, exists := s.users[id]
	if !exists {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *userRepository) List(_ context.Context) ([]*domain.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	list := []*domain.User{}
	for _, u := range s.users {
		u := u
		list = append(list, &u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Username < list[j].Username })
	return list, nil
}

func (r *userRepository) Create(_ context.Context, user *domain.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.usernameTaken(user.Username, user.ID) {
		return domain.ErrUsernameTaken
	}
	user.CreatedAt = time.Now()
	s.users[user.ID] = *user
	return nil
}

func (r *userRepository) Update(_ context.Context, user *domain.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.ID]; !exists {
		return domain.ErrUserNotFound
	}
	if s.usernameTaken(user.Username, user.ID) {
		return domain.ErrUsernameTaken
	}
	s.users[user.ID] = *user
	return nil
}

func (r *userRepository) Delete(_ context.Context, id uuid.UUID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[id]; !exists {
		return domain.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

func (r *userRepository) RevokeTokens(_ context.Context, id uuid.UUID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	u, exists := s.users[id]
	if !exists {
		return domain.ErrUserNotFound
	}
	u.TokenVersion++
	s.users[id] = u
	return nil
}

func (s *Store) usernameTaken(username string, except uuid.UUID) bool {
	for id, u := range s.users {
		if id != except && u.Username == username {
			return true
		}
	}
	return false
}
