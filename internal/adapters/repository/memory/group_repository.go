package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/mysite/internal/core/domain"
	"github.com/vncsmyrnk/mysite/internal/core/ports"
)

type groupRepository struct {
	store *Store
}

func NewGroupRepository(store *Store) ports.GroupRepository {
	return &groupRepository{store: store}
}

func (r *groupRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Group, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	g, exists := s.groups[id]
	if !exists {
		return nil, domain.ErrGroupNotFound
	}
	return &g, nil
}

func (r *groupRepository) List(_ context.Context) ([]*domain.Group, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	list := []*domain.Group{}
	for _, g := range s.groups {
		g := g
		list = append(list, &g)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *groupRepository) Create(_ context.Context, group *domain.Group) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.groupNameTaken(group.Name, group.ID) {
		return domain.ErrGroupNameTaken
	}
	group.CreatedAt = time.Now()
	s.groups[group.ID] = *group
	return nil
}

func (r *groupRepository) Update(_ context.Context, group *domain.Group) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.groups[group.ID]; !exists {
		return domain.ErrGroupNotFound
	}
	if s.groupNameTaken(group.Name, group.ID) {
		return domain.ErrGroupNameTaken
	}
	s.groups[group.ID] = *group
	return nil
}

func (r *groupRepository) Delete(_ context.Context, id uuid.UUID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.groups[id]; !exists {
		return domain.ErrGroupNotFound
	}
	delete(s.groups, id)
	return nil
}

func (s *Store) groupNameTaken(name string, except uuid.UUID) bool {
	for id, g := range s.groups {
		if id != except && g.Name == name {
			return true
		}
	}
	return false
}
