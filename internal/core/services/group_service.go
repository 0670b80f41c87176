package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/mysite/internal/core/domain"
	"github.com/vncsmyrnk/mysite/internal/core/ports"
)

type groupService struct {
	repo ports.GroupRepository
}

func NewGroupService(repo ports.GroupRepository) ports.GroupService {
	return &groupService{
		repo: repo,
	}
}

func (s *groupService) List(ctx context.Context) ([]*domain.Group, error) {
	groups, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

func (s *groupService) Get(ctx context.Context, id string) (*domain.Group, error) {
	groupID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrGroupNotFound
	}
	return s.repo.GetByID(ctx, groupID)
}

func (s *groupService) Create(ctx context.Context, actor domain.Actor, name string) (*domain.Group, error) {
	if !actor.IsStaff {
		return nil, domain.ErrForbidden
	}

	name, err := validGroupName(name)
	if err != nil {
		return nil, err
	}

	group := &domain.Group{ID: uuid.New(), Name: name}
	if err := s.repo.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *groupService) Rename(ctx context.Context, actor domain.Actor, id string, name string) (*domain.Group, error) {
	if !actor.IsStaff {
		return nil, domain.ErrForbidden
	}

	group, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	group.Name, err = validGroupName(name)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *groupService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if !actor.IsStaff {
		return domain.ErrForbidden
	}

	group, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, group.ID)
}

func validGroupName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if err := checkLength("name", name, maxGroupNameLength); err != nil {
		return "", err
	}
	return name, nil
}
