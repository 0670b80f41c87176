package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/mysite/internal/core/domain"
	"github.com/vncsmyrnk/mysite/internal/core/ports"
)

type groupRepository struct {
	db *sql.DB
}

func NewGroupRepository(db *sql.DB) ports.GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	group := &domain.Group{}
	err := r.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM groups WHERE id = $1`, id).
		Scan(&group.ID, &group.Name, &group.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return group, nil
}

func (r *groupRepository) List(ctx context.Context) ([]*domain.Group, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM groups ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	groups := []*domain.Group{}
	for rows.Next() {
		group := &domain.Group{}
		if err := rows.Scan(&group.ID, &group.Name, &group.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating groups: %w", err)
	}
	return groups, nil
}

func (r *groupRepository) Create(ctx context.Context, group *domain.Group) error {
	query := `INSERT INTO groups (id, name) VALUES ($1, $2) RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, group.ID, group.Name).Scan(&group.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrGroupNameTaken
		}
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

func (r *groupRepository) Update(ctx context.Context, group *domain.Group) error {
	result, err := r.db.ExecContext(ctx, `UPDATE groups SET name = $2 WHERE id = $1`, group.ID, group.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrGroupNameTaken
		}
		return fmt.Errorf("failed to update group: %w", err)
	}
	return expectOne(result, domain.ErrGroupNotFound)
}

func (r *groupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return expectOne(result, domain.ErrGroupNotFound)
}
