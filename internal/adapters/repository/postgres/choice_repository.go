package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/mysite/internal/core/domain"
	"github.com/vncsmyrnk/mysite/internal/core/ports"
)

type choiceRepository struct {
	db *sql.DB
}

func NewChoiceRepository(db *sql.DB) ports.ChoiceRepository {
	return &choiceRepository{
		db: db,
	}
}

func (r *choiceRepository) ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]domain.Choice, error) {
	query := `
		SELECT id, question_id, choice_text, votes
		FROM choices
		WHERE question_id = $1
		ORDER BY position, created_at
	`
	rows, err := r.db.QueryContext(ctx, query, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get choices: %w", err)
	}
	defer rows.Close()

	var choices []domain.Choice
	for rows.Next() {
		var c domain.Choice
		if err := rows.Scan(&c.ID, &c.QuestionID, &c.Text, &c.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan choice: %w", err)
		}
		choices = append(choices, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating choices: %w", err)
	}
	return choices, nil
}

func (r *choiceRepository) IncrementVotes(ctx context.Context, questionID, choiceID uuid.UUID) error {
	query := `UPDATE choices SET votes = votes + 1 WHERE id = $1 AND question_id = $2`
	result, err := r.db.ExecContext(ctx, query, choiceID, questionID)
	if err != nil {
		return fmt.Errorf("failed to record vote: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to record vote: %w", err)
	}
	if affected == 0 {
		return domain.ErrInvalidChoice
	}
	return nil
}
