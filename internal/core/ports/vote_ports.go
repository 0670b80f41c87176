package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/mysite/internal/core/domain"
)

type ChoiceRepository interface {
	ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]domain.Choice, error)
	// IncrementVotes adds one vote to the choice only if it belongs to the
	// question. It returns domain.ErrInvalidChoice when no row matched.
	IncrementVotes(ctx context.Context, questionID, choiceID uuid.UUID) error
}

type VoteInput struct {
	QuestionID string
	ChoiceID   string
}

type VoteService interface {
	// Vote returns the question the vote was cast on, or the question
	// together with domain.ErrInvalidChoice so callers can redisplay it.
	Vote(ctx context.Context, input VoteInput) (*domain.Question, error)
}
