package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/mysite/internal/core/domain"
)

type QuestionRepository interface {
	Save(ctx context.Context, question *domain.Question) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error)
	ListPublished(ctx context.Context, now time.Time, limit int) ([]*domain.Question, error)
}

type CreateQuestionInput struct {
	Text    string
	PubDate *time.Time
	Choices []string
}

type QuestionService interface {
	LatestPublished(ctx context.Context) ([]*domain.Question, error)
	GetPublished(ctx context.Context, id string) (*domain.Question, error)
	Results(ctx context.Context, id string) (*domain.Question, error)
	Create(ctx context.Context, input CreateQuestionInput) (*domain.Question, error)
	// Now is the instant publication and recency are judged against.
	Now() time.Time
}
