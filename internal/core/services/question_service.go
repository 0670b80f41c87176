package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/mysite/internal/core/domain"
	"github.com/vncsmyrnk/mysite/internal/core/ports"
)

// IndexSize is the number of questions shown on the poll index.
const IndexSize = 5

type questionService struct {
	repo    ports.QuestionRepository
	choices ports.ChoiceRepository
	now     Clock
}

func NewQuestionService(repo ports.QuestionRepository, choices ports.ChoiceRepository, clock Clock) ports.QuestionService {
	return &questionService{
		repo:    repo,
		choices: choices,
		now:     orNow(clock),
	}
}

func (s *questionService) Now() time.Time {
	return s.now()
}

func (s *questionService) LatestPublished(ctx context.Context) ([]*domain.Question, error) {
	return s.repo.ListPublished(ctx, s.now(), IndexSize)
}

func (s *questionService) GetPublished(ctx context.Context, id string) (*domain.Question, error) {
	question, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}

	if !question.IsPublished(s.now()) {
		return nil, domain.ErrQuestionNotFound
	}

	choices, err := s.choices.ListByQuestion(ctx, question.ID)
	if err != nil {
		return nil, err
	}
	question.Choices = choices

	return question, nil
}

func (s *questionService) Results(ctx context.Context, id string) (*domain.Question, error) {
	return s.GetPublished(ctx, id)
}

func (s *questionService) Create(ctx context.Context, input ports.CreateQuestionInput) (*domain.Question, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: question_text is required", domain.ErrValidation)
	}
	if err := checkLength("question_text", text, maxQuestionTextLength); err != nil {
		return nil, err
	}

	question := &domain.Question{
		ID:      uuid.New(),
		Text:    text,
		PubDate: s.now(),
	}
	if input.PubDate != nil {
		question.PubDate = *input.PubDate
	}

	for _, choiceText := range input.Choices {
		choiceText = strings.TrimSpace(choiceText)
		if choiceText == "" {
			continue
		}
		if err := checkLength("choice_text", choiceText, maxChoiceTextLength); err != nil {
			return nil, err
		}
		question.Choices = append(question.Choices, domain.Choice{
			ID:         uuid.New(),
			QuestionID: question.ID,
			Text:       choiceText,
		})
	}

	if err := s.repo.Save(ctx, question); err != nil {
		return nil, err
	}

	return question, nil
}

func (s *questionService) lookup(ctx context.Context, id string) (*domain.Question, error) {
	questionID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrInvalidQuestionID
	}

	return s.repo.GetByID(ctx, questionID)
}
