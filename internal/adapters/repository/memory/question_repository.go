package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/mysite/internal/core/domain"
	"github.com/vncsmyrnk/mysite/internal/core/ports"
)

type questionRepository struct {
	store *Store
}

func NewQuestionRepository(store *Store) ports.QuestionRepository {
	return &questionRepository{store: store}
}

func (r *questionRepository) Save(_ context.Context, question *domain.Question) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.questions[question.ID]; exists {
		return fmt.Errorf("question with ID %s already exists", question.ID)
	}

	q := *question
	q.Choices = nil
	s.questions[q.ID] = q
	for _, c := range question.Choices {
		c.QuestionID = q.ID
		s.choices[c.ID] = c
		s.choiceOrder = append(s.choiceOrder, c.ID)
	}
	return nil
}

func (r *questionRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Question, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	q, exists := s.questions[id]
	if !exists {
		return nil, domain.ErrQuestionNotFound
	}
	return &q, nil
}

func (r *questionRepository) ListPublished(_ context.Context, now time.Time, limit int) ([]*domain.Question, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	list := []*domain.Question{}
	for _, q := range s.questions {
		if q.IsPublished(now) {
			q := q
			list = append(list, &q)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].PubDate.After(list[j].PubDate) })
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

type choiceRepository struct {
	store *Store
}

func NewChoiceRepository(store *Store) ports.ChoiceRepository {
	return &choiceRepository{store: store}
}

func (r *choiceRepository) ListByQuestion(_ context.Context, questionID uuid.UUID) ([]domain.Choice, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	var list []domain.Choice
	for _, id := range s.choiceOrder {
		if c := s.choices[id]; c.QuestionID == questionID {
			list = append(list, c)
		}
	}
	return list, nil
}

func (r *choiceRepository) IncrementVotes(_ context.Context, questionID, choiceID uuid.UUID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	c, exists := s.choices[choiceID]
	if !exists || c.QuestionID != questionID {
		return domain.ErrInvalidChoice
	}
	c.Votes++
	s.choices[choiceID] = c
	return nil
}
