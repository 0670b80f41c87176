package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/mysite/internal/core/domain"
	"github.com/vncsmyrnk/mysite/internal/core/ports"
)

type voteService struct {
	questionRepo ports.QuestionRepository
	choiceRepo   ports.ChoiceRepository
}

func NewVoteService(questionRepo ports.QuestionRepository, choiceRepo ports.ChoiceRepository) ports.VoteService {
	return &voteService{
		questionRepo: questionRepo,
		choiceRepo:   choiceRepo,
	}
}

func (s *voteService) Vote(ctx context.Context, input ports.VoteInput) (*domain.Question, error) {
	questionID, err := uuid.Parse(input.QuestionID)
	if err != nil {
		return nil, domain.ErrInvalidQuestionID
	}

	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	choiceID, parseErr := uuid.Parse(input.ChoiceID)
	if parseErr == nil {
		err = s.choiceRepo.IncrementVotes(ctx, question.ID, choiceID)
	} else {
		err = domain.ErrInvalidChoice
	}
	if err != nil && !errors.Is(err, domain.ErrInvalidChoice) {
		return nil, err
	}

	choices, loadErr := s.choiceRepo.ListByQuestion(ctx, question.ID)
	if loadErr != nil {
		return nil, loadErr
	}
	question.Choices = choices

	return question, err
}
