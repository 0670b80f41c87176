package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/mysite/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/mysite/internal/core/domain"
	"github.com/vncsmyrnk/mysite/internal/core/ports"
)

var testNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func newQuestionFixture() (ports.QuestionService, ports.QuestionRepository) {
	store := memory.NewStore()
	questions := memory.NewQuestionRepository(store)
	svc := NewQuestionService(questions, memory.NewChoiceRepository(store), fixedClock(testNow))
	return svc, questions
}

func createQuestion(t *testing.T, svc ports.QuestionService, text string, days int, choices ...string) *domain.Question {
	t.Helper()
	pubDate := testNow.Add(time.Duration(days) * 24 * time.Hour)
	q, err := svc.Create(context.Background(), ports.CreateQuestionInput{
		Text:    text,
		PubDate: &pubDate,
		Choices: choices,
	})
	require.NoError(t, err)
	return q
}

func TestLatestPublished(t *testing.T) {
	ctx := context.Background()

	t.Run("no questions", func(t *testing.T) {
		svc, _ := newQuestionFixture()
		list, err := svc.LatestPublished(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("future questions are hidden", func(t *testing.T) {
		svc, _ := newQuestionFixture()
		createQuestion(t, svc, "Past question.", -30)
		createQuestion(t, svc, "Future question.", 30)

		list, err := svc.LatestPublished(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Past question.", list[0].Text)
	})

	t.Run("newest first", func(t *testing.T) {
		svc, _ := newQuestionFixture()
		createQuestion(t, svc, "Past question 1.", -30)
		createQuestion(t, svc, "Past question 2.", -5)

		list, err := svc.LatestPublished(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Past question 2.", list[0].Text)
		assert.Equal(t, "Past question 1.", list[1].Text)
	})

	t.Run("capped at index size", func(t *testing.T) {
		svc, _ := newQuestionFixture()
		for i := 1; i <= IndexSize+2; i++ {
			createQuestion(t, svc, "Question", -i)
		}

		list, err := svc.LatestPublished(ctx)
		require.NoError(t, err)
		assert.Len(t, list, IndexSize)
	})
}

func TestGetPublished(t *testing.T) {
	ctx := context.Background()
	svc, _ := newQuestionFixture()

	past := createQuestion(t, svc, "Past Question.", -5, "Yes", "No")
	future := createQuestion(t, svc, "Future question.", 5)

	got, err := svc.GetPublished(ctx, past.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Past Question.", got.Text)
	assert.Len(t, got.Choices, 2)

	_, err = svc.GetPublished(ctx, future.ID.String())
	assert.ErrorIs(t, err, domain.ErrQuestionNotFound)

	_, err = svc.GetPublished(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrQuestionNotFound)

	_, err = svc.Results(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrInvalidQuestionID)
}

func TestCreateQuestion(t *testing.T) {
	ctx := context.Background()
	svc, repo := newQuestionFixture()

	_, err := svc.Create(ctx, ports.CreateQuestionInput{Text: "   "})
	assert.ErrorIs(t, err, domain.ErrValidation)

	q, err := svc.Create(ctx, ports.CreateQuestionInput{
		Text:    "What's new?",
		Choices: []string{"Not much", "", "  ", "The sky"},
	})
	require.NoError(t, err)
	assert.Equal(t, testNow, q.PubDate)
	assert.Len(t, q.Choices, 2)

	stored, err := repo.GetByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "What's new?", stored.Text)
}

func TestCreateQuestionLengthLimits(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		choices []string
		wantErr bool
	}{
		{"text at limit in multibyte runes", strings.Repeat("é", 200), []string{"Yes"}, false},
		{"text too long", strings.Repeat("a", 201), nil, true},
		{"choice at limit", "Fine?", []string{strings.Repeat("ü", 200)}, false},
		{"choice too long", "Fine?", []string{"Yes", strings.Repeat("b", 201)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newQuestionFixture()
			_, err := svc.Create(context.Background(), ports.CreateQuestionInput{Text: tt.text, Choices: tt.choices})
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
				latest, listErr := svc.LatestPublished(context.Background())
				require.NoError(t, listErr)
				assert.Empty(t, latest)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
