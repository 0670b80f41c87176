package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/mysite/internal/core/ports"
)

const noPolls = "No polls are available."

func TestIndexView(t *testing.T) {
	t.Run("no questions", func(t *testing.T) {
		app := newTestApp(t)

		w := app.get("/polls/", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), noPolls)
	})

	t.Run("past question", func(t *testing.T) {
		app := newTestApp(t)
		app.createQuestion(t, "Past question.", -30)

		w := app.get("/polls/", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Past question.")
		assert.NotContains(t, w.Body.String(), noPolls)
	})

	t.Run("future question", func(t *testing.T) {
		app := newTestApp(t)
		app.createQuestion(t, "Future question.", 30)

		w := app.get("/polls/", "")
		assert.Contains(t, w.Body.String(), noPolls)
		assert.NotContains(t, w.Body.String(), "Future question.")
	})

	t.Run("future and past question", func(t *testing.T) {
		app := newTestApp(t)
		app.createQuestion(t, "Past question.", -30)
		app.createQuestion(t, "Future question.", 30)

		body := app.get("/polls/", "").Body.String()
		assert.Contains(t, body, "Past question.")
		assert.NotContains(t, body, "Future question.")
	})

	t.Run("two past questions newest first", func(t *testing.T) {
		app := newTestApp(t)
		app.createQuestion(t, "Past question 1.", -30)
		app.createQuestion(t, "Past question 2.", -5)

		body := app.get("/polls/", "").Body.String()
		first := strings.Index(body, "Past question 2.")
		second := strings.Index(body, "Past question 1.")
		require.NotEqual(t, -1, first)
		require.NotEqual(t, -1, second)
		assert.Less(t, first, second)
	})

	t.Run("root redirects to index", func(t *testing.T) {
		app := newTestApp(t)

		w := app.get("/", "")
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/polls/", w.Header().Get("Location"))
	})
}

func TestDetailView(t *testing.T) {
	app := newTestApp(t)
	future := app.createQuestion(t, "Future question.", 5)
	past := app.createQuestion(t, "Past Question.", -5, "Yes", "No")

	w := app.get("/polls/"+future.ID.String()+"/", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = app.get("/polls/"+past.ID.String()+"/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Past Question.")
	assert.Contains(t, w.Body.String(), `value="`+past.Choices[0].ID.String()+`"`)

	assert.Equal(t, http.StatusNotFound, app.get("/polls/"+uuid.NewString()+"/", "").Code)
	assert.Equal(t, http.StatusNotFound, app.get("/polls/42/", "").Code)
}

func TestResultsView(t *testing.T) {
	app := newTestApp(t)
	q := app.createQuestion(t, "Results question.", -1, "One", "Two")
	require.NoError(t, app.choices.IncrementVotes(context.Background(), q.ID, q.Choices[0].ID))

	w := app.get("/polls/"+q.ID.String()+"/results/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "One -- 1 vote<")
	assert.Contains(t, body, "Two -- 0 votes")
	assert.Contains(t, body, "Vote again?")

	future := app.createQuestion(t, "Later.", 2)
	assert.Equal(t, http.StatusNotFound, app.get("/polls/"+future.ID.String()+"/results/", "").Code)
}

func TestVoteView(t *testing.T) {
	app := newTestApp(t)
	q := app.createQuestion(t, "Vote question.", 1, "Vote choice 1", "Vote choice 2")
	votePath := "/polls/" + q.ID.String() + "/vote/"

	counts := func() []int64 {
		choices, err := app.choices.ListByQuestion(context.Background(), q.ID)
		require.NoError(t, err)
		out := make([]int64, 0, len(choices))
		for _, c := range choices {
			out = append(out, c.Votes)
		}
		return out
	}

	w := app.postForm(votePath, url.Values{"choice": {q.Choices[0].ID.String()}})
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/polls/"+q.ID.String()+"/results/", w.Header().Get("Location"))
	assert.Equal(t, []int64{1, 0}, counts())

	other := app.createQuestion(t, "Other.", -1, "Elsewhere")
	badChoices := []url.Values{
		{"choice": {"-42"}},
		{},
		{"choice": {uuid.NewString()}},
		{"choice": {other.Choices[0].ID.String()}},
	}
	for _, form := range badChoices {
		w := app.postForm(votePath, form)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "You didn&#39;t select a choice.")
		assert.Contains(t, w.Body.String(), "Vote question.")
	}
	assert.Equal(t, []int64{1, 0}, counts())

	w = app.postForm("/polls/"+uuid.NewString()+"/vote/", url.Values{"choice": {q.Choices[0].ID.String()}})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQuestionsAPI(t *testing.T) {
	app := newTestApp(t)
	app.createUser(t, "admin", "admin-pw", true)
	app.createUser(t, testUser, testPassword, false)
	app.createQuestion(t, "Recent question 1.", 0)
	app.createQuestion(t, "Old question.", -3)
	app.createQuestion(t, "Future question.", 3)

	w := app.get("/api/questions/", "")
	require.Equal(t, http.StatusOK, w.Code)

	var list []questionResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&list))
	require.Len(t, list, 2)
	assert.Equal(t, "Recent question 1.", list[0].Text)
	assert.True(t, list[0].WasPublishedRecently)
	assert.False(t, list[1].WasPublishedRecently)
	assert.True(t, strings.HasPrefix(list[0].URL, "http://testserver/polls/"))

	payload := `{"question_text":"What's new?","choices":["Not much","The sky"]}`
	w = app.sendJSON(http.MethodPost, "/api/questions/", "", payload)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = app.sendJSON(http.MethodPost, "/api/questions/", app.login(t, testUser, testPassword), payload)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.sendJSON(http.MethodPost, "/api/questions/", app.login(t, "admin", "admin-pw"), payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created questionResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
	assert.Equal(t, "What's new?", created.Text)
	assert.Len(t, created.Choices, 2)
}

func TestQuestionsAPIUsesServiceClock(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	app := newTestAppAt(t, func() time.Time { return now })

	for text, pubDate := range map[string]time.Time{
		"An hour ago.":     now.Add(-time.Hour),
		"In an hour.":      now.Add(time.Hour),
		"Three days back.": now.Add(-72 * time.Hour),
	} {
		pubDate := pubDate
		_, err := app.questions.Create(context.Background(), ports.CreateQuestionInput{Text: text, PubDate: &pubDate})
		require.NoError(t, err)
	}

	w := app.get("/api/questions/", "")
	require.Equal(t, http.StatusOK, w.Code)

	var list []questionResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&list))
	require.Len(t, list, 2)
	assert.Equal(t, "An hour ago.", list[0].Text)
	assert.True(t, list[0].WasPublishedRecently)
	assert.Equal(t, "Three days back.", list[1].Text)
	assert.False(t, list[1].WasPublishedRecently)
}
