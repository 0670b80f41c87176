package integration

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollPages(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	resp, err := app.Client.Get(app.Server.URL + "/polls/")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "No polls are available.")

	past := app.createQuestion(t, "Past question.", -30, "Yes", "No")
	future := app.createQuestion(t, "Future question.", 30)

	resp, err = app.Client.Get(app.Server.URL + "/polls/")
	require.NoError(t, err)
	body := readBody(t, resp)
	assert.Contains(t, body, "Past question.")
	assert.NotContains(t, body, "Future question.")

	resp, err = app.Client.Get(fmt.Sprintf("%s/polls/%s/", app.Server.URL, past.ID))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Past question.")

	resp, err = app.Client.Get(fmt.Sprintf("%s/polls/%s/", app.Server.URL, future.ID))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = app.Client.Get(fmt.Sprintf("%s/polls/%s/results/", app.Server.URL, future.ID))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestVoteFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	q := app.createQuestion(t, "Favourite colour?", -1, "Red", "Blue")
	other := app.createQuestion(t, "Other question?", -1, "Elsewhere")
	voteURL := fmt.Sprintf("%s/polls/%s/vote/", app.Server.URL, q.ID)

	resp, err := app.Client.PostForm(voteURL, url.Values{"choice": {q.Choices[1].ID.String()}})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, fmt.Sprintf("/polls/%s/results/", q.ID), resp.Header.Get("Location"))
	assert.Equal(t, map[string]int64{"Red": 0, "Blue": 1}, app.choiceVotes(t, q.ID.String()))

	resp, err = app.Client.Get(fmt.Sprintf("%s/polls/%s/results/", app.Server.URL, q.ID))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Blue -- 1 vote<")

	// A choice belonging to another question must not be counted.
	resp, err = app.Client.PostForm(voteURL, url.Values{"choice": {other.Choices[0].ID.String()}})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "You didn&#39;t select a choice.")

	resp, err = app.Client.PostForm(voteURL, url.Values{})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	assert.Equal(t, map[string]int64{"Red": 0, "Blue": 1}, app.choiceVotes(t, q.ID.String()))
	assert.Equal(t, map[string]int64{"Elsewhere": 0}, app.choiceVotes(t, other.ID.String()))
}

func TestConcurrentVotesAreAllCounted(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	q := app.createQuestion(t, "Race?", -1, "Yes")
	voteURL := fmt.Sprintf("%s/polls/%s/vote/", app.Server.URL, q.ID)

	const voters = 20
	errs := make(chan error, voters)
	for i := 0; i < voters; i++ {
		go func() {
			resp, err := app.Client.PostForm(voteURL, url.Values{"choice": {q.Choices[0].ID.String()}})
			if err == nil {
				resp.Body.Close()
				if resp.StatusCode != http.StatusFound {
					err = fmt.Errorf("unexpected status %d", resp.StatusCode)
				}
			}
			errs <- err
		}()
	}
	for i := 0; i < voters; i++ {
		require.NoError(t, <-errs)
	}

	assert.Equal(t, map[string]int64{"Yes": voters}, app.choiceVotes(t, q.ID.String()))
}

func TestChoicesKeepInsertionOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	q := app.createQuestion(t, "Pick a fruit", -1, "Zebra fruit", "Apple", "Mango")

	stored, err := app.Questions.GetPublished(context.Background(), q.ID.String())
	require.NoError(t, err)

	var texts []string
	for _, c := range stored.Choices {
		texts = append(texts, c.Text)
	}
	assert.Equal(t, []string{"Zebra fruit", "Apple", "Mango"}, texts)
}

func TestCreateQuestionOverlongTextIsRejected(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	app.createUser(t, "admin", "admin-pw", true)
	adminClient := app.loginClient(t, "admin", "admin-pw")

	body := `{"question_text":"` + strings.Repeat("q", 201) + `"}`
	resp, err := adminClient.Post(app.Server.URL+"/api/questions/", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
