package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vncsmyrnk/mysite/internal/adapters/repository/memory"
	"github.com/vncsmyrnk/mysite/internal/core/domain"
	"github.com/vncsmyrnk/mysite/internal/core/ports"
	"github.com/vncsmyrnk/mysite/internal/core/services"
)

const (
	testUser     = "tester"
	testPassword = "tester"
)

var staffActor = domain.Actor{Username: "admin", IsStaff: true}

type testApp struct {
	router    http.Handler
	questions ports.QuestionService
	choices   ports.ChoiceRepository
	users     *services.UserService
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppAt(t, nil)
}

// newTestAppAt judges publication against clock; nil means the wall clock.
func newTestAppAt(t *testing.T, clock services.Clock) *testApp {
	t.Helper()

	store := memory.NewStore()
	questionRepo := memory.NewQuestionRepository(store)
	choiceRepo := memory.NewChoiceRepository(store)
	userRepo := memory.NewUserRepository(store)

	renderer, err := NewRenderer()
	require.NoError(t, err)

	questionSvc := services.NewQuestionService(questionRepo, choiceRepo, clock)
	userSvc := services.NewUserService(userRepo)
	authSvc := services.NewAuthService(userRepo, "test-secret", nil)
	links := Links{BaseURL: "http://testserver"}

	router := NewHandler(Handlers{
		Polls:  NewPollHandler(questionSvc, renderer, links),
		Votes:  NewVoteHandler(services.NewVoteService(questionRepo, choiceRepo), renderer),
		Auth:   NewAuthHandler(authSvc, "", false),
		Users:  NewUserHandler(userSvc, links),
		Groups: NewGroupHandler(services.NewGroupService(memory.NewGroupRepository(store)), links),
		Links:  links,
	}, authSvc)

	return &testApp{
		router:    router,
		questions: questionSvc,
		choices:   choiceRepo,
		users:     userSvc,
	}
}

// createQuestion publishes a question offset by days from now (negative for
// the past, positive for questions that have yet to be published).
func (app *testApp) createQuestion(t *testing.T, text string, days int, choices ...string) *domain.Question {
	t.Helper()
	pubDate := time.Now().Add(time.Duration(days) * 24 * time.Hour)
	q, err := app.questions.Create(context.Background(), ports.CreateQuestionInput{
		Text:    text,
		PubDate: &pubDate,
		Choices: choices,
	})
	require.NoError(t, err)
	return q
}

func (app *testApp) createUser(t *testing.T, username, password string, staff bool) *domain.User {
	t.Helper()
	user, err := app.users.Create(context.Background(), staffActor, ports.CreateUserInput{
		Username: username,
		Email:    username + "@" + username + ".com",
		Password: password,
		IsStaff:  staff,
	})
	require.NoError(t, err)
	return user
}

func (app *testApp) login(t *testing.T, username, password string) string {
	t.Helper()
	body := `{"username":"` + username + `","password":"` + password + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := app.do(req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp loginResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func (app *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)
	return w
}

func (app *testApp) get(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return app.do(req)
}

func (app *testApp) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return app.do(req)
}

func (app *testApp) sendJSON(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return app.do(req)
}
