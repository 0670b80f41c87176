package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	handler "github.com/vncsmyrnk/mysite/internal/adapters/handler/http"
	"github.com/vncsmyrnk/mysite/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/mysite/internal/core/domain"
	"github.com/vncsmyrnk/mysite/internal/core/ports"
	"github.com/vncsmyrnk/mysite/internal/core/services"
)

const jwtSecret = "test-secret"

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	Questions   ports.QuestionService
	Users       *services.UserService
	DBContainer testcontainers.Container
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	pgContainer, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("user"),
		tcpostgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()

	ctx := context.Background()
	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(ctx, db))

	questionRepo := postgres.NewQuestionRepository(db)
	choiceRepo := postgres.NewChoiceRepository(db)
	userRepo := postgres.NewUserRepository(db)

	questionSvc := services.NewQuestionService(questionRepo, choiceRepo, nil)
	userSvc := services.NewUserService(userRepo)
	authSvc := services.NewAuthService(userRepo, jwtSecret, nil)

	renderer, err := handler.NewRenderer()
	require.NoError(t, err)

	var links handler.Links
	router := handler.NewHandler(handler.Handlers{
		Polls:  handler.NewPollHandler(questionSvc, renderer, links),
		Votes:  handler.NewVoteHandler(services.NewVoteService(questionRepo, choiceRepo), renderer),
		Auth:   handler.NewAuthHandler(authSvc, "", false),
		Users:  handler.NewUserHandler(userSvc, links),
		Groups: handler.NewGroupHandler(services.NewGroupService(postgres.NewGroupRepository(db)), links),
		Links:  links,
	}, authSvc)

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      newClient(nil),
		Questions:   questionSvc,
		Users:       userSvc,
		DBContainer: dbContainer,
	}
}

// newClient does not follow redirects so tests can assert on them.
func newClient(jar http.CookieJar) *http.Client {
	return &http.Client{
		Jar:     jar,
		Timeout: 10 * time.Second,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

func (app *TestApp) createQuestion(t *testing.T, text string, days int, choices ...string) *domain.Question {
	t.Helper()
	pubDate := time.Now().Add(time.Duration(days) * 24 * time.Hour)
	q, err := app.Questions.Create(context.Background(), ports.CreateQuestionInput{
		Text:    text,
		PubDate: &pubDate,
		Choices: choices,
	})
	require.NoError(t, err)
	return q
}

func (app *TestApp) createUser(t *testing.T, username, password string, staff bool) *domain.User {
	t.Helper()
	user, err := app.Users.Create(context.Background(), domain.Actor{Username: "admin", IsStaff: true}, ports.CreateUserInput{
		Username: username,
		Email:    username + "@example.com",
		Password: password,
		IsStaff:  staff,
	})
	require.NoError(t, err)
	return user
}

// loginClient returns a client carrying the access token cookie issued by the
// login endpoint.
func (app *TestApp) loginClient(t *testing.T, username, password string) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := newClient(jar)

	form := url.Values{"username": {username}, "password": {password}}
	resp, err := client.PostForm(app.Server.URL+"/api/auth/login", form)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body["access_token"])
	return client
}

func (app *TestApp) choiceVotes(t *testing.T, questionID string) map[string]int64 {
	t.Helper()
	rows, err := app.DB.Query("SELECT choice_text, votes FROM choices WHERE question_id = $1", questionID)
	require.NoError(t, err)
	defer rows.Close()

	votes := make(map[string]int64)
	for rows.Next() {
		var text string
		var count int64
		require.NoError(t, rows.Scan(&text, &count))
		votes[text] = count
	}
	require.NoError(t, rows.Err())
	return votes
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}
