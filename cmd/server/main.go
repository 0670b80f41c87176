package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	stdhttp "net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/mysite/internal/adapters/handler/http"
	"github.com/vncsmyrnk/mysite/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/mysite/internal/config"
	"github.com/vncsmyrnk/mysite/internal/core/services"
)

func main() {
	cfg := config.Load()

	flag.IntVar(&cfg.Port, "port", cfg.Port, "HTTP listen port")
	flag.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "Postgres connection string")
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "Public base URL used in API links")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
	flag.Parse()

	config.SetupLogging(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := db.PingContext(ctx); err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		log.WithError(err).Fatal("Failed to apply migrations")
	}

	questionRepo := postgres.NewQuestionRepository(db)
	choiceRepo := postgres.NewChoiceRepository(db)
	userRepo := postgres.NewUserRepository(db)
	groupRepo := postgres.NewGroupRepository(db)

	authService := services.NewAuthService(userRepo, cfg.JWTSecret, nil)

	renderer, err := http.NewRenderer()
	if err != nil {
		log.Fatal(err)
	}
	links := http.Links{BaseURL: cfg.BaseURL}

	handler := http.NewHandler(http.Handlers{
		Polls:  http.NewPollHandler(services.NewQuestionService(questionRepo, choiceRepo, nil), renderer, links),
		Votes:  http.NewVoteHandler(services.NewVoteService(questionRepo, choiceRepo), renderer),
		Auth:   http.NewAuthHandler(authService, cfg.CookieDomain, cfg.CookieSecure),
		Users:  http.NewUserHandler(services.NewUserService(userRepo), links),
		Groups: http.NewGroupHandler(services.NewGroupService(groupRepo), links),
		Links:  links,
	}, authService)

	server := &stdhttp.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", server.Addr).Info("Server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Info("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}
