package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"time"

	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/mysite/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/mysite/internal/config"
	"github.com/vncsmyrnk/mysite/internal/core/domain"
	"github.com/vncsmyrnk/mysite/internal/core/ports"
	"github.com/vncsmyrnk/mysite/internal/core/services"
)

func main() {
	cfg := config.Load()

	var input ports.CreateUserInput
	flag.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "Postgres connection string")
	flag.StringVar(&input.Username, "username", os.Getenv("SUPERUSER_USERNAME"), "Username")
	flag.StringVar(&input.Email, "email", os.Getenv("SUPERUSER_EMAIL"), "Email address")
	flag.StringVar(&input.Password, "password", os.Getenv("SUPERUSER_PASSWORD"), "Password")
	flag.Parse()
	config.SetupLogging(cfg.LogLevel)

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := postgres.Migrate(ctx, db); err != nil {
		log.WithError(err).Fatal("Failed to apply migrations")
	}

	input.IsStaff = true
	bootstrap := domain.Actor{Username: "createsuperuser", IsStaff: true}
	user, err := services.NewUserService(postgres.NewUserRepository(db)).Create(ctx, bootstrap, input)
	if err != nil {
		log.WithError(err).Fatal("Failed to create superuser")
	}

	log.WithFields(log.Fields{"id": user.ID, "username": user.Username}).Info("Superuser created successfully.")
}
