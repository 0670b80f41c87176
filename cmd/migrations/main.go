package main

import (
	"context"
	"database/sql"
	"flag"

	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
	"github.com/vncsmyrnk/mysite/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/mysite/internal/config"
)

// Applies every up migration, or only the one whose file name matches the
// first argument (e.g. "create_polls.down").
func main() {
	cfg := config.Load()

	flag.StringVar(&cfg.DatabaseURL, "database-url", cfg.DatabaseURL, "Postgres connection string")
	flag.Parse()
	config.SetupLogging(cfg.LogLevel)

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	if name := flag.Arg(0); name != "" {
		if err := postgres.MigrateNamed(ctx, db, name); err != nil {
			log.Fatalf("Failed to execute migration: %v", err)
		}
		log.WithField("migration", name).Info("Migration file executed successfully.")
		return
	}

	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}
	log.Info("Migrations applied successfully.")
}
