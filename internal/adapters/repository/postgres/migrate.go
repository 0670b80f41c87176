package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"

	"github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies every up migration in file name order. Migrations are
// written to be idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	names, err := upMigrations()
	if err != nil {
		return err
	}

	for _, name := range names {
		if err := execMigration(ctx, db, name); err != nil {
			return err
		}
	}
	return nil
}

// MigrateNamed applies the single migration file matching name, e.g.
// "create_polls.up" or "001_create_polls.down".
func MigrateNamed(ctx context.Context, db *sql.DB, name string) error {
	file, err := migrationFile(name)
	if err != nil {
		return err
	}
	return execMigration(ctx, db, file)
}

func execMigration(ctx context.Context, db *sql.DB, name string) error {
	content, err := migrations.ReadFile("migrations/" + name)
	if err != nil {
		return fmt.Errorf("failed to read migration file %s: %w", name, err)
	}

	if _, err := db.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("failed to execute migration %s: %w", name, err)
	}
	return nil
}

func upMigrations() ([]string, error) {
	entries, err := fs.ReadDir(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

func migrationFile(name string) (string, error) {
	regex, err := regexp.Compile(fmt.Sprintf(`^.*%s\.sql$`, regexp.QuoteMeta(name)))
	if err != nil {
		return "", fmt.Errorf("invalid pattern: %w", err)
	}

	entries, err := fs.ReadDir(migrations, "migrations")
	if err != nil {
		return "", fmt.Errorf("failed to read migrations directory: %w", err)
	}
	for _, entry := range entries {
		if regex.MatchString(entry.Name()) {
			return entry.Name(), nil
		}
	}

	return "", fmt.Errorf("migration file not found")
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
