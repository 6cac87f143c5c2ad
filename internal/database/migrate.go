package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/pageza/mealplanner/backend/internal/model"
)

var ErrNoMigrations = errors.New("no migrations to rollback")

const rollbackSuffix = "_rollback.sql"

// RunMigrations brings the meal plan schema up to date. SQLite uses gorm
// auto-migration; Postgres applies the SQL files in migrationsDir.
func RunMigrations(db *gorm.DB, migrationsDir string, log zerolog.Logger) error {
	if db.Dialector.Name() == "sqlite" {
		log.Info().Msg("using gorm auto-migration for sqlite")
		return db.AutoMigrate(
			&model.MealPlan{},
			&model.MealPlanItem{},
			&model.ShoppingList{},
			&model.ShoppingListItem{},
		)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	_, err = MigrateSQL(context.Background(), sqlDB, migrationsDir, log)
	return err
}

func ensureMigrationsTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(32) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

// migrationFiles lists forward migrations sorted by name.
func migrationFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".sql" || strings.HasSuffix(name, rollbackSuffix) {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}

// migrationVersion is the numeric prefix of NNN_name.sql.
func migrationVersion(file string) string {
	return strings.SplitN(file, "_", 2)[0]
}

// MigrateSQL applies every pending migration in dir, each in its own
// transaction, and returns the files it applied.
func MigrateSQL(ctx context.Context, db *sql.DB, dir string, log zerolog.Logger) ([]string, error) {
	if err := ensureMigrationsTable(ctx, db); err != nil {
		return nil, err
	}
	files, err := migrationFiles(dir)
	if err != nil {
		return nil, err
	}

	var applied []string
	for _, file := range files {
		version := migrationVersion(file)

		var count int
		if err := db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM schema_migrations WHERE version = $1", version,
		).Scan(&count); err != nil {
			return applied, fmt.Errorf("failed to check migration status: %w", err)
		}
		if count > 0 {
			log.Debug().Str("migration", file).Msg("skipping migration (already applied)")
			continue
		}

		content, err := os.ReadFile(filepath.Join(dir, file))
		if err != nil {
			return applied, fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		if err := inTx(ctx, db, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, string(content)); err != nil {
				return fmt.Errorf("failed to execute migration %s: %w", file, err)
			}
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO schema_migrations (version, name) VALUES ($1, $2)", version, file,
			); err != nil {
				return fmt.Errorf("failed to record migration %s: %w", file, err)
			}
			return nil
		}); err != nil {
			return applied, err
		}

		log.Info().Str("migration", file).Msg("applied migration")
		applied = append(applied, file)
	}
	return applied, nil
}

// RollbackSQL reverts the most recently applied migration using its
// NNN_name_rollback.sql companion.
func RollbackSQL(ctx context.Context, db *sql.DB, dir string, log zerolog.Logger) (string, error) {
	if err := ensureMigrationsTable(ctx, db); err != nil {
		return "", err
	}

	var version, name string
	err := db.QueryRowContext(ctx, `
		SELECT version, name
		FROM schema_migrations
		ORDER BY version DESC
		LIMIT 1
	`).Scan(&version, &name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoMigrations
	}
	if err != nil {
		return "", fmt.Errorf("failed to get last migration: %w", err)
	}

	rollbackPath := filepath.Join(dir, strings.TrimSuffix(name, ".sql")+rollbackSuffix)
	content, err := os.ReadFile(rollbackPath)
	if err != nil {
		return "", fmt.Errorf("rollback file not found: %w", err)
	}

	if err := inTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("failed to execute rollback: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM schema_migrations WHERE version = $1", version); err != nil {
			return fmt.Errorf("failed to remove migration record: %w", err)
		}
		return nil
	}); err != nil {
		return "", err
	}

	log.Info().Str("migration", name).Msg("rolled back migration")
	return name, nil
}

func inTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}
