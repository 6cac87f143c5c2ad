package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"os"

	_ "github.com/lib/pq"

	"github.com/pageza/mealplanner/backend/internal/database"
	"github.com/pageza/mealplanner/backend/internal/logger"
)

func main() {
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	dir := flag.String("dir", "migrations", "Directory holding the SQL migrations")
	flag.Parse()

	log := logger.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal().Msg("DATABASE_URL environment variable is not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx := context.Background()
	if *rollback {
		name, err := database.RollbackSQL(ctx, db, *dir, log)
		if errors.Is(err, database.ErrNoMigrations) {
			log.Info().Msg("no migrations to rollback")
			return
		}
		if err != nil {
			log.Fatal().Err(err).Msg("rollback failed")
		}
		log.Info().Str("migration", name).Msg("successfully rolled back migration")
		return
	}

	applied, err := database.MigrateSQL(ctx, db, *dir, log)
	if err != nil {
		log.Fatal().Err(err).Strs("applied", applied).Msg("migration failed")
	}
	log.Info().Int("applied", len(applied)).Msg("all migrations applied successfully")
}
