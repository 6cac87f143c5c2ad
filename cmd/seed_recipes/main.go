// Command seed_recipes imports a recipe CSV into the Postgres recipes table
// so the API can load its corpus with CORPUS_PATH=postgres://...
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/pageza/mealplanner/backend/internal/corpus"
	"github.com/pageza/mealplanner/backend/internal/logger"
)

func main() {
	csvPath := flag.String("csv", "data/recipes.csv", "Recipe CSV to import")
	flag.Parse()

	log := logger.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal().Msg("DATABASE_URL environment variable is not set")
	}

	recipes, err := corpus.LoadFile(*csvPath)
	if err != nil {
		log.Fatal().Err(err).Str("csv", *csvPath).Msg("failed to read recipes")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	store, err := corpus.OpenStore(ctx, dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer store.Close()

	start := time.Now()
	if err := store.Replace(ctx, recipes); err != nil {
		log.Fatal().Err(err).Msg("failed to import recipes")
	}
	log.Info().
		Int("recipes", len(recipes)).
		Dur("elapsed", time.Since(start)).
		Msg("recipe corpus imported")
}
