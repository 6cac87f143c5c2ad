package corpus

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/pageza/mealplanner/backend/internal/model"
)

// Store reads and replaces the recipe corpus kept in Postgres.
type Store struct {
	db *sql.DB
}

// NewStore wraps an open lib/pq connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// OpenStore connects to Postgres with a lib/pq DSN or URL.
func OpenStore(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

const selectRecipes = `
	SELECT id, name, description, ingredients, steps, cooking_time, difficulty,
	       n_steps, n_ingredients, calories, tags
	FROM recipes
	ORDER BY position`

// Load returns every recipe in corpus order.
func (s *Store) Load(ctx context.Context) ([]model.Recipe, error) {
	rows, err := s.db.QueryContext(ctx, selectRecipes)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer rows.Close()

	var recipes []model.Recipe
	for rows.Next() {
		var (
			r          model.Recipe
			difficulty string
			calories   sql.NullFloat64
		)
		if err := rows.Scan(
			&r.ID, &r.Name, &r.Description,
			pq.Array(&r.Ingredients), pq.Array(&r.Steps),
			&r.CookingTime, &difficulty, &r.NSteps, &r.NIngredients,
			&calories, pq.Array(&r.Tags),
		); err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		r.Difficulty = model.ParseDifficulty(difficulty)
		if calories.Valid {
			c := calories.Float64
			r.Calories = &c
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recipes: %w", err)
	}
	return recipes, nil
}

// Replace swaps the stored corpus for recipes in a single transaction,
// bulk loading rows with COPY.
func (s *Store) Replace(ctx context.Context, recipes []model.Recipe) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "TRUNCATE recipes"); err != nil {
		return fmt.Errorf("failed to clear recipes: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("recipes",
		"id", "position", "name", "description", "ingredients", "steps",
		"cooking_time", "difficulty", "n_steps", "n_ingredients", "calories", "tags",
	))
	if err != nil {
		return fmt.Errorf("failed to prepare copy: %w", err)
	}

	for pos, r := range recipes {
		if _, err := stmt.ExecContext(ctx,
			r.ID, pos, r.Name, r.Description,
			pq.StringArray(r.Ingredients), pq.StringArray(r.Steps),
			r.CookingTime, string(r.Difficulty), r.NSteps, r.NIngredients,
			r.Calories, pq.StringArray(r.Tags),
		); err != nil {
			stmt.Close()
			return fmt.Errorf("failed to copy recipe %d: %w", r.ID, err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return fmt.Errorf("failed to flush copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("failed to close copy: %w", err)
	}

	return tx.Commit()
}
