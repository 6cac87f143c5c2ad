// Package corpus loads the recipe catalog from CSV files, S3 objects or a
// Postgres table.
package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pageza/mealplanner/backend/internal/model"
)

// DefaultCookingTime is used when a row has no usable cooking time.
const DefaultCookingTime = 30

var ErrMissingColumn = errors.New("corpus is missing a required column")

var requiredColumns = []string{"name", "description", "ingredients", "steps"}

// LoadFile reads a CSV corpus from disk.
func LoadFile(path string) ([]model.Recipe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus %s: %w", path, err)
	}
	defer f.Close()

	recipes, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus %s: %w", path, err)
	}
	return recipes, nil
}

// ReadCSV parses a recipe CSV. The header row names the columns; name,
// description, ingredients and steps are required. List columns accept
// bracketed list literals like ['a', 'b'] or comma separated values.
func ReadCSV(r io.Reader) ([]model.Recipe, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file", ErrMissingColumn)
		}
		return nil, err
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	var recipes []model.Recipe
	for pos := 0; ; pos++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		recipe, err := parseRow(row{cols: cols, record: record}, pos)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", pos+1, err)
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

type row struct {
	cols   map[string]int
	record []string
}

func (r row) get(name string) (string, bool) {
	i, ok := r.cols[name]
	if !ok || i >= len(r.record) {
		return "", false
	}
	return strings.TrimSpace(r.record[i]), true
}

func (r row) str(name string) string {
	v, _ := r.get(name)
	return v
}

func parseRow(r row, pos int) (model.Recipe, error) {
	recipe := model.Recipe{
		ID:          int64(pos),
		Name:        r.str("name"),
		Description: r.str("description"),
		Ingredients: ParseList(r.str("ingredients")),
		Steps:       ParseList(r.str("steps")),
		Tags:        ParseList(r.str("tags")),
		CookingTime: DefaultCookingTime,
	}

	if v, ok := r.get("id"); ok && v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return recipe, fmt.Errorf("invalid id %q", v)
		}
		recipe.ID = id
	}

	minutes, ok := r.get("minutes")
	if !ok {
		minutes, _ = r.get("cooking_time")
	}
	if n, ok := parseCount(minutes); ok {
		recipe.CookingTime = n
	}

	recipe.NSteps = len(recipe.Steps)
	if n, ok := parseCount(r.str("n_steps")); ok {
		recipe.NSteps = n
	}
	recipe.NIngredients = len(recipe.Ingredients)
	if n, ok := parseCount(r.str("n_ingredients")); ok {
		recipe.NIngredients = n
	}

	if v, ok := r.get("calories"); ok {
		recipe.Calories = parseCalories(v)
	} else if v, ok := r.get("nutrition"); ok {
		if values := ParseList(v); len(values) > 0 {
			recipe.Calories = parseCalories(values[0])
		}
	}

	if v := r.str("difficulty"); v != "" {
		recipe.Difficulty = model.ParseDifficulty(v)
	} else {
		recipe.Difficulty = model.DeriveDifficulty(recipe.CookingTime, recipe.NSteps)
	}

	return recipe, nil
}

// parseCount accepts non-negative integers, including float spellings such
// as "30.0".
func parseCount(v string) (int, bool) {
	if v == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n, n >= 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return int(f), true
}

func parseCalories(v string) *float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || f < 0 {
		return nil
	}
	return &f
}
