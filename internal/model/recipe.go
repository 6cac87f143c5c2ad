package model

import (
	"slices"
	"strings"
)

// Difficulty is the coarse effort rating of a recipe.
type Difficulty string

const (
	DifficultyEasy    Difficulty = "easy"
	DifficultyMedium  Difficulty = "medium"
	DifficultyHard    Difficulty = "hard"
	DifficultyUnknown Difficulty = "unknown"
)

// ParseDifficulty maps free text onto a Difficulty, case-insensitively.
func ParseDifficulty(s string) Difficulty {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyEasy:
		return DifficultyEasy
	case DifficultyMedium:
		return DifficultyMedium
	case DifficultyHard:
		return DifficultyHard
	default:
		return DifficultyUnknown
	}
}

// DeriveDifficulty rates a recipe from its cooking time and number of steps.
func DeriveDifficulty(cookingTime, steps int) Difficulty {
	switch {
	case cookingTime <= 20 && steps <= 5:
		return DifficultyEasy
	case cookingTime <= 45 && steps <= 10:
		return DifficultyMedium
	default:
		return DifficultyHard
	}
}

// Recipe is an immutable catalog entry loaded from the corpus.
type Recipe struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Ingredients  []string   `json:"ingredients"`
	Steps        []string   `json:"steps"`
	CookingTime  int        `json:"cooking_time"`
	Difficulty   Difficulty `json:"difficulty"`
	NSteps       int        `json:"n_steps"`
	NIngredients int        `json:"n_ingredients"`
	Calories     *float64   `json:"calories"`
	Tags         []string   `json:"tags"`
	DietaryTags  []string   `json:"dietary_tags"`
	CuisineTags  []string   `json:"cuisine_tags"`
}

// Clone returns a deep copy so callers cannot write through to shared slices.
func (r Recipe) Clone() Recipe {
	c := r
	c.Ingredients = slices.Clone(r.Ingredients)
	c.Steps = slices.Clone(r.Steps)
	c.Tags = slices.Clone(r.Tags)
	c.DietaryTags = slices.Clone(r.DietaryTags)
	c.CuisineTags = slices.Clone(r.CuisineTags)
	if r.Calories != nil {
		calories := *r.Calories
		c.Calories = &calories
	}
	return c
}

// SearchText is the text the ranking engine indexes for this recipe.
func (r *Recipe) SearchText() string {
	var b strings.Builder
	b.WriteString(r.Name)
	b.WriteByte(' ')
	b.WriteString(r.Description)
	for _, ing := range r.Ingredients {
		b.WriteByte(' ')
		b.WriteString(ing)
	}
	for _, tag := range r.Tags {
		b.WriteByte(' ')
		b.WriteString(tag)
	}
	return b.String()
}

// HasDietaryTag reports whether the recipe carries the given dietary tag.
func (r *Recipe) HasDietaryTag(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, t := range r.DietaryTags {
		if t == tag {
			return true
		}
	}
	return false
}

// HasTag reports whether any raw tag equals one of the candidates.
func (r *Recipe) HasTag(candidates ...string) bool {
	for _, t := range r.Tags {
		t = strings.ToLower(t)
		for _, c := range candidates {
			if t == c {
				return true
			}
		}
	}
	return false
}

// MatchesCuisine reports whether any cuisine tag equals or contains cuisine.
func (r *Recipe) MatchesCuisine(cuisine string) bool {
	cuisine = strings.ToLower(strings.TrimSpace(cuisine))
	for _, t := range r.CuisineTags {
		if strings.Contains(t, cuisine) {
			return true
		}
	}
	return false
}

// ScoredResult is a recipe paired with its similarity to a query.
type ScoredResult struct {
	Recipe
	SimilarityScore float64 `json:"similarity_score"`
}
