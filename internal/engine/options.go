package engine

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Options tune index construction and query scoring.
type Options struct {
	// MaxFeatures caps the vocabulary at the most frequent terms. Zero disables the cap.
	MaxFeatures int `yaml:"max_features"`
	// NGramMax is the longest word n-gram added to the vocabulary.
	NGramMax int `yaml:"ngram_max"`
	// MinTokenLength drops shorter tokens, counted in runes.
	MinTokenLength int `yaml:"min_token_length"`
	// MinScore drops results scoring below it.
	MinScore float64 `yaml:"min_score"`

	ExtraStopWords  []string            `yaml:"extra_stop_words"`
	DietaryKeywords []string            `yaml:"dietary_keywords"`
	CuisineKeywords []string            `yaml:"cuisine_keywords"`
	MealTypeTags    map[string][]string `yaml:"meal_type_tags"`
}

// DefaultOptions returns the settings used when no engine config file is given.
func DefaultOptions() Options {
	return Options{
		MaxFeatures:    5000,
		NGramMax:       2,
		MinTokenLength: 2,
		MinScore:       0,
		DietaryKeywords: []string{
			"vegetarian", "vegan", "gluten-free", "dairy-free", "low-carb", "keto",
			"paleo", "healthy", "low-fat", "sugar-free", "nut-free",
		},
		CuisineKeywords: []string{
			"italian", "mexican", "chinese", "indian", "japanese", "thai", "french",
			"greek", "mediterranean", "korean", "american", "british", "vietnamese",
			"middle-eastern",
		},
		MealTypeTags: map[string][]string{
			"breakfast": {"breakfast", "brunch"},
			"lunch":     {"lunch", "sandwiches", "salads"},
			"dinner":    {"dinner", "main-dish", "dinner-party"},
			"snack":     {"snacks", "appetizers"},
			"dessert":   {"desserts", "dessert"},
		},
	}
}

// LoadOptions reads a YAML engine config on top of the defaults.
// An empty path or a missing file yields the defaults.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	if path == "" {
		return opts, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return opts, nil
		}
		return opts, fmt.Errorf("failed to read engine config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("failed to parse engine config %s: %w", path, err)
	}
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// Validate checks option ranges.
func (o Options) Validate() error {
	if o.MaxFeatures < 0 {
		return fmt.Errorf("max_features must be >= 0, got %d", o.MaxFeatures)
	}
	if o.NGramMax < 1 {
		return fmt.Errorf("ngram_max must be >= 1, got %d", o.NGramMax)
	}
	if o.MinTokenLength < 1 {
		return fmt.Errorf("min_token_length must be >= 1, got %d", o.MinTokenLength)
	}
	if o.MinScore < 0 || o.MinScore > 1 {
		return fmt.Errorf("min_score must be within [0, 1], got %v", o.MinScore)
	}
	return nil
}
