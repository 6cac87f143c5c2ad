package engine

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealplanner/backend/internal/model"
)

func intPtr(v int) *int { return &v }

func sampleCorpus() []model.Recipe {
	return []model.Recipe{
		{
			ID:          1,
			Name:        "Chicken Soup",
			Description: "A warming broth for cold evenings",
			Ingredients: []string{"chicken", "carrots", "celery", "onion"},
			CookingTime: 30,
			Difficulty:  model.DifficultyEasy,
			Tags:        []string{"american", "dinner", "healthy"},
		},
		{
			ID:          2,
			Name:        "Vegetarian Pasta",
			Description: "Quick weeknight noodles with tomato sauce",
			Ingredients: []string{"penne", "tomato", "basil", "garlic"},
			CookingTime: 20,
			Difficulty:  model.DifficultyEasy,
			Tags:        []string{"italian", "vegetarian", "dinner"},
		},
		{
			ID:          3,
			Name:        "Beef Steak",
			Description: "Seared ribeye with butter",
			Ingredients: []string{"ribeye", "butter", "thyme"},
			CookingTime: 45,
			Difficulty:  model.DifficultyHard,
			Tags:        []string{"american", "main-dish"},
		},
	}
}

func buildSample(t *testing.T) *Index {
	t.Helper()
	ix, err := Build(sampleCorpus(), DefaultOptions())
	require.NoError(t, err)
	return ix
}

func TestRecommendRanksExactMatchFirst(t *testing.T) {
	ix := buildSample(t)

	results, err := ix.Recommend(Query{Text: "chicken soup"})
	require.NoError(t, err)
	require.NotEmpty(t, results)

	assert.Equal(t, "Chicken Soup", results[0].Name)
	for _, r := range results[1:] {
		assert.Greater(t, results[0].SimilarityScore, r.SimilarityScore)
	}
}

func TestRecommendMaxCookingTimeCanEmptyResults(t *testing.T) {
	ix := buildSample(t)

	results, err := ix.Recommend(Query{
		Text:    "pasta",
		Filters: Filters{MaxCookingTime: intPtr(15)},
	})
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestRecommendLimitAndOrdering(t *testing.T) {
	ix := buildSample(t)

	results, err := ix.Recommend(Query{Text: "dinner with tomato and chicken", Limit: 2})
	require.NoError(t, err)
	assert.Len(t, results, 2)

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].SimilarityScore, results[i].SimilarityScore)
	}
	for _, r := range results {
		assert.GreaterOrEqual(t, r.SimilarityScore, 0.0)
		assert.LessOrEqual(t, r.SimilarityScore, 1.0)
	}
}

func TestRecommendDefaultLimit(t *testing.T) {
	corpus := make([]model.Recipe, 0, 10)
	for i := 0; i < 10; i++ {
		corpus = append(corpus, model.Recipe{ID: int64(i + 1), Name: "Garden Salad", Description: "greens"})
	}
	ix, err := Build(corpus, DefaultOptions())
	require.NoError(t, err)

	results, err := ix.Recommend(Query{Text: "salad"})
	require.NoError(t, err)
	assert.Len(t, results, DefaultLimit)
}

func TestRecommendFiltersAreConjunctive(t *testing.T) {
	ix := buildSample(t)

	tests := []struct {
		name    string
		filters Filters
		wantIDs []int64
	}{
		{
			name:    "dietary restriction",
			filters: Filters{DietaryRestrictions: []string{"Vegetarian"}},
			wantIDs: []int64{2},
		},
		{
			name:    "cuisine substring",
			filters: Filters{Cuisine: "ital"},
			wantIDs: []int64{2},
		},
		{
			name:    "difficulty case-insensitive",
			filters: Filters{Difficulty: "HARD"},
			wantIDs: []int64{3},
		},
		{
			name:    "max cooking time is inclusive",
			filters: Filters{MaxCookingTime: intPtr(30)},
			wantIDs: []int64{1, 2},
		},
		{
			name:    "combined filters",
			filters: Filters{Cuisine: "american", MaxCookingTime: intPtr(30)},
			wantIDs: []int64{1},
		},
		{
			name:    "meal type maps onto tags",
			filters: Filters{MealType: "dinner"},
			wantIDs: []int64{1, 2, 3},
		},
		{
			name:    "unknown meal type is ignored",
			filters: Filters{MealType: "elevenses"},
			wantIDs: []int64{1, 2, 3},
		},
		{
			name:    "no recipe satisfies all",
			filters: Filters{DietaryRestrictions: []string{"vegan"}},
			wantIDs: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := ix.Recommend(Query{Text: "dinner", Limit: 10, Filters: tt.filters})
			require.NoError(t, err)

			ids := make([]int64, 0, len(results))
			for _, r := range results {
				ids = append(ids, r.ID)
			}
			assert.ElementsMatch(t, tt.wantIDs, ids)
		})
	}
}

func TestRecommendOutOfVocabularyScoresZero(t *testing.T) {
	ix := buildSample(t)

	results, err := ix.Recommend(Query{Text: "xylophone quasar"})
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.Zero(t, r.SimilarityScore)
	}
	// zero scores fall back to corpus order
	assert.Equal(t, int64(1), results[0].ID)
	assert.Equal(t, int64(2), results[1].ID)
	assert.Equal(t, int64(3), results[2].ID)
}

func TestRecommendRejectsBlankQuery(t *testing.T) {
	ix := buildSample(t)

	for _, text := range []string{"", "   ", "\t\n"} {
		results, err := ix.Recommend(Query{Text: text})
		assert.ErrorIs(t, err, ErrEmptyQuery)
		assert.Nil(t, results)
	}
}

func TestRecommendIsDeterministic(t *testing.T) {
	ix := buildSample(t)
	q := Query{Text: "american dinner butter", Limit: 3}

	first, err := ix.Recommend(q)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := ix.Recommend(q)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRecommendTieBreakFollowsCorpusOrder(t *testing.T) {
	corpus := []model.Recipe{
		{ID: 10, Name: "Tomato Salad", Description: "fresh"},
		{ID: 5, Name: "Tomato Salad", Description: "fresh"},
		{ID: 7, Name: "Lentil Stew", Description: "hearty"},
	}
	ix, err := Build(corpus, DefaultOptions())
	require.NoError(t, err)

	results, err := ix.Recommend(Query{Text: "tomato salad", Limit: 2})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, int64(10), results[0].ID)
	assert.Equal(t, int64(5), results[1].ID)
	assert.Equal(t, results[0].SimilarityScore, results[1].SimilarityScore)
	assert.InDelta(t, 1.0, results[0].SimilarityScore, 1e-9)
}

func TestRecommendMinScoreDropsWeakMatches(t *testing.T) {
	opts := DefaultOptions()
	opts.MinScore = 0.01
	ix, err := Build(sampleCorpus(), opts)
	require.NoError(t, err)

	results, err := ix.Recommend(Query{Text: "ribeye", Limit: 10})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int64(3), results[0].ID)
}

func TestQuickSearch(t *testing.T) {
	ix := buildSample(t)

	results, err := ix.QuickSearch("steak", 100)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(results), MaxQuickSearchLimit)
	require.NotEmpty(t, results)
	assert.Equal(t, "Beef Steak", results[0].Name)

	_, err = ix.QuickSearch(" ", 5)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestGet(t *testing.T) {
	ix := buildSample(t)

	recipe, ok := ix.Get(2)
	require.True(t, ok)
	assert.Equal(t, "Vegetarian Pasta", recipe.Name)
	assert.Equal(t, []string{"vegetarian"}, recipe.DietaryTags)
	assert.Equal(t, []string{"italian"}, recipe.CuisineTags)

	_, ok = ix.Get(999)
	assert.False(t, ok)
}

func TestRecommendHugeLimitReturnsWholeCorpus(t *testing.T) {
	ix := buildSample(t)

	for _, limit := range []int{1 << 36, 1 << 62} {
		results, err := ix.Recommend(Query{Text: "chicken", Limit: limit})
		require.NoError(t, err)
		assert.Len(t, results, ix.Len())
		assert.Equal(t, "Chicken Soup", results[0].Name)
	}
}

func TestResultsDoNotAliasIndex(t *testing.T) {
	ix := buildSample(t)

	recipe, ok := ix.Get(1)
	require.True(t, ok)
	recipe.Ingredients[0] = "tofu"
	recipe.Tags = append(recipe.Tags[:0], "vegan")

	results, err := ix.Recommend(Query{Text: "chicken", Limit: 1})
	require.NoError(t, err)
	results[0].Steps = append(results[0].Steps, "garnish")
	results[0].DietaryTags = append(results[0].DietaryTags, "vegan")

	again, ok := ix.Get(1)
	require.True(t, ok)
	assert.Equal(t, []string{"chicken", "carrots", "celery", "onion"}, again.Ingredients)
	assert.Equal(t, []string{"american", "dinner", "healthy"}, again.Tags)
	assert.Empty(t, again.Steps)
	assert.NotContains(t, again.DietaryTags, "vegan")
}

func TestBuildCopiesInput(t *testing.T) {
	corpus := sampleCorpus()
	ix, err := Build(corpus, DefaultOptions())
	require.NoError(t, err)

	corpus[0].Ingredients[0] = "tofu"
	recipe, _ := ix.Get(1)
	assert.Equal(t, "chicken", recipe.Ingredients[0])
}

func TestConcurrentReaders(t *testing.T) {
	ix := buildSample(t)

	wantRecommend, err := ix.Recommend(Query{Text: "dinner chicken tomato", Limit: 3})
	require.NoError(t, err)
	wantQuick, err := ix.QuickSearch("steak butter", 2)
	require.NoError(t, err)
	wantRecipe, ok := ix.Get(2)
	require.True(t, ok)

	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				got, err := ix.Recommend(Query{Text: "dinner chicken tomato", Limit: 3})
				assert.NoError(t, err)
				assert.Equal(t, wantRecommend, got)

				quick, err := ix.QuickSearch("steak butter", 2)
				assert.NoError(t, err)
				assert.Equal(t, wantQuick, quick)

				recipe, ok := ix.Get(2)
				assert.True(t, ok)
				assert.Equal(t, wantRecipe, recipe)
			}
		}()
	}
	wg.Wait()
}

func TestBuildErrors(t *testing.T) {
	_, err := Build(nil, DefaultOptions())
	assert.ErrorIs(t, err, ErrEmptyCorpus)

	_, err = Build([]model.Recipe{{ID: 1, Name: "Soup"}, {ID: 1, Name: "Stew"}}, DefaultOptions())
	assert.ErrorIs(t, err, ErrDuplicateID)

	_, err = Build([]model.Recipe{{ID: 1, Name: "a the of"}}, DefaultOptions())
	assert.ErrorIs(t, err, ErrNoTerms)

	opts := DefaultOptions()
	opts.NGramMax = 0
	_, err = Build(sampleCorpus(), opts)
	assert.Error(t, err)
}

func TestMaxFeaturesCapsVocabulary(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxFeatures = 4
	ix, err := Build(sampleCorpus(), opts)
	require.NoError(t, err)
	assert.Equal(t, 4, ix.VocabularySize())

	unlimited, err := Build(sampleCorpus(), DefaultOptions())
	require.NoError(t, err)
	assert.Greater(t, unlimited.VocabularySize(), 4)
}

func TestFingerprintTracksCorpus(t *testing.T) {
	a := buildSample(t)
	b := buildSample(t)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	corpus := sampleCorpus()[:2]
	c, err := Build(corpus, DefaultOptions())
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestFingerprintTracksEveryField(t *testing.T) {
	base := buildSample(t).Fingerprint()
	calories := 350.0

	edits := map[string]func(r *model.Recipe){
		"cooking time": func(r *model.Recipe) { r.CookingTime = 90 },
		"difficulty":   func(r *model.Recipe) { r.Difficulty = model.DifficultyHard },
		"description":  func(r *model.Recipe) { r.Description = "Quick noodles" },
		"tags":         func(r *model.Recipe) { r.Tags = []string{"italian", "dinner"} },
		"steps":        func(r *model.Recipe) { r.Steps = []string{"boil"} },
		"calories":     func(r *model.Recipe) { r.Calories = &calories },
	}
	for name, edit := range edits {
		t.Run(name, func(t *testing.T) {
			corpus := sampleCorpus()
			edit(&corpus[1])
			ix, err := Build(corpus, DefaultOptions())
			require.NoError(t, err)
			assert.NotEqual(t, base, ix.Fingerprint())
		})
	}

	options := map[string]func(o *Options){
		"meal type tags": func(o *Options) { o.MealTypeTags["dinner"] = []string{"supper"} },
		"min score":      func(o *Options) { o.MinScore = 0.1 },
		"dietary":        func(o *Options) { o.DietaryKeywords = append(o.DietaryKeywords, "pescatarian") },
	}
	for name, edit := range options {
		t.Run(name, func(t *testing.T) {
			opts := DefaultOptions()
			edit(&opts)
			ix, err := Build(sampleCorpus(), opts)
			require.NoError(t, err)
			assert.NotEqual(t, base, ix.Fingerprint())
		})
	}
}

func TestTokenizer(t *testing.T) {
	tok := NewTokenizer(DefaultOptions())

	assert.Equal(t, []string{"mom", "apple", "pie", "20", "minutes"},
		tok.Tokens("Mom's Apple-Pie, in 20 minutes!"))

	assert.Equal(t, []string{"chicken", "noodle", "soup", "chicken noodle", "noodle soup"},
		tok.Terms("the Chicken Noodle Soup"))

	unigrams := NewTokenizer(Options{NGramMax: 1, MinTokenLength: 2, ExtraStopWords: []string{"Soup"}})
	assert.Equal(t, []string{"chicken", "noodle"}, unigrams.Terms("chicken noodle soup"))
}

func TestLoadOptions(t *testing.T) {
	opts, err := LoadOptions("")
	require.NoError(t, err)
	assert.Equal(t, DefaultOptions(), opts)

	opts, err = LoadOptions(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultOptions(), opts)

	path := filepath.Join(t.TempDir(), "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
max_features: 100
ngram_max: 1
cuisine_keywords: [ethiopian]
`), 0o644))

	opts, err = LoadOptions(path)
	require.NoError(t, err)
	assert.Equal(t, 100, opts.MaxFeatures)
	assert.Equal(t, 1, opts.NGramMax)
	assert.Equal(t, 2, opts.MinTokenLength)
	assert.Equal(t, []string{"ethiopian"}, opts.CuisineKeywords)
	assert.Equal(t, DefaultOptions().DietaryKeywords, opts.DietaryKeywords)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("min_score: 2\n"), 0o644))
	_, err = LoadOptions(bad)
	assert.Error(t, err)
}
