package engine

import (
	"container/heap"
	"errors"
	"sort"
	"strings"

	"github.com/pageza/mealplanner/backend/internal/model"
)

const (
	// DefaultLimit is the result count used when a query does not set one.
	DefaultLimit = 6
	// MaxQuickSearchLimit bounds look-ahead queries.
	MaxQuickSearchLimit = 20
	// MaxRecommendations bounds the n_recommendations accepted over HTTP.
	MaxRecommendations = 100
)

var ErrEmptyQuery = errors.New("query text is empty")

// Filters restrict ranked results. Every set field must hold for a recipe to
// be returned.
type Filters struct {
	DietaryRestrictions []string
	MaxCookingTime      *int
	Difficulty          string
	Cuisine             string
	MealType            string
}

// Query is a single ranking request.
type Query struct {
	Text    string
	Limit   int
	Filters Filters
}

// Recommend ranks the corpus against the query text and returns the best
// recipes that pass the filters.
func (ix *Index) Recommend(q Query) ([]model.ScoredResult, error) {
	text := strings.TrimSpace(q.Text)
	if text == "" {
		return nil, ErrEmptyQuery
	}
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	return ix.rank(text, limit, ix.compile(q.Filters)), nil
}

// QuickSearch ranks without filters for look-ahead suggestions.
func (ix *Index) QuickSearch(text string, limit int) ([]model.ScoredResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxQuickSearchLimit {
		limit = MaxQuickSearchLimit
	}
	return ix.rank(text, limit, nil), nil
}

func (ix *Index) rank(text string, limit int, keep func(*model.Recipe) bool) []model.ScoredResult {
	if limit > len(ix.recipes) {
		limit = len(ix.recipes)
	}
	scores := ix.scores(text)

	h := make(candidateHeap, 0, limit)
	for pos := range ix.recipes {
		s := scores[pos]
		if s < ix.opts.MinScore {
			continue
		}
		if keep != nil && !keep(&ix.recipes[pos]) {
			continue
		}
		c := candidate{pos: pos, score: s}
		if len(h) < limit {
			heap.Push(&h, c)
			continue
		}
		if c.better(h[0]) {
			h[0] = c
			heap.Fix(&h, 0)
		}
	}

	sort.Slice(h, func(i, j int) bool { return h[i].better(h[j]) })
	results := make([]model.ScoredResult, len(h))
	for i, c := range h {
		results[i] = model.ScoredResult{Recipe: ix.recipes[c.pos].Clone(), SimilarityScore: c.score}
	}
	return results
}

// compile turns filters into a predicate, or nil when no filter is set.
func (ix *Index) compile(f Filters) func(*model.Recipe) bool {
	var preds []func(*model.Recipe) bool

	for _, restriction := range f.DietaryRestrictions {
		restriction = strings.ToLower(strings.TrimSpace(restriction))
		if restriction == "" {
			continue
		}
		preds = append(preds, func(r *model.Recipe) bool { return r.HasDietaryTag(restriction) })
	}
	if f.MaxCookingTime != nil {
		bound := *f.MaxCookingTime
		preds = append(preds, func(r *model.Recipe) bool { return r.CookingTime <= bound })
	}
	if d := strings.TrimSpace(f.Difficulty); d != "" {
		preds = append(preds, func(r *model.Recipe) bool { return strings.EqualFold(string(r.Difficulty), d) })
	}
	if c := strings.TrimSpace(f.Cuisine); c != "" {
		preds = append(preds, func(r *model.Recipe) bool { return r.MatchesCuisine(c) })
	}
	// Meal types without a tag mapping carry no usable signal and are ignored.
	if tags, ok := ix.opts.MealTypeTags[strings.ToLower(strings.TrimSpace(f.MealType))]; ok && len(tags) > 0 {
		preds = append(preds, func(r *model.Recipe) bool { return r.HasTag(tags...) })
	}

	if len(preds) == 0 {
		return nil
	}
	return func(r *model.Recipe) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

type candidate struct {
	pos   int
	score float64
}

// better orders by score, then by corpus position.
func (c candidate) better(o candidate) bool {
	if c.score != o.score {
		return c.score > o.score
	}
	return c.pos < o.pos
}

// candidateHeap keeps the weakest candidate at the root.
type candidateHeap []candidate

func (h candidateHeap) Len() int           { return len(h) }
func (h candidateHeap) Less(i, j int) bool { return h[j].better(h[i]) }
func (h candidateHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *candidateHeap) Push(x any) { *h = append(*h, x.(candidate)) }

func (h *candidateHeap) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	*h = old[:n-1]
	return c
}
