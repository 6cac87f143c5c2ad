package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/pageza/mealplanner/backend/internal/engine"
	"github.com/pageza/mealplanner/backend/internal/model"
)

// CorpusSource loads recipes from a location.
type CorpusSource interface {
	Load(ctx context.Context, location string) ([]model.Recipe, error)
}

// Status describes the loaded index.
type Status struct {
	Ready       bool
	Recipes     int
	Vocabulary  int
	Fingerprint string
}

// RecommendationService answers recipe queries against the current index.
// Until an index is installed every query fails with ErrEngineUnavailable.
type RecommendationService struct {
	index atomic.Pointer[engine.Index]
	cache ResultCache
	log   zerolog.Logger
}

var _ IRecommendationService = (*RecommendationService)(nil)

// NewRecommendationService creates a service with no index. cache may be nil.
func NewRecommendationService(cache ResultCache, log zerolog.Logger) *RecommendationService {
	return &RecommendationService{
		cache: cache,
		log:   log.With().Str("component", "recommendation").Logger(),
	}
}

// SetIndex installs a fully built index.
func (s *RecommendationService) SetIndex(ix *engine.Index) {
	s.index.Store(ix)
}

// Load reads the corpus, builds the index and installs it. On failure the
// service keeps its previous state.
func (s *RecommendationService) Load(ctx context.Context, src CorpusSource, location string, opts engine.Options) error {
	start := time.Now()
	s.log.Info().Str("location", location).Msg("loading recipe corpus")

	recipes, err := src.Load(ctx, location)
	if err != nil {
		return fmt.Errorf("failed to load corpus: %w", err)
	}
	ix, err := engine.Build(recipes, opts)
	if err != nil {
		return fmt.Errorf("failed to build index: %w", err)
	}
	s.SetIndex(ix)

	s.log.Info().
		Int("recipes", ix.Len()).
		Int("vocabulary", ix.VocabularySize()).
		Str("fingerprint", ix.Fingerprint()).
		Dur("elapsed", time.Since(start)).
		Msg("recipe index ready")
	return nil
}

func (s *RecommendationService) current() (*engine.Index, error) {
	ix := s.index.Load()
	if ix == nil {
		return nil, ErrEngineUnavailable
	}
	return ix, nil
}

// Status reports whether an index is loaded and its size.
func (s *RecommendationService) Status() Status {
	ix := s.index.Load()
	if ix == nil {
		return Status{}
	}
	return Status{
		Ready:       true,
		Recipes:     ix.Len(),
		Vocabulary:  ix.VocabularySize(),
		Fingerprint: ix.Fingerprint(),
	}
}

// Recommend ranks recipes for a query with filters.
func (s *RecommendationService) Recommend(ctx context.Context, q engine.Query) ([]model.ScoredResult, error) {
	ix, err := s.current()
	if err != nil {
		return nil, err
	}
	return s.cached(ctx, ix, "recommend", q, func() ([]model.ScoredResult, error) {
		return ix.Recommend(q)
	})
}

// QuickSearch ranks recipes without filters.
func (s *RecommendationService) QuickSearch(ctx context.Context, text string, limit int) ([]model.ScoredResult, error) {
	ix, err := s.current()
	if err != nil {
		return nil, err
	}
	key := struct {
		Text  string
		Limit int
	}{text, limit}
	return s.cached(ctx, ix, "quick", key, func() ([]model.ScoredResult, error) {
		return ix.QuickSearch(text, limit)
	})
}

// GetRecipe returns a recipe by id.
func (s *RecommendationService) GetRecipe(ctx context.Context, id int64) (model.Recipe, error) {
	ix, err := s.current()
	if err != nil {
		return model.Recipe{}, err
	}
	r, ok := ix.Get(id)
	if !ok {
		return model.Recipe{}, ErrRecipeNotFound
	}
	return r, nil
}

func (s *RecommendationService) cached(
	ctx context.Context,
	ix *engine.Index,
	kind string,
	request any,
	compute func() ([]model.ScoredResult, error),
) ([]model.ScoredResult, error) {
	if s.cache == nil {
		return compute()
	}

	key, err := CacheKey(ix.Fingerprint(), kind, request)
	if err != nil {
		return compute()
	}
	if hit, ok := s.cache.Get(ctx, key); ok {
		return hit, nil
	}

	results, err := compute()
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, results); err != nil && !errors.Is(err, context.Canceled) {
		s.log.Warn().Err(err).Str("kind", kind).Msg("failed to cache results")
	}
	return results, nil
}
