package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"sort"

	"github.com/pageza/mealplanner/backend/internal/model"
)

var (
	ErrEmptyCorpus = errors.New("recipe corpus is empty")
	ErrNoTerms     = errors.New("recipe corpus produced no index terms")
	ErrDuplicateID = errors.New("duplicate recipe id in corpus")
)

type posting struct {
	doc    int32
	weight float64
}

// Index is the TF-IDF vector space over the recipe corpus.
// It is immutable once built and safe for concurrent use.
type Index struct {
	opts      Options
	tokenizer *Tokenizer

	recipes []model.Recipe
	byID    map[int64]int

	vocabulary map[string]int
	idf        []float64
	postings   [][]posting

	fingerprint string
}

// Build indexes the corpus. Recipes keep their input order, which is also the
// tie-break order for equal scores.
func Build(recipes []model.Recipe, opts Options) (*Index, error) {
	if len(recipes) == 0 {
		return nil, ErrEmptyCorpus
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine options: %w", err)
	}

	ix := &Index{
		opts:      opts,
		tokenizer: NewTokenizer(opts),
		recipes:   make([]model.Recipe, len(recipes)),
		byID:      make(map[int64]int, len(recipes)),
	}
	classifier := newTagClassifier(opts)

	docTerms := make([][]string, len(recipes))
	totals := make(map[string]int)
	docFreq := make(map[string]int)

	for i, r := range recipes {
		if _, dup := ix.byID[r.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, r.ID)
		}
		ix.byID[r.ID] = i
		ix.recipes[i] = classifier.annotate(r.Clone())

		terms := ix.tokenizer.Terms(ix.recipes[i].SearchText())
		docTerms[i] = terms
		seen := make(map[string]struct{}, len(terms))
		for _, term := range terms {
			totals[term]++
			if _, ok := seen[term]; !ok {
				seen[term] = struct{}{}
				docFreq[term]++
			}
		}
	}

	terms := selectVocabulary(totals, opts.MaxFeatures)
	if len(terms) == 0 {
		return nil, ErrNoTerms
	}

	n := float64(len(recipes))
	ix.vocabulary = make(map[string]int, len(terms))
	ix.idf = make([]float64, len(terms))
	ix.postings = make([][]posting, len(terms))
	for i, term := range terms {
		ix.vocabulary[term] = i
		ix.idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	for doc, terms := range docTerms {
		for _, tw := range ix.weigh(terms) {
			ix.postings[tw.term] = append(ix.postings[tw.term], posting{doc: int32(doc), weight: tw.weight})
		}
	}

	ix.fingerprint = fingerprint(ix.recipes, opts, len(terms))
	return ix, nil
}

// selectVocabulary keeps the maxFeatures most frequent terms, ties broken
// lexically, and returns them in lexical order.
func selectVocabulary(totals map[string]int, maxFeatures int) []string {
	terms := make([]string, 0, len(totals))
	for term := range totals {
		terms = append(terms, term)
	}
	if maxFeatures > 0 && len(terms) > maxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if totals[terms[i]] != totals[terms[j]] {
				return totals[terms[i]] > totals[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:maxFeatures]
	}
	sort.Strings(terms)
	return terms
}

type termWeight struct {
	term   int
	weight float64
}

// weigh returns the L2-normalised tf-idf vector of a term stream ordered by
// vocabulary index. Out-of-vocabulary terms are ignored.
func (ix *Index) weigh(terms []string) []termWeight {
	counts := make(map[int]int)
	for _, term := range terms {
		if idx, ok := ix.vocabulary[term]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return nil
	}
	vec := make([]termWeight, 0, len(counts))
	for idx, tf := range counts {
		vec = append(vec, termWeight{term: idx, weight: float64(tf) * ix.idf[idx]})
	}
	sort.Slice(vec, func(i, j int) bool { return vec[i].term < vec[j].term })

	var norm float64
	for _, tw := range vec {
		norm += tw.weight * tw.weight
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i].weight /= norm
	}
	return vec
}

// scores computes the cosine similarity of text against every recipe.
func (ix *Index) scores(text string) []float64 {
	scores := make([]float64, len(ix.recipes))
	for _, q := range ix.weigh(ix.tokenizer.Terms(text)) {
		for _, p := range ix.postings[q.term] {
			scores[p.doc] += q.weight * p.weight
		}
	}
	for i, s := range scores {
		if s > 1 {
			scores[i] = 1
		}
	}
	return scores
}

// Get returns the recipe with the given id.
func (ix *Index) Get(id int64) (model.Recipe, bool) {
	pos, ok := ix.byID[id]
	if !ok {
		return model.Recipe{}, false
	}
	return ix.recipes[pos].Clone(), true
}

// Len returns the number of indexed recipes.
func (ix *Index) Len() int { return len(ix.recipes) }

// VocabularySize returns the number of index terms.
func (ix *Index) VocabularySize() int { return len(ix.vocabulary) }

// Fingerprint identifies the corpus contents and options the index was built
// from. Any change to a stored recipe field or an option changes it.
func (ix *Index) Fingerprint() string { return ix.fingerprint }

func fingerprint(recipes []model.Recipe, opts Options, vocab int) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d:%d\n", len(recipes), vocab)
	// Writes to a hash never fail and both types always encode.
	enc := json.NewEncoder(h)
	_ = enc.Encode(opts)
	for i := range recipes {
		_ = enc.Encode(&recipes[i])
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
