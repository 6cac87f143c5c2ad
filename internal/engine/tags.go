package engine

import (
	"strings"

	"github.com/pageza/mealplanner/backend/internal/model"
)

type tagClassifier struct {
	dietary map[string]struct{}
	cuisine map[string]struct{}
}

func newTagClassifier(opts Options) *tagClassifier {
	c := &tagClassifier{
		dietary: make(map[string]struct{}, len(opts.DietaryKeywords)),
		cuisine: make(map[string]struct{}, len(opts.CuisineKeywords)),
	}
	for _, k := range opts.DietaryKeywords {
		c.dietary[strings.ToLower(k)] = struct{}{}
	}
	for _, k := range opts.CuisineKeywords {
		c.cuisine[strings.ToLower(k)] = struct{}{}
	}
	return c
}

// annotate fills dietary and cuisine tags from the raw tags when the corpus
// did not supply them, and lowercases any it did.
func (c *tagClassifier) annotate(r model.Recipe) model.Recipe {
	if r.DietaryTags == nil {
		r.DietaryTags = c.pick(r.Tags, c.dietary)
	} else {
		r.DietaryTags = lowerAll(r.DietaryTags)
	}
	if r.CuisineTags == nil {
		r.CuisineTags = c.pick(r.Tags, c.cuisine)
	} else {
		r.CuisineTags = lowerAll(r.CuisineTags)
	}
	if r.Ingredients == nil {
		r.Ingredients = []string{}
	}
	if r.Steps == nil {
		r.Steps = []string{}
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	return r
}

func (c *tagClassifier) pick(tags []string, keywords map[string]struct{}) []string {
	out := []string{}
	seen := make(map[string]struct{})
	for _, tag := range tags {
		t := strings.ToLower(strings.TrimSpace(tag))
		if _, ok := keywords[t]; !ok {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
