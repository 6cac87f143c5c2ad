package engine

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokenizer turns text into index terms.
//
// Text is lowercased and split on every rune that is not a Unicode letter or
// digit. Tokens shorter than the minimum length and stop-words are dropped; no
// stemming is applied. Word n-grams up to ngramMax are built from the
// remaining tokens and joined with a single space.
type Tokenizer struct {
	stopWords map[string]struct{}
	minLength int
	ngramMax  int
}

// NewTokenizer builds a tokenizer from engine options.
func NewTokenizer(opts Options) *Tokenizer {
	stop := make(map[string]struct{}, len(englishStopWords)+len(opts.ExtraStopWords))
	for _, w := range englishStopWords {
		stop[w] = struct{}{}
	}
	for _, w := range opts.ExtraStopWords {
		stop[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	minLength := opts.MinTokenLength
	if minLength < 1 {
		minLength = 1
	}
	ngramMax := opts.NGramMax
	if ngramMax < 1 {
		ngramMax = 1
	}
	return &Tokenizer{stopWords: stop, minLength: minLength, ngramMax: ngramMax}
}

// Tokens returns the filtered unigram stream of text.
func (t *Tokenizer) Tokens(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) < t.minLength {
			continue
		}
		if _, stop := t.stopWords[f]; stop {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Terms returns unigrams followed by every n-gram up to the configured length.
func (t *Tokenizer) Terms(text string) []string {
	tokens := t.Tokens(text)
	if t.ngramMax == 1 || len(tokens) < 2 {
		return tokens
	}
	terms := make([]string, 0, len(tokens)*t.ngramMax)
	terms = append(terms, tokens...)
	for n := 2; n <= t.ngramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}

var englishStopWords = []string{
	"a", "about", "above", "after", "again", "against", "all", "almost", "alone",
	"along", "already", "also", "although", "always", "am", "among", "an", "and",
	"another", "any", "anyhow", "anyone", "anything", "anyway", "anywhere", "are",
	"around", "as", "at", "be", "became", "because", "become", "becomes", "been",
	"before", "being", "below", "beside", "besides", "between", "beyond", "both",
	"but", "by", "can", "cannot", "could", "did", "do", "does", "doing", "done",
	"down", "during", "each", "either", "else", "enough", "etc", "even", "ever",
	"every", "everyone", "everything", "few", "for", "from", "further", "get",
	"give", "go", "had", "has", "have", "having", "he", "her", "here", "hers",
	"herself", "him", "himself", "his", "how", "however", "i", "if", "in", "into",
	"is", "it", "its", "itself", "just", "least", "less", "made", "many", "may",
	"me", "might", "mine", "more", "moreover", "most", "mostly", "much", "must",
	"my", "myself", "neither", "never", "nevertheless", "no", "nobody", "none",
	"nor", "not", "nothing", "now", "of", "off", "often", "on", "once", "one",
	"only", "onto", "or", "other", "others", "otherwise", "our", "ours",
	"ourselves", "out", "over", "own", "per", "perhaps", "please", "rather", "re",
	"same", "see", "seem", "seemed", "seems", "several", "she", "should", "since",
	"so", "some", "somehow", "someone", "something", "sometimes", "somewhere",
	"still", "such", "than", "that", "the", "their", "theirs", "them",
	"themselves", "then", "there", "therefore", "these", "they", "this", "those",
	"though", "through", "throughout", "thus", "to", "together", "too", "toward",
	"towards", "under", "until", "up", "upon", "us", "very", "via", "was", "we",
	"well", "were", "what", "whatever", "when", "whenever", "where", "whereas",
	"wherever", "whether", "which", "while", "who", "whoever", "whole", "whom",
	"whose", "why", "will", "with", "within", "without", "would", "yet", "you",
	"your", "yours", "yourself", "yourselves",
}
