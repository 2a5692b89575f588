package classifier

import (
	"context"
	"strings"
)

// Classifier decides whether a message text looks suspicious.
// The verdict is advisory: false positives are acceptable, false
// negatives are the expensive failure mode.
type Classifier interface {
	Suspicious(ctx context.Context, text string) (bool, error)
}

// vocabulary is the fixed multi-locale term list. Matching is by
// lowercase substring, which deliberately trades precision for recall
// ("skill" matches "kill"). Bare "bomb" is omitted: it hits everyday
// words like "bombastic", and "bombe" already covers the armed sense.
var vocabulary = []string{
	// English
	"badword",
	"dox",
	"hack",
	"kill",
	"murder",
	"rape",
	"terror",
	"shoot",
	"violence",
	"drugs",
	"scam",
	"fraud",
	"abuse",

	// French
	"hacker",
	"meurtre",
	"viol",
	"bombe",
	"terroriste",
	"tuer",
	"drogue",
	"escroquerie",
	"fraude",
	"abus",
}

// Keyword flags text containing any vocabulary term, case-insensitively.
type Keyword struct {
	terms []string
}

// NewKeyword builds the classifier from the built-in vocabulary plus any
// extra terms (deployment-specific words from config).
func NewKeyword(extra ...string) *Keyword {
	terms := make([]string, 0, len(vocabulary)+len(extra))
	for _, w := range vocabulary {
		terms = append(terms, strings.ToLower(w))
	}
	for _, w := range extra {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			terms = append(terms, w)
		}
	}
	return &Keyword{terms: terms}
}

// Suspicious is pure and deterministic; it never returns an error.
func (k *Keyword) Suspicious(_ context.Context, text string) (bool, error) {
	return k.Match(text), nil
}

// Match is the plain predicate form, usable without a context.
func (k *Keyword) Match(text string) bool {
	lower := strings.ToLower(text)
	for _, term := range k.terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
