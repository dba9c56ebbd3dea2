// Package answer provides the sources a question can be answered from: the
// remote question-answering endpoint, Wikipedia, and a local text corpus,
// plus fallback and caching wrappers around them.
package answer

import (
	"errors"
	"strings"

	"astroinsight/internal/domain"
)

// Placeholder is shown in place of an answer when every source failed.
const Placeholder = "Could not load data from backend."

var (
	// ErrNoAnswer means the source responded but had nothing to say.
	ErrNoAnswer = errors.New("no answer found")
	// ErrEmptyQuestion is returned for blank questions.
	ErrEmptyQuestion = errors.New("empty question")
)

// dedupeCitations keeps the first citation for each title.
func dedupeCitations(in []domain.Citation) []domain.Citation {
	seen := make(map[string]struct{}, len(in))
	out := make([]domain.Citation, 0, len(in))
	for _, c := range in {
		if _, ok := seen[c.Title]; ok {
			continue
		}
		seen[c.Title] = struct{}{}
		out = append(out, c)
	}
	return out
}

// normalizeQuestion lowercases q and collapses whitespace.
func normalizeQuestion(q string) string {
	return strings.ToLower(strings.Join(strings.Fields(q), " "))
}
