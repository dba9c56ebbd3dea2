package textproc

import "strings"

// StopwordSet holds lowercase words excluded from frequency scoring.
type StopwordSet map[string]struct{}

var defaultStopwordList = []string{
	"the", "is", "in", "at", "of", "a", "an", "and", "or", "to", "for", "on", "with", "by", "from", "as", "that", "this", "it", "its", "are", "was", "were", "be", "been", "has", "have", "had", "but", "not", "which", "into", "their", "they", "them", "these", "those", "than", "then", "so", "such", "about", "over", "under", "after", "before", "between", "during", "while", "most", "more", "many", "some", "any", "each", "also", "can", "may", "might", "one", "two", "first", "second", "third",
}

// DefaultStopwords returns a fresh copy of the built-in stopword list.
func DefaultStopwords() StopwordSet {
	return NewStopwordSet(defaultStopwordList...)
}

// DefaultStopwordList returns the built-in words in their declared order.
func DefaultStopwordList() []string {
	out := make([]string, len(defaultStopwordList))
	copy(out, defaultStopwordList)
	return out
}

// NewStopwordSet builds a set from words, lowercasing and trimming each one.
// Blank entries are skipped.
func NewStopwordSet(words ...string) StopwordSet {
	s := make(StopwordSet, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		s[w] = struct{}{}
	}
	return s
}

// Contains reports whether tok is a stopword. A nil set contains nothing.
func (s StopwordSet) Contains(tok string) bool {
	_, ok := s[tok]
	return ok
}

// Len returns the number of words in the set.
func (s StopwordSet) Len() int { return len(s) }

// With returns a new set holding s plus words. s is not modified.
func (s StopwordSet) With(words ...string) StopwordSet {
	out := make(StopwordSet, len(s)+len(words))
	for w := range s {
		out[w] = struct{}{}
	}
	for w := range NewStopwordSet(words...) {
		out[w] = struct{}{}
	}
	return out
}
