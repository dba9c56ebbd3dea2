package summarizer

import (
	"sort"
	"strings"
	"unicode/utf8"

	"astroinsight/internal/textproc"
)

// FrequencySummarizer ranks sentences by the density of frequent non-stopword
// tokens and keeps the best ones in their original order.
type FrequencySummarizer struct {
	stopwords textproc.StopwordSet
}

// Option configures a FrequencySummarizer.
type Option func(*FrequencySummarizer)

// WithStopwords replaces the default stopword set. A nil set disables
// stopword filtering.
func WithStopwords(stop textproc.StopwordSet) Option {
	return func(s *FrequencySummarizer) { s.stopwords = stop }
}

// NewFrequencySummarizer creates a frequency-based sentence ranker summarizer.
func NewFrequencySummarizer(opts ...Option) *FrequencySummarizer {
	s := &FrequencySummarizer{stopwords: textproc.DefaultStopwords()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize returns up to maxSentences sentences of text joined by single
// spaces. Text that already has no more than maxSentences sentences is
// returned unchanged; maxSentences <= 0 yields "".
func (s *FrequencySummarizer) Summarize(text string, maxSentences int) string {
	if maxSentences <= 0 {
		return ""
	}
	sentences := textproc.SplitSentences(text)
	if len(sentences) <= maxSentences {
		return text
	}
	freq := textproc.BuildFrequency(textproc.Tokens(text), s.stopwords)

	type pair struct {
		idx   int
		score float64
	}
	scores := make([]pair, len(sentences))
	for i, sent := range sentences {
		// +1 keeps the denominator positive
		l := float64(utf8.RuneCountInString(sent) + 1)
		scores[i] = pair{i, float64(freq.Sum(textproc.Tokens(sent))) / l}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })

	// Keep original order among selected
	selected := make([]int, maxSentences)
	for i := 0; i < maxSentences; i++ {
		selected[i] = scores[i].idx
	}
	sort.Ints(selected)
	out := make([]string, 0, maxSentences)
	for _, idx := range selected {
		out = append(out, sentences[idx])
	}
	return strings.Join(out, " ")
}

var defaultSummarizer = NewFrequencySummarizer()

// Summarize runs the default FrequencySummarizer.
func Summarize(text string, maxSentences int) string {
	return defaultSummarizer.Summarize(text, maxSentences)
}
