package highlight

import (
	"sort"

	"astroinsight/internal/domain"
	"astroinsight/internal/textproc"
)

// Extractor picks the most frequent keywords of a text and the sentences
// that mention them most often.
type Extractor struct {
	stopwords textproc.StopwordSet
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithStopwords replaces the default stopword set.
func WithStopwords(stop textproc.StopwordSet) Option {
	return func(e *Extractor) { e.stopwords = stop }
}

// NewExtractor creates an Extractor using the default stopwords unless
// overridden.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{stopwords: textproc.DefaultStopwords()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns up to numKeywords keywords ranked by count (ties by first
// occurrence) and up to numSentences sentences ranked by how many of their
// tokens are keywords. Sentences come back best first, not in text order;
// equal scores keep text order. Negative limits count as zero.
func (e *Extractor) Extract(text string, numKeywords, numSentences int) domain.Highlights {
	freq := textproc.BuildFrequency(textproc.Tokens(text), e.stopwords)
	keywords := freq.Top(numKeywords)

	if numSentences <= 0 {
		return domain.Highlights{Keywords: keywords, Sentences: []string{}}
	}
	isKeyword := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		isKeyword[k] = struct{}{}
	}

	sentences := textproc.SplitSentences(text)
	type pair struct {
		idx   int
		score int
	}
	scores := make([]pair, len(sentences))
	for i, sent := range sentences {
		n := 0
		for tok := range textproc.Tokens(sent) {
			if _, ok := isKeyword[tok]; ok {
				n++
			}
		}
		scores[i] = pair{i, n}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].score > scores[j].score })
	if numSentences > len(scores) {
		numSentences = len(scores)
	}
	top := make([]string, numSentences)
	for i := 0; i < numSentences; i++ {
		top[i] = sentences[scores[i].idx]
	}
	return domain.Highlights{Keywords: keywords, Sentences: top}
}

var defaultExtractor = NewExtractor()

// ExtractHighlights runs the default Extractor.
func ExtractHighlights(text string, numKeywords, numSentences int) domain.Highlights {
	return defaultExtractor.Extract(text, numKeywords, numSentences)
}
