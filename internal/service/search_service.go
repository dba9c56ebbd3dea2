package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"astroinsight/internal/answer"
	"astroinsight/internal/domain"
	"astroinsight/internal/highlight"
)

// Limits are the default sizes used for analysis output.
type Limits struct {
	SummarySentences   int
	Keywords           int
	HighlightSentences int
}

// DefaultLimits mirrors the built-in configuration.
var DefaultLimits = Limits{SummarySentences: 4, Keywords: 5, HighlightSentences: 4}

// SearchService answers questions and analyses answer text.
type SearchService struct {
	source      domain.AnswerSource
	summarizer  domain.Summarizer
	highlighter domain.HighlightExtractor
	limits      Limits
	emphasis    []string
	logger      *slog.Logger
}

// NewSearchService wires a service from its components.
func NewSearchService(source domain.AnswerSource, summarizer domain.Summarizer, highlighter domain.HighlightExtractor, limits Limits, emphasisTerms []string) *SearchService {
	return &SearchService{
		source:      source,
		summarizer:  summarizer,
		highlighter: highlighter,
		limits:      limits,
		emphasis:    append([]string(nil), emphasisTerms...),
		logger:      slog.Default().With("component", "search-service"),
	}
}

// SourceName identifies the configured answer source.
func (s *SearchService) SourceName() string { return s.source.Name() }

// Limits returns the configured output sizes.
func (s *SearchService) Limits() Limits { return s.limits }

// EmphasisTerms returns the phrases marked in rendered answers.
func (s *SearchService) EmphasisTerms() []string { return append([]string(nil), s.emphasis...) }

// Ask trims question and forwards it to the answer source.
func (s *SearchService) Ask(ctx context.Context, question string) (*domain.Answer, error) {
	q := strings.TrimSpace(question)
	if q == "" {
		return nil, answer.ErrEmptyQuestion
	}
	start := time.Now()
	ans, err := s.source.Ask(ctx, q)
	if err != nil {
		s.logger.Error("ask failed", "source", s.source.Name(), "err", err)
		return nil, err
	}
	s.logger.Info("question answered",
		"source", ans.Source,
		"citations", len(ans.Citations),
		"took", time.Since(start).Round(time.Millisecond))
	return ans, nil
}

// Summarize returns the configured number of key sentences of text.
func (s *SearchService) Summarize(text string) string {
	return s.summarizer.Summarize(text, s.limits.SummarySentences)
}

// Highlights returns the configured number of keywords and key sentences.
func (s *SearchService) Highlights(text string) domain.Highlights {
	return s.highlighter.Extract(text, s.limits.Keywords, s.limits.HighlightSentences)
}

// Analyze computes summary, highlights and confidence for text.
func (s *SearchService) Analyze(text string) domain.Analysis {
	return domain.Analysis{
		Summary:    s.Summarize(text),
		Highlights: s.Highlights(text),
		Confidence: highlight.Confidence(text),
	}
}

// Emphasize wraps the emphasis terms found in text with wrap.
func (s *SearchService) Emphasize(text string, wrap func(string) string) string {
	return highlight.EmphasizeFunc(text, s.emphasis, wrap)
}
