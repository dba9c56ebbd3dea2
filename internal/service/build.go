package service

import (
	"fmt"
	"time"

	"astroinsight/internal/answer"
	"astroinsight/internal/chunker"
	"astroinsight/internal/config"
	"astroinsight/internal/domain"
	"astroinsight/internal/embedding"
	"astroinsight/internal/highlight"
	"astroinsight/internal/summarizer"
	"astroinsight/internal/vectorstore"
)

// FromConfig assembles a SearchService from cfg.
func FromConfig(cfg *config.AppConfig) (*SearchService, error) {
	src, err := NewSource(cfg)
	if err != nil {
		return nil, err
	}
	stop := cfg.Stopwords()
	limits := Limits{
		SummarySentences:   cfg.Analysis.SummarySentences,
		Keywords:           cfg.Analysis.Keywords,
		HighlightSentences: cfg.Analysis.HighlightSentences,
	}
	return NewSearchService(
		src,
		summarizer.NewFrequencySummarizer(summarizer.WithStopwords(stop)),
		highlight.NewExtractor(highlight.WithStopwords(stop)),
		limits,
		cfg.Analysis.EmphasisTerms,
	), nil
}

// NewSource builds the primary answer source followed by its fallbacks.
// A positive cache TTL wraps the chain in an answer cache.
func NewSource(cfg *config.AppConfig) (domain.AnswerSource, error) {
	modes := []string{cfg.Source.Mode}
	seen := map[string]bool{cfg.Source.Mode: true}
	for _, m := range cfg.Source.Fallback {
		if !seen[m] {
			seen[m] = true
			modes = append(modes, m)
		}
	}
	var sources []domain.AnswerSource
	for _, m := range modes {
		s, err := newModeSource(cfg, m)
		if err != nil {
			return nil, err
		}
		sources = append(sources, s)
	}
	var src domain.AnswerSource = sources[0]
	if len(sources) > 1 {
		src = answer.NewFallback(sources...)
	}
	if cfg.Source.CacheTTLSecs > 0 {
		src = answer.NewCached(src, time.Duration(cfg.Source.CacheTTLSecs)*time.Second)
	}
	return src, nil
}

func newModeSource(cfg *config.AppConfig, mode string) (domain.AnswerSource, error) {
	switch mode {
	case config.ModeQA:
		qa := cfg.Source.QA
		return answer.NewQAClient(answer.QAConfig{
			BaseURL:    qa.BaseURL,
			Timeout:    time.Duration(qa.TimeoutSecs) * time.Second,
			MaxRetries: qa.MaxRetries,
		}), nil
	case config.ModeWikipedia:
		w := cfg.Source.Wikipedia
		return answer.NewWikipediaClient(answer.WikipediaConfig{
			BaseURL:        w.BaseURL,
			Timeout:        time.Duration(w.TimeoutSecs) * time.Second,
			RequestsPerSec: w.RequestsPerSec,
			UserAgent:      w.UserAgent,
			MaxRetries:     cfg.Source.QA.MaxRetries,
		}), nil
	case config.ModeLocal:
		l := cfg.Source.Local
		emb, err := newEmbedder(cfg)
		if err != nil {
			return nil, err
		}
		local := answer.NewLocalSource(
			chunker.NewSentenceChunker(l.SentencesPerChunk, l.OverlapSentences),
			emb,
			newVectorStore(l),
			l.TopK,
		)
		if _, err := local.Load(l.Paths); err != nil {
			return nil, fmt.Errorf("load local corpus: %w", err)
		}
		return local, nil
	default:
		return nil, fmt.Errorf("%w: unknown source mode %q", config.ErrInvalid, mode)
	}
}

func newEmbedder(cfg *config.AppConfig) (domain.Embedder, error) {
	if cfg.Source.Local.Embedder != config.EmbedderRemote {
		return embedding.NewTFIDFEmbedder(cfg.Stopwords()), nil
	}
	r := cfg.Source.Local.Remote
	emb, err := embedding.NewRemoteEmbedder(embedding.RemoteConfig{
		BaseURL:    r.BaseURL,
		APIKeyEnv:  r.APIKeyEnv,
		Model:      r.Model,
		Timeout:    time.Duration(r.TimeoutSecs) * time.Second,
		MaxRetries: r.MaxRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("remote embedder: %w", err)
	}
	return emb, nil
}

func newVectorStore(l config.LocalConfig) domain.VectorStore {
	if l.Store != config.StoreQdrant {
		return vectorstore.NewMemoryStore()
	}
	return vectorstore.NewQdrantStore(vectorstore.QdrantConfig{
		URL:        l.Qdrant.URL,
		APIKey:     l.Qdrant.APIKey,
		Collection: l.Qdrant.Collection,
		Timeout:    time.Duration(l.Qdrant.TimeoutSecs) * time.Second,
	})
}
