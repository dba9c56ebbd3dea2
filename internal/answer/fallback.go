package answer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"astroinsight/internal/domain"
)

// Fallback asks each source in turn and returns the first answer.
type Fallback struct {
	sources []domain.AnswerSource
	logger  *slog.Logger
}

// NewFallback chains sources in priority order.
func NewFallback(sources ...domain.AnswerSource) *Fallback {
	return &Fallback{
		sources: sources,
		logger:  slog.Default().With("component", "fallback"),
	}
}

// Name lists the chained sources.
func (f *Fallback) Name() string {
	names := make([]string, len(f.sources))
	for i, s := range f.sources {
		names[i] = s.Name()
	}
	return "fallback(" + strings.Join(names, ",") + ")"
}

// Ask returns the first successful answer. When all sources fail the errors
// are joined; a cancelled context stops the chain immediately.
func (f *Fallback) Ask(ctx context.Context, question string) (*domain.Answer, error) {
	if len(f.sources) == 0 {
		return nil, errors.New("no answer sources configured")
	}
	var errs []error
	for _, s := range f.sources {
		ans, err := s.Ask(ctx, question)
		if err == nil {
			return ans, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		f.logger.Warn("source failed", "source", s.Name(), "err", err)
		errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
	}
	return nil, errors.Join(errs...)
}

// Cached memoizes answers of another source per normalised question.
type Cached struct {
	next  domain.AnswerSource
	cache *gocache.Cache
}

// NewCached wraps next with an in-memory cache whose entries live for ttl.
func NewCached(next domain.AnswerSource, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cached{next: next, cache: gocache.New(ttl, 2*ttl)}
}

// Name returns the wrapped source's name.
func (c *Cached) Name() string { return c.next.Name() }

// Ask serves repeated questions from the cache. Errors are not cached.
func (c *Cached) Ask(ctx context.Context, question string) (*domain.Answer, error) {
	key := normalizeQuestion(question)
	if v, found := c.cache.Get(key); found {
		return copyAnswer(v.(*domain.Answer)), nil
	}
	ans, err := c.next.Ask(ctx, question)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key, copyAnswer(ans))
	return ans, nil
}

func copyAnswer(a *domain.Answer) *domain.Answer {
	out := *a
	out.Citations = append([]domain.Citation(nil), a.Citations...)
	return &out
}
