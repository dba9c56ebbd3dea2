package answer

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"astroinsight/internal/domain"
)

// WikipediaConfig configures the Wikipedia source.
type WikipediaConfig struct {
	BaseURL        string
	Timeout        time.Duration
	RequestsPerSec float64
	UserAgent      string
	MaxRetries     int
	Logger         *slog.Logger
}

// WikipediaClient answers a question with the lead section of the best
// matching Wikipedia article.
type WikipediaClient struct {
	baseURL string
	getter  *jsonGetter
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewWikipediaClient creates a client against cfg.BaseURL (a MediaWiki site root).
func NewWikipediaClient(cfg WikipediaConfig) *WikipediaClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://en.wikipedia.org"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.RequestsPerSec <= 0 {
		cfg.RequestsPerSec = 2
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "astroinsight/0.1"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default().With("component", "wikipedia-client")
	}
	return &WikipediaClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		getter: &jsonGetter{
			client:     &http.Client{Timeout: cfg.Timeout},
			maxRetries: cfg.MaxRetries,
			userAgent:  cfg.UserAgent,
			logger:     logger,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), 1),
		logger:  logger,
	}
}

// Name returns the identifier of this source.
func (c *WikipediaClient) Name() string { return "wikipedia" }

// Ask searches Wikipedia for question and returns the intro of the top hit.
func (c *WikipediaClient) Ask(ctx context.Context, question string) (*domain.Answer, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("formatversion", "2")
	params.Set("generator", "search")
	params.Set("gsrsearch", question)
	params.Set("gsrlimit", "1")
	params.Set("prop", "extracts|info")
	params.Set("exintro", "1")
	params.Set("inprop", "url")
	params.Set("redirects", "1")

	var resp wikiResponse
	if err := c.getter.getJSON(ctx, c.baseURL+"/w/api.php?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("wikipedia search: %w", err)
	}
	if resp.Query == nil || len(resp.Query.Pages) == 0 {
		return nil, ErrNoAnswer
	}
	page := resp.Query.Pages[0]
	text := PlainText(page.Extract)
	if text == "" {
		return nil, ErrNoAnswer
	}
	c.logger.Debug("article found", "title", page.Title, "chars", len(text))
	return &domain.Answer{
		Question:  question,
		Title:     page.Title,
		Text:      text,
		Citations: []domain.Citation{{Title: page.Title, URL: page.FullURL}},
		Source:    c.Name(),
	}, nil
}

type wikiResponse struct {
	Query *struct {
		Pages []wikiPage `json:"pages"`
	} `json:"query"`
}

type wikiPage struct {
	Title   string `json:"title"`
	Extract string `json:"extract"`
	FullURL string `json:"fullurl"`
}
