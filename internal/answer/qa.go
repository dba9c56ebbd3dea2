package answer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"astroinsight/internal/domain"
)

// QAConfig configures the question-answering endpoint client.
type QAConfig struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	Logger     *slog.Logger
}

// QAClient queries the remote /ask endpoint.
type QAClient struct {
	baseURL string
	getter  *jsonGetter
	logger  *slog.Logger
}

// NewQAClient creates a client for the endpoint at cfg.BaseURL.
func NewQAClient(cfg QAConfig) *QAClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://127.0.0.1:5000"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default().With("component", "qa-client")
	}
	return &QAClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		getter: &jsonGetter{
			client:     &http.Client{Timeout: cfg.Timeout},
			maxRetries: cfg.MaxRetries,
			logger:     logger,
		},
		logger: logger,
	}
}

// Name returns the identifier of this source.
func (c *QAClient) Name() string { return "qa" }

// Ask sends question to the endpoint and returns its answer with
// citations de-duplicated by title.
func (c *QAClient) Ask(ctx context.Context, question string) (*domain.Answer, error) {
	endpoint := c.baseURL + "/ask?question=" + url.QueryEscape(question)
	var resp qaResponse
	if err := c.getter.getJSON(ctx, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("qa ask: %w", err)
	}
	if strings.TrimSpace(resp.Answer) == "" {
		return nil, ErrNoAnswer
	}
	citations := make([]domain.Citation, 0, len(resp.Citations))
	for _, c := range resp.Citations {
		citations = append(citations, domain.Citation{Title: c.Title, URL: c.URL, Year: int(c.Year)})
	}
	citations = dedupeCitations(citations)
	c.logger.Debug("answer received", "chars", len(resp.Answer), "citations", len(citations))
	return &domain.Answer{
		Question:  question,
		Title:     "Answer",
		Text:      resp.Answer,
		Citations: citations,
		Source:    c.Name(),
	}, nil
}

type qaResponse struct {
	Answer    string       `json:"answer"`
	Citations []qaCitation `json:"citations"`
}

type qaCitation struct {
	Title string    `json:"title"`
	URL   string    `json:"url"`
	Year  yearField `json:"year"`
}

// yearField accepts a number, a numeric string, an empty string or null.
type yearField int

func (y *yearField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*y = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*y = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("year %q: %w", s, err)
		}
		*y = yearField(n)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*y = yearField(f)
	return nil
}
