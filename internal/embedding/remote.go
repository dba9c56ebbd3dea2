package embedding

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// RemoteConfig configures an OpenAI-compatible embeddings endpoint.
type RemoteConfig struct {
	BaseURL string
	// APIKeyEnv names the environment variable holding the API key. Local
	// servers such as Ollama need none, so an empty name is allowed.
	APIKeyEnv  string
	Model      string
	Timeout    time.Duration
	MaxRetries int
}

// RemoteEmbedder embeds text through an OpenAI-compatible /embeddings API.
// Ollama's native {"embedding": [...]} response shape is accepted too.
type RemoteEmbedder struct {
	url        string
	apiKey     string
	model      string
	dimension  int
	client     *http.Client
	maxRetries int
	logger     *slog.Logger
}

var errNoEmbedding = errors.New("no embedding returned")

// sleep is swapped out by tests.
var sleep = time.Sleep

// NewRemoteEmbedder creates an embedder for cfg.
func NewRemoteEmbedder(cfg RemoteConfig) (*RemoteEmbedder, error) {
	var key string
	if cfg.APIKeyEnv != "" {
		key = os.Getenv(cfg.APIKeyEnv)
		if key == "" {
			return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
		}
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "text-embedding-3-small"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &RemoteEmbedder{
		url:        strings.TrimRight(cfg.BaseURL, "/") + "/embeddings",
		apiKey:     key,
		model:      cfg.Model,
		client:     &http.Client{Timeout: cfg.Timeout},
		maxRetries: cfg.MaxRetries,
		logger:     slog.Default().With("component", "remote-embedder"),
	}, nil
}

// Name returns the identifier of this embedder implementation.
func (e *RemoteEmbedder) Name() string { return "remote:" + e.model }

// Prepare is a no-op; the dimension is learned from the first embedding.
func (e *RemoteEmbedder) Prepare(corpus []string) error { return nil }

// Dimension returns the vector size seen so far, or 0 before the first call.
func (e *RemoteEmbedder) Dimension() int { return e.dimension }

// Embed returns the embedding of text, retrying throttled and failed calls.
func (e *RemoteEmbedder) Embed(text string) ([]float64, error) {
	body, err := json.Marshal(struct {
		Input  string `json:"input"`
		Prompt string `json:"prompt"`
		Model  string `json:"model"`
	}{Input: text, Prompt: text, Model: e.model})
	if err != nil {
		return nil, err
	}
	var lastErr error
	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		if attempt > 0 {
			e.logger.Debug("retrying embedding", "attempt", attempt, "err", lastErr)
		}
		vec, wait, err := e.post(body, attempt)
		if err == nil {
			if e.dimension == 0 {
				e.dimension = len(vec)
			} else if len(vec) != e.dimension {
				return nil, fmt.Errorf("embedding dimension changed from %d to %d", e.dimension, len(vec))
			}
			return vec, nil
		}
		lastErr = err
		if wait < 0 || attempt == e.maxRetries {
			break
		}
		sleep(wait)
	}
	return nil, fmt.Errorf("embeddings: %w", lastErr)
}

// post performs one request. A negative wait marks errors not worth retrying.
func (e *RemoteEmbedder) post(body []byte, attempt int) ([]float64, time.Duration, error) {
	req, err := http.NewRequest(http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return nil, -1, err
	}
	req.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, retryDelay(attempt), err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		wait := retryDelay(attempt)
		if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs >= 0 {
			wait = time.Duration(secs) * time.Second
		}
		return nil, wait, fmt.Errorf("unexpected status: %s", resp.Status)
	}
	if resp.StatusCode >= 300 {
		return nil, -1, fmt.Errorf("unexpected status: %s", resp.Status)
	}
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, retryDelay(attempt), err
	}
	vec, err := decodeEmbedding(payload)
	if err != nil {
		return nil, -1, err
	}
	return vec, 0, nil
}

func decodeEmbedding(payload []byte) ([]float64, error) {
	var out struct {
		Data []struct {
			Embedding []float64 `json:"embedding"`
		} `json:"data"`
		Embedding []float64 `json:"embedding"`
	}
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("decode embedding: %w", err)
	}
	switch {
	case len(out.Data) > 0 && len(out.Data[0].Embedding) > 0:
		return out.Data[0].Embedding, nil
	case len(out.Embedding) > 0:
		return out.Embedding, nil
	default:
		return nil, errNoEmbedding
	}
}

func retryDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	d := 200 * time.Millisecond << attempt
	if d > 5*time.Second || d <= 0 {
		d = 5 * time.Second
	}
	return d
}
