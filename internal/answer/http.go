package answer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

const maxResponseBytes = 4 << 20

// StatusError reports a non-2xx response.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string { return "unexpected status: " + e.Status }

// Retryable reports whether the request may succeed when repeated.
func (e *StatusError) Retryable() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= 500
}

// retrySleep waits d or until ctx is done. Tests swap it out.
var retrySleep = func(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type jsonGetter struct {
	client     *http.Client
	maxRetries int
	userAgent  string
	logger     *slog.Logger
}

// getJSON fetches rawURL and decodes the body into out, retrying transport
// errors, 429 and 5xx responses with capped exponential backoff.
func (g *jsonGetter) getJSON(ctx context.Context, rawURL string, out any) error {
	var lastErr error
	var wait time.Duration
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if attempt > 0 {
			g.logger.Debug("retrying request", "url", rawURL, "attempt", attempt, "wait", wait, "err", lastErr)
			if err := retrySleep(ctx, wait); err != nil {
				return err
			}
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if g.userAgent != "" {
			req.Header.Set("User-Agent", g.userAgent)
		}

		resp, err := g.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = fmt.Errorf("fetch: %w", err)
			wait = retryDelay(attempt)
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			statusErr := &StatusError{Code: resp.StatusCode, Status: resp.Status}
			wait = retryAfter(resp.Header.Get("Retry-After"), attempt)
			_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			if !statusErr.Retryable() {
				return statusErr
			}
			lastErr = statusErr
			continue
		}

		err = json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out)
		_ = resp.Body.Close()
		if err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
	return lastErr
}

func retryDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	if attempt > 5 {
		attempt = 5
	}
	base := 200 * time.Millisecond
	// exponential backoff capped at 5s
	d := base << attempt
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}

// retryAfter honours a Retry-After header given in seconds.
func retryAfter(header string, attempt int) time.Duration {
	if secs, err := strconv.Atoi(header); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return retryDelay(attempt)
}
