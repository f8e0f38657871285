// Package api provides the shared HTTP client for the external collaborators
// (news/resolution service and market service): request timeout, token-bucket
// rate limiting, and retry with backoff on 429s and server errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// Client wraps http.Client with rate limiting and retries. Both collaborator
// clients share one instance so the process stays under one request budget.
type Client struct {
	http       *http.Client
	limiter    *tokenBucket
	maxRetries int
}

type tokenBucket struct {
	mu         sync.Mutex
	tokens     int
	maxTokens  int
	refillRate time.Duration
	lastRefill time.Time
}

func newTokenBucket(requestsPerMinute int) *tokenBucket {
	burst := requestsPerMinute / 6
	if burst < 1 {
		burst = 1
	}
	return &tokenBucket{
		tokens:     burst,
		maxTokens:  burst,
		refillRate: time.Minute / time.Duration(requestsPerMinute),
		lastRefill: time.Now(),
	}
}

func (tb *tokenBucket) wait(ctx context.Context) error {
	for {
		tb.mu.Lock()

		now := time.Now()
		refill := int(now.Sub(tb.lastRefill) / tb.refillRate)
		if refill > 0 {
			tb.tokens = min(tb.tokens+refill, tb.maxTokens)
			tb.lastRefill = now
		}

		if tb.tokens > 0 {
			tb.tokens--
			tb.mu.Unlock()
			return nil
		}

		wait := tb.refillRate
		tb.mu.Unlock()

		if err := sleepCtx(ctx, wait); err != nil {
			return err
		}
	}
}

// NewClient creates a client limited to requestsPerMinute.
func NewClient(requestsPerMinute int, timeout time.Duration, maxRetries int) *Client {
	return &Client{
		http:       &http.Client{Timeout: timeout},
		limiter:    newTokenBucket(requestsPerMinute),
		maxRetries: maxRetries,
	}
}

// Get performs a rate-limited GET and returns the response body.
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.do(ctx, req, nil)
}

// PostJSON performs a rate-limited POST with a JSON body and returns the
// response body. The payload is re-sent from scratch on every retry attempt.
func (c *Client) PostJSON(ctx context.Context, url string, headers map[string]string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.do(ctx, req, body)
}

// do executes the request with rate limiting and bounded retries. 429s and
// 5xx responses back off and retry; other statuses return immediately.
func (c *Client) do(ctx context.Context, req *http.Request, body []byte) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.wait(ctx); err != nil {
			return nil, err
		}

		attemptReq := req.Clone(ctx)
		if body != nil {
			attemptReq.Body = io.NopCloser(bytes.NewReader(body))
			attemptReq.ContentLength = int64(len(body))
		}

		resp, err := c.http.Do(attemptReq)
		if err != nil {
			lastErr = err
			if err := sleepCtx(ctx, backoff(attempt, 100*time.Millisecond)); err != nil {
				return nil, err
			}
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("status %d from %s", resp.StatusCode, req.URL.Host)
			base := 100 * time.Millisecond
			if resp.StatusCode == http.StatusTooManyRequests {
				base = time.Second
			}
			if err := sleepCtx(ctx, backoff(attempt, base)); err != nil {
				return nil, err
			}
			continue
		}

		data, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("reading response: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(data))
		}
		return data, nil
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

func backoff(attempt int, base time.Duration) time.Duration {
	return time.Duration(1<<attempt) * base
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
