// Package upstream reads restaurants and menu items from a remote menu API.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"menu_agent/internal/adapters/observability"
	"menu_agent/internal/domain"
)

const maxAttempts = 4

type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

func New(base, key string, rps int) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("upstream base URL is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// ---- Public API (versioned routes first, legacy unprefixed routes second) ----

// ListRestaurants returns the raw restaurant payloads. Both a bare array and
// an envelope ({"data": [...]} or {"restaurants": [...]}) are accepted.
func (c *Client) ListRestaurants(ctx context.Context) ([]map[string]any, error) {
	return c.getFirst(ctx, "restaurants", "restaurants",
		c.base+"/v1/restaurants",
		c.base+"/restaurants",
	)
}

// ListItems returns the raw menu item payloads of one upstream restaurant.
// A restaurant no route knows yields an error matching domain.ErrNotFound.
func (c *Client) ListItems(ctx context.Context, restaurantID int64) ([]map[string]any, error) {
	return c.getFirst(ctx, "items", "items",
		fmt.Sprintf("%s/v1/items?restaurant_id=%d", c.base, restaurantID),
		fmt.Sprintf("%s/restaurants/%d/items", c.base, restaurantID),
		fmt.Sprintf("%s/items?restaurant_id=%d", c.base, restaurantID),
	)
}

// ---- Errors ----

// StatusError is a non-retryable upstream answer. 404 and 410 are misses and
// match domain.ErrNotFound.
type StatusError struct {
	Endpoint string
	Status   int
	Body     string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upstream %s: status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("upstream %s: status %d: %s", e.Endpoint, e.Status, e.Body)
}

func (e *StatusError) Is(target error) bool {
	return target == domain.ErrNotFound && e.miss()
}

func (e *StatusError) miss() bool {
	return e.Status == http.StatusNotFound || e.Status == http.StatusGone
}

// ---- Internals ----

// getFirst walks the candidate routes. A miss moves on to the next route;
// any other failure stops the walk.
func (c *Client) getFirst(ctx context.Context, endpoint, envelope string, urls ...string) ([]map[string]any, error) {
	for _, u := range urls {
		body, err := c.fetch(ctx, endpoint, u)
		var se *StatusError
		if errors.As(err, &se) && se.miss() {
			continue
		}
		if err != nil {
			return nil, err
		}
		return decodeList(body, envelope)
	}
	return nil, fmt.Errorf("upstream %s: no route answered: %w", endpoint, domain.ErrNotFound)
}

// decodeList accepts [..], {"data": [..]} or {"<envelope>": [..]}. An empty
// body (204) is an empty list.
func decodeList(body []byte, envelope string) ([]map[string]any, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		return []map[string]any{}, nil
	}
	var list []map[string]any
	if err := json.Unmarshal(body, &list); err == nil {
		return list, nil
	}
	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("decode %s: %w", envelope, err)
	}
	for _, k := range []string{"data", envelope, "results"} {
		raw, ok := wrapped[k]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, fmt.Errorf("decode %s.%s: %w", envelope, k, err)
		}
		return list, nil
	}
	return nil, fmt.Errorf("decode %s: no list in response", envelope)
}

// fetch GETs url under the rate limit, retrying transport errors, 429 and
// transient 5xx up to maxAttempts.
func (c *Client) fetch(ctx context.Context, endpoint, url string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := c.rl.Wait(ctx); err != nil {
			return nil, err
		}
		body, wait, err := c.attempt(ctx, endpoint, url)
		if err == nil {
			return body, nil
		}
		if wait < 0 {
			return nil, err // final answer
		}
		lastErr = err
		if wait == 0 {
			wait = backoff(attempt)
		}
		if attempt == maxAttempts-1 || !sleepCtx(ctx, wait) {
			break
		}
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return nil, lastErr
}

// attempt performs one request. wait < 0 means do not retry; wait == 0 means
// retry after the default backoff.
func (c *Client) attempt(ctx context.Context, endpoint, url string) ([]byte, time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, -1, err
	}
	if c.key != "" {
		req.Header.Set("X-API-Key", c.key)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "menu-agent-ingestor/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("upstream", endpoint, 0, time.Since(start))
		if ctx.Err() != nil {
			return nil, -1, ctx.Err()
		}
		return nil, 0, err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("upstream", endpoint, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNoContent:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, 0, fmt.Errorf("read %s: %w", endpoint, err)
		}
		return body, 0, nil
	case retryable(resp.StatusCode):
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, retryAfter(resp), &StatusError{Endpoint: endpoint, Status: resp.StatusCode}
	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, -1, &StatusError{Endpoint: endpoint, Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
}

func retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusInternalServerError,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// sleepCtx waits for d or returns false early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter reads Retry-After in seconds or as an HTTP date, capped at 30s.
func retryAfter(resp *http.Response) time.Duration {
	h := strings.TrimSpace(resp.Header.Get("Retry-After"))
	var d time.Duration
	if secs, err := strconv.Atoi(h); err == nil && secs > 0 {
		d = time.Duration(secs) * time.Second
	} else if t, err := http.ParseTime(h); err == nil {
		d = time.Until(t)
	}
	if d <= 0 {
		return 0
	}
	return min(d, 30*time.Second)
}

// backoff doubles from 200ms per attempt with up to +50% jitter.
func backoff(attempt int) time.Duration {
	base := time.Duration(1<<attempt) * 200 * time.Millisecond
	return base + time.Duration(rand.Int63n(int64(base)/2+1))
}
