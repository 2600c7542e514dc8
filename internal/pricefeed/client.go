// internal/pricefeed/client.go
package pricefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// DefaultEndpoint serves {"solana":{"usd":<price>}}.
const DefaultEndpoint = "https://api.coingecko.com/api/v3/simple/price?ids=solana&vs_currencies=usd"

const (
	requestTimeout = 5 * time.Second
	maxRetryTime   = 10 * time.Second
	cacheTTL       = 30 * time.Second
)

// Client fetches the SOL/USD price. Concurrent lookups are collapsed
// into one upstream request and results are cached briefly, so a burst
// of portfolio views costs a single HTTP call.
type Client struct {
	logger   *zap.Logger
	endpoint string
	http     *http.Client
	group    singleflight.Group

	mu        sync.RWMutex
	cached    float64
	fetchedAt time.Time
}

// NewClient constructs a Client. An empty endpoint selects the default.
func NewClient(endpoint string, logger *zap.Logger) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		logger:   logger.Named("pricefeed"),
		endpoint: endpoint,
		http:     &http.Client{Timeout: requestTimeout},
	}
}

// SolPrice returns the current SOL/USD price, serving a cached value
// while it is fresh. Failures leave the cache untouched; callers are
// expected to degrade their view rather than surface the error.
func (c *Client) SolPrice(ctx context.Context) (float64, error) {
	c.mu.RLock()
	if time.Since(c.fetchedAt) < cacheTTL && c.cached > 0 {
		price := c.cached
		c.mu.RUnlock()
		return price, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.group.Do("sol_usd", func() (interface{}, error) {
		price, err := c.fetch(ctx)
		if err != nil {
			return 0.0, err
		}
		c.mu.Lock()
		c.cached = price
		c.fetchedAt = time.Now()
		c.mu.Unlock()
		return price, nil
	})
	if err != nil {
		c.logger.Warn("Price lookup failed", zap.Error(err))
		return 0, err
	}
	return v.(float64), nil
}

func (c *Client) fetch(ctx context.Context) (float64, error) {
	op := func() (float64, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
		if err != nil {
			return 0, backoff.Permanent(fmt.Errorf("failed to build price request: %w", err))
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return 0, fmt.Errorf("price request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return 0, fmt.Errorf("price endpoint returned status %d", resp.StatusCode)
		}

		var payload struct {
			Solana struct {
				USD float64 `json:"usd"`
			} `json:"solana"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return 0, backoff.Permanent(fmt.Errorf("failed to decode price response: %w", err))
		}
		if payload.Solana.USD <= 0 {
			return 0, backoff.Permanent(fmt.Errorf("price endpoint returned non-positive price %g", payload.Solana.USD))
		}
		return payload.Solana.USD, nil
	}

	return backoff.Retry(
		ctx,
		op,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(maxRetryTime),
	)
}
