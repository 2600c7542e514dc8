package pricefeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSolPrice(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"solana":{"usd":142.57}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zap.NewNop())

	price, err := c.SolPrice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 142.57, price)

	// Cached: another call must not hit the endpoint again.
	price, err = c.SolPrice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 142.57, price)
	assert.Equal(t, int32(1), hits.Load())
}

func TestSolPriceCollapsesConcurrentLookups(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		w.Write([]byte(`{"solana":{"usd":100}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			price, err := c.SolPrice(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, 100.0, price)
		}()
	}
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), hits.Load(), "concurrent lookups must collapse to one request")
}

func TestSolPriceRejectsBadPayloads(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "zero price", body: `{"solana":{"usd":0}}`},
		{name: "missing field", body: `{}`},
		{name: "not json", body: `<html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, zap.NewNop())
			_, err := c.SolPrice(context.Background())
			assert.Error(t, err)
		})
	}
}
