package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/llmsdoc"
	llmsdochttp "github.com/fwojciec/llmsdoc/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns body, content type and etag", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
			w.Header().Set("ETag", `"v1"`)
			_, _ = w.Write([]byte("# Docs\n\n> Summary"))
		}))
		defer server.Close()

		fetcher := llmsdochttp.NewFetcher()

		res, err := fetcher.Fetch(context.Background(), server.URL+"/llms.txt")
		require.NoError(t, err)
		assert.Equal(t, server.URL+"/llms.txt", res.URL)
		assert.Equal(t, "# Docs\n\n> Summary", res.Content)
		assert.Equal(t, "text/markdown; charset=utf-8", res.ContentType)
		assert.Equal(t, `"v1"`, res.ETag)
		assert.False(t, res.IsHTML())
	})

	t.Run("accepts any 2xx status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNonAuthoritativeInfo)
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		res, err := llmsdochttp.NewFetcher().Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "ok", res.Content)
	})

	t.Run("sends user agent", func(t *testing.T) {
		t.Parallel()

		var got atomic.Value
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got.Store(r.Header.Get("User-Agent"))
		}))
		defer server.Close()

		_, err := llmsdochttp.NewFetcher().Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, llmsdochttp.UserAgent, got.Load())
	})

	t.Run("non-2xx status is an upstream error with status context", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("404 Not Found"))
		}))
		defer server.Close()

		res, err := llmsdochttp.NewFetcher().Fetch(context.Background(), server.URL+"/missing.md")
		require.Error(t, err)
		assert.Nil(t, res)
		assert.Equal(t, llmsdoc.EUPSTREAM, llmsdoc.ErrorCode(err))
		assert.Contains(t, llmsdoc.ErrorMessage(err), "404")
		assert.Contains(t, llmsdoc.ErrorMessage(err), "/missing.md")
	})

	t.Run("server error is an upstream error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := llmsdochttp.NewFetcher().Fetch(context.Background(), server.URL)
		assert.Equal(t, llmsdoc.EUPSTREAM, llmsdoc.ErrorCode(err))
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := llmsdochttp.NewFetcher(llmsdochttp.WithTimeout(10 * time.Millisecond))

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, llmsdoc.EUPSTREAM, llmsdoc.ErrorCode(err))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := llmsdochttp.NewFetcher().Fetch(ctx, server.URL)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("returns error for non-existent host", func(t *testing.T) {
		t.Parallel()

		fetcher := llmsdochttp.NewFetcher(llmsdochttp.WithTimeout(100 * time.Millisecond))

		_, err := fetcher.Fetch(context.Background(), "http://non-existent-host.invalid/page")
		require.Error(t, err)
		assert.Equal(t, llmsdoc.EUPSTREAM, llmsdoc.ErrorCode(err))
	})

	t.Run("rate limit spaces requests to the same host", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		fetcher := llmsdochttp.NewFetcher(llmsdochttp.WithRateLimit(10))
		ctx := context.Background()

		_, err := fetcher.Fetch(ctx, server.URL)
		require.NoError(t, err)

		start := time.Now()
		_, err = fetcher.Fetch(ctx, server.URL)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
	})

	t.Run("uses supplied client", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("via client"))
		}))
		defer server.Close()

		fetcher := llmsdochttp.NewFetcher(llmsdochttp.WithClient(server.Client()))

		res, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "via client", res.Content)
	})
}

func TestResource_IsHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		contentType string
		want        bool
	}{
		{"text/html; charset=utf-8", true},
		{"application/xhtml+xml", true},
		{"text/markdown", false},
		{"text/plain", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			t.Parallel()
			res := &llmsdoc.Resource{ContentType: tt.contentType}
			assert.Equal(t, tt.want, res.IsHTML())
		})
	}
}
