// Package http provides a net/http implementation of llmsdoc.Fetcher for
// documentation hosts that serve markdown and llms.txt manifests.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/llmsdoc"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// UserAgent is sent with every request.
const UserAgent = "llmsdoc/1.0"

// Ensure Fetcher implements llmsdoc.Fetcher at compile time.
var _ llmsdoc.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves documents with plain GET requests. Redirects are
// followed and no retries are made; any non-2xx status is a failure.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	limiter *HostLimiter
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRateLimit limits requests to rps per host. Zero or less disables
// limiting, which is the default.
func WithRateLimit(rps float64) Option {
	return func(f *Fetcher) {
		if rps <= 0 {
			f.limiter = nil
			return
		}
		f.limiter = NewHostLimiter(rps)
	}
}

// WithClient replaces the underlying http.Client. The timeout option is
// ignored when a client is supplied.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = &http.Client{
			Timeout: f.timeout,
		}
	}

	return f
}

// Fetch retrieves url. Transport failures and non-2xx responses are
// returned as EUPSTREAM.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*llmsdoc.Resource, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, llmsdoc.Wrapf(llmsdoc.EINVALID, err, "invalid url %q", url)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/markdown, text/plain;q=0.9, text/html;q=0.8, */*;q=0.5")

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, req.URL.Host); err != nil {
			return nil, err
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, llmsdoc.Wrapf(llmsdoc.EUPSTREAM, err, "fetch %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, llmsdoc.Errorf(llmsdoc.EUPSTREAM, "fetch %s: HTTP %d %s", url, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, llmsdoc.Wrapf(llmsdoc.EUPSTREAM, err, "read body of %s", url)
	}

	return &llmsdoc.Resource{
		URL:         url,
		Content:     string(body),
		ContentType: resp.Header.Get("Content-Type"),
		ETag:        resp.Header.Get("ETag"),
	}, nil
}
