package docs_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/llmsdoc"
	"github.com/fwojciec/llmsdoc/cache"
	"github.com/fwojciec/llmsdoc/docs"
	"github.com/fwojciec/llmsdoc/fs"
	"github.com/fwojciec/llmsdoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseURL = "https://docs.example.com"

const testIndex = `# Example

> Example is a documentation fixture.

## Guides

- [Quickstart](https://docs.example.com/quickstart.md): Get started
`

const testCorpus = `# Introduction
Welcome to the platform. This page explains the core concepts of the product.

## API Overview
The API exposes REST endpoints. Every API request needs a token from the gateway.

## Authentication
Authentication uses bearer tokens. The authentication flow starts in the dashboard.
`

// site is an in-memory documentation host that counts requests per URL.
type site struct {
	mu        sync.Mutex
	resources map[string]*llmsdoc.Resource
	requests  map[string]int
}

func newSite(resources map[string]string) *site {
	s := &site{
		resources: make(map[string]*llmsdoc.Resource),
		requests:  make(map[string]int),
	}
	for path, content := range resources {
		s.resources[baseURL+"/"+path] = &llmsdoc.Resource{
			URL:         baseURL + "/" + path,
			Content:     content,
			ContentType: "text/markdown",
		}
	}
	return s
}

func (s *site) fetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (*llmsdoc.Resource, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.requests[url]++
			res, ok := s.resources[url]
			if !ok {
				return nil, llmsdoc.Errorf(llmsdoc.EUPSTREAM, "fetch %s: HTTP 404 Not Found", url)
			}
			cp := *res
			return &cp, nil
		},
	}
}

func (s *site) count(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[baseURL+"/"+path]
}

func newService(t *testing.T, fetcher llmsdoc.Fetcher) *docs.Service {
	t.Helper()
	return &docs.Service{
		BaseURL: baseURL + "/",
		Store:   cache.NewStore(fs.NewFileSystem(), t.TempDir()),
		Fetcher: fetcher,
	}
}

func TestService_Initialize(t *testing.T) {
	t.Parallel()

	t.Run("parses the index manifest", func(t *testing.T) {
		t.Parallel()

		svc := newService(t, newSite(map[string]string{"llms.txt": testIndex}).fetcher())

		result := svc.Initialize(context.Background())

		require.False(t, result.Degraded())
		require.NotNil(t, result.Index)
		assert.Equal(t, "Example", result.Index.Title)
		assert.Equal(t, 1, result.Index.LinkCount())
		assert.Same(t, result.Index, svc.Index())
	})

	t.Run("degrades without failing when the index cannot be fetched", func(t *testing.T) {
		t.Parallel()

		svc := newService(t, newSite(nil).fetcher())

		result := svc.Initialize(context.Background())

		assert.True(t, result.Degraded())
		assert.Equal(t, llmsdoc.EUPSTREAM, llmsdoc.ErrorCode(result.Err))
		assert.Nil(t, svc.Index())
	})
}

func TestService_DocumentationIndex(t *testing.T) {
	t.Parallel()

	t.Run("second call is served from cache", func(t *testing.T) {
		t.Parallel()

		s := newSite(map[string]string{"llms.txt": testIndex})
		svc := newService(t, s.fetcher())
		ctx := context.Background()

		first, err := svc.DocumentationIndex(ctx)
		require.NoError(t, err)
		second, err := svc.DocumentationIndex(ctx)
		require.NoError(t, err)

		assert.Equal(t, testIndex, first)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, s.count("llms.txt"))
	})

	t.Run("upstream failure is surfaced and nothing is cached", func(t *testing.T) {
		t.Parallel()

		svc := newService(t, newSite(nil).fetcher())

		_, err := svc.DocumentationIndex(context.Background())

		assert.Equal(t, llmsdoc.EUPSTREAM, llmsdoc.ErrorCode(err))
		assert.False(t, svc.Store.Has(context.Background(), llmsdoc.IndexKey))
	})
}

func TestService_FullDocumentation(t *testing.T) {
	t.Parallel()

	t.Run("stores the upstream etag", func(t *testing.T) {
		t.Parallel()

		s := newSite(map[string]string{"llms-full.txt": testCorpus})
		s.resources[baseURL+"/llms-full.txt"].ETag = `"full-v1"`
		svc := newService(t, s.fetcher())

		_, err := svc.FullDocumentation(context.Background())
		require.NoError(t, err)

		etag, ok := svc.Store.ETag(llmsdoc.FullKey)
		require.True(t, ok)
		assert.Equal(t, `"full-v1"`, etag)
	})

	t.Run("derives a weak etag when upstream sends none", func(t *testing.T) {
		t.Parallel()

		svc := newService(t, newSite(map[string]string{"llms-full.txt": testCorpus}).fetcher())

		_, err := svc.FullDocumentation(context.Background())
		require.NoError(t, err)

		etag, ok := svc.Store.ETag(llmsdoc.FullKey)
		require.True(t, ok)
		assert.Regexp(t, `^W/"[0-9a-f]+"$`, etag)
	})

	t.Run("concurrent misses share one upstream fetch", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		release := make(chan struct{})
		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (*llmsdoc.Resource, error) {
				calls.Add(1)
				<-release
				return &llmsdoc.Resource{Content: testCorpus}, nil
			},
		}
		svc := newService(t, fetcher)

		var wg sync.WaitGroup
		results := make([]string, 5)
		for i := range results {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results[i], _ = svc.FullDocumentation(context.Background())
			}()
		}
		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.Equal(t, int32(1), calls.Load())
		for _, r := range results {
			assert.Equal(t, testCorpus, r)
		}
	})

	t.Run("cancelled caller does not fail other waiters", func(t *testing.T) {
		t.Parallel()

		started := make(chan struct{})
		release := make(chan struct{})
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, _ string) (*llmsdoc.Resource, error) {
				close(started)
				<-release
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				return &llmsdoc.Resource{Content: testCorpus}, nil
			},
		}
		svc := newService(t, fetcher)

		firstCtx, cancel := context.WithCancel(context.Background())
		firstErr := make(chan error, 1)
		go func() {
			_, err := svc.FullDocumentation(firstCtx)
			firstErr <- err
		}()
		<-started

		type result struct {
			content string
			err     error
		}
		second := make(chan result, 1)
		go func() {
			content, err := svc.FullDocumentation(context.Background())
			second <- result{content, err}
		}()
		time.Sleep(50 * time.Millisecond)

		cancel()
		assert.ErrorIs(t, <-firstErr, context.Canceled)
		close(release)

		got := <-second
		require.NoError(t, got.err)
		assert.Equal(t, testCorpus, got.content)
	})

	t.Run("storage failure fails the call", func(t *testing.T) {
		t.Parallel()

		store := &mock.ContentStore{
			GetFn: func(context.Context, llmsdoc.CacheKey) (string, bool) { return "", false },
			SetFn: func(context.Context, llmsdoc.CacheKey, string, string) error {
				return llmsdoc.Errorf(llmsdoc.ESTORAGE, "disk full")
			},
		}
		svc := &docs.Service{
			BaseURL: baseURL,
			Store:   store,
			Fetcher: newSite(map[string]string{"llms-full.txt": testCorpus}).fetcher(),
		}

		_, err := svc.FullDocumentation(context.Background())

		assert.Equal(t, llmsdoc.ESTORAGE, llmsdoc.ErrorCode(err))
	})
}

func TestService_DocumentationPage(t *testing.T) {
	t.Parallel()

	t.Run("prefers the markdown variant", func(t *testing.T) {
		t.Parallel()

		s := newSite(map[string]string{"quickstart.md": "# Quickstart\n\nInstall it."})
		svc := newService(t, s.fetcher())

		got, err := svc.DocumentationPage(context.Background(), "/quickstart")

		require.NoError(t, err)
		assert.Equal(t, "# Quickstart\n\nInstall it.", got)
		assert.Equal(t, 0, s.count("quickstart"))
	})

	t.Run("falls back to the bare path", func(t *testing.T) {
		t.Parallel()

		s := newSite(map[string]string{"guides/setup": "# Setup"})
		svc := newService(t, s.fetcher())

		got, err := svc.DocumentationPage(context.Background(), "guides/setup")

		require.NoError(t, err)
		assert.Equal(t, "# Setup", got)
		assert.Equal(t, 1, s.count("guides/setup.md"))
		assert.Equal(t, 1, s.count("guides/setup"))
	})

	t.Run("not found when both variants fail", func(t *testing.T) {
		t.Parallel()

		svc := newService(t, newSite(nil).fetcher())

		_, err := svc.DocumentationPage(context.Background(), "missing")

		require.Error(t, err)
		assert.Equal(t, llmsdoc.ENOTFOUND, llmsdoc.ErrorCode(err))
		assert.Equal(t, "documentation page not found: missing", llmsdoc.ErrorMessage(err))
	})

	t.Run("leading slash shares the cache entry", func(t *testing.T) {
		t.Parallel()

		s := newSite(map[string]string{"quickstart.md": "# Quickstart"})
		svc := newService(t, s.fetcher())
		ctx := context.Background()

		_, err := svc.DocumentationPage(ctx, "/quickstart")
		require.NoError(t, err)
		_, err = svc.DocumentationPage(ctx, "quickstart")
		require.NoError(t, err)

		assert.Equal(t, 1, s.count("quickstart.md"))
	})

	t.Run("empty path is invalid", func(t *testing.T) {
		t.Parallel()

		svc := newService(t, newSite(nil).fetcher())

		_, err := svc.DocumentationPage(context.Background(), "/")

		assert.Equal(t, llmsdoc.EINVALID, llmsdoc.ErrorCode(err))
	})

	t.Run("HTML bare path is converted to markdown", func(t *testing.T) {
		t.Parallel()

		s := newSite(nil)
		s.resources[baseURL+"/intro"] = &llmsdoc.Resource{
			Content:     "<html><body><article><p>Hello</p></article></body></html>",
			ContentType: "text/html; charset=utf-8",
		}
		svc := newService(t, s.fetcher())
		svc.Extractor = &mock.Extractor{
			ExtractFn: func(html string) (*llmsdoc.ExtractResult, error) {
				return &llmsdoc.ExtractResult{Title: "Intro", ContentHTML: "<p>Hello</p>"}, nil
			},
		}
		svc.Converter = &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				assert.Equal(t, "<p>Hello</p>", html)
				return "Hello", nil
			},
		}

		got, err := svc.DocumentationPage(context.Background(), "intro")

		require.NoError(t, err)
		assert.Equal(t, "# Intro\n\nHello", got)
	})

	t.Run("HTML is kept when extraction fails", func(t *testing.T) {
		t.Parallel()

		s := newSite(nil)
		s.resources[baseURL+"/intro"] = &llmsdoc.Resource{
			Content:     "<html></html>",
			ContentType: "text/html",
		}
		svc := newService(t, s.fetcher())
		svc.Extractor = &mock.Extractor{
			ExtractFn: func(string) (*llmsdoc.ExtractResult, error) {
				return nil, errors.New("no content")
			},
		}
		svc.Converter = &mock.Converter{}

		got, err := svc.DocumentationPage(context.Background(), "intro")

		require.NoError(t, err)
		assert.Equal(t, "<html></html>", got)
	})

	t.Run("cancelled context is not reported as not found", func(t *testing.T) {
		t.Parallel()

		svc := newService(t, newSite(nil).fetcher())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := svc.DocumentationPage(ctx, "quickstart")

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestService_Page(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	s := newSite(map[string]string{"quickstart.md": "# Quickstart\n\n## Install"})
	s.resources[baseURL+"/quickstart.md"].ETag = `"q1"`
	svc := newService(t, s.fetcher())
	svc.Now = func() time.Time { return now }
	svc.Outliner = &mock.Outliner{
		OutlineFn: func(string) []llmsdoc.Heading {
			return []llmsdoc.Heading{{Level: 1, Title: "Quickstart", Anchor: "quickstart"}}
		},
	}

	doc, err := svc.Page(context.Background(), "/quickstart")

	require.NoError(t, err)
	assert.Equal(t, &llmsdoc.PageDocument{
		Path:      "quickstart",
		Content:   "# Quickstart\n\n## Install",
		Source:    "https://docs.example.com/quickstart",
		Timestamp: now,
		ETag:      `"q1"`,
		Headings:  []llmsdoc.Heading{{Level: 1, Title: "Quickstart", Anchor: "quickstart"}},
	}, doc)
}

func TestService_SearchDocumentation(t *testing.T) {
	t.Parallel()

	t.Run("ranks matching sections", func(t *testing.T) {
		t.Parallel()

		svc := newService(t, newSite(map[string]string{"llms-full.txt": testCorpus}).fetcher())

		results, err := svc.SearchDocumentation(context.Background(), "API", 0)

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "API Overview", results[0].Title)
		assert.Equal(t, "api-reference/api-overview", results[0].Path)
		assert.Equal(t, 21, results[0].Score)
		assert.Contains(t, results[0].Excerpt, "...The API exposes REST endpoints.")
	})

	t.Run("respects limit", func(t *testing.T) {
		t.Parallel()

		svc := newService(t, newSite(map[string]string{"llms-full.txt": testCorpus}).fetcher())

		results, err := svc.SearchDocumentation(context.Background(), "the", 2)

		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("empty query is invalid", func(t *testing.T) {
		t.Parallel()

		svc := newService(t, newSite(nil).fetcher())

		_, err := svc.SearchDocumentation(context.Background(), "  ", 5)

		assert.Equal(t, llmsdoc.EINVALID, llmsdoc.ErrorCode(err))
	})

	t.Run("corpus failure is surfaced", func(t *testing.T) {
		t.Parallel()

		svc := newService(t, newSite(nil).fetcher())

		_, err := svc.SearchDocumentation(context.Background(), "API", 5)

		assert.Equal(t, llmsdoc.EUPSTREAM, llmsdoc.ErrorCode(err))
	})
}

func TestService_RelevantContext(t *testing.T) {
	t.Parallel()

	t.Run("returns matching sections", func(t *testing.T) {
		t.Parallel()

		svc := newService(t, newSite(map[string]string{"llms-full.txt": testCorpus}).fetcher())

		got, err := svc.RelevantContext(context.Background(), "How does authentication work?", 0)

		require.NoError(t, err)
		assert.Equal(t, "## Authentication\nAuthentication uses bearer tokens. The authentication flow starts in the dashboard.", got)
	})

	t.Run("no match is empty context", func(t *testing.T) {
		t.Parallel()

		svc := newService(t, newSite(map[string]string{"llms-full.txt": testCorpus}).fetcher())

		got, err := svc.RelevantContext(context.Background(), "kubernetes?", 3)

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("empty question is invalid", func(t *testing.T) {
		t.Parallel()

		svc := newService(t, newSite(nil).fetcher())

		_, err := svc.RelevantContext(context.Background(), "", 3)

		assert.Equal(t, llmsdoc.EINVALID, llmsdoc.ErrorCode(err))
	})
}

func TestService_Warm(t *testing.T) {
	t.Parallel()

	t.Run("fetches index and corpus", func(t *testing.T) {
		t.Parallel()

		s := newSite(map[string]string{"llms.txt": testIndex, "llms-full.txt": testCorpus})
		svc := newService(t, s.fetcher())
		ctx := context.Background()

		require.NoError(t, svc.Warm(ctx))

		assert.True(t, svc.Store.Has(ctx, llmsdoc.IndexKey))
		assert.True(t, svc.Store.Has(ctx, llmsdoc.FullKey))
		assert.Equal(t, 1, s.count("llms.txt"))
		assert.Equal(t, 1, s.count("llms-full.txt"))
	})

	t.Run("reports a failed fetch", func(t *testing.T) {
		t.Parallel()

		svc := newService(t, newSite(map[string]string{"llms.txt": testIndex}).fetcher())

		err := svc.Warm(context.Background())

		assert.Equal(t, llmsdoc.EUPSTREAM, llmsdoc.ErrorCode(err))
	})
}
