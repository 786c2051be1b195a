// Package docs implements llmsdoc.DocumentationService: cache-through
// retrieval of an llms.txt documentation site plus lexical search over its
// full corpus.
package docs

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/llmsdoc"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Remote names of the corpus-level documents, relative to the base URL.
const (
	IndexPath = "llms.txt"
	FullPath  = "llms-full.txt"
)

// Ensure Service implements llmsdoc.DocumentationService at compile time.
var _ llmsdoc.DocumentationService = (*Service)(nil)

// Service answers documentation requests from Store, fetching from BaseURL
// on a miss. Concurrent misses on the same key share one upstream fetch.
type Service struct {
	BaseURL string
	Store   llmsdoc.ContentStore
	Fetcher llmsdoc.Fetcher

	// Extractor and Converter turn an HTML response to a bare page path
	// into markdown. Either may be nil, in which case HTML is kept as is.
	Extractor llmsdoc.Extractor
	Converter llmsdoc.Converter

	// Outliner lists page headings for Page. Optional.
	Outliner llmsdoc.Outliner

	// Now stamps structured pages. Defaults to time.Now.
	Now func() time.Time

	group singleflight.Group

	mu    sync.RWMutex
	index *llmsdoc.DocIndex
}

// Initialize loads and parses the index manifest. The service stays usable
// when this fails; Index then returns nil.
func (s *Service) Initialize(ctx context.Context) llmsdoc.InitResult {
	content, err := s.DocumentationIndex(ctx)
	if err != nil {
		return llmsdoc.InitResult{Err: err}
	}

	idx := llmsdoc.ParseIndex(content)
	s.mu.Lock()
	s.index = idx
	s.mu.Unlock()

	return llmsdoc.InitResult{Index: idx}
}

// Index returns the manifest parsed by the last successful Initialize.
func (s *Service) Index() *llmsdoc.DocIndex {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// DocumentationIndex returns the raw llms.txt manifest.
func (s *Service) DocumentationIndex(ctx context.Context) (string, error) {
	return s.load(ctx, llmsdoc.IndexKey, func(ctx context.Context) (*llmsdoc.Resource, error) {
		return s.Fetcher.Fetch(ctx, s.url(IndexPath))
	})
}

// FullDocumentation returns the full llms-full.txt corpus.
func (s *Service) FullDocumentation(ctx context.Context) (string, error) {
	return s.load(ctx, llmsdoc.FullKey, func(ctx context.Context) (*llmsdoc.Resource, error) {
		return s.Fetcher.Fetch(ctx, s.url(FullPath))
	})
}

// DocumentationPage returns the markdown of a single page. It requests
// <path>.md first and the bare path second; when both fail the page is
// ENOTFOUND.
func (s *Service) DocumentationPage(ctx context.Context, path string) (string, error) {
	p := normalizePath(path)
	if p == "" {
		return "", llmsdoc.Errorf(llmsdoc.EINVALID, "page path required")
	}
	return s.load(ctx, llmsdoc.PageKey(p), func(ctx context.Context) (*llmsdoc.Resource, error) {
		return s.fetchPage(ctx, p)
	})
}

// Page returns a page with its source URL, entity tag and heading outline.
func (s *Service) Page(ctx context.Context, path string) (*llmsdoc.PageDocument, error) {
	content, err := s.DocumentationPage(ctx, path)
	if err != nil {
		return nil, err
	}

	p := normalizePath(path)
	doc := &llmsdoc.PageDocument{
		Path:      p,
		Content:   content,
		Source:    s.url(p),
		Timestamp: s.now(),
	}
	if etag, ok := s.Store.ETag(llmsdoc.PageKey(p)); ok {
		doc.ETag = etag
	}
	if s.Outliner != nil {
		doc.Headings = s.Outliner.Outline(content)
	}
	return doc, nil
}

// SearchDocumentation ranks sections of the full corpus against query.
// A non-positive limit means llmsdoc.DefaultSearchLimit.
func (s *Service) SearchDocumentation(ctx context.Context, query string, limit int) ([]llmsdoc.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, llmsdoc.Errorf(llmsdoc.EINVALID, "search query required")
	}
	if limit <= 0 {
		limit = llmsdoc.DefaultSearchLimit
	}

	full, err := s.FullDocumentation(ctx)
	if err != nil {
		return nil, err
	}
	return llmsdoc.Search(llmsdoc.SplitSections(full), query, limit), nil
}

// RelevantContext assembles up to maxSections sections of the full corpus
// that mention the words of question. A non-positive maxSections means
// llmsdoc.DefaultContextSections.
func (s *Service) RelevantContext(ctx context.Context, question string, maxSections int) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", llmsdoc.Errorf(llmsdoc.EINVALID, "question required")
	}
	if maxSections <= 0 {
		maxSections = llmsdoc.DefaultContextSections
	}

	full, err := s.FullDocumentation(ctx)
	if err != nil {
		return "", err
	}
	return llmsdoc.RelevantContext(llmsdoc.SplitSections(full), question, maxSections), nil
}

// Warm fetches the index and the full corpus concurrently so later calls
// are served from cache.
func (s *Service) Warm(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.DocumentationIndex(ctx)
		return err
	})
	g.Go(func() error {
		_, err := s.FullDocumentation(ctx)
		return err
	})
	return g.Wait()
}

// load returns the cached content for key or fetches, stores and returns
// it. A failed Set fails the call. The shared fetch is detached from the
// caller's cancellation; each caller stops waiting on its own context.
func (s *Service) load(ctx context.Context, key llmsdoc.CacheKey, fetch func(context.Context) (*llmsdoc.Resource, error)) (string, error) {
	if content, ok := s.Store.Get(ctx, key); ok {
		return content, nil
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ch := s.group.DoChan(string(key), func() (any, error) {
		ctx := context.WithoutCancel(ctx)
		res, err := fetch(ctx)
		if err != nil {
			return "", err
		}
		if err := s.Store.Set(ctx, key, res.Content, etag(res)); err != nil {
			return "", err
		}
		return res.Content, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return "", r.Err
		}
		return r.Val.(string), nil
	}
}

func (s *Service) fetchPage(ctx context.Context, p string) (*llmsdoc.Resource, error) {
	res, err := s.Fetcher.Fetch(ctx, s.url(p+".md"))
	if err == nil {
		return res, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	res, err = s.Fetcher.Fetch(ctx, s.url(p))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, llmsdoc.Wrapf(llmsdoc.ENOTFOUND, err, "documentation page not found: %s", p)
	}

	if res.IsHTML() {
		if md, ok := s.toMarkdown(res.Content); ok {
			res.Content = md
		}
	}
	return res, nil
}

// toMarkdown reduces a rendered HTML page to markdown. It reports false
// when no extractor or converter is configured or either one fails.
func (s *Service) toMarkdown(html string) (string, bool) {
	if s.Extractor == nil || s.Converter == nil {
		return "", false
	}
	extracted, err := s.Extractor.Extract(html)
	if err != nil {
		return "", false
	}
	md, err := s.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		return "", false
	}
	if extracted.Title != "" && !strings.HasPrefix(md, "#") {
		md = "# " + extracted.Title + "\n\n" + md
	}
	return md, true
}

func (s *Service) url(p string) string {
	return strings.TrimSuffix(s.BaseURL, "/") + "/" + p
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// normalizePath drops surrounding whitespace and leading slashes.
func normalizePath(p string) string {
	return strings.TrimLeft(strings.TrimSpace(p), "/")
}

// etag returns the upstream entity tag, or a weak tag derived from the
// content when the server sent none.
func etag(res *llmsdoc.Resource) string {
	if res.ETag != "" {
		return res.ETag
	}
	return `W/"` + strconv.FormatUint(xxhash.Sum64String(res.Content), 16) + `"`
}
