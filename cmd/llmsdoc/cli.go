package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/llmsdoc"
)

// Warmer pre-populates the documentation cache.
type Warmer interface {
	Warm(ctx context.Context) error
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Version string
	Docs    llmsdoc.DocumentationService
	Store   llmsdoc.ContentStore
	Warmer  Warmer
	Asker   llmsdoc.Asker
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	BaseURL      string        `name:"base-url" env:"LLMSDOC_BASE_URL,MINTLIFY_BASE_URL" default:"https://docs.enso.build" help:"Documentation site serving llms.txt"`
	CacheDir     string        `name:"cache-dir" env:"LLMSDOC_CACHE_DIR" help:"Cache directory (default: $TMPDIR/llmsdoc)"`
	CacheBackend string        `name:"cache-backend" env:"LLMSDOC_CACHE_BACKEND" enum:"disk,sqlite" default:"disk" help:"Disk tier backend (disk, sqlite)"`
	MemoryTTL    time.Duration `name:"memory-ttl" default:"1h" help:"Memory cache lifetime"`
	DiskTTL      time.Duration `name:"disk-ttl" default:"24h" help:"Disk cache lifetime"`
	FetchTimeout time.Duration `name:"fetch-timeout" default:"30s" help:"Timeout for a single upstream request"`
	RateLimit    float64       `name:"rate-limit" default:"0" help:"Requests per second to the docs host (0 = unlimited)"`
	AIProvider   string        `name:"ai-provider" env:"AI_PROVIDER" enum:"openai,gemini" default:"openai" help:"Completion provider (openai, gemini)"`
	AIAPIKey     string        `name:"ai-api-key" env:"AI_API_KEY" help:"API key for the OpenAI-compatible provider"`
	AIEndpoint   string        `name:"ai-endpoint" env:"AI_ENDPOINT" help:"Chat completions URL or base URL"`
	AIModel      string        `name:"ai-model" env:"AI_MODEL" help:"Completion model (default depends on provider)"`
	GeminiAPIKey string        `name:"gemini-api-key" env:"GEMINI_API_KEY" help:"API key for Gemini"`
	Verbose      bool          `short:"v" help:"Enable debug logging"`

	Serve   ServeCmd   `cmd:"" help:"Run the MCP server"`
	Index   IndexCmd   `cmd:"" help:"Print the documentation index"`
	Full    FullCmd    `cmd:"" help:"Print the full documentation"`
	Page    PageCmd    `cmd:"" help:"Print a documentation page"`
	Search  SearchCmd  `cmd:"" help:"Search the documentation"`
	Context ContextCmd `cmd:"" help:"Print documentation sections relevant to a question"`
	Ask     AskCmd     `cmd:"" help:"Ask a question about the documentation"`
	Cache   CacheCmd   `cmd:"" help:"Inspect and maintain the documentation cache"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Transport string `enum:"stdio,http" default:"stdio" help:"MCP transport (stdio, http)"`
	Addr      string `default:":8080" help:"Listen address for the http transport"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct {
	Structure bool `short:"s" help:"Show the parsed outline instead of raw markdown"`
}

// FullCmd is the "full" subcommand.
type FullCmd struct{}

// PageCmd is the "page" subcommand.
type PageCmd struct {
	Path   string `arg:"" help:"Documentation path (e.g. api-reference/introduction)"`
	Format string `short:"f" enum:"markdown,structured" default:"markdown" help:"Output format (markdown, structured)"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query string `arg:"" help:"Search query"`
	Limit int    `short:"n" default:"5" help:"Maximum results to return"`
	JSON  bool   `name:"json" help:"Print results as JSON"`
}

// ContextCmd is the "context" subcommand.
type ContextCmd struct {
	Question string `arg:"" help:"Question to gather context for"`
	Sections int    `default:"3" help:"Maximum sections to include"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question  string `arg:"" help:"Question to ask about the documentation"`
	NoContext bool   `name:"no-context" help:"Do not send documentation context"`
}

// CacheCmd groups cache maintenance subcommands.
type CacheCmd struct {
	Stats CacheStatsCmd `cmd:"" help:"Show cache entry counts and sizes"`
	Prune CachePruneCmd `cmd:"" help:"Remove expired cache entries"`
	Clear CacheClearCmd `cmd:"" help:"Remove all cache entries"`
	Warm  CacheWarmCmd  `cmd:"" help:"Fetch the index and full documentation into the cache"`
}

// CacheStatsCmd is the "cache stats" subcommand.
type CacheStatsCmd struct {
	JSON bool `name:"json" help:"Print stats as JSON"`
}

// CachePruneCmd is the "cache prune" subcommand.
type CachePruneCmd struct{}

// CacheClearCmd is the "cache clear" subcommand.
type CacheClearCmd struct{}

// CacheWarmCmd is the "cache warm" subcommand.
type CacheWarmCmd struct{}
