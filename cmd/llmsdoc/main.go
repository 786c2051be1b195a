package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/llmsdoc"
	"github.com/fwojciec/llmsdoc/cache"
	"github.com/fwojciec/llmsdoc/docs"
	"github.com/fwojciec/llmsdoc/fs"
	"github.com/fwojciec/llmsdoc/gemini"
	"github.com/fwojciec/llmsdoc/goldmark"
	"github.com/fwojciec/llmsdoc/htmltomarkdown"
	llmshttp "github.com/fwojciec/llmsdoc/http"
	"github.com/fwojciec/llmsdoc/openai"
	"github.com/fwojciec/llmsdoc/readability"
	"github.com/fwojciec/llmsdoc/retry"
	llmsslog "github.com/fwojciec/llmsdoc/slog"
	"github.com/fwojciec/llmsdoc/sqlite"
	"github.com/fwojciec/llmsdoc/trafilatura"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

// Version is reported to MCP clients. Overridden at build time.
var Version = "1.0.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing .env is fine; the environment may already be configured.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin feeds the stdio MCP transport.
	Stdin io.Reader

	// SQLite database backing the sqlite cache backend, if selected.
	DB *sqlite.DB

	// Asker replaces the configured completion provider. Used by tests.
	Asker llmsdoc.Asker
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Stdin: os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:     ctx,
		Stdin:   m.Stdin,
		Stdout:  stdout,
		Stderr:  stderr,
		Version: Version,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("llmsdoc"),
		kong.Description("Serve and query llms.txt documentation sites."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'llmsdoc --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	store, err := m.openStore(cli)
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Set LLMSDOC_CACHE_DIR to use a different cache directory")
		return err
	}
	defer m.Close()

	fetcher := llmshttp.NewFetcher(
		llmshttp.WithTimeout(cli.FetchTimeout),
		llmshttp.WithRateLimit(cli.RateLimit),
	)

	svc := &docs.Service{
		BaseURL:   cli.BaseURL,
		Store:     store,
		Fetcher:   llmsslog.NewLoggingFetcher(fetcher, deps.Logger),
		Extractor: llmsdoc.Extractors{trafilatura.NewExtractor(), readability.NewExtractor()},
		Converter: htmltomarkdown.NewConverter(htmltomarkdown.WithDomain(cli.BaseURL)),
		Outliner:  goldmark.NewOutliner(),
	}
	deps.Store = store
	deps.Warmer = svc
	deps.Docs = llmsslog.NewLoggingService(svc, deps.Logger)

	command := kongCtx.Command()
	if strings.HasPrefix(command, "ask") || strings.HasPrefix(command, "serve") {
		asker, err := m.newAsker(ctx, cli, deps.Logger)
		if err != nil {
			return err
		}
		deps.Asker = asker
	}

	return kongCtx.Run(deps)
}

// openStore creates the two-tier cache on the configured backend.
func (m *Main) openStore(cli *CLI) (*cache.Store, error) {
	dir := cli.CacheDir
	if dir == "" {
		dir = defaultCacheDir()
	}
	opts := []cache.Option{
		cache.WithMemoryTTL(cli.MemoryTTL),
		cache.WithDiskTTL(cli.DiskTTL),
	}

	switch cli.CacheBackend {
	case "sqlite":
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, llmsdoc.Wrapf(llmsdoc.ESTORAGE, err, "create cache directory %q", dir)
		}
		m.DB = sqlite.NewDB(filepath.Join(dir, "cache.db"))
		if err := m.DB.Open(); err != nil {
			return nil, fmt.Errorf("failed to open cache database in %q: %w", dir, err)
		}
		return cache.NewStore(sqlite.NewFileSystem(m.DB), "cache", opts...), nil
	default:
		return cache.NewStore(fs.NewFileSystem(), dir, opts...), nil
	}
}

// newAsker builds the completion client for the configured provider,
// wrapped with logging and retries.
func (m *Main) newAsker(ctx context.Context, cli *CLI, logger *slog.Logger) (llmsdoc.Asker, error) {
	asker := m.Asker
	if asker == nil {
		switch cli.AIProvider {
		case "gemini":
			var client *genai.Client
			if cli.GeminiAPIKey != "" {
				var err error
				client, err = genai.NewClient(ctx, &genai.ClientConfig{
					APIKey:  cli.GeminiAPIKey,
					Backend: genai.BackendGeminiAPI,
				})
				if err != nil {
					return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
				}
			}
			asker = gemini.NewAsker(client, cli.AIModel)
		default:
			asker = openai.NewAsker(cli.AIAPIKey, cli.AIEndpoint, cli.AIModel)
		}
	}

	r := retry.NewAsker(llmsslog.NewLoggingAsker(asker, logger))
	r.OnRetry = func(attempt int, err error) {
		logger.Warn("retrying completion", "attempt", attempt, "err", err)
	}
	return r, nil
}

func defaultCacheDir() string {
	return filepath.Join(os.TempDir(), "llmsdoc")
}
