package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fwojciec/llmsdoc"
	"github.com/fwojciec/llmsdoc/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// shutdownTimeout bounds graceful shutdown of the http transport.
const shutdownTimeout = 5 * time.Second

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	srv := mcp.NewServer(deps.Docs, deps.Asker, deps.Logger)
	srv.Version = deps.Version

	switch c.Transport {
	case "http":
		return c.serveHTTP(deps, srv)
	case "stdio", "":
		deps.Logger.Info("serving MCP over stdio", "version", srv.Version)
		return srv.ServeStdio(deps.Ctx, deps.Stdin, deps.Stdout)
	default:
		err := llmsdoc.Errorf(llmsdoc.EINVALID, "unknown transport: %s", c.Transport)
		fmt.Fprintf(deps.Stderr, "error: %s\n", llmsdoc.ErrorMessage(err))
		return err
	}
}

func (c *ServeCmd) serveHTTP(deps *Dependencies, srv *mcp.Server) error {
	result := deps.Docs.Initialize(deps.Ctx)
	if result.Degraded() {
		fmt.Fprintln(deps.Stderr, "warning: documentation index unavailable, serving without it")
	}

	httpSrv := &http.Server{
		Addr:              c.Addr,
		Handler:           NewHTTPHandler(srv),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		deps.Logger.Info("serving MCP over http", "addr", c.Addr, "version", srv.Version)
		errc <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-deps.Ctx.Done():
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// NewHTTPHandler routes the MCP endpoint, Prometheus metrics and a health
// check.
func NewHTTPHandler(srv *mcp.Server) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/mcp", srv.HTTPHandler())
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}
