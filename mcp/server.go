// Package mcp exposes the documentation service as a Model Context Protocol
// server with mark3labs/mcp-go.
package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/llmsdoc"
	"github.com/fwojciec/llmsdoc/docs"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server identity reported to clients.
const (
	Name           = "llmsdoc"
	DefaultVersion = "1.0.0"
)

// Resource URIs.
const (
	IndexURI = "docs://index"
	FullURI  = "docs://full"
)

// Page formats accepted by get_documentation.
const (
	FormatMarkdown   = "markdown"
	FormatStructured = "structured"
)

// Server registers documentation tools and resources on an MCP server.
type Server struct {
	Docs    llmsdoc.DocumentationService
	Asker   llmsdoc.Asker
	Logger  *slog.Logger
	Version string
}

// NewServer creates a Server. A nil logger discards tool call logs.
func NewServer(docs llmsdoc.DocumentationService, asker llmsdoc.Asker, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{Docs: docs, Asker: asker, Logger: logger, Version: DefaultVersion}
}

// MCPServer builds the protocol server with every tool and resource.
func (s *Server) MCPServer() *server.MCPServer {
	version := s.Version
	if version == "" {
		version = DefaultVersion
	}

	srv := server.NewMCPServer(Name, version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithToolHandlerMiddleware(LogToolCalls(s.Logger)),
		server.WithRecovery(),
	)

	srv.AddTool(mcp.NewTool("get_documentation",
		mcp.WithDescription("Fetch a specific documentation page"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Documentation path (e.g., 'api-reference/introduction')"),
		),
		mcp.WithString("format",
			mcp.Description("Output format"),
			mcp.Enum(FormatMarkdown, FormatStructured),
			mcp.DefaultString(FormatMarkdown),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	), s.HandleGetDocumentation)

	srv.AddTool(mcp.NewTool("search_documentation",
		mcp.WithDescription("Search through the documentation"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search query"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum results to return"),
			mcp.DefaultNumber(llmsdoc.DefaultSearchLimit),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	), s.HandleSearchDocumentation)

	srv.AddTool(mcp.NewTool("ask_docs_ai",
		mcp.WithDescription("Ask a question about the documentation using AI"),
		mcp.WithString("question",
			mcp.Required(),
			mcp.Description("Your question about the product"),
		),
		mcp.WithBoolean("includeContext",
			mcp.Description("Include relevant documentation context"),
			mcp.DefaultBool(true),
		),
	), s.HandleAskDocsAI)

	srv.AddResource(mcp.NewResource(IndexURI, "Documentation Index",
		mcp.WithResourceDescription("Documentation structure and navigation"),
		mcp.WithMIMEType("text/markdown"),
	), s.ReadIndex)

	srv.AddResource(mcp.NewResource(FullURI, "Complete Documentation",
		mcp.WithResourceDescription("All documentation in one file"),
		mcp.WithMIMEType("text/markdown"),
	), s.ReadFull)

	return srv
}

// ServeStdio initializes the service and serves MCP over in and out until
// ctx is done. A failed initialization is logged by the service and does
// not stop the server.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	s.Docs.Initialize(ctx)
	return server.NewStdioServer(s.MCPServer()).Listen(ctx, in, out)
}

// HTTPHandler returns a streamable HTTP handler for the MCP endpoint.
func (s *Server) HTTPHandler() http.Handler {
	return server.NewStreamableHTTPServer(s.MCPServer())
}

// HandleGetDocumentation returns a page as markdown or structured JSON.
func (s *Server) HandleGetDocumentation(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	switch format := req.GetString("format", FormatMarkdown); format {
	case FormatMarkdown:
		content, err := s.Docs.DocumentationPage(ctx, path)
		if err != nil {
			return errorResult(err), nil
		}
		return mcp.NewToolResultText(content), nil
	case FormatStructured:
		doc, err := s.Docs.Page(ctx, path)
		if err != nil {
			return errorResult(err), nil
		}
		return jsonResult(doc)
	default:
		return mcp.NewToolResultError("unknown format: " + format), nil
	}
}

// HandleSearchDocumentation returns ranked search results as JSON.
func (s *Server) HandleSearchDocumentation(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	results, err := s.Docs.SearchDocumentation(ctx, query, req.GetInt("limit", llmsdoc.DefaultSearchLimit))
	if err != nil {
		return errorResult(err), nil
	}
	if results == nil {
		results = []llmsdoc.SearchResult{}
	}
	return jsonResult(results)
}

// HandleAskDocsAI answers a question with the configured Asker.
func (s *Server) HandleAskDocsAI(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := req.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if s.Asker == nil {
		return errorResult(llmsdoc.Errorf(llmsdoc.EUNAUTHORIZED, "AI_API_KEY not configured")), nil
	}

	answer, err := docs.Ask(ctx, s.Docs, s.Asker, question, req.GetBool("includeContext", true))
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(answer), nil
}

// ReadIndex serves the raw index manifest.
func (s *Server) ReadIndex(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	content, err := s.Docs.DocumentationIndex(ctx)
	if err != nil {
		return nil, err
	}
	return markdownContents(req.Params.URI, content), nil
}

// ReadFull serves the full documentation corpus.
func (s *Server) ReadFull(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	content, err := s.Docs.FullDocumentation(ctx)
	if err != nil {
		return nil, err
	}
	return markdownContents(req.Params.URI, content), nil
}

// LogToolCalls stamps every tool call with a request id, carried in the
// context to downstream logging decorators, and logs its name, duration
// and outcome.
func LogToolCalls(logger *slog.Logger) server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
			id := uuid.NewString()
			ctx = llmsdoc.NewRequestContext(ctx, id)
			defer func(begin time.Time) {
				isError := result != nil && result.IsError
				logger.Info("tool call",
					"request_id", id,
					"tool", req.Params.Name,
					"is_error", isError,
					"duration", time.Since(begin),
					"err", err,
				)
			}(time.Now())
			return next(ctx, req)
		}
	}
}

func markdownContents(uri, content string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/markdown",
			Text:     content,
		},
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}

// errorResult reports err to the client as a failed tool call.
func errorResult(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError("Error: " + llmsdoc.ErrorMessage(err))
}
