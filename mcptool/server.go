package mcptool

import (
	"context"
	"fmt"
	"io"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jongio/weburl/logutil"
	"github.com/jongio/weburl/urlutil"
	"github.com/jongio/weburl/weburl"
)

// Tool names.
const (
	ToolParse      = "parse_url"
	ToolResolve    = "resolve_url"
	ToolWithScheme = "with_scheme"
)

// Default limiter settings.
const (
	DefaultBurst      = 10
	DefaultRefillRate = 1.0
)

// Options configures a Server.
type Options struct {
	// Settings used for every parse. Nil means the defaults.
	Settings *weburl.Settings
	// Version reported to clients.
	Version string
	// Burst and RefillRate configure the shared token bucket. Zero values
	// use DefaultBurst and DefaultRefillRate.
	Burst      int
	RefillRate float64
}

// Result is the JSON payload of every successful tool call.
type Result struct {
	urlutil.Components
	Issues []urlutil.Issue `json:"issues,omitempty"`
}

// Server exposes the parser as MCP tools.
type Server struct {
	settings *weburl.Settings
	limiter  *RateLimiter
	mcp      *server.MCPServer
	log      *logutil.ComponentLogger
}

// NewServer creates a Server with the parse_url, resolve_url and
// with_scheme tools registered.
func NewServer(opts Options) *Server {
	if opts.Settings == nil {
		opts.Settings = &weburl.Settings{}
	}
	if opts.Burst <= 0 {
		opts.Burst = DefaultBurst
	}
	if opts.RefillRate <= 0 {
		opts.RefillRate = DefaultRefillRate
	}
	if opts.Version == "" {
		opts.Version = "0.0.0-dev"
	}

	s := &Server{
		settings: opts.Settings,
		limiter:  NewRateLimiter(opts.Burst, opts.RefillRate),
		mcp:      server.NewMCPServer("weburl", opts.Version, server.WithToolCapabilities(false)),
		log:      logutil.NewLogger("mcp"),
	}

	s.mcp.AddTool(mcp.NewTool(ToolParse,
		mcp.WithDescription("Parse a URL per the WHATWG URL Standard and return its canonical form and components"),
		mcp.WithString("url", mcp.Required(), mcp.Description("URL or relative reference to parse")),
		mcp.WithString("base", mcp.Description("Optional absolute base URL for relative references")),
	), s.handleParse)

	s.mcp.AddTool(mcp.NewTool(ToolResolve,
		mcp.WithDescription("Resolve a relative reference against an absolute base URL"),
		mcp.WithString("base", mcp.Required(), mcp.Description("Absolute base URL")),
		mcp.WithString("ref", mcp.Required(), mcp.Description("Reference to resolve")),
	), s.handleResolve)

	s.mcp.AddTool(mcp.NewTool(ToolWithScheme,
		mcp.WithDescription("Replace the scheme of a URL and return the re-canonicalized result"),
		mcp.WithString("url", mcp.Required(), mcp.Description("Absolute URL")),
		mcp.WithString("scheme", mcp.Required(), mcp.Description("New scheme")),
	), s.handleWithScheme)

	return s
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// Serve speaks MCP over the given streams until ctx is canceled or in is
// closed.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	s.log.Info("serving MCP over stdio")
	return server.NewStdioServer(s.mcp).Listen(ctx, in, out)
}

func (s *Server) handleParse(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.limiter.CheckRateLimit(ToolParse); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	args := argsOf(request)
	raw, err := args.required("url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var base *weburl.URL
	if b := args.optional("base"); b != "" {
		if base, err = s.settings.Parse(b, nil); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid base URL: %v", err)), nil
		}
	}
	return s.parse(ToolParse, raw, base)
}

func (s *Server) handleResolve(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.limiter.CheckRateLimit(ToolResolve); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	args := argsOf(request)
	b, err := args.required("base")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	ref, err := args.required("ref")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	base, err := s.settings.Parse(b, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid base URL: %v", err)), nil
	}
	return s.parse(ToolResolve, ref, base)
}

func (s *Server) handleWithScheme(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.limiter.CheckRateLimit(ToolWithScheme); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	args := argsOf(request)
	raw, err := args.required("url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	scheme, err := args.required("scheme")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	u, err := s.settings.Parse(raw, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid URL: %v", err)), nil
	}
	out, err := s.settings.WithScheme(u, scheme)
	if err != nil {
		s.log.Debug("tool failed", "tool", ToolWithScheme, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(Result{Components: urlutil.Describe(out)})
}

func (s *Server) parse(tool, raw string, base *weburl.URL) (*mcp.CallToolResult, error) {
	u, errs, err := s.settings.ParseWithErrors(raw, base)
	if err == nil && s.settings.Strict && len(errs) > 0 {
		err = weburl.ValidationErrors(errs)
	}
	if err != nil {
		s.log.Debug("tool failed", "tool", tool, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(Result{Components: urlutil.Describe(u), Issues: urlutil.Issues(errs)})
}
