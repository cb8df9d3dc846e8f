// Package mcpserver exposes the sanitizer as Model Context Protocol
// tools so that agents can clean URLs and HTML before using them.
package mcpserver

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/njchilds90/disinfecturl"
)

type urlInput struct {
	URL string `json:"url" jsonschema:"the URL to sanitize"`
}

type htmlInput struct {
	HTML string `json:"html" jsonschema:"an HTML fragment whose anchor hrefs are sanitized"`
}

type sanitizeInput struct {
	Input any    `json:"input" jsonschema:"a URL or HTML fragment; values that are not strings produce a null result"`
	Mode  string `json:"mode,omitempty" jsonschema:"auto (default), url or html"`
}

// result is the structured output of the sanitizing tools. Null is set
// when there is no result (blank or non-string input).
type result struct {
	Result string `json:"result"`
	Null   bool   `json:"null"`
}

type verdict struct {
	Kind   string `json:"kind"`
	Value  string `json:"value"`
	Scheme string `json:"scheme"`
}

// Server wraps an MCP server with the sanitizer tools registered.
type Server struct {
	srv    *mcp.Server
	san    *disinfecturl.Sanitizer
	logger *slog.Logger
}

// New creates the MCP server and registers its tools.
func New(version string, san *disinfecturl.Sanitizer, logger *slog.Logger) *Server {
	s := &Server{
		srv: mcp.NewServer(
			&mcp.Implementation{Name: "disinfecturl", Version: version},
			&mcp.ServerOptions{Logger: logger},
		),
		san:    san,
		logger: logger.With("area", "mcp"),
	}

	mcp.AddTool(s.srv, &mcp.Tool{
		Name:        "sanitize_url",
		Description: "Neutralize javascript:, data: and vbscript: URLs. Dangerous URLs become about:blank.",
	}, s.sanitizeURL)
	mcp.AddTool(s.srv, &mcp.Tool{
		Name:        "sanitize_html",
		Description: "Rewrite the href of every <a> element in an HTML fragment through sanitize_url.",
	}, s.sanitizeHTML)
	mcp.AddTool(s.srv, &mcp.Tool{
		Name:        "sanitize",
		Description: "Sanitize a URL or HTML fragment: the whole input as a URL, then every anchor href.",
	}, s.sanitize)
	mcp.AddTool(s.srv, &mcp.Tool{
		Name:        "inspect_url",
		Description: "Explain how a URL is classified: null, empty, relative, no-scheme, allowed or denied.",
	}, s.inspectURL)

	return s
}

// MCP returns the underlying server, for use with other transports.
func (s *Server) MCP() *mcp.Server {
	return s.srv
}

// Run serves over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("starting stdio transport")
	return s.srv.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) sanitizeURL(_ context.Context, _ *mcp.CallToolRequest, in urlInput) (*mcp.CallToolResult, result, error) {
	return textResult(s.san.SanitizeURL(in.URL))
}

func (s *Server) sanitizeHTML(_ context.Context, _ *mcp.CallToolRequest, in htmlInput) (*mcp.CallToolResult, result, error) {
	return textResult(s.san.SanitizeHTML(in.HTML))
}

func (s *Server) sanitize(_ context.Context, _ *mcp.CallToolRequest, in sanitizeInput) (*mcp.CallToolResult, result, error) {
	mode, err := disinfecturl.ParseMode(in.Mode)
	if err != nil {
		return nil, result{}, err
	}
	return textResult(s.san.SanitizeAs(mode, in.Input))
}

func (s *Server) inspectURL(_ context.Context, _ *mcp.CallToolRequest, in urlInput) (*mcp.CallToolResult, verdict, error) {
	v := s.san.Inspect(in.URL)
	out := verdict{Kind: v.Kind.String(), Value: v.Value, Scheme: v.Scheme}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: out.Kind}},
	}, out, nil
}

func textResult(out string, ok bool) (*mcp.CallToolResult, result, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: out}},
	}, result{Result: out, Null: !ok}, nil
}
