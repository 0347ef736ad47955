// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Raido code lookup tools for LLM integration via stdio
// transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/raido/internal/codeservice"
)

// Server wraps the MCP server with Raido tools.
type Server struct {
	mcp *server.MCPServer
	svc *codeservice.Service
}

// New creates a new MCP server with all Raido tools registered.
func New(svc *codeservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Raido",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_codes",
		mcp.WithDescription("Prefix-search tracked files by short code. "+
			"The query is canonicalized first (case, look-alike characters, separators), "+
			"so partial or messy input is fine."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Code prefix, 0-4 symbols")),
	), s.searchCodes)

	s.mcp.AddTool(mcp.NewTool("resolve_code",
		mcp.WithDescription("Resolve a full 5-character code (XX-XX) to its file path. "+
			"Partial codes never resolve; use search_codes for prefixes."),
		mcp.WithString("code", mcp.Required(), mcp.Description("Full code, e.g. 3F-9K")),
	), s.resolveCode)

	s.mcp.AddTool(mcp.NewTool("open_by_code",
		mcp.WithDescription("Resolve a code, verify the file exists on disk, and record "+
			"the open in the recents history. Returns the openable absolute path."),
		mcp.WithString("code", mcp.Required(), mcp.Description("Full code, e.g. 3F-9K")),
	), s.openByCode)

	s.mcp.AddTool(mcp.NewTool("get_code",
		mcp.WithDescription("Get the short code for a workspace file path. The path is "+
			"tracked lazily on first query. See the raido://code-format resource for "+
			"how codes are derived."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Workspace-relative file path")),
	), s.getCode)

	s.mcp.AddTool(mcp.NewTool("list_recent",
		mcp.WithDescription("List recently opened files, newest first."),
		mcp.WithNumber("limit", mcp.Description("Max entries (default 20)")),
	), s.listRecent)

	// Resource: code format contract.
	s.mcp.AddResource(
		mcp.NewResource("raido://code-format", "Code Format Contract",
			mcp.WithResourceDescription("How short codes are derived, formatted, and normalized."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readCodeFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) searchCodes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	formatted, results := s.svc.Search(ctx, query)
	out, _ := json.MarshalIndent(map[string]any{
		"query":   formatted,
		"results": results,
	}, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) resolveCode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("code")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	entry, err := s.svc.Resolve(ctx, raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("no file for code: %s", raw)), nil
	}
	out, _ := json.MarshalIndent(entry, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) openByCode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("code")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	target, err := s.svc.Open(ctx, raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(target, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getCode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	info, err := s.svc.CodeFor(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("no such file: %s", path)), nil
	}
	out, _ := json.MarshalIndent(info, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listRecent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := 20
	if n, err := req.RequireFloat("limit"); err == nil {
		limit = int(n)
	}
	recents, err := s.svc.Recents(ctx, limit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(recents, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readCodeFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "raido://code-format",
			MIMEType: "text/markdown",
			Text:     CodeFormatContract,
		},
	}, nil
}
