package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/docchat/docchat/internal/matcher"
	"github.com/docchat/docchat/internal/topics"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the answering service as
// tools for AI agents.
type Server struct {
	store   *topics.Store
	matcher matcher.Matcher
	topK    int
	mcp     *server.MCPServer
}

// NewServer creates a new MCP server over the given store and matcher.
func NewServer(store *topics.Store, m matcher.Matcher, topK int) *Server {
	if topK <= 0 {
		topK = 3
	}
	s := &Server{
		store:   store,
		matcher: m,
		topK:    topK,
	}

	s.mcp = server.NewMCPServer(
		"docchat",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(askDocumentsTool, s.handleAskDocuments)
	s.mcp.AddTool(listDocumentsTool, s.handleListDocuments)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
