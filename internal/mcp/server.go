package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/learndash/internal/compute"
	"github.com/ziadkadry99/learndash/internal/lessons"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the tutorial sections and the
// slow sum to agents.
type Server struct {
	library *lessons.Library
	index   *lessons.Index
	summer  *compute.Summer
	mcp     *server.MCPServer
}

// NewServer creates a new MCP server. index may be nil, in which case
// search_sections reports that search is unavailable.
func NewServer(library *lessons.Library, index *lessons.Index, summer *compute.Summer) *Server {
	s := &Server{
		library: library,
		index:   index,
		summer:  summer,
	}

	s.mcp = server.NewMCPServer(
		"learndash",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listSectionsTool, s.handleListSections)
	s.mcp.AddTool(getSectionTool, s.handleGetSection)
	s.mcp.AddTool(searchSectionsTool, s.handleSearchSections)
	s.mcp.AddTool(slowSumTool, s.handleSlowSum)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
