package mcp

import (
	"context"
	"net/http"
	"os"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	srv "github.com/mark3labs/mcp-go/server"

	"github.com/Laisky/searxng-mcp/internal/mcp/tools"
	"github.com/Laisky/searxng-mcp/library/search"
)

const (
	serverName    = "SearxngMCP"
	serverVersion = "1.0.0"
)

const serverInstructions = `Search the web through a SearXNG instance.

- Use "search" for a quick single web or news lookup.
- Use "search_media" to find images or videos.
- Use "research_topic" for comprehensive research; it runs several searches
  concurrently, deduplicates sources by URL and returns raw material that you
  must analyze and synthesize rather than list back to the user.`

// Server wraps the MCP server state for the stdio and HTTP transports.
type Server struct {
	mcpServer *srv.MCPServer
	handler   http.Handler
	logger    logSDK.Logger

	search        tools.Tool
	searchMedia   tools.Tool
	researchTopic tools.Tool
}

// NewServer constructs an MCP server exposing the enabled search tools.
func NewServer(
	provider search.Provider,
	researcher tools.Researcher,
	toolsSettings ToolsSettings,
	logger logSDK.Logger,
) (*Server, error) {
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if len(toolsSettings.EnabledToolNames()) == 0 {
		return nil, errors.New("at least one mcp tool must be enabled")
	}

	hooks := newMCPHooks(logger.Named("mcp_hooks"))
	mcpServer := srv.NewMCPServer(
		serverName,
		serverVersion,
		srv.WithToolCapabilities(true),
		srv.WithInstructions(serverInstructions),
		srv.WithRecovery(),
		srv.WithHooks(hooks),
	)

	s := &Server{
		mcpServer: mcpServer,
		logger:    logger.Named("mcp"),
	}

	toolLogger := logger.Named("mcp_tools")
	if toolsSettings.SearchEnabled {
		tool, err := tools.NewSearchTool(provider, toolLogger.Named(toolSearch))
		if err != nil {
			return nil, errors.Wrap(err, "new search tool")
		}
		s.search = tool
		mcpServer.AddTool(tool.Definition(), s.handleSearch)
	}
	if toolsSettings.SearchMediaEnabled {
		tool, err := tools.NewSearchMediaTool(provider, toolLogger.Named(toolSearchMedia))
		if err != nil {
			return nil, errors.Wrap(err, "new search_media tool")
		}
		s.searchMedia = tool
		mcpServer.AddTool(tool.Definition(), s.handleSearchMedia)
	}
	if toolsSettings.ResearchTopicEnabled {
		tool, err := tools.NewResearchTopicTool(researcher, toolLogger.Named(toolResearchTopic))
		if err != nil {
			return nil, errors.Wrap(err, "new research_topic tool")
		}
		s.researchTopic = tool
		mcpServer.AddTool(tool.Definition(), s.handleResearchTopic)
	}

	streamable := srv.NewStreamableHTTPServer(mcpServer)
	s.handler = withHTTPLogging(streamable, logger.Named("mcp_http"))

	s.logger.Info("mcp server initialized",
		zap.Strings("tools", toolsSettings.EnabledToolNames()))
	return s, nil
}

// Handler returns the HTTP handler that should be mounted to serve MCP traffic.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ServeStdio serves MCP over stdin/stdout until ctx is done or stdin closes.
func (s *Server) ServeStdio(ctx context.Context) error {
	s.logger.Info("serving mcp over stdio")
	stdio := srv.NewStdioServer(s.mcpServer)
	if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return errors.Wrap(err, "listen on stdio")
	}
	return nil
}
