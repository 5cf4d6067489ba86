package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Laisky/searxng-mcp/internal/research"
)

// Tool exposes the capabilities required by the MCP server registration lifecycle.
type Tool interface {
	Definition() mcp.Tool
	Handle(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// Researcher runs a multi-strategy research pass for a topic.
type Researcher interface {
	Research(ctx context.Context, topic string, depth research.Depth) (*research.Result, error)
}
