package mcp

import (
	"context"
	"time"

	errors "github.com/Laisky/errors/v2"
	"github.com/Laisky/zap"
	mcp "github.com/mark3labs/mcp-go/mcp"

	"github.com/Laisky/searxng-mcp/internal/mcp/tools"
)

func (s *Server) handleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.invokeTool(ctx, toolSearch, s.search, req)
}

func (s *Server) handleSearchMedia(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.invokeTool(ctx, toolSearchMedia, s.searchMedia, req)
}

func (s *Server) handleResearchTopic(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.invokeTool(ctx, toolResearchTopic, s.researchTopic, req)
}

// invokeTool runs tool and records how the invocation ended.
func (s *Server) invokeTool(ctx context.Context, name string, tool tools.Tool, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if tool == nil {
		return mcp.NewToolResultError(name + " is not configured"), nil
	}

	start := time.Now().UTC()
	result, err := tool.Handle(ctx, req)
	s.recordToolInvocation(name, start, result, err)
	if err != nil {
		return result, errors.WithStack(err)
	}
	return result, nil
}

func (s *Server) recordToolInvocation(name string, start time.Time, result *mcp.CallToolResult, err error) {
	if s.logger == nil {
		return
	}

	fields := []zap.Field{
		zap.String("tool", name),
		zap.Duration("duration", time.Since(start)),
	}
	switch {
	case err != nil:
		s.logger.Error("tool invocation failed", append(fields, zap.Error(err))...)
	case result != nil && result.IsError:
		s.logger.Info("tool invocation returned error result", fields...)
	default:
		s.logger.Info("tool invocation succeeded", fields...)
	}
}
