package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	mcp "github.com/mark3labs/mcp-go/mcp"

	"github.com/Laisky/searxng-mcp/internal/research"
)

const researchTopicDescription = `Deep research with multiple searches and source validation.

Use this when:
- The user wants comprehensive research or a briefing
- Information needs validating across multiple sources
- The user asks to "research", "investigate" or "give me a briefing"

This tool runs 2-6 searches concurrently using different strategies over
multiple engines (Google, Bing, DuckDuckGo, Brave, Wikipedia) and both web
and news categories, then deduplicates results by URL.

Depth:
  • "quick" - 2 searches
  • "standard" - 4 searches (recommended)
  • "deep" - 6 searches

After receiving sources you MUST analyze and cross-reference them, noting how
many sources confirm each claim and flagging contradictions. Do not just list
the sources back to the user.`

// ResearchTopicTool implements the research_topic MCP tool.
type ResearchTopicTool struct {
	researcher Researcher
	logger     logSDK.Logger
}

// NewResearchTopicTool constructs a ResearchTopicTool.
func NewResearchTopicTool(researcher Researcher, logger logSDK.Logger) (*ResearchTopicTool, error) {
	if researcher == nil {
		return nil, errors.New("researcher is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	return &ResearchTopicTool{
		researcher: researcher,
		logger:     logger,
	}, nil
}

// Definition returns the MCP metadata describing the tool.
func (t *ResearchTopicTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"research_topic",
		mcp.WithDescription(researchTopicDescription),
		mcp.WithString(
			"query",
			mcp.Required(),
			mcp.Description("Research topic or question."),
		),
		mcp.WithString(
			"depth",
			mcp.Description("Research depth."),
			mcp.Enum(string(research.DepthQuick), string(research.DepthStandard), string(research.DepthDeep)),
			mcp.DefaultString(string(research.DefaultDepth)),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

// Handle runs the research engine and renders the aggregate as analysis material.
func (t *ResearchTopicTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := readQueryArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	depth, err := research.ParseDepth(readStringArg(req, "depth"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	start := time.Now()
	result, err := t.researcher.Research(ctx, query, depth)
	if err != nil {
		t.logger.Error("research_topic failed", zap.Error(err), zap.String("depth", string(depth)))
		return mcp.NewToolResultError(fmt.Sprintf("research failed: %v", err)), nil
	}

	t.logger.Debug("research_topic completed",
		zap.String("depth", string(depth)),
		zap.Int("unique", result.TotalUnique),
		zap.Int("strategies_failed", result.StrategiesFailed),
		zap.Duration("duration", time.Since(start)),
	)

	return mcp.NewToolResultText(RenderResearch(result)), nil
}
