package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	mcp "github.com/mark3labs/mcp-go/mcp"

	"github.com/Laisky/searxng-mcp/library/search"
)

// searchContentLimit is the rune budget for snippets in single searches.
const searchContentLimit = 200

const searchDescription = `Quick search for web or news content.

Use this when:
- The user asks for a simple web search or lookup
- Quick information is enough, not comprehensive research
- Looking for news articles on a topic

This runs a SINGLE search and returns up to max_results (default 10).
For comprehensive research across multiple sources, use research_topic instead.

Returns: search results with titles, URLs and snippets.`

// SearchTool implements the search MCP tool.
type SearchTool struct {
	provider search.Provider
	logger   logSDK.Logger
}

// NewSearchTool constructs a SearchTool with the provided dependencies.
func NewSearchTool(provider search.Provider, logger logSDK.Logger) (*SearchTool, error) {
	if provider == nil {
		return nil, errors.New("search provider is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	return &SearchTool{
		provider: provider,
		logger:   logger,
	}, nil
}

// Definition returns the MCP metadata describing the tool.
func (t *SearchTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"search",
		mcp.WithDescription(searchDescription),
		mcp.WithString(
			"query",
			mcp.Required(),
			mcp.Description("Search query."),
		),
		mcp.WithString(
			"category",
			mcp.Description(`"general" for web search, "news" for news articles.`),
			mcp.Enum(string(search.CategoryGeneral), string(search.CategoryNews)),
			mcp.DefaultString(string(search.CategoryGeneral)),
		),
		mcp.WithString(
			"engines",
			mcp.Description(`Optional comma separated engine list, e.g. "google,bing".`),
		),
		mcp.WithNumber(
			"max_results",
			mcp.Description("Maximum number of results to return."),
			mcp.DefaultNumber(defaultMaxResults),
			mcp.Min(minMaxResults),
			mcp.Max(maxMaxResults),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
	)
}

// Handle executes the search tool logic using the configured dependencies.
func (t *SearchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := readQueryArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	category := search.CategoryGeneral
	if raw := readStringArg(req, "category"); raw != "" {
		category = search.Category(raw)
	}
	if category != search.CategoryGeneral && category != search.CategoryNews {
		return mcp.NewToolResultError(fmt.Sprintf("category must be one of general, news, got %q", category)), nil
	}

	maxResults, err := readMaxResultsArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	start := time.Now()
	resp, err := t.provider.Search(ctx, search.Request{
		Query:    query,
		Category: category,
		Engines:  search.ParseEngines(readStringArg(req, "engines")),
		PageNo:   1,
	})
	if err != nil {
		t.logger.Error("search failed", zap.Error(err), zap.Int("query_len", len(query)))
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	var results []search.Result
	if resp != nil {
		results = resp.Results
	}

	t.logger.Debug("search completed",
		zap.String("category", string(category)),
		zap.Int("query_len", len(query)),
		zap.Int("results_count", len(results)),
		zap.Duration("duration", time.Since(start)),
	)

	return mcp.NewToolResultText(RenderSearch(query, category, results, maxResults)), nil
}

// RenderSearch formats up to maxResults entries of a general or news search.
func RenderSearch(query string, category search.Category, results []search.Result, maxResults int) string {
	var b strings.Builder
	news := category == search.CategoryNews
	if news {
		fmt.Fprintf(&b, "📰 News Results for: %s\n\n", query)
	} else {
		fmt.Fprintf(&b, "🔍 Search Results for: %s\n\n", query)
	}

	for i, r := range firstN(results, maxResults) {
		fmt.Fprintf(&b, "%d. **%s**\n", i+1, search.TitleOf(r))
		fmt.Fprintf(&b, "   %s\n", r.URL)
		if content := search.Text(r.Content); content != "" {
			fmt.Fprintf(&b, "   %s\n", search.Truncate(content, searchContentLimit))
		}
		if date := search.Text(r.PublishedDate); news && date != "" {
			fmt.Fprintf(&b, "   📅 %s\n", date)
		}
		b.WriteString("\n")
	}

	if len(results) == 0 {
		b.WriteString("No results found.\n")
	}

	return b.String()
}
