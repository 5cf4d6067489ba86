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

const notAvailable = "N/A"

const searchMediaDescription = `Search for images or videos.

Use this when:
- The user wants to find images or photos
- Looking for video content
- "show me pictures of..." or "find videos about..."

Returns: media URLs with thumbnails and sources.`

// SearchMediaTool implements the search_media MCP tool.
type SearchMediaTool struct {
	provider search.Provider
	logger   logSDK.Logger
}

// NewSearchMediaTool constructs a SearchMediaTool with the provided dependencies.
func NewSearchMediaTool(provider search.Provider, logger logSDK.Logger) (*SearchMediaTool, error) {
	if provider == nil {
		return nil, errors.New("search provider is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	return &SearchMediaTool{
		provider: provider,
		logger:   logger,
	}, nil
}

// Definition returns the MCP metadata describing the tool.
func (t *SearchMediaTool) Definition() mcp.Tool {
	return mcp.NewTool(
		"search_media",
		mcp.WithDescription(searchMediaDescription),
		mcp.WithString(
			"query",
			mcp.Required(),
			mcp.Description("Media search query."),
		),
		mcp.WithString(
			"media_type",
			mcp.Description("Type of media to search for."),
			mcp.Enum(string(search.CategoryImages), string(search.CategoryVideos)),
			mcp.DefaultString(string(search.CategoryImages)),
		),
		mcp.WithString(
			"engines",
			mcp.Description("Optional comma separated engine list."),
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

// Handle executes the search_media tool logic.
func (t *SearchMediaTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := readQueryArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	mediaType := search.CategoryImages
	if raw := readStringArg(req, "media_type"); raw != "" {
		mediaType = search.Category(raw)
	}
	if mediaType != search.CategoryImages && mediaType != search.CategoryVideos {
		return mcp.NewToolResultError(fmt.Sprintf("media_type must be one of images, videos, got %q", mediaType)), nil
	}

	maxResults, err := readMaxResultsArg(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	start := time.Now()
	resp, err := t.provider.Search(ctx, search.Request{
		Query:    query,
		Category: mediaType,
		Engines:  search.ParseEngines(readStringArg(req, "engines")),
		PageNo:   1,
	})
	if err != nil {
		t.logger.Error("search_media failed", zap.Error(err), zap.Int("query_len", len(query)))
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	var results []search.Result
	if resp != nil {
		results = resp.Results
	}

	t.logger.Debug("search_media completed",
		zap.String("media_type", string(mediaType)),
		zap.Int("query_len", len(query)),
		zap.Int("results_count", len(results)),
		zap.Duration("duration", time.Since(start)),
	)

	return mcp.NewToolResultText(RenderMedia(query, mediaType, results, maxResults)), nil
}

// RenderMedia formats up to maxResults image or video entries.
func RenderMedia(query string, mediaType search.Category, results []search.Result, maxResults int) string {
	var b strings.Builder
	shown := firstN(results, maxResults)

	if mediaType == search.CategoryImages {
		fmt.Fprintf(&b, "🖼️ Image Results for: %s\n\n", query)
		for i, r := range shown {
			fmt.Fprintf(&b, "%d. **%s**\n", i+1, search.TitleOf(r))
			fmt.Fprintf(&b, "   URL: %s\n", orNotAvailable(search.Text(r.ImgSrc)))
			fmt.Fprintf(&b, "   Source: %s\n", orNotAvailable(r.URL))
			if thumb := search.Text(r.ThumbnailSrc); thumb != "" {
				fmt.Fprintf(&b, "   Thumbnail: %s\n", thumb)
			}
			b.WriteString("\n")
		}
	} else {
		fmt.Fprintf(&b, "🎥 Video Results for: %s\n\n", query)
		for i, r := range shown {
			fmt.Fprintf(&b, "%d. **%s**\n", i+1, search.TitleOf(r))
			fmt.Fprintf(&b, "   %s\n", r.URL)
			if content := search.Text(r.Content); content != "" {
				fmt.Fprintf(&b, "   %s\n", content)
			}
			if date := search.Text(r.PublishedDate); date != "" {
				fmt.Fprintf(&b, "   Published: %s\n", date)
			}
			b.WriteString("\n")
		}
	}

	if len(results) == 0 {
		fmt.Fprintf(&b, "No %s found.\n", mediaType)
	}

	return b.String()
}

func orNotAvailable(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
