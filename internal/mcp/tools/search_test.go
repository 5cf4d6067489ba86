package tools

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/Laisky/errors/v2"
	mcp "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"

	"github.com/Laisky/searxng-mcp/library/log"
	"github.com/Laisky/searxng-mcp/library/search"
)

type stubSearchProvider struct {
	requests []search.Request
	results  []search.Result
	err      error
}

func (s *stubSearchProvider) Search(_ context.Context, req search.Request) (*search.Response, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	return &search.Response{Results: s.results}, nil
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return textContent.Text
}

func mustSearchTool(t *testing.T, provider search.Provider) *SearchTool {
	t.Helper()
	tool, err := NewSearchTool(provider, log.Logger.Named("search_test"))
	require.NoError(t, err)
	return tool
}

func TestSearchHandleDefaults(t *testing.T) {
	provider := &stubSearchProvider{results: []search.Result{
		{Title: search.Ptr("Go"), URL: "https://go.dev", Content: search.Ptr("The Go language")},
	}}
	tool := mustSearchTool(t, provider)

	result, err := tool.Handle(context.Background(), callRequest(map[string]any{"query": " golang "}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	require.Len(t, provider.requests, 1)
	req := provider.requests[0]
	require.Equal(t, "golang", req.Query)
	require.Equal(t, search.CategoryGeneral, req.Category)
	require.Nil(t, req.Engines)
	require.Equal(t, 1, req.PageNo)

	text := resultText(t, result)
	require.True(t, strings.HasPrefix(text, "🔍 Search Results for: golang\n\n"))
	require.Contains(t, text, "1. **Go**\n   https://go.dev\n   The Go language\n\n")
}

func TestSearchHandleNewsWithEngines(t *testing.T) {
	provider := &stubSearchProvider{results: []search.Result{
		{URL: "https://news.example/1", PublishedDate: search.Ptr("2024-01-02")},
	}}
	tool := mustSearchTool(t, provider)

	result, err := tool.Handle(context.Background(), callRequest(map[string]any{
		"query":    "elections",
		"category": "news",
		"engines":  "google, bing,",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	require.Equal(t, search.CategoryNews, provider.requests[0].Category)
	require.Equal(t, []string{"google", "bing"}, provider.requests[0].Engines)

	text := resultText(t, result)
	require.True(t, strings.HasPrefix(text, "📰 News Results for: elections"))
	require.Contains(t, text, "1. **No title**")
	require.Contains(t, text, "   📅 2024-01-02\n")
}

func TestSearchHandleRejectsInvalidArguments(t *testing.T) {
	cases := []struct {
		name string
		args map[string]any
		want string
	}{
		{name: "missing query", args: map[string]any{}, want: "query"},
		{name: "blank query", args: map[string]any{"query": "   "}, want: "query cannot be empty"},
		{name: "media category", args: map[string]any{"query": "x", "category": "images"}, want: "category must be one of"},
		{name: "max too large", args: map[string]any{"query": "x", "max_results": float64(51)}, want: "between 1 and 50"},
		{name: "max zero", args: map[string]any{"query": "x", "max_results": float64(0)}, want: "between 1 and 50"},
		{name: "max fraction", args: map[string]any{"query": "x", "max_results": 2.5}, want: "must be an integer"},
		{name: "max string", args: map[string]any{"query": "x", "max_results": "ten"}, want: "must be a number"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider := &stubSearchProvider{}
			result, err := mustSearchTool(t, provider).Handle(context.Background(), callRequest(tc.args))
			require.NoError(t, err)
			require.True(t, result.IsError)
			require.Contains(t, resultText(t, result), tc.want)
			require.Empty(t, provider.requests)
		})
	}
}

func TestSearchHandleProviderError(t *testing.T) {
	provider := &stubSearchProvider{err: errors.New("searxng returned status 502")}

	result, err := mustSearchTool(t, provider).Handle(context.Background(), callRequest(map[string]any{"query": "x"}))
	require.NoError(t, err)
	require.True(t, result.IsError)
	require.Contains(t, resultText(t, result), "search failed: searxng returned status 502")
}

func TestRenderSearchLimitsAndTruncates(t *testing.T) {
	var results []search.Result
	for i := 0; i < 12; i++ {
		results = append(results, search.Result{
			Title:   search.Ptr(fmt.Sprintf("r%d", i)),
			URL:     fmt.Sprintf("https://example.com/%d", i),
			Content: search.Ptr(strings.Repeat("c", 250)),
		})
	}

	text := RenderSearch("q", search.CategoryGeneral, results, 3)
	require.Contains(t, text, "3. **r2**")
	require.NotContains(t, text, "4. **r3**")
	require.Contains(t, text, "   "+strings.Repeat("c", searchContentLimit)+"...\n")
	require.NotContains(t, text, "No results found.")
}

func TestRenderSearchEmpty(t *testing.T) {
	text := RenderSearch("q", search.CategoryGeneral, nil, 10)
	require.Equal(t, "🔍 Search Results for: q\n\nNo results found.\n", text)
}

func TestRenderSearchGeneralOmitsDate(t *testing.T) {
	text := RenderSearch("q", search.CategoryGeneral, []search.Result{
		{URL: "u", PublishedDate: search.Ptr("2024-01-02")},
	}, 10)
	require.NotContains(t, text, "📅")
}

func TestSearchDefinition(t *testing.T) {
	def := mustSearchTool(t, &stubSearchProvider{}).Definition()
	require.Equal(t, "search", def.Name)
	require.Contains(t, def.InputSchema.Required, "query")
	require.Contains(t, def.InputSchema.Properties, "max_results")
	require.Contains(t, def.InputSchema.Properties, "engines")
}

func TestNewSearchToolRequiresDependencies(t *testing.T) {
	_, err := NewSearchTool(nil, log.Logger)
	require.Error(t, err)

	_, err = NewSearchTool(&stubSearchProvider{}, nil)
	require.Error(t, err)
}
