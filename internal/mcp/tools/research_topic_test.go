package tools

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/Laisky/errors/v2"
	"github.com/stretchr/testify/require"

	"github.com/Laisky/searxng-mcp/internal/research"
	"github.com/Laisky/searxng-mcp/library/log"
	"github.com/Laisky/searxng-mcp/library/search"
)

type stubResearcher struct {
	topic  string
	depth  research.Depth
	calls  int
	result *research.Result
	err    error
}

func (s *stubResearcher) Research(_ context.Context, topic string, depth research.Depth) (*research.Result, error) {
	s.calls++
	s.topic = topic
	s.depth = depth
	return s.result, s.err
}

func mustResearchTool(t *testing.T, researcher Researcher) *ResearchTopicTool {
	t.Helper()
	tool, err := NewResearchTopicTool(researcher, log.Logger.Named("research_topic_test"))
	require.NoError(t, err)
	return tool
}

func TestResearchTopicDefaultsToStandard(t *testing.T) {
	researcher := &stubResearcher{result: research.Compose(nil, 4)}

	result, err := mustResearchTool(t, researcher).Handle(context.Background(), callRequest(map[string]any{"query": "fusion"}))
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.Equal(t, research.DepthStandard, researcher.depth)
	require.Equal(t, "fusion", researcher.topic)
}

func TestResearchTopicRejectsUnknownDepth(t *testing.T) {
	researcher := &stubResearcher{}

	result, err := mustResearchTool(t, researcher).Handle(context.Background(), callRequest(map[string]any{
		"query": "fusion",
		"depth": "exhaustive",
	}))
	require.NoError(t, err)
	require.True(t, result.IsError)
	require.Contains(t, resultText(t, result), "exhaustive")
	require.Zero(t, researcher.calls)
}

func TestResearchTopicEngineError(t *testing.T) {
	researcher := &stubResearcher{err: errors.New("research topic cannot be empty")}

	result, err := mustResearchTool(t, researcher).Handle(context.Background(), callRequest(map[string]any{"query": "x"}))
	require.NoError(t, err)
	require.True(t, result.IsError)
	require.Contains(t, resultText(t, result), "research failed")
}

func TestRenderResearchWithSources(t *testing.T) {
	var unique []search.Result
	for i := 0; i < 30; i++ {
		unique = append(unique, search.Result{
			Title:   search.Ptr(fmt.Sprintf("source %d", i)),
			URL:     fmt.Sprintf("https://example.com/%d", i),
			Content: search.Ptr(strings.Repeat("z", 120)),
		})
	}
	unique[0].PublishedDate = search.Ptr("2024-03-04")

	result := research.Compose(unique, 4)
	result.Topic = "batteries"
	result.Failures = []*research.StrategyError{{
		Strategy: research.Strategy{Category: search.CategoryNews},
		Err:      context.DeadlineExceeded,
	}}
	result.StrategiesFailed = 1

	text := RenderResearch(result)
	require.True(t, strings.HasPrefix(text, "🔬 RESEARCH DATA for analysis: batteries\n📊 30 unique sources gathered from 4 search strategies\n"))
	require.Contains(t, text, "1 of 4 search strategies failed: news[*]")
	require.Contains(t, text, "• **source 0**\n  URL: https://example.com/0\n  Content: "+strings.Repeat("z", 100)+"...\n  Date: 2024-03-04\n")
	require.Contains(t, text, "• **source 24**")
	require.NotContains(t, text, "• **source 25**")
	require.Contains(t, text, "You have 25 sources above as RAW MATERIAL.")
	require.Contains(t, text, ResearchFooter)
	require.NotContains(t, text, "No results found")
	require.Equal(t, 5, strings.Count(text, strings.Repeat("=", 80)))
}

func TestRenderResearchEmpty(t *testing.T) {
	result := research.Compose(nil, 6)
	result.Topic = "nothing"

	text := RenderResearch(result)
	require.Contains(t, text, "📊 0 unique sources gathered from 6 search strategies")
	require.Contains(t, text, "No results found. Try a different query.\n")
	require.Contains(t, text, "You have 0 sources above as RAW MATERIAL.")
	require.NotContains(t, text, "strategies failed")
}
