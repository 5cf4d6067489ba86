package research

import (
	"testing"

	"github.com/Laisky/errors/v2"
	"github.com/stretchr/testify/require"

	"github.com/Laisky/searxng-mcp/library/search"
)

func TestPlanBatteries(t *testing.T) {
	cases := []struct {
		depth Depth
		cap   int
		want  []Strategy
	}{
		{
			depth: DepthQuick,
			cap:   10,
			want: []Strategy{
				{Category: search.CategoryGeneral, ResultCap: 10},
				{Category: search.CategoryNews, ResultCap: 10},
			},
		},
		{
			depth: DepthStandard,
			cap:   10,
			want: []Strategy{
				{Category: search.CategoryGeneral, Engines: []string{"google", "bing"}, ResultCap: 10},
				{Category: search.CategoryGeneral, Engines: []string{"duckduckgo", "brave"}, ResultCap: 10},
				{Category: search.CategoryNews, ResultCap: 10},
				{Category: search.CategoryGeneral, Engines: []string{"wikipedia"}, ResultCap: 10},
			},
		},
		{
			depth: DepthDeep,
			cap:   15,
			want: []Strategy{
				{Category: search.CategoryGeneral, Engines: []string{"google", "bing"}, ResultCap: 15},
				{Category: search.CategoryGeneral, Engines: []string{"duckduckgo", "brave"}, ResultCap: 15},
				{Category: search.CategoryNews, Engines: []string{"google", "bing"}, ResultCap: 15},
				{Category: search.CategoryNews, Engines: []string{"duckduckgo"}, ResultCap: 15},
				{Category: search.CategoryGeneral, Engines: []string{"wikipedia"}, ResultCap: 15},
				{Category: search.CategoryGeneral, ResultCap: 15},
			},
		},
	}

	for _, tc := range cases {
		t.Run(string(tc.depth), func(t *testing.T) {
			strategies, perStrategyCap, err := Plan(tc.depth)
			require.NoError(t, err)
			require.Equal(t, tc.cap, perStrategyCap)
			require.Equal(t, tc.want, strategies)
		})
	}
}

func TestPlanReturnsIndependentCopies(t *testing.T) {
	first, _, err := Plan(DepthStandard)
	require.NoError(t, err)
	first[0].Engines[0] = "mutated"

	second, _, err := Plan(DepthStandard)
	require.NoError(t, err)
	require.Equal(t, "google", second[0].Engines[0])
}

func TestPlanUnknownDepth(t *testing.T) {
	strategies, perStrategyCap, err := Plan(Depth("exhaustive"))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnknownDepth))
	require.Nil(t, strategies)
	require.Zero(t, perStrategyCap)
}

func TestParseDepth(t *testing.T) {
	depth, err := ParseDepth("")
	require.NoError(t, err)
	require.Equal(t, DepthStandard, depth)

	depth, err = ParseDepth(" Deep ")
	require.NoError(t, err)
	require.Equal(t, DepthDeep, depth)

	_, err = ParseDepth("medium")
	require.True(t, errors.Is(err, ErrUnknownDepth))
	require.Contains(t, err.Error(), "medium")
}

func TestStrategyString(t *testing.T) {
	require.Equal(t, "news[*]", Strategy{Category: search.CategoryNews}.String())
	require.Equal(t, "general[google,bing]", Strategy{Category: search.CategoryGeneral, Engines: []string{"google", "bing"}}.String())
}
