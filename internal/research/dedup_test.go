package research

import (
	"fmt"
	"testing"

	"github.com/Laisky/errors/v2"
	"github.com/stretchr/testify/require"

	"github.com/Laisky/searxng-mcp/library/search"
)

func resultsFor(urls ...string) []search.Result {
	results := make([]search.Result, 0, len(urls))
	for _, u := range urls {
		results = append(results, search.Result{URL: u, Title: search.Ptr("title " + u)})
	}
	return results
}

func urlsOf(results []search.Result) []string {
	urls := make([]string, 0, len(results))
	for _, r := range results {
		urls = append(urls, r.URL)
	}
	return urls
}

func failedOutcome(s Strategy) Outcome {
	return Outcome{Strategy: s, Err: &StrategyError{Strategy: s, Err: errors.New("boom")}}
}

func TestMergePreservesFirstSeenOrder(t *testing.T) {
	merged := Merge([]Outcome{
		{Results: resultsFor("u1", "u2")},
		{Results: resultsFor("u2", "u3")},
	})

	require.Equal(t, []string{"u1", "u2", "u3"}, urlsOf(merged.Unique))
	require.Equal(t, 1, merged.Duplicates)
	require.Zero(t, merged.SkippedNoURL)
}

func TestMergeKeepsFirstOccurrence(t *testing.T) {
	first := search.Result{URL: "u1", Title: search.Ptr("from A")}
	second := search.Result{URL: "u1", Title: search.Ptr("from B")}

	merged := Merge([]Outcome{
		{Results: []search.Result{first}},
		{Results: []search.Result{second}},
	})

	require.Len(t, merged.Unique, 1)
	require.Equal(t, "from A", search.Text(merged.Unique[0].Title))
}

func TestMergeDropsEmptyURLsAndFailures(t *testing.T) {
	withEmpty := append(resultsFor("a"), search.Result{Title: search.Ptr("no url")}, search.Result{URL: ""})
	merged := Merge([]Outcome{
		{Results: withEmpty},
		failedOutcome(Strategy{Category: search.CategoryNews}),
		{Results: resultsFor("a", "b")},
	})

	require.Equal(t, []string{"a", "b"}, urlsOf(merged.Unique))
	require.Equal(t, 2, merged.SkippedNoURL)
	for _, r := range merged.Unique {
		require.NotEmpty(t, r.URL)
	}
}

func TestMergeInvariantsOverMixedOutcomes(t *testing.T) {
	var outcomes []Outcome
	for i := 0; i < 6; i++ {
		if i%3 == 2 {
			outcomes = append(outcomes, failedOutcome(Strategy{Category: search.CategoryGeneral}))
			continue
		}
		var urls []string
		for j := 0; j < 12; j++ {
			urls = append(urls, fmt.Sprintf("https://example.com/%d", (i*7+j)%20))
		}
		urls = append(urls, "")
		outcomes = append(outcomes, Outcome{Results: resultsFor(urls...)})
	}

	merged := Merge(outcomes)
	seen := map[string]struct{}{}
	for _, r := range merged.Unique {
		require.NotEmpty(t, r.URL)
		_, dup := seen[r.URL]
		require.False(t, dup, "duplicate url %s", r.URL)
		seen[r.URL] = struct{}{}
	}

	again := Merge(outcomes)
	require.Equal(t, merged, again)
}

func TestMergeAllFailures(t *testing.T) {
	merged := Merge([]Outcome{
		failedOutcome(Strategy{Category: search.CategoryGeneral}),
		failedOutcome(Strategy{Category: search.CategoryNews}),
	})

	require.NotNil(t, merged.Unique)
	require.Empty(t, merged.Unique)
}
