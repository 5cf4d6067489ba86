package research

import "github.com/Laisky/searxng-mcp/library/search"

const (
	// MaxDisplayed bounds how many unique results are presented.
	MaxDisplayed = 25
	// SnippetLimit is the rune budget for displayed content snippets.
	SnippetLimit = 100
)

// Result is the aggregate produced by one research invocation.
type Result struct {
	Topic string
	Depth Depth
	// Unique is the full deduplicated set, untruncated.
	Unique []search.Result
	// Displayed is the first MaxDisplayed entries of Unique with snippets truncated.
	Displayed           []search.Result
	TotalUnique         int
	DisplayedCount      int
	StrategiesAttempted int
	StrategiesFailed    int
	SkippedNoURL        int
	Failures            []*StrategyError
}

// Empty reports whether no unique result was gathered.
func (r *Result) Empty() bool {
	return r.TotalUnique == 0
}

// Compose bounds unique for display. Counting and ordering use the
// untruncated set, only the displayed copies get shortened snippets.
func Compose(unique []search.Result, strategiesAttempted int) *Result {
	shown := len(unique)
	if shown > MaxDisplayed {
		shown = MaxDisplayed
	}

	displayed := make([]search.Result, shown)
	for i := 0; i < shown; i++ {
		item := unique[i]
		if item.Content != nil {
			item.Content = search.Ptr(search.Truncate(*item.Content, SnippetLimit))
		}
		displayed[i] = item
	}

	return &Result{
		Unique:              unique,
		Displayed:           displayed,
		TotalUnique:         len(unique),
		DisplayedCount:      shown,
		StrategiesAttempted: strategiesAttempted,
	}
}
