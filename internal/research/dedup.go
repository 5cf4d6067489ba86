package research

import "github.com/Laisky/searxng-mcp/library/search"

// MergeResult is the URL-unique union of all successful outcomes.
type MergeResult struct {
	// Unique holds results in first-seen order.
	Unique []search.Result
	// SkippedNoURL counts results dropped because they carried no URL.
	SkippedNoURL int
	// Duplicates counts results dropped because their URL was already seen.
	Duplicates int
}

// Merge walks outcomes in order, and each outcome's results in provider order,
// keeping the first result for every non-empty URL. Failed outcomes contribute nothing.
func Merge(outcomes []Outcome) MergeResult {
	total := 0
	for _, o := range outcomes {
		total += len(o.Results)
	}

	merged := MergeResult{Unique: make([]search.Result, 0, total)}
	seen := make(map[string]struct{}, total)
	for _, o := range outcomes {
		if o.Failed() {
			continue
		}
		for _, r := range o.Results {
			if r.URL == "" {
				merged.SkippedNoURL++
				continue
			}
			if _, ok := seen[r.URL]; ok {
				merged.Duplicates++
				continue
			}
			seen[r.URL] = struct{}{}
			merged.Unique = append(merged.Unique, r)
		}
	}

	return merged
}
