// Package research fans one topic out over several SearXNG strategies and
// merges the results into a single URL-unique list.
package research

import (
	"strings"

	"github.com/Laisky/errors/v2"

	"github.com/Laisky/searxng-mcp/library/search"
)

// Depth selects which strategy battery is planned.
type Depth string

const (
	DepthQuick    Depth = "quick"
	DepthStandard Depth = "standard"
	DepthDeep     Depth = "deep"
)

// DefaultDepth is used when the caller does not choose one.
const DefaultDepth = DepthStandard

// Strategy is one category/engine combination executed as a single search request.
type Strategy struct {
	Category search.Category
	// Engines is nil when the provider should use all of its default engines.
	Engines   []string
	ResultCap int
}

// String renders the strategy for logs, e.g. "general[google,bing]" or "news[*]".
func (s Strategy) String() string {
	engines := "*"
	if len(s.Engines) > 0 {
		engines = strings.Join(s.Engines, ",")
	}
	return string(s.Category) + "[" + engines + "]"
}

type strategySpec struct {
	category search.Category
	engines  []string
}

type battery struct {
	strategies []strategySpec
	cap        int
}

var batteries = map[Depth]battery{
	DepthQuick: {
		strategies: []strategySpec{
			{category: search.CategoryGeneral},
			{category: search.CategoryNews},
		},
		cap: 10,
	},
	DepthStandard: {
		strategies: []strategySpec{
			{category: search.CategoryGeneral, engines: []string{"google", "bing"}},
			{category: search.CategoryGeneral, engines: []string{"duckduckgo", "brave"}},
			{category: search.CategoryNews},
			{category: search.CategoryGeneral, engines: []string{"wikipedia"}},
		},
		cap: 10,
	},
	DepthDeep: {
		strategies: []strategySpec{
			{category: search.CategoryGeneral, engines: []string{"google", "bing"}},
			{category: search.CategoryGeneral, engines: []string{"duckduckgo", "brave"}},
			{category: search.CategoryNews, engines: []string{"google", "bing"}},
			{category: search.CategoryNews, engines: []string{"duckduckgo"}},
			{category: search.CategoryGeneral, engines: []string{"wikipedia"}},
			{category: search.CategoryGeneral},
		},
		cap: 15,
	},
}

// ParseDepth converts user input into a Depth. Blank input yields DefaultDepth.
func ParseDepth(raw string) (Depth, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return DefaultDepth, nil
	}

	depth := Depth(trimmed)
	if _, ok := batteries[depth]; !ok {
		return "", errors.Wrapf(ErrUnknownDepth, "%q", raw)
	}
	return depth, nil
}

// Plan returns the fixed strategy battery and per-strategy cap for depth.
// Every call returns freshly allocated strategies.
func Plan(depth Depth) ([]Strategy, int, error) {
	b, ok := batteries[depth]
	if !ok {
		return nil, 0, errors.Wrapf(ErrUnknownDepth, "%q", depth)
	}

	strategies := make([]Strategy, 0, len(b.strategies))
	for _, entry := range b.strategies {
		var engines []string
		if len(entry.engines) > 0 {
			engines = append([]string(nil), entry.engines...)
		}
		strategies = append(strategies, Strategy{
			Category:  entry.category,
			Engines:   engines,
			ResultCap: b.cap,
		})
	}

	return strategies, b.cap, nil
}
