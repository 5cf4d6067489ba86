package tools

import (
	"math"
	"strings"

	"github.com/Laisky/errors/v2"
	"github.com/mark3labs/mcp-go/mcp"
)

const (
	defaultMaxResults = 10
	minMaxResults     = 1
	maxMaxResults     = 50
)

// readQueryArg returns the trimmed, required query argument.
func readQueryArg(req mcp.CallToolRequest) (string, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return "", errors.WithStack(err)
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return "", errors.New("query cannot be empty")
	}
	return query, nil
}

// readStringArg extracts an optional string argument from the request.
func readStringArg(req mcp.CallToolRequest, key string) string {
	if raw, ok := req.GetArguments()[key].(string); ok {
		return strings.TrimSpace(raw)
	}
	return ""
}

// readMaxResultsArg parses max_results, falling back to the default when absent.
func readMaxResultsArg(req mcp.CallToolRequest) (int, error) {
	raw, exists := req.GetArguments()["max_results"]
	if !exists || raw == nil {
		return defaultMaxResults, nil
	}

	var value int
	switch v := raw.(type) {
	case int:
		value = v
	case int64:
		value = int(v)
	case float64:
		if v != math.Trunc(v) {
			return 0, errors.Errorf("max_results must be an integer, got %v", v)
		}
		value = int(v)
	default:
		return 0, errors.Errorf("max_results must be a number, got %T", raw)
	}

	if value < minMaxResults || value > maxMaxResults {
		return 0, errors.Errorf("max_results must be between %d and %d, got %d",
			minMaxResults, maxMaxResults, value)
	}
	return value, nil
}

func firstN[T any](items []T, n int) []T {
	if n < len(items) {
		return items[:n]
	}
	return items
}
