package research

import (
	"github.com/Laisky/errors/v2"
)

// ErrUnknownDepth is returned for a depth outside quick/standard/deep.
// It aborts the invocation before any request is sent.
var ErrUnknownDepth = errors.New("unknown research depth")

// StrategyError records why a single strategy produced no results.
// It never aborts a research run.
type StrategyError struct {
	Strategy Strategy
	Err      error
}

func (e *StrategyError) Error() string {
	if e == nil {
		return ""
	}
	return "strategy " + e.Strategy.String() + " failed: " + e.Err.Error()
}

func (e *StrategyError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
