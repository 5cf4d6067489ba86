package research

import (
	"context"
	"time"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"

	"github.com/Laisky/searxng-mcp/library/search"
)

const defaultRequestTimeout = 10 * time.Second

// Outcome is the result of one strategy: either Results or Err is set.
type Outcome struct {
	Strategy Strategy
	// Results holds at most Strategy.ResultCap entries in provider order.
	Results []search.Result
	Err     *StrategyError
}

// Failed reports whether the strategy produced no usable results because of an error.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Executor issues one provider request per strategy.
type Executor struct {
	provider search.Provider
	timeout  time.Duration
	language string
	logger   logSDK.Logger
}

// ExecutorOption customises an Executor during construction.
type ExecutorOption func(*Executor)

// WithRequestTimeout bounds every strategy request.
func WithRequestTimeout(timeout time.Duration) ExecutorOption {
	return func(e *Executor) {
		if timeout > 0 {
			e.timeout = timeout
		}
	}
}

// WithLanguage sets the language tag sent with every strategy request.
func WithLanguage(language string) ExecutorOption {
	return func(e *Executor) {
		e.language = language
	}
}

// WithExecutorLogger overrides the executor logger.
func WithExecutorLogger(logger logSDK.Logger) ExecutorOption {
	return func(e *Executor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewExecutor builds an Executor around provider.
func NewExecutor(provider search.Provider, logger logSDK.Logger, opts ...ExecutorOption) (*Executor, error) {
	if provider == nil {
		return nil, errors.New("search provider is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	e := &Executor{
		provider: provider,
		timeout:  defaultRequestTimeout,
		logger:   logger.Named("executor"),
	}
	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// Execute runs strategy for topic. Failures come back inside the Outcome,
// never as a panic or a separate error.
func (e *Executor) Execute(ctx context.Context, topic string, strategy Strategy) Outcome {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	startAt := time.Now()
	resp, err := e.provider.Search(ctx, search.Request{
		Query:    topic,
		Category: strategy.Category,
		Engines:  strategy.Engines,
		Language: e.language,
		PageNo:   1,
	})
	if err == nil && resp == nil {
		err = errors.New("provider returned no response")
	}
	if err != nil {
		return Outcome{
			Strategy: strategy,
			Err:      &StrategyError{Strategy: strategy, Err: err},
		}
	}

	results := resp.Results
	if strategy.ResultCap > 0 && len(results) > strategy.ResultCap {
		results = results[:strategy.ResultCap]
	}

	e.logger.Debug("strategy completed",
		zap.String("strategy", strategy.String()),
		zap.Int("returned", len(resp.Results)),
		zap.Int("kept", len(results)),
		zap.Duration("cost", time.Since(startAt)),
	)

	return Outcome{
		Strategy: strategy,
		Results:  results,
	}
}
