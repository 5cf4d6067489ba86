package research

import (
	"context"

	"github.com/Laisky/errors/v2"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"
	"golang.org/x/sync/errgroup"
)

// StrategyExecutor runs a single strategy.
type StrategyExecutor interface {
	Execute(ctx context.Context, topic string, strategy Strategy) Outcome
}

// Coordinator runs every planned strategy concurrently and collects one
// Outcome per strategy, in plan order. Failed strategies are not retried.
type Coordinator struct {
	executor StrategyExecutor
	logger   logSDK.Logger
}

// NewCoordinator wraps executor.
func NewCoordinator(executor StrategyExecutor, logger logSDK.Logger) *Coordinator {
	return &Coordinator{
		executor: executor,
		logger:   logger,
	}
}

// Run executes strategies for topic and waits for all of them.
// outcomes[i] always belongs to strategies[i]. A panicking executor yields a
// failed outcome for its strategy only.
func (c *Coordinator) Run(ctx context.Context, topic string, strategies []Strategy) []Outcome {
	outcomes := make([]Outcome, len(strategies))
	if len(strategies) == 0 {
		return outcomes
	}

	// plain Group: one failing strategy must not cancel its siblings
	var pool errgroup.Group
	pool.SetLimit(len(strategies))

	for i := range strategies {
		idx := i
		pool.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					strategy := strategies[idx]
					outcomes[idx] = Outcome{
						Strategy: strategy,
						Err:      &StrategyError{Strategy: strategy, Err: errors.Errorf("strategy panicked: %v", r)},
					}
				}
			}()
			outcomes[idx] = c.executor.Execute(ctx, topic, strategies[idx])
			return nil
		})
	}
	_ = pool.Wait()

	for _, outcome := range outcomes {
		if outcome.Failed() && c.logger != nil {
			c.logger.Warn("search strategy failed",
				zap.String("strategy", outcome.Strategy.String()),
				zap.Error(outcome.Err.Err),
			)
		}
	}

	return outcomes
}
