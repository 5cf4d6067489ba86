package research

import (
	"context"
	"strings"
	"time"

	"github.com/Laisky/errors/v2"
	gutils "github.com/Laisky/go-utils/v6"
	logSDK "github.com/Laisky/go-utils/v6/log"
	"github.com/Laisky/zap"

	"github.com/Laisky/searxng-mcp/library/search"
)

// Engine runs Plan, fan-out, Merge and Compose for one topic.
// It keeps no state between invocations and is safe for concurrent use.
type Engine struct {
	coordinator   *Coordinator
	fanoutTimeout time.Duration
	logger        logSDK.Logger
}

// EngineOption customises an Engine during construction.
type EngineOption func(*engineConfig)

type engineConfig struct {
	executorOpts  []ExecutorOption
	fanoutTimeout time.Duration
}

// WithStrategyTimeout bounds each strategy request.
func WithStrategyTimeout(timeout time.Duration) EngineOption {
	return func(c *engineConfig) {
		c.executorOpts = append(c.executorOpts, WithRequestTimeout(timeout))
	}
}

// WithSearchLanguage sets the language tag sent with every strategy request.
func WithSearchLanguage(language string) EngineOption {
	return func(c *engineConfig) {
		c.executorOpts = append(c.executorOpts, WithLanguage(language))
	}
}

// WithFanoutTimeout caps the whole fan-out. Zero disables the overall budget,
// in which case only the per-strategy timeout applies.
func WithFanoutTimeout(timeout time.Duration) EngineOption {
	return func(c *engineConfig) {
		if timeout >= 0 {
			c.fanoutTimeout = timeout
		}
	}
}

// NewEngine builds an Engine that queries provider.
func NewEngine(provider search.Provider, logger logSDK.Logger, opts ...EngineOption) (*Engine, error) {
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	cfg := new(engineConfig)
	for _, opt := range opts {
		opt(cfg)
	}

	logger = logger.Named("research")
	executor, err := NewExecutor(provider, logger, cfg.executorOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "new executor")
	}

	return &Engine{
		coordinator:   NewCoordinator(executor, logger),
		fanoutTimeout: cfg.fanoutTimeout,
		logger:        logger,
	}, nil
}

// Research gathers unique results for topic at the given depth.
// Only an invalid topic or depth is returned as an error; strategy failures
// are reported on the Result.
func (e *Engine) Research(ctx context.Context, topic string, depth Depth) (*Result, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, errors.New("research topic cannot be empty")
	}

	strategies, perStrategyCap, err := Plan(depth)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	logger := e.logger.With(
		zap.String("research_id", gutils.UUID7()),
		zap.String("depth", string(depth)),
	)
	logger.Info("research started",
		zap.Int("topic_len", len(topic)),
		zap.Int("strategies", len(strategies)),
		zap.Int("per_strategy_cap", perStrategyCap),
	)

	if e.fanoutTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.fanoutTimeout)
		defer cancel()
	}

	startAt := time.Now()
	outcomes := e.coordinator.Run(ctx, topic, strategies)
	merged := Merge(outcomes)

	result := Compose(merged.Unique, len(strategies))
	result.Topic = topic
	result.Depth = depth
	result.SkippedNoURL = merged.SkippedNoURL
	for _, outcome := range outcomes {
		if outcome.Failed() {
			result.Failures = append(result.Failures, outcome.Err)
		}
	}
	result.StrategiesFailed = len(result.Failures)

	if merged.SkippedNoURL > 0 {
		logger.Debug("results without url skipped", zap.Int("skipped", merged.SkippedNoURL))
	}
	logger.Info("research completed",
		zap.Int("unique", result.TotalUnique),
		zap.Int("duplicates", merged.Duplicates),
		zap.Int("strategies_failed", result.StrategiesFailed),
		zap.Duration("cost", time.Since(startAt)),
	)

	return result, nil
}
