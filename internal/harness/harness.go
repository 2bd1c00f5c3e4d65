package harness

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rami-mahdi647/Satoshi-mirror-blockchain/internal/engine"
	"github.com/rami-mahdi647/Satoshi-mirror-blockchain/internal/logging"
	"github.com/rami-mahdi647/Satoshi-mirror-blockchain/internal/testutil"
)

// Option configures a scenario run.
type Option func(*runConfig)

type runConfig struct {
	logger *slog.Logger
}

// WithLogger routes engine tick logs to l. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(c *runConfig) {
		c.logger = l
	}
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh engine with a fixed clock so that
// traces are reproducible.
//
// Execution flow:
//  1. Build the engine from the scenario config
//  2. Check expect_error, if any, and stop
//  3. Tick the engine, recording every batch
//  4. Evaluate assertions against the result
//
// A non-nil error means the scenario could not run at all (for example an
// unexpected configuration error). Assertion failures are reported in
// Result.Errors instead.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	cfg := runConfig{logger: logging.Discard()}
	for _, opt := range opts {
		opt(&cfg)
	}

	engineOpts := []engine.Option{
		engine.WithClock(testutil.NewFixedClock(testutil.Epoch)),
		engine.WithLogger(cfg.logger),
	}
	if scenario.Config.Locale != "" {
		engineOpts = append(engineOpts, engine.WithLocale(scenario.Config.Locale))
	}
	if scenario.Config.HistoryCapacity > 0 {
		engineOpts = append(engineOpts, engine.WithHistoryCapacity(scenario.Config.HistoryCapacity))
	}

	result := NewResult()

	eng, err := engine.New(scenario.Config.Params(), engineOpts...)
	if scenario.ExpectError != "" {
		checkExpectedError(result, scenario.ExpectError, err)
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	for tick := 1; tick <= scenario.Ticks; tick++ {
		result.AddTick(int64(tick), eng.Tick())
	}

	result.TotalEvents = eng.TotalEvents()
	result.HistoryLen = eng.HistoryLen()
	result.Agents = eng.Agents()

	cfg.logger.Debug("scenario executed",
		"scenario", scenario.Name,
		"ticks", scenario.Ticks,
		"total_events", result.TotalEvents,
	)

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	return result, nil
}

func checkExpectedError(result *Result, want string, err error) {
	if err == nil {
		result.AddError(fmt.Sprintf("expected configuration error %s, engine was created", want))
		return
	}
	var ce *engine.ConfigurationError
	if !errors.As(err, &ce) {
		result.AddError(fmt.Sprintf("expected configuration error %s, got %v", want, err))
		return
	}
	if string(ce.Code) != want {
		result.AddError(fmt.Sprintf("expected configuration error %s, got %s", want, ce.Code))
	}
}
