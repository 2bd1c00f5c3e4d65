package engine

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/rami-mahdi647/Satoshi-mirror-blockchain/internal/logging"
)

// DefaultRecentLimit is the number of ideas Recent returns when callers have
// no preference.
const DefaultRecentLimit = 100

// MaxRate is the largest accepted rate. Larger values would overflow the
// per-agent integer share of a tick.
const MaxRate = math.MaxInt32

// Params are the construction parameters of an Engine.
//
// Seed is stored for reproducibility reporting only; nothing in the engine
// draws random numbers from it.
type Params struct {
	AgentCount int
	Rate       float64
	Seed       int64
	Layers     []int
}

// Status is a point-in-time snapshot of engine state.
// LastCreatedAt is nil when history is empty.
type Status struct {
	AgentCount    int        `json:"bot_count"`
	Rate          float64    `json:"idea_rate"`
	Seed          int64      `json:"seed"`
	LayerCount    int        `json:"network_layers"`
	TotalEvents   int64      `json:"total_ideas"`
	LastCreatedAt *time.Time `json:"last_generated"`
}

// AgentState is a read-only view of one agent's carried state.
type AgentState struct {
	ID          int     `json:"bot_id"`
	Sequence    int64   `json:"sequence"`
	Accumulator float64 `json:"accumulator"`
}

// Engine steps a fixed fleet of agents and keeps a bounded idea history.
//
// Thread-safety model:
//   - Tick(): mutating; callers serialize it
//   - Status(), Recent(), Agents(): read-only; consistent only while no Tick is in flight
//
// INVARIANTS:
//   - agents are created once, with ids 0..agent_count-1, and never replaced
//   - agents slice order NEVER changes (tick order is ascending id)
//   - history.Len() <= history capacity
//   - totalEvents counts every event ever produced, evicted ones included
type Engine struct {
	params   Params
	agents   []*Agent
	history  *history
	clock    Clock
	renderer *SummaryRenderer
	logger   *slog.Logger

	totalEvents int64
	ticks       int64

	historyCapacity int
	locale          string
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used to stamp CreatedAt. Default: SystemClock.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithLocale sets the summary locale ("en", "es"). Default: DefaultLocale.
func WithLocale(locale string) Option {
	return func(e *Engine) {
		e.locale = locale
	}
}

// WithLogger sets the logger. Default: a logger that discards output.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithHistoryCapacity overrides the history size.
//
// Default: DefaultHistoryCapacity. Use small values to exercise eviction in tests.
func WithHistoryCapacity(n int) Option {
	return func(e *Engine) {
		e.historyCapacity = n
	}
}

// New validates p and builds an Engine.
//
// It returns a *ConfigurationError when AgentCount <= 0, Layers is empty, or
// Rate is negative, NaN, infinite or above MaxRate. Either a fully valid
// Engine is returned or none is.
//
// Layers is copied once; every agent then shares that copy read-only.
func New(p Params, opts ...Option) (*Engine, error) {
	if err := validate(p); err != nil {
		return nil, err
	}

	layers := make([]int, len(p.Layers))
	copy(layers, p.Layers)
	p.Layers = layers

	e := &Engine{
		params:          p,
		clock:           SystemClock{},
		locale:          DefaultLocale,
		historyCapacity: DefaultHistoryCapacity,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.clock == nil {
		e.clock = SystemClock{}
	}
	if e.logger == nil {
		e.logger = logging.Discard()
	}

	e.renderer = NewSummaryRenderer(e.locale)
	e.history = newHistory(e.historyCapacity)
	e.agents = make([]*Agent, p.AgentCount)
	for id := range e.agents {
		e.agents[id] = newAgent(id, layers, p.Rate)
	}

	return e, nil
}

func validate(p Params) error {
	if p.AgentCount <= 0 {
		return newConfigError(ErrCodeInvalidAgentCount, "agent_count",
			"agent_count must be greater than 0, got %d", p.AgentCount)
	}
	if len(p.Layers) == 0 {
		return newConfigError(ErrCodeEmptyLayers, "layers", "layers must not be empty")
	}
	if math.IsNaN(p.Rate) || math.IsInf(p.Rate, 0) || p.Rate < 0 {
		return newConfigError(ErrCodeInvalidRate, "rate",
			"rate must be a finite number >= 0, got %v", p.Rate)
	}
	if p.Rate > MaxRate {
		return newConfigError(ErrCodeInvalidRate, "rate",
			"rate must be at most %d, got %v", MaxRate, p.Rate)
	}
	return nil
}

// Tick steps every agent once, in ascending id order, and returns the ideas
// produced, agent-ascending then sequence-ascending.
//
// This is the only mutating operation. It never fails.
func (e *Engine) Tick() []Event {
	var batch []Event
	for _, a := range e.agents {
		batch = append(batch, a.Generate(e.clock, e.renderer)...)
	}

	e.history.Push(batch...)
	e.totalEvents += int64(len(batch))
	e.ticks++

	e.traceIdeas(batch)

	e.logger.Debug("tick",
		"tick", e.ticks,
		"generated", len(batch),
		"total_events", e.totalEvents,
		"history", e.history.Len(),
	)

	if batch == nil {
		return []Event{}
	}
	return batch
}

// traceIdeas logs one line per idea at logging.LevelTrace.
func (e *Engine) traceIdeas(batch []Event) {
	ctx := context.Background()
	if !e.logger.Enabled(ctx, logging.LevelTrace) {
		return
	}
	for _, ev := range batch {
		e.logger.Log(ctx, logging.LevelTrace, "idea",
			"tick", e.ticks,
			"bot_id", ev.AgentID,
			"sequence", ev.Sequence,
			"network_layer", ev.Layer,
			"category", string(ev.Category),
		)
	}
}

// Status returns a snapshot of the engine's configuration and counters.
func (e *Engine) Status() Status {
	s := Status{
		AgentCount:  e.params.AgentCount,
		Rate:        e.params.Rate,
		Seed:        e.params.Seed,
		LayerCount:  len(e.params.Layers),
		TotalEvents: e.totalEvents,
	}
	if last, ok := e.history.Last(); ok {
		at := last.CreatedAt
		s.LastCreatedAt = &at
	}
	return s
}

// Recent returns the newest min(limit, history length) ideas, oldest first.
// A non-positive limit returns an empty slice.
func (e *Engine) Recent(limit int) []Event {
	return e.history.Tail(limit)
}

// Agents returns the carried state of every agent in id order.
func (e *Engine) Agents() []AgentState {
	out := make([]AgentState, len(e.agents))
	for i, a := range e.agents {
		out[i] = AgentState{
			ID:          a.ID(),
			Sequence:    a.Sequence(),
			Accumulator: a.Accumulator(),
		}
	}
	return out
}

// TotalEvents returns the number of ideas produced since construction.
func (e *Engine) TotalEvents() int64 {
	return e.totalEvents
}

// Ticks returns the number of completed ticks.
func (e *Engine) Ticks() int64 {
	return e.ticks
}

// HistoryLen returns the number of retained ideas.
func (e *Engine) HistoryLen() int {
	return e.history.Len()
}

// Locale returns the summary locale actually in use.
func (e *Engine) Locale() string {
	return e.renderer.Locale().String()
}
