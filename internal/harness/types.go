package harness

import "github.com/rami-mahdi647/Satoshi-mirror-blockchain/internal/engine"

// TraceEvent is one generated idea as recorded in a scenario trace.
// CreatedAt is left out: it is constant under the harness clock.
type TraceEvent struct {
	Tick     int64  `json:"tick"`
	AgentID  int    `json:"bot_id"`
	Sequence int64  `json:"sequence"`
	Layer    int    `json:"network_layer"`
	Category string `json:"category"`
	Summary  string `json:"summary"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success.
	// True if every assertion holds.
	Pass bool `json:"pass"`

	// Trace contains every idea in generation order.
	Trace []TraceEvent `json:"trace"`

	// TickCounts holds the number of ideas generated on each tick.
	TickCounts []int `json:"tick_counts"`

	// TotalEvents and HistoryLen are read from the engine after the last tick.
	TotalEvents int64 `json:"total_events"`
	HistoryLen  int   `json:"history_len"`

	// Agents is the final per-agent state.
	Agents []engine.AgentState `json:"agents"`

	// Errors contains assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:       true,
		Trace:      []TraceEvent{},
		TickCounts: []int{},
		Agents:     []engine.AgentState{},
		Errors:     []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTick records one tick's batch.
func (r *Result) AddTick(tick int64, ideas []engine.Event) {
	r.TickCounts = append(r.TickCounts, len(ideas))
	for _, idea := range ideas {
		r.Trace = append(r.Trace, TraceEvent{
			Tick:     tick,
			AgentID:  idea.AgentID,
			Sequence: idea.Sequence,
			Layer:    idea.Layer,
			Category: string(idea.Category),
			Summary:  idea.Summary,
		})
	}
}
