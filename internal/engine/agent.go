package engine

import "math"

// Agent is a single idea generator ("bot").
//
// An Agent carries two pieces of state across ticks: its sequence counter and
// its fractional accumulator. Both are owned exclusively by the Engine that
// created the agent; Generate must not be called concurrently.
//
// INVARIANTS:
//   - sequence never decreases and advances by exactly the number of ideas emitted
//   - accumulator stays in [0, 1) after every Generate
//   - layers is shared read-only with every other agent of the engine
type Agent struct {
	id     int
	layers []int
	rate   float64

	// base and frac split rate once; rate never changes after construction.
	base int64
	frac float64

	sequence    int64
	accumulator float64
}

func newAgent(id int, layers []int, rate float64) *Agent {
	base := math.Floor(rate)
	return &Agent{
		id:     id,
		layers: layers,
		rate:   rate,
		base:   int64(base),
		frac:   rate - base,
	}
}

// ID returns the agent id (0..agent_count-1).
func (a *Agent) ID() int {
	return a.id
}

// Sequence returns the sequence number of the last idea emitted (0 before the first).
func (a *Agent) Sequence() int64 {
	return a.sequence
}

// Accumulator returns the carried fractional remainder.
func (a *Agent) Accumulator() float64 {
	return a.accumulator
}

// Generate advances the agent by one tick and returns the ideas it emits,
// in generation order. The result is empty when the carry does not reach 1
// and rate is below 1.
func (a *Agent) Generate(clock Clock, render *SummaryRenderer) []Event {
	var extra int64
	if a.frac > 0 {
		a.accumulator += a.frac
		if a.accumulator >= 1 {
			a.accumulator--
			extra = 1
		}
	}

	total := a.base + extra
	if total <= 0 {
		return nil
	}

	out := make([]Event, 0, total)
	for i := int64(0); i < total; i++ {
		a.sequence++
		layer := a.layerFor(a.sequence)
		category := Categorize(a.id, a.sequence, layer)
		out = append(out, Event{
			AgentID:   a.id,
			Layer:     layer,
			Sequence:  a.sequence,
			Summary:   render.Render(category, layer),
			Category:  category,
			CreatedAt: clock.Now(),
		})
	}
	return out
}

// layerFor selects layers[(sequence + id) mod len(layers)].
func (a *Agent) layerFor(sequence int64) int {
	n := int64(len(a.layers))
	return a.layers[(sequence+int64(a.id))%n]
}
