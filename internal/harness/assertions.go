package harness

import (
	"fmt"
	"strings"
)

// maxTraceContext bounds how many trace entries an AssertionError prints.
const maxTraceContext = 20

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) == 0 {
		return buf.String()
	}

	trace := e.Trace
	fmt.Fprintf(&buf, "\nTrace (%d ideas", len(trace))
	if len(trace) > maxTraceContext {
		trace = trace[len(trace)-maxTraceContext:]
		fmt.Fprintf(&buf, ", last %d shown", maxTraceContext)
	}
	fmt.Fprintf(&buf, "):\n")
	for _, event := range trace {
		fmt.Fprintf(&buf, "  tick=%d bot=%d seq=%d layer=%d %s\n",
			event.Tick, event.AgentID, event.Sequence, event.Layer, event.Category)
	}

	return buf.String()
}

// EvaluateAssertions checks every assertion against result and returns one
// message per failure, in assertion order.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var failures []string
	for i, assertion := range assertions {
		if err := evaluate(result, assertion); err != nil {
			failures = append(failures, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return failures
}

func evaluate(result *Result, a Assertion) error {
	switch a.Type {
	case AssertTickCount:
		return assertTickCount(result, a)
	case AssertTotalEvents:
		return assertCount(a.Type, "total ideas", int64(deref(a.Count)), result.TotalEvents)
	case AssertHistoryLen:
		return assertCount(a.Type, "retained ideas", int64(deref(a.Count)), int64(result.HistoryLen))
	case AssertAgentSequence:
		return assertAgentSequence(result, a)
	case AssertTraceContains:
		return assertTraceContains(result.Trace, a)
	case AssertCategoryCount:
		return assertCategoryCount(result.Trace, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func assertCount(kind, what string, want, got int64) error {
	if want == got {
		return nil
	}
	return &AssertionError{
		Type:     kind,
		Expected: fmt.Sprintf("%d %s", want, what),
		Actual:   fmt.Sprintf("%d %s", got, what),
	}
}

// assertTickCount checks the number of ideas generated on one tick.
func assertTickCount(result *Result, a Assertion) error {
	if a.Tick < 1 || a.Tick > len(result.TickCounts) {
		return &AssertionError{
			Type:     AssertTickCount,
			Expected: fmt.Sprintf("tick %d to have run", a.Tick),
			Actual:   fmt.Sprintf("%d ticks ran", len(result.TickCounts)),
		}
	}
	got := result.TickCounts[a.Tick-1]
	if got == deref(a.Count) {
		return nil
	}
	return &AssertionError{
		Type:     AssertTickCount,
		Expected: fmt.Sprintf("%d ideas on tick %d", deref(a.Count), a.Tick),
		Actual:   fmt.Sprintf("%d ideas", got),
		Trace:    ticksOf(result.Trace, int64(a.Tick)),
	}
}

// assertAgentSequence checks one agent's final sequence number.
func assertAgentSequence(result *Result, a Assertion) error {
	agent := *a.Agent
	if agent < 0 || agent >= len(result.Agents) {
		return &AssertionError{
			Type:     AssertAgentSequence,
			Expected: fmt.Sprintf("agent %d to exist", agent),
			Actual:   fmt.Sprintf("%d agents", len(result.Agents)),
		}
	}
	got := result.Agents[agent].Sequence
	if got == *a.Sequence {
		return nil
	}
	return &AssertionError{
		Type:     AssertAgentSequence,
		Expected: fmt.Sprintf("agent %d at sequence %d", agent, *a.Sequence),
		Actual:   fmt.Sprintf("sequence %d", got),
	}
}

// assertTraceContains checks that some idea matches every given field.
func assertTraceContains(trace []TraceEvent, a Assertion) error {
	for _, event := range trace {
		if matchEvent(event, a) {
			return nil
		}
	}

	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: "idea with " + describeMatch(a),
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertCategoryCount checks how many ideas fell into one category.
func assertCategoryCount(trace []TraceEvent, a Assertion) error {
	got := 0
	for _, event := range trace {
		if event.Category == a.Category {
			got++
		}
	}
	return assertCount(AssertCategoryCount, fmt.Sprintf("%q ideas", a.Category), int64(deref(a.Count)), int64(got))
}

// matchEvent reports whether event matches every field given in a.
func matchEvent(event TraceEvent, a Assertion) bool {
	if a.Tick != 0 && event.Tick != int64(a.Tick) {
		return false
	}
	if a.Agent != nil && event.AgentID != *a.Agent {
		return false
	}
	if a.Sequence != nil && event.Sequence != *a.Sequence {
		return false
	}
	if a.Layer != nil && event.Layer != *a.Layer {
		return false
	}
	if a.Category != "" && event.Category != a.Category {
		return false
	}
	if a.Summary != "" && event.Summary != a.Summary {
		return false
	}
	return true
}

// describeMatch renders the given fields of a in a fixed order.
func describeMatch(a Assertion) string {
	var parts []string
	if a.Tick != 0 {
		parts = append(parts, fmt.Sprintf("tick=%d", a.Tick))
	}
	if a.Agent != nil {
		parts = append(parts, fmt.Sprintf("bot=%d", *a.Agent))
	}
	if a.Sequence != nil {
		parts = append(parts, fmt.Sprintf("seq=%d", *a.Sequence))
	}
	if a.Layer != nil {
		parts = append(parts, fmt.Sprintf("layer=%d", *a.Layer))
	}
	if a.Category != "" {
		parts = append(parts, fmt.Sprintf("category=%q", a.Category))
	}
	if a.Summary != "" {
		parts = append(parts, fmt.Sprintf("summary=%q", a.Summary))
	}
	return strings.Join(parts, " ")
}

func ticksOf(trace []TraceEvent, tick int64) []TraceEvent {
	var out []TraceEvent
	for _, event := range trace {
		if event.Tick == tick {
			out = append(out, event)
		}
	}
	return out
}
