package engine

import "time"

// Category is the bucket an idea's content falls into.
type Category string

const (
	// CategoryConsensus covers heuristic values in [0, 33).
	CategoryConsensus Category = "consensus reinforcement"

	// CategoryLatency covers heuristic values in [33, 66).
	CategoryLatency Category = "latency optimization"

	// CategoryResilience covers heuristic values in [66, 100).
	CategoryResilience Category = "resilience testing"
)

// Categories lists every category in bucket order.
var Categories = []Category{CategoryConsensus, CategoryLatency, CategoryResilience}

// Event is one generated idea.
//
// Events are values: the engine hands out copies, so a returned Event can
// never be mutated through history. (AgentID, Sequence) is unique for the
// lifetime of an engine.
type Event struct {
	AgentID   int       `json:"bot_id"`
	Layer     int       `json:"network_layer"`
	Sequence  int64     `json:"sequence"`
	Summary   string    `json:"summary"`
	Category  Category  `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// Categorize buckets the triple (agentID, sequence, layer).
//
// h = (agentID*31 + sequence*17 + layer*13) mod 100, taken as a non-negative
// residue so negative layers still land in [0, 100).
func Categorize(agentID int, sequence int64, layer int) Category {
	h := (int64(agentID)*31 + sequence*17 + int64(layer)*13) % 100
	if h < 0 {
		h += 100
	}
	switch {
	case h < 33:
		return CategoryConsensus
	case h < 66:
		return CategoryLatency
	default:
		return CategoryResilience
	}
}
