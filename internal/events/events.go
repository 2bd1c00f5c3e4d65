// Package events publishes generated ideas to a message bus.
//
// Publishing is a side channel of the HTTP transport: the engine itself
// never publishes and never observes publish failures.
package events

import (
	"context"

	"github.com/rami-mahdi647/Satoshi-mirror-blockchain/internal/engine"
)

// Event topic constants.
const (
	TopicIdeasGenerated = "simulator.ideas.generated"
)

// IdeasGenerated is the envelope published once per non-empty tick.
type IdeasGenerated struct {
	BatchID    string         `json:"batch_id"`
	Generated  int            `json:"generated"`
	Ideas      []engine.Event `json:"ideas"`
	TotalIdeas int64          `json:"total_ideas"`
}

// NewIdeasGenerated builds the envelope for one tick's batch.
func NewIdeasGenerated(batchID string, ideas []engine.Event, totalIdeas int64) IdeasGenerated {
	return IdeasGenerated{
		BatchID:    batchID,
		Generated:  len(ideas),
		Ideas:      ideas,
		TotalIdeas: totalIdeas,
	}
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
