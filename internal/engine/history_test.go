package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seqEvents(from, to int64) []Event {
	var out []Event
	for s := from; s <= to; s++ {
		out = append(out, Event{Sequence: s})
	}
	return out
}

func sequences(events []Event) []int64 {
	out := make([]int64, len(events))
	for i, e := range events {
		out[i] = e.Sequence
	}
	return out
}

func TestHistory_DefaultCapacity(t *testing.T) {
	assert.Equal(t, DefaultHistoryCapacity, newHistory(0).Cap())
	assert.Equal(t, DefaultHistoryCapacity, newHistory(-1).Cap())
	assert.Equal(t, 8, newHistory(8).Cap())
}

func TestHistory_Empty(t *testing.T) {
	h := newHistory(4)

	_, ok := h.Last()
	assert.False(t, ok)
	assert.Equal(t, 0, h.Len())
	assert.Empty(t, h.Tail(10))
}

func TestHistory_PushBelowCapacity(t *testing.T) {
	h := newHistory(4)
	h.Push(seqEvents(1, 3)...)

	assert.Equal(t, 3, h.Len())
	assert.Equal(t, []int64{1, 2, 3}, sequences(h.Tail(10)))

	last, ok := h.Last()
	require.True(t, ok)
	assert.Equal(t, int64(3), last.Sequence)
}

func TestHistory_EvictsOldestFirst(t *testing.T) {
	h := newHistory(4)
	h.Push(seqEvents(1, 3)...)
	h.Push(seqEvents(4, 6)...)

	assert.Equal(t, 4, h.Len())
	assert.Equal(t, []int64{3, 4, 5, 6}, sequences(h.Tail(4)))
}

func TestHistory_PushLargerThanCapacity(t *testing.T) {
	h := newHistory(3)
	h.Push(seqEvents(1, 10)...)

	assert.Equal(t, []int64{8, 9, 10}, sequences(h.Tail(3)))
}

func TestHistory_TailClampsAndWraps(t *testing.T) {
	h := newHistory(5)
	for s := int64(1); s <= 12; s++ {
		h.Push(Event{Sequence: s})
	}

	assert.Equal(t, []int64{12}, sequences(h.Tail(1)))
	assert.Equal(t, []int64{10, 11, 12}, sequences(h.Tail(3)))
	assert.Equal(t, []int64{8, 9, 10, 11, 12}, sequences(h.Tail(99)))
	assert.Empty(t, h.Tail(0))
	assert.Empty(t, h.Tail(-4))
}

func TestHistory_TailIsACopy(t *testing.T) {
	h := newHistory(2)
	h.Push(Event{Sequence: 1})

	tail := h.Tail(1)
	tail[0].Sequence = 42

	assert.Equal(t, []int64{1}, sequences(h.Tail(1)))
}
