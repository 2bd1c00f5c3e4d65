package engine

// DefaultHistoryCapacity is the number of ideas the engine retains.
const DefaultHistoryCapacity = 500

// history is a fixed-capacity FIFO ring of events.
//
// Push is O(1): once the ring is full, each new event overwrites the oldest
// slot and the head advances, so eviction is strictly oldest-first and no
// separate eviction pass exists.
//
// history is not safe for concurrent use; the Engine owns it.
type history struct {
	buf  []Event
	head int // index of the oldest event
	size int
}

// newHistory creates an empty ring holding at most capacity events.
func newHistory(capacity int) *history {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &history{buf: make([]Event, capacity)}
}

// Push appends events in order, evicting from the front past capacity.
func (h *history) Push(events ...Event) {
	capacity := len(h.buf)
	for _, e := range events {
		if h.size < capacity {
			h.buf[(h.head+h.size)%capacity] = e
			h.size++
			continue
		}
		h.buf[h.head] = e
		h.head = (h.head + 1) % capacity
	}
}

// Len returns the number of retained events.
func (h *history) Len() int {
	return h.size
}

// Cap returns the ring capacity.
func (h *history) Cap() int {
	return len(h.buf)
}

// Last returns the newest event, or false if the ring is empty.
func (h *history) Last() (Event, bool) {
	if h.size == 0 {
		return Event{}, false
	}
	return h.buf[(h.head+h.size-1)%len(h.buf)], true
}

// Tail returns a copy of the newest n events in chronological order.
// n is clamped to [0, Len()].
func (h *history) Tail(n int) []Event {
	if n > h.size {
		n = h.size
	}
	if n <= 0 {
		return []Event{}
	}

	out := make([]Event, n)
	start := h.head + h.size - n
	for i := 0; i < n; i++ {
		out[i] = h.buf[(start+i)%len(h.buf)]
	}
	return out
}
