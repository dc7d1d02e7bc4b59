// Package events fans bridge cycle outcomes out to in-process observers such
// as the monitor.
package events

import (
	"sync"
	"sync/atomic"
	"time"
)

// Event types.
const (
	TypeCycleHandled = "cycle.handled"
	TypeCycleFailed  = "cycle.failed"
	TypeBridgeState  = "bridge.state"
)

// Cycle describes one processed command.
type Cycle struct {
	ID         string        `json:"id"`
	Command    string        `json:"command"`
	TrackIndex int           `json:"track_index"`
	Success    bool          `json:"success"`
	Kind       string        `json:"kind"`
	Message    string        `json:"message,omitempty"`
	Duration   time.Duration `json:"duration"`
	WriteError string        `json:"write_error,omitempty"`
}

type Event struct {
	ID    int64     `json:"id"`
	Type  string    `json:"type"`
	At    time.Time `json:"at"`
	Cycle *Cycle    `json:"cycle,omitempty"`
	State string    `json:"state,omitempty"`
}

// Hub is an in-memory pub/sub with a small ring buffer for late subscribers.
type Hub struct {
	nextID atomic.Int64

	mu    sync.Mutex
	ring  []Event
	start int
	size  int

	subs      map[int]chan Event
	nextSubID int
}

func NewHub(capacity int) *Hub {
	if capacity <= 0 {
		capacity = 100
	}
	return &Hub{
		ring: make([]Event, capacity),
		subs: make(map[int]chan Event),
	}
}

// PublishCycle records a processed command.
func (h *Hub) PublishCycle(c Cycle) {
	typ := TypeCycleHandled
	if !c.Success {
		typ = TypeCycleFailed
	}
	h.publish(Event{Type: typ, Cycle: &c})
}

// PublishState announces a bridge lifecycle change ("serving", "stopped").
func (h *Hub) PublishState(state string) {
	h.publish(Event{Type: TypeBridgeState, State: state})
}

func (h *Hub) publish(ev Event) {
	if h == nil {
		return
	}
	ev.ID = h.nextID.Add(1)
	ev.At = time.Now().UTC()

	h.mu.Lock()
	h.pushLocked(ev)
	for _, ch := range h.subs {
		// Slow subscribers drop events rather than stall the cycle loop.
		select {
		case ch <- ev:
		default:
		}
	}
	h.mu.Unlock()
}

func (h *Hub) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextSubID
	h.nextSubID++
	ch := make(chan Event, 128)
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		if c, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(c)
		}
		h.mu.Unlock()
	}

	return ch, cancel
}

// SnapshotSince returns buffered events with ID > lastID, oldest first.
func (h *Hub) SnapshotSince(lastID int64) []Event {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Event, 0, h.size)
	for i := 0; i < h.size; i++ {
		ev := h.ring[(h.start+i)%len(h.ring)]
		if ev.ID > lastID {
			out = append(out, ev)
		}
	}
	return out
}

func (h *Hub) pushLocked(ev Event) {
	capacity := len(h.ring)
	if h.size < capacity {
		h.ring[(h.start+h.size)%capacity] = ev
		h.size++
		return
	}
	h.ring[h.start] = ev
	h.start = (h.start + 1) % capacity
}
