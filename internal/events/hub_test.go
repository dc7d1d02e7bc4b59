package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishCycleTypes(t *testing.T) {
	h := NewHub(10)
	h.PublishCycle(Cycle{Command: "PING", Success: true, Kind: "ok"})
	h.PublishCycle(Cycle{Command: "RENDER_TRACK", Kind: "no_content"})

	evs := h.SnapshotSince(0)
	require.Len(t, evs, 2)
	assert.Equal(t, TypeCycleHandled, evs[0].Type)
	assert.Equal(t, TypeCycleFailed, evs[1].Type)
	assert.Equal(t, "RENDER_TRACK", evs[1].Cycle.Command)
	assert.Less(t, evs[0].ID, evs[1].ID)
}

func TestRingOverwritesOldest(t *testing.T) {
	h := NewHub(3)
	for i := 0; i < 5; i++ {
		h.PublishState("serving")
	}
	evs := h.SnapshotSince(0)
	require.Len(t, evs, 3)
	assert.EqualValues(t, 3, evs[0].ID)
	assert.EqualValues(t, 5, evs[2].ID)

	assert.Len(t, h.SnapshotSince(4), 1)
}

func TestSubscribeReceivesAndCancels(t *testing.T) {
	h := NewHub(0)
	ch, cancel := h.Subscribe()

	h.PublishState("serving")
	select {
	case ev := <-ch:
		assert.Equal(t, TypeBridgeState, ev.Type)
		assert.Equal(t, "serving", ev.State)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}

	cancel()
	_, open := <-ch
	assert.False(t, open)
	cancel()

	// Publishing with no subscribers must not block.
	h.PublishState("stopped")
}

func TestNilHubPublishIsNoop(t *testing.T) {
	var h *Hub
	h.PublishCycle(Cycle{Command: "PING"})
}
