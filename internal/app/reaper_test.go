package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepEvictsOldEmptyRooms(t *testing.T) {
	h := newHarness(4)
	h.connect("v")
	// A video-only room never hits the synchronous delete-on-empty path;
	// it is exactly what the sweep exists for.
	require.NoError(t, h.coord.JoinVideoRoom("v", "stale", "V"))
	h.coord.LeaveVideoRoom("v")

	h.advance(25 * time.Hour)
	evicted := h.coord.Sweep(24 * time.Hour)

	assert.Equal(t, 1, evicted)
	_, ok := h.reg.Get("stale")
	assert.False(t, ok)
}

func TestSweepKeepsYoungEmptyRooms(t *testing.T) {
	h := newHarness(4)
	h.connect("v")
	require.NoError(t, h.coord.JoinVideoRoom("v", "young", "V"))
	h.coord.LeaveVideoRoom("v")

	h.advance(time.Hour)
	evicted := h.coord.Sweep(24 * time.Hour)

	assert.Equal(t, 0, evicted)
	_, ok := h.reg.Get("young")
	assert.True(t, ok)
}

func TestSweepNeverEvictsOccupiedRooms(t *testing.T) {
	h := newHarness(4)
	h.connect("a")
	require.NoError(t, h.coord.JoinRoom("a", "busy", "A"))

	h.advance(48 * time.Hour)
	evicted := h.coord.Sweep(24 * time.Hour)

	assert.Equal(t, 0, evicted)
	_, ok := h.reg.Get("busy")
	assert.True(t, ok)
}
