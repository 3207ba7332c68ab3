package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sketchroom/server/internal/domain"
)

var testSettings = domain.RoomSettings{MaxParticipants: 4, AllowScreenShare: true, AllowRecording: true}

func TestGetOrCreateIsIdempotent(t *testing.T) {
	reg := NewRegistry()
	now := time.Now()

	room, created := reg.GetOrCreate("r1", "alice", testSettings, now)
	require.True(t, created)
	require.Equal(t, domain.RoomID("r1"), room.ID)
	assert.Equal(t, domain.ClientID("alice"), room.OwnerID)
	assert.Equal(t, now, room.CreatedAt)

	// Second call returns the same room unchanged, ignoring the supplied
	// settings and creator.
	other, created := reg.GetOrCreate("r1", "bob", domain.RoomSettings{MaxParticipants: 99}, now.Add(time.Hour))
	require.False(t, created)
	assert.Same(t, room, other)
	assert.Equal(t, domain.ClientID("alice"), other.OwnerID)
	assert.Equal(t, 4, other.Settings.MaxParticipants)
}

func TestGetAbsent(t *testing.T) {
	reg := NewRegistry()
	_, ok := reg.Get("nope")
	assert.False(t, ok)
}

func TestDeleteRemovesRoom(t *testing.T) {
	reg := NewRegistry()
	reg.GetOrCreate("r1", "alice", testSettings, time.Now())
	require.Equal(t, 1, reg.Len())

	reg.Delete("r1")
	_, ok := reg.Get("r1")
	assert.False(t, ok)
	assert.Equal(t, 0, reg.Len())

	// Deleting again is a no-op.
	reg.Delete("r1")
}

func TestSnapshot(t *testing.T) {
	reg := NewRegistry()
	reg.GetOrCreate("r1", "a", testSettings, time.Now())
	reg.GetOrCreate("r2", "b", testSettings, time.Now())

	snap := reg.Snapshot()
	require.Len(t, snap, 2)
	ids := map[domain.RoomID]bool{}
	for _, r := range snap {
		ids[r.ID] = true
	}
	assert.True(t, ids["r1"])
	assert.True(t, ids["r2"])
}
