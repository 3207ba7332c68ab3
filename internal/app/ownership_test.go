package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sketchroom/server/internal/domain"
)

func TestTransferByOwner(t *testing.T) {
	h := newHarness(4)
	alice := h.connect("alice")
	bob := h.connect("bob")
	require.NoError(t, h.coord.JoinRoom("alice", "r1", "Alice"))
	h.advance(time.Second)
	require.NoError(t, h.coord.JoinRoom("bob", "r1", "Bob"))
	alice.reset()
	bob.reset()

	h.coord.TransferOwnership("alice", "bob")

	room := h.room(t, "r1")
	assert.Equal(t, domain.ClientID("bob"), room.OwnerID)
	assert.False(t, room.Participants["alice"].IsOwner)
	assert.True(t, room.Participants["bob"].IsOwner)

	for _, conn := range []*fakeConn{alice, bob} {
		evs := conn.eventsOfType(t, "ownership-transferred")
		require.Len(t, evs, 1)
		assert.Equal(t, "bob", evs[0]["newOwnerId"])
		assert.Len(t, evs[0]["users"], 2)
	}
}

func TestTransferByNonOwnerIsNoop(t *testing.T) {
	h := newHarness(4)
	alice := h.connect("alice")
	bob := h.connect("bob")
	require.NoError(t, h.coord.JoinRoom("alice", "r1", "Alice"))
	h.advance(time.Second)
	require.NoError(t, h.coord.JoinRoom("bob", "r1", "Bob"))
	alice.reset()
	bob.reset()

	h.coord.TransferOwnership("bob", "bob")

	room := h.room(t, "r1")
	assert.Equal(t, domain.ClientID("alice"), room.OwnerID)
	assert.True(t, room.Participants["alice"].IsOwner)
	assert.False(t, room.Participants["bob"].IsOwner)
	// No feedback either way.
	assert.Empty(t, alice.events(t))
	assert.Empty(t, bob.events(t))
}

func TestTransferToNonMemberIsIgnored(t *testing.T) {
	h := newHarness(4)
	h.connect("alice")
	require.NoError(t, h.coord.JoinRoom("alice", "r1", "Alice"))

	h.coord.TransferOwnership("alice", "ghost")

	room := h.room(t, "r1")
	assert.Equal(t, domain.ClientID("alice"), room.OwnerID)
}

func TestOwnerDisconnectDelegatesToEarliestJoined(t *testing.T) {
	h := newHarness(4)
	h.connect("alice")
	bob := h.connect("bob")
	carol := h.connect("carol")
	require.NoError(t, h.coord.JoinRoom("alice", "r1", "Alice"))
	h.advance(time.Second)
	require.NoError(t, h.coord.JoinRoom("bob", "r1", "Bob"))
	h.advance(time.Second)
	require.NoError(t, h.coord.JoinRoom("carol", "r1", "Carol"))
	bob.reset()
	carol.reset()

	h.coord.Disconnect("alice")

	room := h.room(t, "r1")
	require.Len(t, room.Participants, 2)
	assert.Equal(t, domain.ClientID("bob"), room.OwnerID)
	assert.True(t, room.Participants["bob"].IsOwner)
	assert.False(t, room.Participants["carol"].IsOwner)

	evs := bob.eventsOfType(t, "ownership-transferred")
	require.Len(t, evs, 1)
	assert.Equal(t, "bob", evs[0]["newOwnerId"])
	require.Len(t, carol.eventsOfType(t, "ownership-transferred"), 1)
}

func TestOwnerSuccessionScenario(t *testing.T) {
	// A joins and becomes owner, B joins, A disconnects: B must become
	// owner, learn about it, and the room must survive with one member.
	h := newHarness(4)
	h.connect("a")
	b := h.connect("b")
	require.NoError(t, h.coord.JoinRoom("a", "r1", "A"))
	h.advance(time.Second)
	require.NoError(t, h.coord.JoinRoom("b", "r1", "B"))
	b.reset()

	h.coord.Disconnect("a")

	room := h.room(t, "r1")
	assert.Len(t, room.Participants, 1)
	assert.Equal(t, domain.ClientID("b"), room.OwnerID)

	evs := b.eventsOfType(t, "ownership-transferred")
	require.Len(t, evs, 1)
	assert.Equal(t, "b", evs[0]["newOwnerId"])
}

func TestNonOwnerLeaveKeepsOwner(t *testing.T) {
	h := newHarness(4)
	alice := h.connect("alice")
	h.connect("bob")
	require.NoError(t, h.coord.JoinRoom("alice", "r1", "Alice"))
	h.advance(time.Second)
	require.NoError(t, h.coord.JoinRoom("bob", "r1", "Bob"))
	alice.reset()

	h.coord.LeaveRoom("bob")

	room := h.room(t, "r1")
	assert.Equal(t, domain.ClientID("alice"), room.OwnerID)
	assert.Empty(t, alice.eventsOfType(t, "ownership-transferred"))
}

func TestFirstGeneralJoinerClaimsVideoOnlyRoom(t *testing.T) {
	h := newHarness(4)
	h.connect("v")
	h.connect("g")
	require.NoError(t, h.coord.JoinVideoRoom("v", "r1", "V"))
	h.advance(time.Second)

	require.NoError(t, h.coord.JoinRoom("g", "r1", "G"))

	room := h.room(t, "r1")
	assert.Equal(t, domain.ClientID("g"), room.OwnerID)
	assert.True(t, room.Participants["g"].IsOwner)
	assert.False(t, room.VideoParticipants["v"].IsOwner)
}
