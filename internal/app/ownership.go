package app

import (
	"github.com/rs/zerolog/log"

	"github.com/sketchroom/server/internal/domain"
)

// TransferOwnership hands the owner role to another general participant.
// Requests from anyone but the current owner, or naming a non-member, are
// silently ignored: authorization failures get no feedback.
func (c *Coordinator) TransferOwnership(id, newOwnerID domain.ClientID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	st, ok := c.conns[id]
	if !ok {
		return
	}
	room, ok := c.registry.Get(st.roomID)
	if !ok {
		return
	}
	if room.OwnerID != id {
		log.Warn().Str("module", "app.coordinator").Str("room", string(room.ID)).Str("client", string(id)).Msg("ownership transfer by non-owner ignored")
		return
	}
	if _, member := room.Participants[newOwnerID]; !member {
		log.Warn().Str("module", "app.coordinator").Str("room", string(room.ID)).Str("target", string(newOwnerID)).Msg("ownership transfer to non-member ignored")
		return
	}

	room.OwnerID = newOwnerID
	room.RecomputeOwnership()
	log.Info().Str("module", "app.coordinator").Str("room", string(room.ID)).Str("owner", string(newOwnerID)).Msg("ownership transferred")

	c.broadcast(room, "", ownershipTransferredEvent{
		Type:       "ownership-transferred",
		NewOwnerID: newOwnerID,
		Users:      room.Roster(),
	})
}

// delegateOwnerLocked reassigns ownership after the owner departs a
// non-empty roster: the longest-present remaining member takes over.
// Caller holds c.mu and has already removed the departing entry.
func (c *Coordinator) delegateOwnerLocked(room *domain.Room) {
	next, ok := room.NextOwner()
	if !ok {
		return
	}
	room.OwnerID = next
	room.RecomputeOwnership()
	log.Info().Str("module", "app.coordinator").Str("room", string(room.ID)).Str("owner", string(next)).Msg("ownership delegated")

	c.broadcast(room, "", ownershipTransferredEvent{
		Type:       "ownership-transferred",
		NewOwnerID: next,
		Users:      room.Roster(),
	})
}
