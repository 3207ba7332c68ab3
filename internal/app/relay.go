package app

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/sketchroom/server/internal/domain"
)

// Relay kinds, matching the envelope tags on both directions.
const (
	SignalOffer     = "offer"
	SignalAnswer    = "answer"
	SignalCandidate = "ice-candidate"
)

// Relay forwards one opaque negotiation payload to a single named peer,
// stamped with the sender's identity and display name. No room state is
// touched and no shared-room check is made: the relay trusts the
// caller-supplied target. A target that is not connected is dropped
// silently so a stale caller learns nothing about presence.
func (c *Coordinator) Relay(kind string, senderID, targetID domain.ClientID, payload json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sender, ok := c.conns[senderID]
	if !ok {
		return
	}
	ev := signalEvent{
		Type:       kind,
		Sender:     senderID,
		SenderName: sender.username,
	}
	switch kind {
	case SignalOffer:
		ev.Offer = payload
	case SignalAnswer:
		ev.Answer = payload
	case SignalCandidate:
		ev.Candidate = payload
	default:
		log.Warn().Str("module", "app.coordinator").Str("kind", kind).Msg("unknown signal kind")
		return
	}
	c.send(targetID, ev)
}
