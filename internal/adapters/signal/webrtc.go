package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/sketchroom/server/internal/app"
	"github.com/sketchroom/server/internal/domain"
)

// handleSignalRelay forwards offer / answer / ice-candidate envelopes to
// the named target. The negotiation payload is opaque: it is never parsed,
// only re-wrapped with the sender identity.
func (ctl *SignalWSController) handleSignalRelay(
	cid domain.ClientID,
	conn *wsSignalConn,
	kind string,
	data []byte,
) {
	type relayPayload struct {
		Type      string          `json:"type"`
		Target    string          `json:"target"`
		Offer     json.RawMessage `json:"offer"`
		Answer    json.RawMessage `json:"answer"`
		Candidate json.RawMessage `json:"candidate"`
	}
	var p relayPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Str("kind", kind).Msg("bad relay payload")
		ctl.sendError(conn, "bad payload", "")
		return
	}
	if p.Target == "" {
		ctl.sendError(conn, "missing field", "target")
		return
	}

	var payload json.RawMessage
	switch kind {
	case app.SignalOffer:
		payload = p.Offer
	case app.SignalAnswer:
		payload = p.Answer
	case app.SignalCandidate:
		payload = p.Candidate
	}
	ctl.Coord.Relay(kind, cid, domain.ClientID(p.Target), payload)
}
