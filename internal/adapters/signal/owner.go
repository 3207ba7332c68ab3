package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/sketchroom/server/internal/domain"
)

func (ctl *SignalWSController) handleTransferOwnership(
	cid domain.ClientID,
	conn *wsSignalConn,
	data []byte,
) {
	type transferPayload struct {
		Type       string `json:"type"`
		NewOwnerID string `json:"newOwnerId"`
	}
	var p transferPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad transfer payload")
		ctl.sendError(conn, "bad payload", "")
		return
	}
	if p.NewOwnerID == "" {
		ctl.sendError(conn, "missing field", "newOwnerId")
		return
	}
	ctl.Coord.TransferOwnership(cid, domain.ClientID(p.NewOwnerID))
}
