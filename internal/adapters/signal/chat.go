package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/sketchroom/server/internal/domain"
)

func (ctl *SignalWSController) handleSendMessage(
	cid domain.ClientID,
	conn *wsSignalConn,
	data []byte,
) {
	type messagePayload struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}
	var p messagePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad message payload")
		ctl.sendError(conn, "bad payload", "")
		return
	}
	if p.Text == "" {
		ctl.sendError(conn, "missing field", "text")
		return
	}
	ctl.Coord.SendMessage(cid, p.Text)
}
