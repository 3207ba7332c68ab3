package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/sketchroom/server/internal/domain"
)

func (ctl *SignalWSController) handleMediaToggle(
	cid domain.ClientID,
	conn *wsSignalConn,
	data []byte,
) {
	type togglePayload struct {
		Type  string `json:"type"`
		Video *bool  `json:"video"`
		Audio *bool  `json:"audio"`
	}
	var p togglePayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad media toggle payload")
		ctl.sendError(conn, "bad payload", "")
		return
	}
	ctl.Coord.ToggleMedia(cid, p.Video, p.Audio)
}
