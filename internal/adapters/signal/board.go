package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/sketchroom/server/internal/domain"
)

func (ctl *SignalWSController) handleUpdateDiagram(
	cid domain.ClientID,
	conn *wsSignalConn,
	data []byte,
) {
	type diagramPayload struct {
		Type  string            `json:"type"`
		Nodes []json.RawMessage `json:"nodes"`
		Edges []json.RawMessage `json:"edges"`
	}
	var p diagramPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad diagram payload")
		ctl.sendError(conn, "bad payload", "")
		return
	}
	// Nil slices mean the field was omitted; the coordinator keeps the
	// previous value for omitted fields.
	ctl.Coord.UpdateDiagram(cid, p.Nodes, p.Edges)
}

func (ctl *SignalWSController) handleDraw(cid domain.ClientID, data []byte) {
	type drawPayload struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	var p drawPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad draw payload")
		return
	}
	ctl.Coord.Draw(cid, p.Data)
}
