package signal

import (
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/sketchroom/server/internal/domain"
)

func (ctl *SignalWSController) handleJoinRoom(
	cid domain.ClientID,
	conn *wsSignalConn,
	data []byte,
) {
	type joinPayload struct {
		Type     string `json:"type"`
		RoomID   string `json:"roomId"`
		Username string `json:"username"`
	}
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad join payload")
		ctl.sendError(conn, "bad payload", "")
		return
	}
	if p.RoomID == "" {
		ctl.sendError(conn, "missing field", "roomId")
		return
	}
	if p.Username == "" {
		ctl.sendError(conn, "missing field", "username")
		return
	}

	log.Info().Str("module", "signal").Str("client", string(cid)).Str("room", p.RoomID).Msg("join room")
	if err := ctl.Coord.JoinRoom(cid, domain.RoomID(p.RoomID), p.Username); err != nil {
		ctl.joinError(conn, err)
	}
}

func (ctl *SignalWSController) handleJoinVideoRoom(
	cid domain.ClientID,
	conn *wsSignalConn,
	data []byte,
) {
	type joinPayload struct {
		Type     string `json:"type"`
		RoomID   string `json:"roomId"`
		Username string `json:"username"`
	}
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad video join payload")
		ctl.sendError(conn, "bad payload", "")
		return
	}
	if p.RoomID == "" {
		ctl.sendError(conn, "missing field", "roomId")
		return
	}
	if p.Username == "" {
		ctl.sendError(conn, "missing field", "username")
		return
	}

	log.Info().Str("module", "signal").Str("client", string(cid)).Str("room", p.RoomID).Msg("join video room")
	if err := ctl.Coord.JoinVideoRoom(cid, domain.RoomID(p.RoomID), p.Username); err != nil {
		ctl.joinError(conn, err)
	}
}

func (ctl *SignalWSController) joinError(conn *wsSignalConn, err error) {
	switch {
	case errors.Is(err, domain.ErrRoomFull):
		ctl.sendError(conn, "room is full", "")
	case errors.Is(err, domain.ErrUsernameEmpty), errors.Is(err, domain.ErrUsernameTooLong):
		ctl.sendError(conn, "invalid username", err.Error())
	default:
		ctl.sendError(conn, "join failed", "")
	}
}
