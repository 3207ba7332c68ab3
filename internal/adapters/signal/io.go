package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/sketchroom/server/internal/domain"
)

func (ctl *SignalWSController) writePump(ctx context.Context, c *wsSignalConn) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Msg("writePump ctx done")
			return
		case data, ok := <-c.send:
			if !ok {
				log.Warn().Str("module", "signal").Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		}
	}
}

func (ctl *SignalWSController) readPump(ctx context.Context, cancel context.CancelFunc, cid domain.ClientID, c *wsSignalConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("client", string(cid)).Msg("readPump closing")
		ctl.Coord.Disconnect(cid)
		cancel()
		c.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Str("client", string(cid)).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				log.Info().Err(err).Str("module", "signal").Str("client", string(cid)).Msg("readPump read error")
				return
			}
			ctl.dispatch(cid, c, data)
		}
	}
}

// dispatch routes one inbound envelope by its type tag. Any panic inside a
// handler is caught here: it is logged, answered with a generic error
// event, and never takes down the worker.
func (ctl *SignalWSController) dispatch(cid domain.ClientID, c *wsSignalConn, data []byte) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Any("panic", r).Str("module", "signal").Str("client", string(cid)).Msg("handler panic")
			ctl.sendError(c, "internal error", "")
		}
	}()

	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad json")
		ctl.sendError(c, "bad payload", "")
		return
	}

	ctl.Coord.Touch(cid)

	switch env.Type {
	case "join-room":
		ctl.handleJoinRoom(cid, c, data)
	case "join-video-room":
		ctl.handleJoinVideoRoom(cid, c, data)
	case "leave-room":
		ctl.Coord.LeaveRoom(cid)
	case "leave-video-room":
		ctl.Coord.LeaveVideoRoom(cid)
	case "offer", "answer", "ice-candidate":
		ctl.handleSignalRelay(cid, c, env.Type, data)
	case "media-toggle":
		ctl.handleMediaToggle(cid, c, data)
	case "start-screen-share":
		ctl.Coord.ScreenShare(cid, true)
	case "stop-screen-share":
		ctl.Coord.ScreenShare(cid, false)
	case "send-message":
		ctl.handleSendMessage(cid, c, data)
	case "start-recording":
		ctl.Coord.Recording(cid, true)
	case "stop-recording":
		ctl.Coord.Recording(cid, false)
	case "update-diagram":
		ctl.handleUpdateDiagram(cid, c, data)
	case "draw":
		ctl.handleDraw(cid, data)
	case "clear":
		ctl.Coord.Clear(cid)
	case "transfer-ownership":
		ctl.handleTransferOwnership(cid, c, data)
	case "ping":
		ctl.handlePing(c)
	default:
		log.Warn().Str("module", "signal").Str("type", env.Type).Msg("unknown signal")
	}
}

func (ctl *SignalWSController) sendError(c *wsSignalConn, message, details string) {
	resp := struct {
		Type    string `json:"type"`
		Message string `json:"message"`
		Details string `json:"details,omitempty"`
	}{
		Type:    "error",
		Message: message,
		Details: details,
	}
	ctl.sendJSON(c, resp)
}

func (ctl *SignalWSController) sendJSON(c *wsSignalConn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(b)
}
