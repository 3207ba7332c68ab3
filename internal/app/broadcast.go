package app

import (
	"encoding/json"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"

	"github.com/sketchroom/server/internal/domain"
)

// UpdateDiagram persists the supplied document fields into the room's
// last-write-wins diagram state, then forwards them to everyone else. A
// nil field means "not sent": the previous value is retained untouched.
func (c *Coordinator) UpdateDiagram(id domain.ClientID, nodes, edges []json.RawMessage) {
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
	if nodes != nil {
		room.Diagram.Nodes = nodes
	}
	if edges != nil {
		room.Diagram.Edges = edges
	}
	c.broadcast(room, id, diagramEvent{Type: "update-diagram", Nodes: nodes, Edges: edges})
}

// Draw relays one freehand stroke to the rest of the room. Nothing is
// persisted; strokes are transient.
func (c *Coordinator) Draw(id domain.ClientID, data json.RawMessage) {
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
	c.broadcast(room, id, drawEvent{Type: "draw", Data: data})
}

// Clear relays a canvas-clear to the rest of the room.
func (c *Coordinator) Clear(id domain.ClientID) {
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
	c.broadcast(room, id, clearEvent{Type: "clear", UserID: id})
}

// SendMessage stamps a chat message with a ULID, the sender identity, and
// the server clock, then fans it out to the whole room, sender included,
// so everyone sees the same canonical id and timestamp.
func (c *Coordinator) SendMessage(id domain.ClientID, text string) {
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
	msg := ChatMessage{
		ID:        ulid.Make().String(),
		UserID:    id,
		Username:  st.username,
		Text:      text,
		Timestamp: c.now(),
	}
	c.broadcast(room, "", chatEvent{Type: "new-message", Message: msg})
}

// ScreenShare announces a screen-share start or stop to the rest of the
// room. Starting is silently ignored when the room was created with screen
// sharing disabled.
func (c *Coordinator) ScreenShare(id domain.ClientID, start bool) {
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
	if start && !room.Settings.AllowScreenShare {
		log.Warn().Str("module", "app.coordinator").Str("room", string(room.ID)).Str("client", string(id)).Msg("screen share not allowed, ignored")
		return
	}
	typ := "screen-share-stopped"
	if start {
		typ = "screen-share-started"
	}
	c.broadcast(room, id, screenShareEvent{Type: typ, UserID: id, Username: st.username})
}

// Recording starts or stops room recording. Only the owner may do either,
// and starting additionally requires the room to allow recording; any
// other request is silently ignored.
func (c *Coordinator) Recording(id domain.ClientID, start bool) {
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
		log.Warn().Str("module", "app.coordinator").Str("room", string(room.ID)).Str("client", string(id)).Msg("recording request by non-owner ignored")
		return
	}
	if start && !room.Settings.AllowRecording {
		log.Warn().Str("module", "app.coordinator").Str("room", string(room.ID)).Msg("recording not allowed, ignored")
		return
	}
	typ := "recording-stopped"
	if start {
		typ = "recording-started"
	}
	c.broadcast(room, id, recordingEvent{Type: typ, UserID: id})
}
