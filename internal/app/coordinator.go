package app

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sketchroom/server/internal/core"
	"github.com/sketchroom/server/internal/domain"
)

// connState is what the coordinator remembers about one live connection:
// its transport endpoint, display name, and room associations. A connection
// is in at most one general room and at most one video room at a time.
type connState struct {
	conn        core.SignalConnection
	username    string
	roomID      domain.RoomID
	videoRoomID domain.RoomID
}

// Coordinator serializes every room mutation behind one mutex, so compound
// operations (check-capacity-then-insert, remove-then-maybe-delete,
// roster-mutation-then-ownership-delegation) never interleave. Outbound
// sends happen under the same lock but are non-blocking TrySend calls.
type Coordinator struct {
	mu       sync.Mutex
	registry *core.Registry
	conns    map[domain.ClientID]*connState
	defaults domain.RoomSettings

	// now is swappable in tests.
	now func() time.Time
}

func NewCoordinator(registry *core.Registry, defaults domain.RoomSettings) *Coordinator {
	return &Coordinator{
		registry: registry,
		conns:    make(map[domain.ClientID]*connState),
		defaults: defaults,
		now:      time.Now,
	}
}

// Bind registers a live connection. Until it joins a room it has no
// membership anywhere.
func (c *Coordinator) Bind(id domain.ClientID, conn core.SignalConnection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conns[id] = &connState{conn: conn}
	log.Info().Str("module", "app.coordinator").Str("client", string(id)).Msg("connection bound")
}

// Disconnect is the transport telling us a connection is gone. It departs
// both rosters of whatever rooms the connection was in, then unbinds it.
func (c *Coordinator) Disconnect(id domain.ClientID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.conns[id]
	if !ok {
		return
	}
	c.departVideoLocked(id, st)
	c.departGeneralLocked(id, st)
	delete(c.conns, id)
	log.Info().Str("module", "app.coordinator").Str("client", string(id)).Msg("connection unbound")
}

// Touch refreshes LastSeen on every roster entry the connection holds.
func (c *Coordinator) Touch(id domain.ClientID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.conns[id]
	if !ok {
		return
	}
	now := c.now()
	if room, ok := c.registry.Get(st.roomID); ok {
		if p, ok := room.Participants[id]; ok {
			p.LastSeen = now
		}
	}
	if room, ok := c.registry.Get(st.videoRoomID); ok {
		if p, ok := room.VideoParticipants[id]; ok {
			p.LastSeen = now
		}
	}
}

// send delivers one event to one connection. An absent target is a no-op,
// never an error: addressed sends are best-effort.
func (c *Coordinator) send(id domain.ClientID, v any) {
	st, ok := c.conns[id]
	if !ok {
		return
	}
	c.push(st.conn, v)
}

func (c *Coordinator) push(conn core.SignalConnection, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.coordinator").Msg("event marshal")
		return
	}
	_ = conn.TrySend(core.Frame(b))
}

// broadcast fans an event out to every member of the room, general and
// video rosters combined, optionally excluding the sender.
func (c *Coordinator) broadcast(room *domain.Room, exclude domain.ClientID, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.coordinator").Msg("broadcast marshal")
		return
	}
	seen := make(map[domain.ClientID]struct{}, len(room.Participants)+len(room.VideoParticipants))
	deliver := func(id domain.ClientID) {
		if id == exclude {
			return
		}
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}
		if st, ok := c.conns[id]; ok {
			_ = st.conn.TrySend(core.Frame(b))
		}
	}
	for id := range room.Participants {
		deliver(id)
	}
	for id := range room.VideoParticipants {
		deliver(id)
	}
}
