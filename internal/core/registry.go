package core

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sketchroom/server/internal/domain"
)

// Registry owns the mapping from room id to room state. Rooms are created
// implicitly on first join; the registry hands out the live *domain.Room,
// so compound mutations must be serialized by the caller (the coordinator
// holds one lock across every check-then-mutate sequence).
type Registry struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]*domain.Room
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[domain.RoomID]*domain.Room)}
}

// GetOrCreate returns the existing room unchanged, ignoring the supplied
// settings, or creates one owned by the creating participant. The second
// return reports whether a room was created.
func (r *Registry) GetOrCreate(id domain.RoomID, creator domain.ClientID, settings domain.RoomSettings, now time.Time) (*domain.Room, bool) {
	r.mu.RLock()
	room, ok := r.rooms[id]
	r.mu.RUnlock()
	if ok {
		return room, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if room, ok = r.rooms[id]; ok {
		return room, false
	}
	room = domain.NewRoom(id, creator, settings, now)
	r.rooms[id] = room
	log.Info().Str("module", "core.registry").Str("room", string(id)).Str("owner", string(creator)).Msg("room created")
	return room, true
}

func (r *Registry) Get(id domain.RoomID) (*domain.Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[id]
	return room, ok
}

func (r *Registry) Delete(id domain.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rooms, id)
	log.Info().Str("module", "core.registry").Str("room", string(id)).Msg("room deleted")
}

// Snapshot returns the current rooms for statistics and the reaper sweep.
func (r *Registry) Snapshot() []*domain.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		out = append(out, room)
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}
