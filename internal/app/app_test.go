package app

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sketchroom/server/internal/core"
	"github.com/sketchroom/server/internal/domain"
)

// fakeConn captures every frame pushed to one connection so tests can
// assert on the emitted event stream.
type fakeConn struct {
	mu     sync.Mutex
	frames []core.Frame
}

func (f *fakeConn) TrySend(fr core.Frame) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, fr)
	return nil
}

func (f *fakeConn) Close() {}

// events decodes the captured frames into generic maps.
func (f *fakeConn) events(t *testing.T) []map[string]any {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]map[string]any, 0, len(f.frames))
	for _, fr := range f.frames {
		var m map[string]any
		require.NoError(t, json.Unmarshal(fr, &m))
		out = append(out, m)
	}
	return out
}

// eventsOfType filters the captured events by their type tag.
func (f *fakeConn) eventsOfType(t *testing.T, typ string) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, ev := range f.events(t) {
		if ev["type"] == typ {
			out = append(out, ev)
		}
	}
	return out
}

func (f *fakeConn) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = nil
}

type harness struct {
	coord *Coordinator
	reg   *core.Registry
	clock time.Time
}

func newHarness(maxParticipants int) *harness {
	h := &harness{
		reg:   core.NewRegistry(),
		clock: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	h.coord = NewCoordinator(h.reg, domain.RoomSettings{
		MaxParticipants:  maxParticipants,
		AllowScreenShare: true,
		AllowRecording:   true,
	})
	h.coord.now = func() time.Time { return h.clock }
	return h
}

// connect binds a new fake connection under the given identity.
func (h *harness) connect(id domain.ClientID) *fakeConn {
	c := &fakeConn{}
	h.coord.Bind(id, c)
	return c
}

// advance moves the fake clock forward so join order is distinguishable.
func (h *harness) advance(d time.Duration) {
	h.clock = h.clock.Add(d)
}

func (h *harness) room(t *testing.T, id domain.RoomID) *domain.Room {
	t.Helper()
	room, ok := h.reg.Get(id)
	require.True(t, ok, "room %s should exist", id)
	return room
}
