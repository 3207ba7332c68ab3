package signal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sketchroom/server/internal/app"
	"github.com/sketchroom/server/internal/core"
	"github.com/sketchroom/server/internal/domain"
)

func newTestController() (*SignalWSController, *wsSignalConn, domain.ClientID) {
	coord := app.NewCoordinator(core.NewRegistry(), domain.RoomSettings{MaxParticipants: 8})
	ctl := NewSignalWSController(coord, nil)
	conn := &wsSignalConn{send: make(chan core.Frame, 16)}
	cid := domain.ClientID("test-client")
	coord.Bind(cid, conn)
	return ctl, conn, cid
}

func drain(t *testing.T, c *wsSignalConn) []map[string]any {
	t.Helper()
	var out []map[string]any
	for {
		select {
		case f := <-c.send:
			var m map[string]any
			require.NoError(t, json.Unmarshal(f, &m))
			out = append(out, m)
		default:
			return out
		}
	}
}

func eventTypes(evs []map[string]any) []string {
	out := make([]string, 0, len(evs))
	for _, ev := range evs {
		out = append(out, ev["type"].(string))
	}
	return out
}

func TestDispatchBadJSON(t *testing.T) {
	ctl, conn, cid := newTestController()
	ctl.dispatch(cid, conn, []byte(`{not json`))

	evs := drain(t, conn)
	require.Len(t, evs, 1)
	assert.Equal(t, "error", evs[0]["type"])
}

func TestDispatchJoinMissingRoomID(t *testing.T) {
	ctl, conn, cid := newTestController()
	ctl.dispatch(cid, conn, []byte(`{"type":"join-room","username":"alice"}`))

	evs := drain(t, conn)
	require.Len(t, evs, 1)
	assert.Equal(t, "error", evs[0]["type"])
	assert.Equal(t, "missing field", evs[0]["message"])
	assert.Equal(t, "roomId", evs[0]["details"])
}

func TestDispatchJoinRoom(t *testing.T) {
	ctl, conn, cid := newTestController()
	ctl.dispatch(cid, conn, []byte(`{"type":"join-room","roomId":"r1","username":"alice"}`))

	evs := drain(t, conn)
	assert.Contains(t, eventTypes(evs), "room-state")
	assert.Contains(t, eventTypes(evs), "users-updated")
}

func TestDispatchRelayMissingTarget(t *testing.T) {
	ctl, conn, cid := newTestController()
	ctl.dispatch(cid, conn, []byte(`{"type":"offer","offer":{"sdp":"x"}}`))

	evs := drain(t, conn)
	require.Len(t, evs, 1)
	assert.Equal(t, "error", evs[0]["type"])
	assert.Equal(t, "target", evs[0]["details"])
}

func TestDispatchMessageMissingText(t *testing.T) {
	ctl, conn, cid := newTestController()
	ctl.dispatch(cid, conn, []byte(`{"type":"send-message"}`))

	evs := drain(t, conn)
	require.Len(t, evs, 1)
	assert.Equal(t, "error", evs[0]["type"])
	assert.Equal(t, "text", evs[0]["details"])
}

func TestDispatchUnknownTypeIgnored(t *testing.T) {
	ctl, conn, cid := newTestController()
	ctl.dispatch(cid, conn, []byte(`{"type":"teleport"}`))

	assert.Empty(t, drain(t, conn))
}

func TestDispatchPing(t *testing.T) {
	ctl, conn, cid := newTestController()
	ctl.dispatch(cid, conn, []byte(`{"type":"ping"}`))

	evs := drain(t, conn)
	require.Len(t, evs, 1)
	assert.Equal(t, "pong", evs[0]["type"])
}

func TestRoomFullSurfacedAsError(t *testing.T) {
	coord := app.NewCoordinator(core.NewRegistry(), domain.RoomSettings{MaxParticipants: 1})
	ctl := NewSignalWSController(coord, nil)

	first := &wsSignalConn{send: make(chan core.Frame, 16)}
	coord.Bind("c1", first)
	ctl.dispatch("c1", first, []byte(`{"type":"join-room","roomId":"r1","username":"a"}`))

	second := &wsSignalConn{send: make(chan core.Frame, 16)}
	coord.Bind("c2", second)
	ctl.dispatch("c2", second, []byte(`{"type":"join-room","roomId":"r1","username":"b"}`))

	evs := drain(t, second)
	require.Len(t, evs, 1)
	assert.Equal(t, "error", evs[0]["type"])
	assert.Equal(t, "room is full", evs[0]["message"])
}
