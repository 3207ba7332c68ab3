package domain

import (
	"encoding/json"
	"errors"
	"sort"
	"time"
)

var ErrRoomFull = errors.New("room full")

type RoomID string

// RoomSettings are fixed at room creation; nothing mutates them afterwards.
type RoomSettings struct {
	MaxParticipants  int  `json:"maxParticipants"`
	AllowScreenShare bool `json:"allowScreenShare"`
	AllowRecording   bool `json:"allowRecording"`
}

// DiagramState is the last-write-wins shared document. Node and edge
// records are opaque to the server.
type DiagramState struct {
	Nodes []json.RawMessage `json:"nodes"`
	Edges []json.RawMessage `json:"edges"`
}

// Room is one ephemeral collaboration session. The two rosters overlap but
// are tracked independently: a connection may be in one, both, or neither.
type Room struct {
	ID                RoomID
	Participants      map[ClientID]*Participant
	VideoParticipants map[ClientID]*Participant
	OwnerID           ClientID
	Diagram           DiagramState
	CreatedAt         time.Time
	Settings          RoomSettings
}

func NewRoom(id RoomID, owner ClientID, settings RoomSettings, now time.Time) *Room {
	return &Room{
		ID:                id,
		Participants:      make(map[ClientID]*Participant),
		VideoParticipants: make(map[ClientID]*Participant),
		OwnerID:           owner,
		Diagram:           DiagramState{Nodes: []json.RawMessage{}, Edges: []json.RawMessage{}},
		CreatedAt:         now,
		Settings:          settings,
	}
}

// RecomputeOwnership re-derives every IsOwner flag from OwnerID. Flags are
// never mutated independently of this.
func (r *Room) RecomputeOwnership() {
	for _, p := range r.Participants {
		p.IsOwner = p.ID == r.OwnerID
	}
	for _, p := range r.VideoParticipants {
		p.IsOwner = p.ID == r.OwnerID
	}
}

// NextOwner picks the replacement owner after the current one departs: the
// remaining general participant with the earliest JoinedAt, ties broken by
// id so the choice is deterministic.
func (r *Room) NextOwner() (ClientID, bool) {
	var best *Participant
	for _, p := range r.Participants {
		if best == nil {
			best = p
			continue
		}
		if p.JoinedAt.Before(best.JoinedAt) ||
			(p.JoinedAt.Equal(best.JoinedAt) && p.ID < best.ID) {
			best = p
		}
	}
	if best == nil {
		return "", false
	}
	return best.ID, true
}

// Roster returns the general participants sorted by join time.
func (r *Room) Roster() []*Participant {
	return sortedRoster(r.Participants)
}

// VideoRoster returns the video participants sorted by join time.
func (r *Room) VideoRoster() []*Participant {
	return sortedRoster(r.VideoParticipants)
}

func sortedRoster(m map[ClientID]*Participant) []*Participant {
	out := make([]*Participant, 0, len(m))
	for _, p := range m {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].JoinedAt.Equal(out[j].JoinedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].JoinedAt.Before(out[j].JoinedAt)
	})
	return out
}
