package app

import (
	"github.com/rs/zerolog/log"

	"github.com/sketchroom/server/internal/domain"
)

// JoinRoom puts the connection on the general roster of roomID, creating
// the room (owned by the joiner) if it does not exist. Joining a new room
// implicitly leaves the previous one. On success the joiner privately
// receives the current room state and everyone else a join notice followed
// by the full roster.
func (c *Coordinator) JoinRoom(id domain.ClientID, roomID domain.RoomID, username string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	st, ok := c.conns[id]
	if !ok {
		return nil
	}
	if st.roomID != "" && st.roomID != roomID {
		c.departGeneralLocked(id, st)
	}

	now := c.now()
	room, _ := c.registry.GetOrCreate(roomID, id, c.defaults, now)

	if _, member := room.Participants[id]; !member && len(room.Participants) >= room.Settings.MaxParticipants {
		log.Warn().Str("module", "app.coordinator").Str("room", string(roomID)).Str("client", string(id)).Msg("join rejected, room full")
		return domain.ErrRoomFull
	}

	p, err := domain.NewParticipant(id, username, now)
	if err != nil {
		// A room created just for this failed join would linger until the
		// reaper; drop it right away instead.
		if len(room.Participants) == 0 && len(room.VideoParticipants) == 0 {
			c.registry.Delete(roomID)
		}
		return err
	}

	room.Participants[id] = p
	// A room created through the video-only path has an owner that never
	// joined the general roster; the first general participant claims it so
	// the owner is always a roster member while the roster is non-empty.
	if _, present := room.Participants[room.OwnerID]; !present {
		room.OwnerID = id
	}
	room.RecomputeOwnership()
	st.roomID = roomID
	st.username = username

	log.Info().Str("module", "app.coordinator").Str("room", string(roomID)).Str("client", string(id)).Str("username", username).Msg("joined room")

	c.send(id, roomStateEvent{
		Type:    "room-state",
		RoomID:  roomID,
		Users:   room.Roster(),
		Diagram: room.Diagram,
		OwnerID: room.OwnerID,
		IsOwner: p.IsOwner,
	})
	c.broadcast(room, id, userJoinedEvent{Type: "user-joined", User: p})
	c.broadcast(room, "", usersUpdatedEvent{Type: "users-updated", Users: room.Roster()})
	return nil
}

// JoinVideoRoom is the video-roster counterpart of JoinRoom. It does not
// require general membership; capacity is checked against the video roster
// only.
func (c *Coordinator) JoinVideoRoom(id domain.ClientID, roomID domain.RoomID, username string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	st, ok := c.conns[id]
	if !ok {
		return nil
	}
	if st.videoRoomID != "" && st.videoRoomID != roomID {
		c.departVideoLocked(id, st)
	}

	now := c.now()
	room, _ := c.registry.GetOrCreate(roomID, id, c.defaults, now)

	if _, member := room.VideoParticipants[id]; !member && len(room.VideoParticipants) >= room.Settings.MaxParticipants {
		log.Warn().Str("module", "app.coordinator").Str("room", string(roomID)).Str("client", string(id)).Msg("video join rejected, room full")
		return domain.ErrRoomFull
	}

	p, err := domain.NewParticipant(id, username, now)
	if err != nil {
		if len(room.Participants) == 0 && len(room.VideoParticipants) == 0 {
			c.registry.Delete(roomID)
		}
		return err
	}
	p.IsOwner = p.ID == room.OwnerID

	room.VideoParticipants[id] = p
	st.videoRoomID = roomID
	st.username = username

	log.Info().Str("module", "app.coordinator").Str("room", string(roomID)).Str("client", string(id)).Str("username", username).Msg("joined video room")

	c.send(id, videoRoomStateEvent{
		Type:   "video-room-state",
		RoomID: roomID,
		Users:  room.VideoRoster(),
	})
	c.broadcast(room, id, videoUserJoinedEvent{Type: "video-user-joined", User: p})
	return nil
}

// LeaveRoom departs the general roster of the room the connection is in.
// Removing an absent member is a no-op.
func (c *Coordinator) LeaveRoom(id domain.ClientID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if st, ok := c.conns[id]; ok {
		c.departGeneralLocked(id, st)
	}
}

// LeaveVideoRoom departs the video roster only; the general membership is
// untouched.
func (c *Coordinator) LeaveVideoRoom(id domain.ClientID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if st, ok := c.conns[id]; ok {
		c.departVideoLocked(id, st)
	}
}

// ToggleMedia flips the caller's own camera/microphone flags on its video
// roster entry. Nil means "leave unchanged". Silently ignored when the
// caller is not a video participant anywhere.
func (c *Coordinator) ToggleMedia(id domain.ClientID, video, audio *bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	st, ok := c.conns[id]
	if !ok {
		return
	}
	room, ok := c.registry.Get(st.videoRoomID)
	if !ok {
		return
	}
	p, ok := room.VideoParticipants[id]
	if !ok {
		return
	}
	if video != nil {
		p.VideoEnabled = *video
	}
	if audio != nil {
		p.AudioEnabled = *audio
	}
	c.broadcast(room, id, mediaUpdateEvent{
		Type:   "user-media-update",
		UserID: id,
		Video:  p.VideoEnabled,
		Audio:  p.AudioEnabled,
	})
}

// departGeneralLocked is the single shared departure path for leave and
// disconnect. It re-delegates ownership when the owner departs, deletes
// the room the moment its general roster empties, and otherwise notifies
// the remaining members. Caller holds c.mu.
func (c *Coordinator) departGeneralLocked(id domain.ClientID, st *connState) {
	roomID := st.roomID
	if roomID == "" {
		return
	}
	st.roomID = ""

	room, ok := c.registry.Get(roomID)
	if !ok {
		return
	}
	p, member := room.Participants[id]
	if !member {
		return
	}
	delete(room.Participants, id)
	log.Info().Str("module", "app.coordinator").Str("room", string(roomID)).Str("client", string(id)).Msg("left room")

	if len(room.Participants) == 0 {
		c.registry.Delete(roomID)
		return
	}
	if room.OwnerID == id {
		c.delegateOwnerLocked(room)
	}
	c.broadcast(room, "", userLeftEvent{Type: "user-left", UserID: id, Username: p.Username})
	c.broadcast(room, "", usersUpdatedEvent{Type: "users-updated", Users: room.Roster()})
}

// departVideoLocked removes the connection from its video roster and
// broadcasts the shrunken roster. Caller holds c.mu.
func (c *Coordinator) departVideoLocked(id domain.ClientID, st *connState) {
	roomID := st.videoRoomID
	if roomID == "" {
		return
	}
	st.videoRoomID = ""

	room, ok := c.registry.Get(roomID)
	if !ok {
		return
	}
	if _, member := room.VideoParticipants[id]; !member {
		return
	}
	delete(room.VideoParticipants, id)
	log.Info().Str("module", "app.coordinator").Str("room", string(roomID)).Str("client", string(id)).Msg("left video room")

	c.broadcast(room, "", videoUserLeftEvent{
		Type:   "video-user-left",
		UserID: id,
		Users:  room.VideoRoster(),
	})
}
