package app

import (
	"time"

	"github.com/sketchroom/server/internal/domain"
)

// RoomStat is the read-only control-plane projection of one room.
type RoomStat struct {
	RoomID         domain.RoomID   `json:"roomId"`
	UserCount      int             `json:"userCount"`
	VideoUserCount int             `json:"videoUserCount"`
	Owner          domain.ClientID `json:"owner"`
	Created        time.Time       `json:"created"`
	AgeMinutes     int             `json:"ageMinutes"`
}

type Stats struct {
	TotalRooms int        `json:"totalRooms"`
	TotalUsers int        `json:"totalUsers"`
	Rooms      []RoomStat `json:"rooms"`
}

func (c *Coordinator) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	rooms := c.registry.Snapshot()
	out := Stats{Rooms: make([]RoomStat, 0, len(rooms))}
	for _, room := range rooms {
		out.TotalRooms++
		out.TotalUsers += len(room.Participants)
		out.Rooms = append(out.Rooms, RoomStat{
			RoomID:         room.ID,
			UserCount:      len(room.Participants),
			VideoUserCount: len(room.VideoParticipants),
			Owner:          room.OwnerID,
			Created:        room.CreatedAt,
			AgeMinutes:     int(now.Sub(room.CreatedAt).Minutes()),
		})
	}
	return out
}

// RoomCount backs the health endpoint.
func (c *Coordinator) RoomCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registry.Len()
}
