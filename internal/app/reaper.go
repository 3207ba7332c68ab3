package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Reaper periodically evicts rooms that are empty and older than maxAge.
// Rooms are already deleted synchronously the moment their general roster
// empties, so the sweep is a safety net for rooms that reached "empty"
// some other way: video-only rooms nobody joined generally, or a departure
// path that failed after the roster mutation.
type Reaper struct {
	coord    *Coordinator
	interval time.Duration
	maxAge   time.Duration
}

func NewReaper(coord *Coordinator, interval, maxAge time.Duration) *Reaper {
	return &Reaper{coord: coord, interval: interval, maxAge: maxAge}
}

func (r *Reaper) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "app.reaper").Msg("reaper stopped")
			return
		case <-t.C:
			r.coord.Sweep(r.maxAge)
		}
	}
}

// Sweep runs one atomic pass over the registry and returns the number of
// rooms evicted. It never surfaces errors to any connection.
func (c *Coordinator) Sweep(maxAge time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	evicted := 0
	rooms := c.registry.Snapshot()
	for _, room := range rooms {
		if len(room.Participants) > 0 {
			continue
		}
		if now.Sub(room.CreatedAt) <= maxAge {
			continue
		}
		c.registry.Delete(room.ID)
		evicted++
	}
	log.Info().Str("module", "app.reaper").Int("scanned", len(rooms)).Int("evicted", evicted).Msg("sweep finished")
	return evicted
}
