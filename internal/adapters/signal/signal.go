package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/sketchroom/server/internal/app"
	"github.com/sketchroom/server/internal/config"
	"github.com/sketchroom/server/internal/core"
	"github.com/sketchroom/server/internal/domain"
)

var ErrBackpressure = errors.New("backpressure")

type SignalWSController struct {
	Coord *app.Coordinator
	Cfg   *config.Config
}

func NewSignalWSController(coord *app.Coordinator, cfg *config.Config) *SignalWSController {
	return &SignalWSController{Coord: coord, Cfg: cfg}
}

type wsSignalConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *wsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *wsSignalConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleSignal upgrades the request and binds a fresh connection identity.
// The identity is per live connection, not per browser: two tabs are two
// participants.
func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	cid := domain.ClientID(uuid.NewString())
	log.Info().Str("module", "signal").Str("client", string(cid)).Msg("new WS connection")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	if ctl.Cfg != nil && ctl.Cfg.ReadLimit > 0 {
		ws.SetReadLimit(ctl.Cfg.ReadLimit)
	}

	conn := &wsSignalConn{
		conn: ws,
		send: make(chan core.Frame, 32),
	}
	ctl.Coord.Bind(cid, conn)

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, cancel, cid, conn)
}
