package http

import (
	"context"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sketchroom/server/internal/adapters/signal"
	"github.com/sketchroom/server/internal/adapters/token"
	"github.com/sketchroom/server/internal/app"
	"github.com/sketchroom/server/internal/config"
)

func genClientToken() string {
	idStr := uuid.NewString()
	return idStr
}

// ClientTokenMiddleware gives every browser a stable identity cookie. It
// is not the connection identity (each WS connection gets its own), only
// the default uid for token issuing.
func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, _ := c.Cookie("ct")
		if tok == "" {
			tok = genClientToken()
			c.SetCookie("ct", tok, 3600*24*7, "/", "", false, true)
		}
		c.Set("client_token", tok)
		c.Next()
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, coord *app.Coordinator, issuer *token.Issuer) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("SketchroomSessions", store))
	r.Use(ClientTokenMiddleware())

	r.Static("/static", cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.File(cfg.StaticPath + "/index.html")
	})

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	ctrl := &ControlPlane{Coord: coord, Issuer: issuer}
	r.GET("/health", ctrl.Health)
	r.GET("/stats", ctrl.Stats)

	api := r.Group("/api")
	api.POST("/generate-token", ctrl.GenerateToken)
	api.GET("/config", ctrl.ConfigInfo)

	wsCtrl := signal.NewSignalWSController(coord, cfg)
	api.GET("/ws/signal", func(c *gin.Context) {
		log.Info().Str("module", "adapters.http").Msg("ws signal endpoint hit")
		wsCtrl.HandleSignal(ctx, c)
	})

	return r
}
