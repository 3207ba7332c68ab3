package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/sketchroom/server/internal/adapters/token"
	"github.com/sketchroom/server/internal/app"
)

// ControlPlane serves the read-only projections of registry state plus the
// token-issuing passthrough. Nothing here mutates a room.
type ControlPlane struct {
	Coord  *app.Coordinator
	Issuer *token.Issuer
}

func (ctl *ControlPlane) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"rooms":     ctl.Coord.RoomCount(),
		"timestamp": time.Now().UTC(),
	})
}

func (ctl *ControlPlane) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, ctl.Coord.Stats())
}

type tokenRequest struct {
	ChannelName string `json:"channelName"`
	UID         string `json:"uid"`
}

func (ctl *ControlPlane) GenerateToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ChannelName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing or invalid channelName"})
		return
	}
	uid := req.UID
	if uid == "" {
		// Fall back to the caller's browser identity.
		uid = c.GetString("client_token")
	}

	signed, expiry, err := ctl.Issuer.Issue(req.ChannelName, uid)
	if err != nil {
		if errors.Is(err, token.ErrNotConfigured) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token service not configured"})
			return
		}
		log.Error().Err(err).Str("module", "adapters.http").Msg("token issue")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":       signed,
		"appId":       ctl.Issuer.AppID(),
		"channelName": req.ChannelName,
		"uid":         uid,
		"expiration":  expiry.Unix(),
	})
}

// ConfigInfo reports which credentials are present, never their values.
func (ctl *ControlPlane) ConfigInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"appIdConfigured":       ctl.Issuer.AppID() != "",
		"certificateConfigured": ctl.Issuer.CertificateConfigured(),
	})
}
