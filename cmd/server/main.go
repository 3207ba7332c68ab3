package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/sketchroom/server/internal/adapters/http"
	"github.com/sketchroom/server/internal/adapters/token"
	"github.com/sketchroom/server/internal/app"
	"github.com/sketchroom/server/internal/config"
	"github.com/sketchroom/server/internal/core"
	"github.com/sketchroom/server/internal/domain"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	// Human-friendly output for terminal; in production you may want JSON only.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load()
	if err != nil {
		log.Error().Err(err).Msg("failed to load config")
	}

	registry := core.NewRegistry()
	coord := app.NewCoordinator(registry, domain.RoomSettings{
		MaxParticipants:  cfg.Room.MaxParticipants,
		AllowScreenShare: cfg.Room.AllowScreenShare,
		AllowRecording:   cfg.Room.AllowRecording,
	})
	issuer := token.NewIssuer(cfg.Token.AppID, cfg.Token.Certificate, cfg.Token.TTL)

	reaper := app.NewReaper(coord, cfg.Reaper.Interval, cfg.Reaper.MaxAge)
	go reaper.Run(ctx)

	r := router.SetupRouter(ctx, cfg, coord, issuer)
	addr := fmt.Sprintf(":%d", cfg.Port)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	srv := &http.Server{
		Addr:    addr,
		Handler: cors(r),
	}

	go func() {
		log.Info().Str("addr", addr).Msg("Sketchroom server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited gracefully")
}
