package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/moaazpadawy-lgtm/written-chat-clone/internal/adapters/http"
	"github.com/moaazpadawy-lgtm/written-chat-clone/internal/adapters/ws"
	"github.com/moaazpadawy-lgtm/written-chat-clone/internal/app"
	"github.com/moaazpadawy-lgtm/written-chat-clone/internal/config"
	"github.com/moaazpadawy-lgtm/written-chat-clone/internal/history"
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

	// Durable sqlite store when a path is configured, in-memory fallback
	// otherwise. Message delivery never depends on which one is active.
	var store history.Store
	if cfg.DBPath != "" {
		gs, err := history.OpenGorm(cfg.DBPath)
		if err != nil {
			log.Error().Err(err).Msg("failed to open message store, falling back to memory")
			store = history.NewMemoryStore()
		} else {
			log.Info().Str("path", cfg.DBPath).Msg("connected to sqlite message store")
			store = gs
		}
	} else {
		log.Info().Msg("db_path not set, keeping history in memory")
		store = history.NewMemoryStore()
	}

	limits := app.Limits{
		MaxNameLen:    cfg.MaxNameLen,
		MaxRoomKeyLen: cfg.MaxRoomLen,
		MaxMessageLen: cfg.MaxMessageLen,
	}
	registry := app.NewRegistry(limits)
	limiter := app.NewRateLimiter(cfg.RateMax, time.Duration(cfg.RateWindowSec)*time.Second)
	chat := app.NewRouter(registry, limiter, store, limits)

	ctl := ws.NewController(chat, cfg.ReadLimit)
	r := router.SetupRouter(ctx, cfg, ctl, store)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("chat relay started")
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
