package http

import (
	"context"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/moaazpadawy-lgtm/written-chat-clone/internal/adapters/ws"
	"github.com/moaazpadawy-lgtm/written-chat-clone/internal/config"
	"github.com/moaazpadawy-lgtm/written-chat-clone/internal/history"
)

func genClientToken() string {
	idStr := uuid.NewString()
	return idStr
}

func ClientTokenMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie("ct")
		if token == "" {
			token = genClientToken()
			c.SetCookie("ct", token, 3600*24*7, "/", "", false, true)
		}
		c.Set("client_token", token)
		c.Next()
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, ctl *ws.Controller, store history.Store) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	sessStore := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("ChatSessions", sessStore))
	r.Use(ClientTokenMiddleware())

	r.Static("/static", cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.File(cfg.StaticPath + "/index.html")
	})

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")

	// Coarse per-IP guard; the per-connection message limiter lives in
	// the core and is a separate mechanism.
	limiter := newIPRateLimiter(cfg.HTTPRateMax, cfg.HTTPRateWindow)
	r.GET("/history/:room", rateLimitMiddleware(limiter), historyHandler(store, cfg.HistoryPageSize))

	api := r.Group("/api")
	api.GET("/ws/chat", func(c *gin.Context) {
		log.Info().Str("module", "adapters.http").Str("client", c.GetString("client_token")).Msg("ws chat endpoint hit")
		ctl.HandleWS(ctx, c)
	})

	return r
}

func historyHandler(store history.Store, pageSize int) gin.HandlerFunc {
	return func(c *gin.Context) {
		room := c.Param("room")
		msgs, err := store.Recent(c.Request.Context(), room, pageSize)
		if err != nil {
			log.Error().Err(err).Str("module", "adapters.http").Str("room", room).Msg("history query failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "DB error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"messages": msgs})
	}
}
