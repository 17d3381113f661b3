package http

import (
	"context"
	"time"

	"github.com/dkeye/Collab/internal/adapters/signal"
	"github.com/dkeye/Collab/internal/app/orch"
	"github.com/dkeye/Collab/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// upgradeOr serves websocket upgrades on any route and falls back to h.
func upgradeOr(ctx context.Context, ctrl *signal.SignalWSController, h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if websocket.IsWebSocketUpgrade(c.Request) {
			ctrl.HandleSignal(ctx, c)
			return
		}
		h(c)
	}
}

func SetupRouter(ctx context.Context, cfg *config.Config, o *orch.Orchestrator, started time.Time) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	ctrl := signal.NewSignalWSController(o, cfg)
	status := upgradeOr(ctx, ctrl, StatusHandler(o, started))

	r.GET("/", status)
	r.GET("/health", status)
	r.GET("/ws", func(c *gin.Context) {
		ctrl.HandleSignal(ctx, c)
	})
	r.NoRoute(upgradeOr(ctx, ctrl, handleNotFound))

	log.Info().Str("module", "adapters.http").Msg("router setup")
	return r
}
