package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Stats is what the status endpoint reports on.
type Stats interface {
	RoomCount() int
	ConnectionCount() int
}

type StatusResponse struct {
	Status      string `json:"status"`
	Rooms       int    `json:"rooms"`
	Connections int    `json:"connections"`
	Uptime      int64  `json:"uptime"`
}

func StatusHandler(stats Stats, started time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, StatusResponse{
			Status:      "online",
			Rooms:       stats.RoomCount(),
			Connections: stats.ConnectionCount(),
			Uptime:      int64(time.Since(started).Seconds()),
		})
	}
}

func handleNotFound(c *gin.Context) {
	c.String(http.StatusNotFound, "Not found")
}
