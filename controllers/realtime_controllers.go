package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/business-manager/middlewares"
	"github.com/yeremiapane/business-manager/realtime"
	"github.com/yeremiapane/business-manager/utils"
)

type RealtimeController struct {
	Hub      *realtime.Hub
	upgrader websocket.Upgrader
}

// NewRealtimeController accepts upgrades from any origin in allowedOrigins;
// "*" or an empty list allows all.
func NewRealtimeController(hub *realtime.Hub, allowedOrigins []string) *RealtimeController {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return &RealtimeController{
		Hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(allowed) == 0 || allowed["*"] || allowed[origin]
			},
		},
	}
}

// OrdersSocket streams order events to the caller until the connection drops.
func (rc *RealtimeController) OrdersSocket(c *gin.Context) {
	role := c.GetString(middlewares.ContextRole)

	ws, err := rc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Errorf("websocket upgrade failed: %v", err)
		return
	}

	rc.Hub.Register(ws, role)
	defer rc.Hub.Unregister(ws)

	// Clients only listen; reading keeps control frames flowing and detects
	// the disconnect.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
}
