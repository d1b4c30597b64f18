package ws

import (
	"net/http"

	"floodguard_backend/internal/logger"
	"floodguard_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // TODO: restrict to the dashboard origin
	},
}

type Handler struct {
	Manager       *Manager
	Notifications services.NotificationService
}

func NewHandler(manager *Manager, notifications services.NotificationService) *Handler {
	return &Handler{
		Manager:       manager,
		Notifications: notifications,
	}
}

// ServeWS upgrades an authenticated request to a realtime connection.
// The auth middleware must run first; the user ID comes from it.
func (h *Handler) ServeWS(c *gin.Context) {
	userID := c.GetString("userID")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("ws upgrade failed", "error", err.Error())
		return
	}

	client := &Client{
		UserID:        userID,
		Conn:          conn,
		Send:          make(chan Event, 256),
		Manager:       h.Manager,
		Notifications: h.Notifications,
	}

	h.Manager.register <- client

	go client.readPump()
	go client.writePump()
}
