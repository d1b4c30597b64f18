package ws

import (
	"encoding/json"

	"floodguard_backend/internal/logger"
	"floodguard_backend/internal/services"

	"github.com/gorilla/websocket"
)

type IncomingMessage struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan Event

	Manager       *Manager
	Notifications services.NotificationService
}

func (c *Client) readPump() {
	defer func() {
		c.Manager.unregister <- c
		c.Conn.Close()
	}()

	for {
		_, msgBytes, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("ws read error", "error", err.Error(), "user_id", c.UserID)
			}
			return
		}

		var msg IncomingMessage
		if err := json.Unmarshal(msgBytes, &msg); err != nil {
			logger.Debug("ws invalid message", "error", err.Error(), "user_id", c.UserID)
			continue
		}
		c.handleMessage(msg)
	}
}

func (c *Client) writePump() {
	for event := range c.Send {
		if err := c.Conn.WriteJSON(event); err != nil {
			logger.Debug("ws write error", "error", err.Error(), "user_id", c.UserID)
			return
		}
	}
}

func (c *Client) handleMessage(msg IncomingMessage) {
	switch msg.Action {

	case "mark_as_read":
		var payload struct {
			NotificationID string `json:"notification_id"`
		}
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			return
		}
		if err := c.Notifications.MarkAsRead(c.UserID, payload.NotificationID); err != nil {
			logger.Debug("ws mark_as_read failed", "error", err.Error(), "user_id", c.UserID)
			return
		}
		c.pushUnreadCount()

	case "mark_all_as_read":
		if err := c.Notifications.MarkAllAsRead(c.UserID); err != nil {
			logger.Debug("ws mark_all_as_read failed", "error", err.Error(), "user_id", c.UserID)
			return
		}
		c.pushUnreadCount()

	default:
		logger.Debug("ws unhandled action", "action", msg.Action)
	}
}

func (c *Client) pushUnreadCount() {
	count, err := c.Notifications.GetUnreadCount(c.UserID)
	if err != nil {
		return
	}
	select {
	case c.Send <- Event{Type: "unread_count", Payload: count}:
	default:
	}
}
