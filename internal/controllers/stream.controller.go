package controllers

import (
	"fmt"
	"net/http"
	"time"

	"diskwarden/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin filtering happens in the CORS middleware.
		return true
	},
}

var streamLog = logrus.StandardLogger()

// SetStreamLogger points the WebSocket handlers at the process logger.
func SetStreamLogger(log *logrus.Logger) {
	streamLog = log
}

// HandleWebSocket upgrades a consumer connection and subscribes it to
// snapshot and alert-transition messages. When auth is enabled the token is
// passed as a query parameter, since browsers cannot set headers on
// WebSocket upgrades.
func HandleWebSocket(authEnabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientName := "consumer"
		if authEnabled {
			token := c.Query("token")
			if token == "" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
				return
			}
			claims, err := services.ValidateToken(token)
			if err != nil {
				streamLog.Warnf("failed websocket auth from IP %s: %v", c.ClientIP(), err)
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
				return
			}
			clientName = claims.NodeName
		}

		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			streamLog.Warnf("websocket upgrade error: %v", err)
			return
		}

		hub := services.GetStreamHub()
		if hub == nil {
			_ = ws.Close()
			return
		}

		client := &services.ClientConnection{
			ID:   fmt.Sprintf("%s-%s-%d", c.ClientIP(), clientName, time.Now().UnixNano()),
			Conn: ws,
			Send: make(chan services.StreamMessage, 256),
		}
		hub.Register(client)

		go readPump(client, hub)
		go writePump(client, hub)
	}
}

// readPump drains control messages from the client until it disconnects.
func readPump(client *services.ClientConnection, hub *services.StreamHub) {
	defer func() {
		hub.Unregister(client.ID)
		_ = client.Conn.Close()
	}()

	client.Conn.SetPongHandler(func(string) error { return nil })

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				streamLog.Warnf("websocket read error: %v", err)
			}
			return
		}
	}
}

// writePump forwards hub messages to the client and keeps the connection
// alive with pings.
func writePump(client *services.ClientConnection, hub *services.StreamHub) {
	pinger := time.NewTicker(30 * time.Second)
	defer func() {
		pinger.Stop()
		_ = client.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-client.Send:
			if !ok {
				_ = client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.Conn.WriteJSON(msg); err != nil {
				return
			}
		case <-pinger.C:
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
