package chat

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 64 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin is enforced by the CORS layer for the REST surface; the
	// community room is open to any authenticated client build.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades the connection, replays the room history and pumps
// incoming messages to every connected client.
func ServeWS(hub *Hub, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Error().Err(err).Msg("websocket upgrade")
			return
		}

		cl := &client{
			id:   uuid.NewString(),
			conn: conn,
			send: make(chan []byte, 256),
		}
		go cl.writePump()

		// History goes through the send channel like any other frame,
		// so the replay cannot interleave with a broadcast. Queued
		// before registration, it is always the first frame delivered.
		if data, err := json.Marshal(hub.History()); err == nil {
			cl.send <- data
		}
		hub.register(cl)

		cl.readPump(hub)
	}
}

func (c *client) readPump(hub *Hub) {
	defer func() {
		hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg CommunityMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		hub.Broadcast(msg)
	}
}

// writePump owns the connection's write side: queued frames and pings
// all leave from here, one goroutine per client.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
