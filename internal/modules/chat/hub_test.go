package chat

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatServer(t *testing.T, hub *Hub) *httptest.Server {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/chat", ServeWS(hub, zerolog.Nop()))
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func dialChat(t *testing.T, srv *httptest.Server) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/chat"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHub_HistoryReplayIsFirstFrame(t *testing.T) {
	hub := NewHub()
	defer hub.Close()
	srv := newChatServer(t, hub)

	first := dialChat(t, srv)
	var replay []CommunityMessage
	require.NoError(t, first.ReadJSON(&replay))
	assert.Empty(t, replay)

	msg := CommunityMessage{Sender: "Aisha", Text: "hello everyone", Time: "10:00"}
	require.NoError(t, first.WriteJSON(msg))

	var echoed CommunityMessage
	require.NoError(t, first.ReadJSON(&echoed))
	assert.Equal(t, msg, echoed)

	late := dialChat(t, srv)
	var history []CommunityMessage
	require.NoError(t, late.ReadJSON(&history))
	require.Len(t, history, 1)
	assert.Equal(t, msg, history[0])
}

// Several clients flooding the room at once while another client reads
// everything. The write side of each socket is owned by a single pump, so
// this holds up under the race detector.
func TestHub_ConcurrentSendersReachEveryListener(t *testing.T) {
	hub := NewHub()
	defer hub.Close()
	srv := newChatServer(t, hub)

	listener := dialChat(t, srv)
	var replay []CommunityMessage
	require.NoError(t, listener.ReadJSON(&replay))

	const senders = 3
	const perSender = 20

	var wg sync.WaitGroup
	for i := 0; i < senders; i++ {
		conn := dialChat(t, srv)
		var r []CommunityMessage
		require.NoError(t, conn.ReadJSON(&r))

		wg.Add(1)
		go func(conn *websocket.Conn, name string) {
			defer wg.Done()
			for j := 0; j < perSender; j++ {
				msg := CommunityMessage{Sender: name, Text: "hi", Time: "12:00"}
				if err := conn.WriteJSON(msg); err != nil {
					return
				}
			}
		}(conn, fmt.Sprintf("sender-%d", i))
	}

	for received := 0; received < senders*perSender; received++ {
		var msg CommunityMessage
		require.NoError(t, listener.ReadJSON(&msg))
		assert.True(t, strings.HasPrefix(msg.Sender, "sender-"))
	}
	wg.Wait()

	assert.Len(t, hub.History(), senders*perSender)
}

func TestHub_OnlineCountTracksConnections(t *testing.T) {
	hub := NewHub()
	defer hub.Close()
	srv := newChatServer(t, hub)

	first := dialChat(t, srv)
	var replay []CommunityMessage
	require.NoError(t, first.ReadJSON(&replay))

	second := dialChat(t, srv)
	require.NoError(t, second.ReadJSON(&replay))

	assert.Eventually(t, func() bool { return hub.OnlineCount() == 2 },
		time.Second, 10*time.Millisecond)

	second.Close()
	assert.Eventually(t, func() bool { return hub.OnlineCount() == 1 },
		time.Second, 10*time.Millisecond)
}

func TestHub_HistoryIsBounded(t *testing.T) {
	hub := NewHub()

	for i := 0; i < 150; i++ {
		hub.Broadcast(CommunityMessage{Sender: "s", Text: fmt.Sprintf("m%d", i), Time: "09:00"})
	}

	history := hub.History()
	require.Len(t, history, 100)
	assert.Equal(t, "m50", history[0].Text)
	assert.Equal(t, "m149", history[99].Text)
}
