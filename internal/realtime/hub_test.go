package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*Hub, string) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := NewHub()
	go hub.Run(ctx)

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Serve(conn, []byte(`{"hello":true}`))
	}))
	t.Cleanup(srv.Close)

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func read(t *testing.T, conn *websocket.Conn) string {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	return string(msg)
}

func TestHub_InitialMessageThenBroadcast(t *testing.T) {
	hub, url := startHub(t)

	a, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer a.Close()
	b, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, `{"hello":true}`, read(t, a))
	assert.Equal(t, `{"hello":true}`, read(t, b))

	hub.Broadcast([]byte(`{"leaderboard":[]}`))

	assert.Equal(t, `{"leaderboard":[]}`, read(t, a))
	assert.Equal(t, `{"leaderboard":[]}`, read(t, b))
}

func TestHub_DropIsIdempotent(t *testing.T) {
	hub := NewHub()
	client := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.clients[client] = struct{}{}

	hub.drop(client)
	assert.NotPanics(t, func() { hub.drop(client) })
	assert.Empty(t, hub.clients)
}
