package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dkeye/Collab/internal/app"
	"github.com/dkeye/Collab/internal/app/orch"
	"github.com/dkeye/Collab/internal/config"
	"github.com/dkeye/Collab/internal/core"
	"github.com/dkeye/Collab/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, cfg *config.Config) (*httptest.Server, *orch.Orchestrator) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	o := &orch.Orchestrator{
		Registry: app.NewRegistry(),
		Rooms:    core.NewRoomRegistry(),
		Policy:   app.DropPolicy{},
		Palette:  domain.NewPalette(),
		Limits:   orch.DefaultLimits(),
	}
	ctx, cancel := context.WithCancel(context.Background())
	srv := httptest.NewServer(SetupRouter(ctx, cfg, o, time.Now()))
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return srv, o
}

func testConfig() *config.Config {
	return &config.Config{Mode: "test", ReadLimit: 1 << 20, SendBuffer: 16}
}

func dial(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func send(t *testing.T, c *websocket.Conn, v any) {
	t.Helper()
	require.NoError(t, c.WriteJSON(v))
}

func recv(t *testing.T, c *websocket.Conn) map[string]any {
	t.Helper()
	require.NoError(t, c.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := c.ReadMessage()
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))
	return m
}

func TestStatus(t *testing.T) {
	srv, _ := newServer(t, testConfig())

	for _, path := range []string{"/", "/health"} {
		t.Run(path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + path)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			var body StatusResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, "online", body.Status)
			assert.Equal(t, 0, body.Rooms)
			assert.Equal(t, 0, body.Connections)
			assert.GreaterOrEqual(t, body.Uptime, int64(0))
		})
	}
}

func TestNotFound(t *testing.T) {
	srv, _ := newServer(t, testConfig())

	resp, err := http.Get(srv.URL + "/nope")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Not found", string(body))
}

func TestStatus_CountsRoomsAndConnections(t *testing.T) {
	srv, o := newServer(t, testConfig())
	host := dial(t, srv, "/")
	dial(t, srv, "/ws")

	send(t, host, map[string]any{"type": "create_room", "username": "Alice"})
	require.Equal(t, "room_created", recv(t, host)["type"])

	require.Eventually(t, func() bool { return o.ConnectionCount() == 2 }, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	var body StatusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.Rooms)
	assert.Equal(t, 2, body.Connections)
}

func TestSession_EndToEnd(t *testing.T) {
	srv, o := newServer(t, testConfig())
	host := dial(t, srv, "/ws")
	guest := dial(t, srv, "/any/path")

	send(t, host, map[string]any{"type": "create_room", "username": "Alice"})
	created := recv(t, host)
	require.Equal(t, "room_created", created["type"])
	roomID := created["roomId"].(string)
	assert.Len(t, roomID, 6)

	send(t, guest, map[string]any{"type": "join_room", "roomId": strings.ToLower(roomID), "username": "Alice"})
	joined := recv(t, guest)
	require.Equal(t, "room_joined", joined["type"])
	assert.Equal(t, "Alice_1", joined["username"])

	userJoined := recv(t, host)
	assert.Equal(t, "user_joined", userJoined["type"])
	assert.Equal(t, "Alice_1", userJoined["username"])
	request := recv(t, host)
	assert.Equal(t, "request_full_state", request["type"])
	assert.Equal(t, "Alice_1", request["targetUser"])

	send(t, host, map[string]any{"type": "full_state", "roomId": roomID, "targetUser": "Alice_1", "projectData": map[string]any{"v": 1}})
	state := recv(t, guest)
	assert.Equal(t, "full_state", state["type"])
	assert.Equal(t, map[string]any{"v": float64(1)}, state["projectData"])

	// Garbage and unknown types are dropped without a reply.
	require.NoError(t, guest.WriteMessage(websocket.TextMessage, []byte("not json")))
	send(t, guest, map[string]any{"type": "no_such_type"})

	send(t, guest, map[string]any{"type": "model_action", "roomId": roomID, "action": "move", "username": "Alice_1", "data": []int{1, 2}})
	action := recv(t, host)
	assert.Equal(t, "model_action", action["type"])
	assert.Equal(t, "move", action["action"])

	send(t, guest, map[string]any{"type": "chat_message", "roomId": roomID, "username": "Alice_1", "message": "hello"})
	for _, c := range []*websocket.Conn{host, guest} {
		msg := recv(t, c)
		assert.Equal(t, "chat_message", msg["type"])
		assert.Equal(t, "hello", msg["message"])
	}

	send(t, guest, map[string]any{"type": "ping"})
	assert.Equal(t, "pong", recv(t, guest)["type"])

	require.NoError(t, host.Close())
	left := recv(t, guest)
	assert.Equal(t, "user_left", left["type"])
	assert.Equal(t, "Alice", left["username"])
	newHost := recv(t, guest)
	assert.Equal(t, "new_host", newHost["type"])
	assert.Equal(t, "Alice_1", newHost["username"])

	require.Eventually(t, func() bool { return o.ConnectionCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	send(t, guest, map[string]any{"type": "leave_room"})
	assert.Equal(t, "left_room", recv(t, guest)["type"])
	assert.Equal(t, 0, o.RoomCount())
}

func TestSession_JoinErrors(t *testing.T) {
	srv, _ := newServer(t, testConfig())
	c := dial(t, srv, "/ws")

	send(t, c, map[string]any{"type": "join_room", "roomId": "zzzzzz"})
	msg := recv(t, c)
	assert.Equal(t, "error", msg["type"])
	assert.Equal(t, `Room "ZZZZZZ" not found`, msg["message"])
}

func TestSession_JoinRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.JoinRateLimit = 2
	cfg.JoinRateWindow = time.Minute
	srv, _ := newServer(t, cfg)
	c := dial(t, srv, "/ws")

	for i := 0; i < 2; i++ {
		send(t, c, map[string]any{"type": "create_room"})
		assert.Equal(t, "room_created", recv(t, c)["type"])
	}
	send(t, c, map[string]any{"type": "create_room"})
	msg := recv(t, c)
	assert.Equal(t, "error", msg["type"])
	assert.Equal(t, "Too many requests", msg["message"])
}
