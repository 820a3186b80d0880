package realtime

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/airwavefm/radio-backend/internal/domain"
	"github.com/airwavefm/radio-backend/pkg/config"
)

// fakeIdentityResolver maps fixed token strings onto identities and
// falls back to anonymous like the real resolver does.
type fakeIdentityResolver struct {
	tokens map[string]domain.Identity
}

func (f *fakeIdentityResolver) ResolveIdentity(_ context.Context, token string) domain.Identity {
	if identity, ok := f.tokens[token]; ok {
		return identity
	}
	return domain.Anonymous
}

// fakeRoomResolver accepts known rooms and falls back to the platform
// room for everything else.
type fakeRoomResolver struct {
	known map[string]string
}

func (f *fakeRoomResolver) ResolveRoom(_ context.Context, requested string) string {
	if room, ok := f.known[requested]; ok {
		return room
	}
	return domain.PlatformRoom
}

func testRealtimeConfig() config.RealtimeConfig {
	return config.RealtimeConfig{
		WriteTimeoutSeconds: 2,
		PongTimeoutSeconds:  10,
		PingIntervalSeconds: 5,
		MaxMessageBytes:     4096,
		ChatRatePerSecond:   100,
		ChatBurst:           100,
	}
}

func newTestHub(t *testing.T, cfg config.RealtimeConfig) (*Hub, *Registry, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := NewRegistry(zap.NewNop())
	broadcaster := NewBroadcaster(registry, zap.NewNop())

	identities := &fakeIdentityResolver{tokens: map[string]domain.Identity{
		"dj-token":       {UserID: "dj-1", Username: "dj-dax", Role: domain.RoleDJ},
		"listener-token": {UserID: "user-1", Username: "alice", Role: domain.RoleListener},
	}}
	rooms := &fakeRoomResolver{known: map[string]string{
		"night-drive": "station-1",
	}}

	hub := NewHub(cfg, registry, broadcaster, identities, rooms, zap.NewNop())

	router := gin.New()
	router.GET("/ws/:room", hub.HandleConnection)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return hub, registry, server
}

func dialWS(t *testing.T, server *httptest.Server, room, token string) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/" + room
	if token != "" {
		wsURL += "?token=" + token
	}
	ws, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	require.Equal(t, 101, resp.StatusCode)
	t.Cleanup(func() { _ = ws.Close() })
	return ws
}

func readEvent(t *testing.T, ws *websocket.Conn, out any) {
	t.Helper()

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := ws.ReadMessage()
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out))
}

func waitForConnections(t *testing.T, registry *Registry, want int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if registry.ConnectionCount() == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected %d connections, have %d", want, registry.ConnectionCount())
}

func TestHub_AnonymousChatEcho(t *testing.T) {
	_, registry, server := newTestHub(t, testRealtimeConfig())

	ws := dialWS(t, server, "night-drive", "")
	waitForConnections(t, registry, 1)

	require.NoError(t, ws.WriteJSON(map[string]string{
		"type":    "chat_message",
		"message": "hello from nobody",
	}))

	var ev ChatEvent
	readEvent(t, ws, &ev)

	assert.Equal(t, EventChatMessage, ev.Type)
	assert.Equal(t, "hello from nobody", ev.Message)
	assert.Equal(t, "anonymous", ev.Username)
	assert.Equal(t, domain.RoleListener, ev.Role)
	assert.Equal(t, "station-1", ev.Room)
	assert.False(t, ev.Timestamp.IsZero())
}

func TestHub_AuthenticatedChatCarriesResolvedIdentity(t *testing.T) {
	_, registry, server := newTestHub(t, testRealtimeConfig())

	ws := dialWS(t, server, "night-drive", "dj-token")
	waitForConnections(t, registry, 1)

	// The client-supplied username is ignored when a token resolved.
	require.NoError(t, ws.WriteJSON(map[string]string{
		"type":     "chat_message",
		"message":  "on air soon",
		"username": "impostor",
	}))

	var ev ChatEvent
	readEvent(t, ws, &ev)

	assert.Equal(t, "dj-dax", ev.Username)
	assert.Equal(t, domain.RoleDJ, ev.Role)
}

func TestHub_InvalidTokenDegradesToAnonymous(t *testing.T) {
	_, registry, server := newTestHub(t, testRealtimeConfig())

	ws := dialWS(t, server, "night-drive", "garbage-token")
	waitForConnections(t, registry, 1)

	require.NoError(t, ws.WriteJSON(map[string]string{
		"type":    "chat_message",
		"message": "still here",
	}))

	var ev ChatEvent
	readEvent(t, ws, &ev)
	assert.Equal(t, domain.RoleListener, ev.Role)
	assert.Equal(t, "anonymous", ev.Username)
}

func TestHub_UnknownRoomFallsBackToPlatform(t *testing.T) {
	_, registry, server := newTestHub(t, testRealtimeConfig())

	ws := dialWS(t, server, "no-such-station", "")
	waitForConnections(t, registry, 1)

	require.NoError(t, ws.WriteJSON(map[string]string{
		"type":    "chat_message",
		"message": "lobby chat",
	}))

	var ev ChatEvent
	readEvent(t, ws, &ev)
	assert.Equal(t, domain.PlatformRoom, ev.Room)
}

func TestHub_ChatStaysInRoom(t *testing.T) {
	_, registry, server := newTestHub(t, testRealtimeConfig())

	stationWS := dialWS(t, server, "night-drive", "")
	platformWS := dialWS(t, server, "other", "")
	waitForConnections(t, registry, 2)

	require.NoError(t, stationWS.WriteJSON(map[string]string{
		"type":    "chat_message",
		"message": "station only",
	}))

	var ev ChatEvent
	readEvent(t, stationWS, &ev)
	assert.Equal(t, "station only", ev.Message)

	// The platform connection must not receive the station message.
	require.NoError(t, platformWS.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := platformWS.ReadMessage()
	assert.Error(t, err)
}

func TestHub_DJControlDroppedForListener(t *testing.T) {
	_, registry, server := newTestHub(t, testRealtimeConfig())

	listener := dialWS(t, server, "night-drive", "listener-token")
	observer := dialWS(t, server, "night-drive", "")
	waitForConnections(t, registry, 2)

	require.NoError(t, listener.WriteJSON(map[string]string{
		"type":   "dj_control",
		"action": "skip_track",
	}))

	// No broadcast reaches anyone; the connection stays open, which a
	// follow-up chat message proves.
	require.NoError(t, observer.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := observer.ReadMessage()
	assert.Error(t, err)

	require.NoError(t, listener.WriteJSON(map[string]string{
		"type":    "chat_message",
		"message": "still connected",
	}))
	var ev ChatEvent
	readEvent(t, listener, &ev)
	assert.Equal(t, "still connected", ev.Message)
}

func TestHub_DJControlForwardedForDJ(t *testing.T) {
	_, registry, server := newTestHub(t, testRealtimeConfig())

	dj := dialWS(t, server, "night-drive", "dj-token")
	listener := dialWS(t, server, "night-drive", "")
	waitForConnections(t, registry, 2)

	require.NoError(t, dj.WriteJSON(map[string]any{
		"type":   "dj_control",
		"action": "set_volume",
		"data":   map[string]int{"volume": 60},
	}))

	var ev DJControlEvent
	readEvent(t, listener, &ev)

	assert.Equal(t, EventDJControl, ev.Type)
	assert.Equal(t, "set_volume", ev.Action)
	assert.Equal(t, "dj-dax", ev.DJName)
	assert.Contains(t, string(ev.Data), "60")
}

func TestHub_MalformedMessageDoesNotCloseConnection(t *testing.T) {
	_, registry, server := newTestHub(t, testRealtimeConfig())

	ws := dialWS(t, server, "night-drive", "")
	waitForConnections(t, registry, 1)

	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte("{not json")))

	require.NoError(t, ws.WriteJSON(map[string]string{
		"type":    "chat_message",
		"message": "survived",
	}))

	var ev ChatEvent
	readEvent(t, ws, &ev)
	assert.Equal(t, "survived", ev.Message)
}

func TestHub_DisconnectUnregisters(t *testing.T) {
	_, registry, server := newTestHub(t, testRealtimeConfig())

	ws := dialWS(t, server, "night-drive", "dj-token")
	waitForConnections(t, registry, 1)
	require.True(t, registry.IsPrivilegedOnline("dj-1"))

	require.NoError(t, ws.Close())
	waitForConnections(t, registry, 0)
	assert.False(t, registry.IsPrivilegedOnline("dj-1"))
	assert.Equal(t, 0, registry.RoomCount())
}

func TestHub_ChatRateLimit(t *testing.T) {
	cfg := testRealtimeConfig()
	cfg.ChatRatePerSecond = 1
	cfg.ChatBurst = 2
	_, registry, server := newTestHub(t, cfg)

	sender := dialWS(t, server, "night-drive", "")
	receiver := dialWS(t, server, "night-drive", "")
	waitForConnections(t, registry, 2)

	// Burst of 5; only the first two fit the limiter.
	for i := 0; i < 5; i++ {
		require.NoError(t, sender.WriteJSON(map[string]string{
			"type":    "chat_message",
			"message": "spam",
		}))
	}

	received := 0
	for {
		if err := receiver.SetReadDeadline(time.Now().Add(300 * time.Millisecond)); err != nil {
			break
		}
		if _, _, err := receiver.ReadMessage(); err != nil {
			break
		}
		received++
	}
	assert.Equal(t, 2, received)
}

func TestHub_EmptyChatMessageDropped(t *testing.T) {
	_, registry, server := newTestHub(t, testRealtimeConfig())

	ws := dialWS(t, server, "night-drive", "")
	waitForConnections(t, registry, 1)

	require.NoError(t, ws.WriteJSON(map[string]string{"type": "chat_message"}))

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := ws.ReadMessage()
	assert.Error(t, err)
}
