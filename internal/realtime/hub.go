package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/airwavefm/radio-backend/internal/domain"
	"github.com/airwavefm/radio-backend/pkg/config"
)

// IdentityResolver turns an optional token into an identity. An empty or
// invalid token resolves to an anonymous listener rather than an error;
// authentication on the socket is opportunistic, never required.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, token string) domain.Identity
}

// RoomResolver maps the room path segment a client asked for onto the
// canonical room key. Unknown rooms fall back to the platform room.
type RoomResolver interface {
	ResolveRoom(ctx context.Context, requested string) string
}

// Hub upgrades HTTP requests to WebSocket sessions and runs each
// session's read loop: register, consume inbound events, unregister.
type Hub struct {
	cfg         config.RealtimeConfig
	registry    *Registry
	broadcaster *Broadcaster
	identities  IdentityResolver
	rooms       RoomResolver
	logger      *zap.Logger
	upgrader    websocket.Upgrader
}

// NewHub creates a hub over the given registry and broadcaster.
func NewHub(cfg config.RealtimeConfig, registry *Registry, broadcaster *Broadcaster,
	identities IdentityResolver, rooms RoomResolver, logger *zap.Logger) *Hub {
	return &Hub{
		cfg:         cfg,
		registry:    registry,
		broadcaster: broadcaster,
		identities:  identities,
		rooms:       rooms,
		logger:      logger.Named("hub"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleConnection handles GET /ws/:room. The token travels as a query
// parameter because browser WebSocket clients cannot set headers.
func (h *Hub) HandleConnection(c *gin.Context) {
	ctx := c.Request.Context()

	identity := h.identities.ResolveIdentity(ctx, c.Query("token"))
	room := h.rooms.ResolveRoom(ctx, c.Param("room"))

	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("failed to upgrade connection", zap.Error(err))
		return
	}

	sender := newWSSender(ws, h.writeTimeout())
	conn := NewConn(sender, identity, room)
	h.registry.Register(conn)

	h.logger.Info("client connected",
		zap.String("room", room),
		zap.String("username", identity.Username),
		zap.String("role", string(identity.Role)))

	go h.runSession(ws, sender, conn)
}

// runSession owns the connection from registration to teardown. The
// deferred unregister is the single removal point for the read path;
// broadcast reaping may race it, and both sides tolerate the other
// having won.
func (h *Hub) runSession(ws *websocket.Conn, sender *wsSender, conn *Conn) {
	defer func() {
		h.registry.Unregister(conn)
		_ = conn.Close()
		h.logger.Info("client disconnected",
			zap.String("room", conn.Room()),
			zap.String("username", conn.Identity().Username))
	}()

	if h.cfg.MaxMessageBytes > 0 {
		ws.SetReadLimit(h.cfg.MaxMessageBytes)
	}

	pongTimeout := time.Duration(h.cfg.PongTimeoutSeconds) * time.Second
	_ = ws.SetReadDeadline(time.Now().Add(pongTimeout))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongTimeout))
	})

	stopPing := make(chan struct{})
	defer close(stopPing)
	go h.pingLoop(sender, stopPing)

	chatLimiter := h.newChatLimiter()

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("read error", zap.Error(err))
			}
			return
		}

		var msg InboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.logger.Debug("dropping malformed message",
				zap.String("room", conn.Room()),
				zap.Error(err))
			continue
		}

		h.dispatch(conn, msg, chatLimiter)
	}
}

func (h *Hub) dispatch(conn *Conn, msg InboundMessage, chatLimiter *rate.Limiter) {
	identity := conn.Identity()

	switch msg.Type {
	case EventChatMessage:
		if msg.Message == "" {
			return
		}
		if chatLimiter != nil && !chatLimiter.Allow() {
			h.logger.Debug("chat rate limit exceeded",
				zap.String("room", conn.Room()),
				zap.String("username", identity.Username))
			return
		}
		username := identity.Username
		if username == "" {
			username = msg.Username
		}
		if username == "" {
			username = "anonymous"
		}
		h.broadcaster.BroadcastToRoom(conn.Room(),
			NewChatEvent(conn.Room(), msg.Message, username, identity.Role))

	case EventDJControl:
		if !identity.Role.Privileged() {
			h.logger.Warn("dj_control from unprivileged connection",
				zap.String("room", conn.Room()),
				zap.String("username", identity.Username),
				zap.String("action", msg.Action))
			return
		}
		h.broadcaster.BroadcastToRoom(conn.Room(),
			NewDJControlEvent(msg.Action, msg.Data, identity.Username))

	default:
		h.logger.Debug("dropping message with unknown type",
			zap.String("type", msg.Type),
			zap.String("room", conn.Room()))
	}
}

// pingLoop keeps the connection alive. A failed ping just stops the
// loop; the read deadline will expire and tear the session down.
func (h *Hub) pingLoop(sender *wsSender, stop <-chan struct{}) {
	interval := time.Duration(h.cfg.PingIntervalSeconds) * time.Second
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := sender.Ping(); err != nil {
				return
			}
		}
	}
}

func (h *Hub) newChatLimiter() *rate.Limiter {
	if h.cfg.ChatRatePerSecond <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(h.cfg.ChatRatePerSecond), h.cfg.ChatBurst)
}

func (h *Hub) writeTimeout() time.Duration {
	if h.cfg.WriteTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(h.cfg.WriteTimeoutSeconds) * time.Second
}
