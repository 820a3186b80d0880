package realtime

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/airwavefm/radio-backend/internal/domain"
)

// Broadcaster fans events out to connection sets held by a Registry.
// Delivery is best effort: the payload is marshalled once, the target
// set is snapshotted, and each member gets exactly one send attempt. A
// failed send reaps the connection so it cannot stall later passes.
// Broadcast methods never return errors; a delivery failure is the dead
// peer's problem, not the publisher's.
type Broadcaster struct {
	registry *Registry
	logger   *zap.Logger
}

// NewBroadcaster creates a broadcaster over the given registry.
func NewBroadcaster(registry *Registry, logger *zap.Logger) *Broadcaster {
	return &Broadcaster{
		registry: registry,
		logger:   logger.Named("broadcast"),
	}
}

// BroadcastToRoom sends an event to every connection currently in the
// room. Connections that join mid-fanout are not included.
func (b *Broadcaster) BroadcastToRoom(room string, event any) {
	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("failed to marshal event", zap.Error(err))
		return
	}

	// Every member gets its send attempt first; dead connections are
	// collected and reaped after the pass.
	conns := b.registry.RoomConns(room)
	var failed []*Conn
	for _, conn := range conns {
		if err := conn.Send(data); err != nil {
			b.logger.Debug("send failed, marking connection for reap",
				zap.String("room", room),
				zap.String("username", conn.Identity().Username),
				zap.Error(err))
			failed = append(failed, conn)
		}
	}

	for _, conn := range failed {
		b.registry.Unregister(conn)
		_ = conn.Close()
	}

	b.logger.Debug("room broadcast",
		zap.String("room", room),
		zap.Int("targets", len(conns)),
		zap.Int("delivered", len(conns)-len(failed)))
}

// BroadcastToPlatform sends an event to the platform-wide room.
func (b *Broadcaster) BroadcastToPlatform(event any) {
	b.BroadcastToRoom(domain.PlatformRoom, event)
}

// BroadcastToPrivileged sends an event to every dj/admin session in the
// privileged index. A failed send drops the user's privileged entry but
// leaves room membership alone; the connection's own read loop owns the
// full teardown.
func (b *Broadcaster) BroadcastToPrivileged(event any) {
	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("failed to marshal event", zap.Error(err))
		return
	}

	conns := b.registry.PrivilegedConns()
	failed := make(map[string]*Conn)
	for userID, conn := range conns {
		if err := conn.Send(data); err != nil {
			b.logger.Debug("send failed, dropping privileged entry",
				zap.String("user_id", userID),
				zap.Error(err))
			failed[userID] = conn
		}
	}

	for userID, conn := range failed {
		b.registry.RemovePrivileged(userID, conn)
	}

	b.logger.Debug("privileged broadcast",
		zap.Int("targets", len(conns)),
		zap.Int("delivered", len(conns)-len(failed)))
}
