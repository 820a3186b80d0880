package realtime

import (
	"sync"

	"go.uber.org/zap"
)

// Registry tracks every live connection, grouped by room, plus a
// privileged index keyed by user id for dj/admin sessions. One lock
// guards all three maps so membership changes are atomic across views.
type Registry struct {
	mu         sync.RWMutex
	rooms      map[string]map[*Conn]struct{}
	conns      map[*Conn]struct{}
	privileged map[string]*Conn
	logger     *zap.Logger
}

// NewRegistry creates an empty connection registry.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		rooms:      make(map[string]map[*Conn]struct{}),
		conns:      make(map[*Conn]struct{}),
		privileged: make(map[string]*Conn),
		logger:     logger.Named("registry"),
	}
}

// Register adds a connection to its room. If the identity is privileged
// (dj or admin), the connection also replaces any previous privileged
// entry for the same user: last connect wins, and the displaced
// connection keeps its room membership until it unregisters itself.
func (r *Registry) Register(conn *Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room := conn.Room()
	if r.rooms[room] == nil {
		r.rooms[room] = make(map[*Conn]struct{})
	}
	r.rooms[room][conn] = struct{}{}
	r.conns[conn] = struct{}{}

	identity := conn.Identity()
	if identity.Role.Privileged() && identity.UserID != "" {
		if prev, ok := r.privileged[identity.UserID]; ok && prev != conn {
			r.logger.Debug("replacing privileged connection",
				zap.String("user_id", identity.UserID),
				zap.String("username", identity.Username))
		}
		r.privileged[identity.UserID] = conn
	}

	r.logger.Debug("connection registered",
		zap.String("room", room),
		zap.String("username", identity.Username),
		zap.String("role", string(identity.Role)),
		zap.Int("room_size", len(r.rooms[room])))
}

// Unregister removes a connection from every index it appears in. Safe
// to call more than once and on connections that were never registered;
// extra calls are no-ops. Empty rooms are pruned.
func (r *Registry) Unregister(conn *Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conns[conn]; !ok {
		return
	}
	delete(r.conns, conn)

	room := conn.Room()
	if members, ok := r.rooms[room]; ok {
		delete(members, conn)
		if len(members) == 0 {
			delete(r.rooms, room)
		}
	}

	identity := conn.Identity()
	if identity.UserID != "" && r.privileged[identity.UserID] == conn {
		delete(r.privileged, identity.UserID)
	}

	r.logger.Debug("connection unregistered",
		zap.String("room", room),
		zap.String("username", identity.Username))
}

// RemovePrivileged drops a user's privileged index entry, but only if it
// still points at the given connection. A newer session that has already
// replaced the entry is left untouched. Room membership is not affected.
func (r *Registry) RemovePrivileged(userID string, conn *Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.privileged[userID] == conn {
		delete(r.privileged, userID)
	}
}

// RoomConns returns a snapshot of the room's members. Mutating the
// registry after the call does not affect the returned slice.
func (r *Registry) RoomConns(room string) []*Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := r.rooms[room]
	conns := make([]*Conn, 0, len(members))
	for conn := range members {
		conns = append(conns, conn)
	}
	return conns
}

// PrivilegedConns returns a snapshot of the privileged index: one
// connection per privileged user currently online.
func (r *Registry) PrivilegedConns() map[string]*Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conns := make(map[string]*Conn, len(r.privileged))
	for userID, conn := range r.privileged {
		conns[userID] = conn
	}
	return conns
}

// ConnectionCount returns the total number of live connections across
// all rooms.
func (r *Registry) ConnectionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.conns)
}

// RoomCount returns the number of rooms with at least one member.
func (r *Registry) RoomCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.rooms)
}

// IsPrivilegedOnline reports whether a privileged session exists for the
// given user.
func (r *Registry) IsPrivilegedOnline(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.privileged[userID]
	return ok
}
