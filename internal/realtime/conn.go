package realtime

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/airwavefm/radio-backend/internal/domain"
)

// Sender is the transport half of a connection. Send must be safe for
// concurrent use; a failed Send marks the connection dead and the caller
// is expected to reap it.
type Sender interface {
	Send(data []byte) error
	Close() error
}

// Conn is one live client connection: a transport plus the identity and
// room resolved at attach time. The room never changes mid-session; a
// client switches rooms by reconnecting.
type Conn struct {
	transport Sender
	identity  domain.Identity
	room      string
}

// NewConn creates a connection bound to a room with a resolved identity.
func NewConn(transport Sender, identity domain.Identity, room string) *Conn {
	return &Conn{
		transport: transport,
		identity:  identity,
		room:      room,
	}
}

// Send writes data to the peer.
func (c *Conn) Send(data []byte) error {
	return c.transport.Send(data)
}

// Close closes the underlying transport.
func (c *Conn) Close() error {
	return c.transport.Close()
}

// Identity returns the identity resolved at attach time.
func (c *Conn) Identity() domain.Identity {
	return c.identity
}

// Room returns the room this connection is attached to.
func (c *Conn) Room() string {
	return c.room
}

// wsSender adapts a gorilla websocket connection to the Sender interface.
// The mutex serializes frame writes (data and pings share one transport);
// the write deadline bounds how long a stuck peer can hold up a broadcast
// pass.
type wsSender struct {
	mu           sync.Mutex
	conn         *websocket.Conn
	writeTimeout time.Duration
}

func newWSSender(conn *websocket.Conn, writeTimeout time.Duration) *wsSender {
	return &wsSender{conn: conn, writeTimeout: writeTimeout}
}

func (s *wsSender) Send(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.conn.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

func (s *wsSender) Ping() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(s.writeTimeout))
}

func (s *wsSender) Close() error {
	return s.conn.Close()
}
