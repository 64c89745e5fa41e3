package handlers

import (
	"errors"
	"sort"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
)

// Connection represents a WebSocket connection and the client it belongs to.
type Connection struct {
	ws       *websocket.Conn
	send     chan []byte
	clientID string
}

var (
	// ErrNotRegistered is returned by SendTo when the target connection
	// is not in the registry.
	ErrNotRegistered = errors.New("connection not registered")
	// ErrSendBufferFull is returned by SendTo when the target cannot
	// accept the message; the connection is evicted as a dead peer.
	ErrSendBufferFull = errors.New("connection send buffer full")
)

var (
	wsConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "ws_connections",
		Help: "Number of currently registered websocket connections",
	})

	wsMessagesBroadcast = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ws_messages_broadcast_total",
		Help: "Number of messages fanned out through the hub",
	})

	wsConnectionsEvicted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ws_connections_evicted_total",
		Help: "Number of connections evicted after a failed send",
	})
)

func init() {
	prometheus.MustRegister(wsConnections)
	prometheus.MustRegister(wsMessagesBroadcast)
	prometheus.MustRegister(wsConnectionsEvicted)
}

// Hub maintains the set of active connections and broadcasts messages to
// the connections. Every connection runs its own goroutines, so the set is
// guarded by a mutex; channel closes happen under the same lock as channel
// sends, which keeps send-on-closed-channel impossible.
type Hub struct {
	mu          sync.Mutex
	connections map[*Connection]bool
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[*Connection]bool),
	}
}

// Register adds a connection to the hub. Registering the same connection
// twice is a no-op.
func (h *Hub) Register(c *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.connections[c] {
		return
	}
	h.connections[c] = true
	wsConnections.Set(float64(len(h.connections)))
}

// Unregister removes a connection and closes its send channel. Safe to
// call more than once; the disconnect path and the eviction path can race
// to remove the same connection.
func (h *Hub) Unregister(c *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *Connection) {
	if _, ok := h.connections[c]; !ok {
		return
	}
	delete(h.connections, c)
	close(c.send)
	wsConnections.Set(float64(len(h.connections)))
}

// Len returns the number of registered connections.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.connections)
}

// ClientIDs returns the ids of all registered connections, sorted.
func (h *Hub) ClientIDs() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	ids := make([]string, 0, len(h.connections))
	for c := range h.connections {
		ids = append(ids, c.clientID)
	}
	sort.Strings(ids)
	return ids
}

// Broadcast delivers message to every registered connection, best-effort.
// A connection that cannot take the message is recorded and the fan-out
// continues; failed connections are evicted in a second pass so the set is
// never mutated while it is being iterated.
func (h *Hub) Broadcast(message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var failed []*Connection
	for c := range h.connections {
		select {
		case c.send <- message:
		default:
			failed = append(failed, c)
		}
	}
	for _, c := range failed {
		h.removeLocked(c)
		wsConnectionsEvicted.Inc()
	}
	wsMessagesBroadcast.Inc()
}

// SendTo delivers message to a single connection. Unlike Broadcast, a
// failure here is the caller's to handle; the dead connection is still
// evicted.
func (h *Hub) SendTo(c *Connection, message []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.connections[c]; !ok {
		return ErrNotRegistered
	}
	select {
	case c.send <- message:
		return nil
	default:
		h.removeLocked(c)
		wsConnectionsEvicted.Inc()
		return ErrSendBufferFull
	}
}
