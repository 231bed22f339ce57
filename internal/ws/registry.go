package ws

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/Nabin-web/startrace/internal/api/metrics"
)

// Conn is the minimal connection surface the registry depends on. The
// production implementation wraps a gorilla websocket; tests use in-memory
// fakes.
type Conn interface {
	// WriteText sends one text frame. Implementations must bound the write
	// so a dead peer cannot block the caller indefinitely.
	WriteText(payload []byte) error
	Close() error
}

// Member is the registry's handle for one registered connection. Username is
// informational only; broadcast delivery is unconditional to all members.
type Member struct {
	conn     Conn
	Username string
}

// Registry tracks the set of currently open push channels. All access to the
// member set is serialized through a single mutex; Broadcast iterates over a
// snapshot taken under that lock so registrations and disconnects may happen
// concurrently with delivery.
type Registry struct {
	mu      sync.Mutex
	members map[*Member]struct{}
	logger  zerolog.Logger
}

func NewRegistry(logger zerolog.Logger) *Registry {
	return &Registry{
		members: make(map[*Member]struct{}),
		logger:  logger,
	}
}

// Register adds an already-open connection to the active set and returns its
// handle.
func (r *Registry) Register(conn Conn, username string) *Member {
	m := &Member{conn: conn, Username: username}

	r.mu.Lock()
	r.members[m] = struct{}{}
	count := len(r.members)
	r.mu.Unlock()

	metrics.ConnectionsActive.Set(float64(count))
	r.logger.Debug().Str("username", username).Int("connections", count).Msg("connection registered")
	return m
}

// Unregister removes a member from the active set and closes its connection.
// It is idempotent: removing an already-removed member is a no-op, so the
// read loop and a failed broadcast send may both report the same disconnect.
func (r *Registry) Unregister(m *Member) {
	r.mu.Lock()
	_, present := r.members[m]
	if present {
		delete(r.members, m)
	}
	count := len(r.members)
	r.mu.Unlock()

	if !present {
		return
	}

	_ = m.conn.Close()
	metrics.ConnectionsActive.Set(float64(count))
	r.logger.Debug().Str("username", m.Username).Int("connections", count).Msg("connection unregistered")
}

// Broadcast delivers payload to every member registered at the moment the
// call begins. Delivery failures are isolated per member: a broken
// connection is unregistered and the remaining members still receive the
// message.
func (r *Registry) Broadcast(payload []byte) {
	r.mu.Lock()
	snapshot := make([]*Member, 0, len(r.members))
	for m := range r.members {
		snapshot = append(snapshot, m)
	}
	r.mu.Unlock()

	metrics.BroadcastsTotal.Inc()

	for _, m := range snapshot {
		if err := m.conn.WriteText(payload); err != nil {
			r.logger.Warn().Err(err).Str("username", m.Username).Msg("broadcast send failed, dropping connection")
			metrics.BroadcastSendFailuresTotal.Inc()
			r.Unregister(m)
		}
	}
}

// Len reports the current number of registered members.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}
