// Package presence tracks which nicknames are currently connected.
package presence

import "sync"

// Registry maps live connections to nicknames. Implementations must be safe
// for concurrent use.
type Registry interface {
	// Join records a nickname for a connection, overwriting any previous
	// nickname on the same connection.
	Join(connID, nickname string)
	// Leave removes a connection. Unknown ids are a no-op.
	Leave(connID string)
	// Snapshot returns every current nickname. The result is the full
	// broadcast payload, never a delta.
	Snapshot() []string
}

type memoryRegistry struct {
	mu    sync.RWMutex
	users map[string]string
}

// NewRegistry creates an in-memory presence registry.
func NewRegistry() Registry {
	return &memoryRegistry{users: make(map[string]string)}
}

func (r *memoryRegistry) Join(connID, nickname string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[connID] = nickname
}

func (r *memoryRegistry) Leave(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, connID)
}

func (r *memoryRegistry) Snapshot() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.users))
	for _, nickname := range r.users {
		out = append(out, nickname)
	}
	return out
}
