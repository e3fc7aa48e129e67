package api

import (
	"sync"

	"github.com/google/uuid"

	"github.com/MJE43/wheel-sim-go/internal/sim"
)

// sessionEntry wraps one engine session with its own lock. Sessions are
// single-writer: exactly one request operates inside a session at a time,
// while distinct sessions run concurrently.
type sessionEntry struct {
	mu  sync.Mutex
	sim *sim.Session
}

// sessionRegistry is the in-memory table of live sessions.
type sessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]*sessionEntry)}
}

// add registers a session and returns its id.
func (r *sessionRegistry) add(s *sim.Session) string {
	id := uuid.New().String()
	r.mu.Lock()
	r.sessions[id] = &sessionEntry{sim: s}
	r.mu.Unlock()
	return id
}

// get looks up a session entry by id.
func (r *sessionRegistry) get(id string) (*sessionEntry, bool) {
	r.mu.RLock()
	entry, ok := r.sessions[id]
	r.mu.RUnlock()
	return entry, ok
}

// remove deletes a session, reporting whether it existed.
func (r *sessionRegistry) remove(id string) bool {
	r.mu.Lock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	return ok
}

// count returns the number of live sessions.
func (r *sessionRegistry) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// withSession runs fn while holding the session's lock.
func (e *sessionEntry) withSession(fn func(s *sim.Session) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.sim)
}
