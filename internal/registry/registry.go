// Package registry tracks the live game sessions for the whole process. At
// most one session of a given kind may be active per guild at a time.
package registry

import (
	"errors"
	"sort"
	"sync"

	"github.com/davemolk/countryguessr/internal/models"
)

var (
	// ErrDuplicateSession is returned when a session of the same kind is
	// already registered for the guild
	ErrDuplicateSession = errors.New("a session of this kind is already running in this guild")

	// ErrSessionNotFound is returned when no session has the given ID
	ErrSessionNotFound = errors.New("session not found")
)

// Session is the view of a game session the registry needs
type Session interface {
	ID() string
	Kind() models.GameKind
	GuildID() string
}

// Registry is the process-wide store of active sessions. Round loops run on
// their own goroutines, so all access goes through the mutex.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]Session
}

// New creates an empty registry
func New() *Registry {
	return &Registry{
		sessions: make(map[string]Session),
	}
}

// Register inserts the session under its ID. It fails with
// ErrDuplicateSession if a session of the same kind is already registered
// for the same guild.
func (r *Registry) Register(s Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.sessions {
		if existing.Kind() == s.Kind() && existing.GuildID() == s.GuildID() {
			return ErrDuplicateSession
		}
	}

	r.sessions[s.ID()] = s
	return nil
}

// Get returns the session with the given ID
func (r *Registry) Get(id string) (Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Find returns the active session of the given kind in the guild, if any
func (r *Registry) Find(kind models.GameKind, guildID string) (Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.sessions {
		if s.Kind() == kind && s.GuildID() == guildID {
			return s, true
		}
	}
	return nil, false
}

// Remove deletes the session with the given ID. Removing an absent ID is a
// no-op.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
}

// Snapshot returns the active sessions ordered by ID
func (r *Registry) Snapshot() []Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID() < out[j].ID()
	})
	return out
}

// Len returns the number of active sessions
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}
