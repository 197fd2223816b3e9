package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/jlptquiz/internal/quiz"
)

// ErrNotFound is returned for unknown or expired tokens. It also matches
// quiz.ErrInvalidSessionState.
var ErrNotFound = fmt.Errorf("session not found: %w", quiz.ErrInvalidSessionState)

// Store keeps one session per client token. Sessions idle for longer
// than the TTL are dropped. A zero TTL keeps sessions until deleted.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
	now      func() time.Time
}

type entry struct {
	session  *Session
	lastSeen time.Time
}

// NewStore returns an empty Store.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create registers a new session for mode under a fresh token.
func (st *Store) Create(mode quiz.Mode) (string, *Session) {
	token := uuid.NewString()
	s := New(token, mode)

	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[token] = &entry{session: s, lastSeen: st.now()}
	return token, s
}

// Get returns the session for token and refreshes its idle timer.
func (st *Store) Get(token string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	e, ok := st.sessions[token]
	if !ok {
		return nil, ErrNotFound
	}
	now := st.now()
	if st.expired(e, now) {
		delete(st.sessions, token)
		return nil, ErrNotFound
	}
	e.lastSeen = now
	return e.session, nil
}

// Delete removes the session for token. It reports whether it existed.
func (st *Store) Delete(token string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	_, ok := st.sessions[token]
	delete(st.sessions, token)
	return ok
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep drops expired sessions and returns how many were removed.
func (st *Store) Sweep() int {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	n := 0
	for token, e := range st.sessions {
		if st.expired(e, now) {
			delete(st.sessions, token)
			n++
		}
	}
	return n
}

// Run sweeps expired sessions every interval until ctx is done.
func (st *Store) Run(ctx context.Context, interval time.Duration) {
	if st.ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.Sweep(); n > 0 {
				slog.Debug("expired sessions swept", "count", n)
			}
		}
	}
}

func (st *Store) expired(e *entry, now time.Time) bool {
	return st.ttl > 0 && now.Sub(e.lastSeen) > st.ttl
}
