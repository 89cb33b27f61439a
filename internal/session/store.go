package session

import (
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Store owns the session map. The map mutex guards only create-if-absent
// and delete; each session additionally has its own lock, held for a whole
// dialog turn, so two concurrent requests for the same id serialize rather
// than corrupt state.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session

	sweeper *cron.Cron
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Acquire returns the session for id, creating it on first use, with its
// per-session lock held. The returned release function must be called when
// the turn is finished.
func (st *Store) Acquire(id string) (*Session, func()) {
	st.mu.Lock()
	s, ok := st.sessions[id]
	if !ok {
		s = New(id)
		st.sessions[id] = s
	}
	st.mu.Unlock()

	s.mu.Lock()
	s.lastSeen.Store(time.Now().Unix())
	return s, s.mu.Unlock
}

// Get returns the session for id without creating one.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Delete removes the session for id, if present.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// StartSweeper evicts sessions idle longer than ttl, checking on the given
// cron schedule (e.g. "@every 10m"). The original system never expired
// sessions; eviction is opt-in and off unless configured.
func (st *Store) StartSweeper(schedule string, ttl time.Duration) error {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() { st.sweep(ttl) })
	if err != nil {
		return err
	}
	c.Start()
	st.sweeper = c
	return nil
}

// StopSweeper stops a running sweeper, if any.
func (st *Store) StopSweeper() {
	if st.sweeper != nil {
		st.sweeper.Stop()
		st.sweeper = nil
	}
}

func (st *Store) sweep(ttl time.Duration) {
	cutoff := time.Now().Add(-ttl).Unix()

	st.mu.Lock()
	var stale []string
	for id, s := range st.sessions {
		if s.lastSeen.Load() < cutoff {
			stale = append(stale, id)
		}
	}
	for _, id := range stale {
		delete(st.sessions, id)
	}
	st.mu.Unlock()

	if len(stale) > 0 {
		log.Printf("session: swept %d idle sessions", len(stale))
	}
}
