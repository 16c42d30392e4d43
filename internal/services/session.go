package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Session is the in-memory state of one visitor: a cart, a builder and a
// checkout over that cart.
type Session struct {
	ID       string
	Cart     *Cart
	Builder  *Builder
	Checkout *Checkout

	mu       sync.Mutex
	lastSeen atomic.Int64
}

// Do runs fn with exclusive access to the builder and checkout.
func (s *Session) Do(fn func(s *Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s)
}

// SessionStore keeps sessions in memory, keyed by cookie id.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	zones    ZoneLookup
	notifier OrderNotifier
	logger   *zap.Logger
	now      func() time.Time
}

func NewSessionStore(zones ZoneLookup, notifier OrderNotifier, logger *zap.Logger) *SessionStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionStore{
		sessions: make(map[string]*Session),
		zones:    zones,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Get returns an existing session and marks it as seen.
func (st *SessionStore) Get(id string) (*Session, bool) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if ok {
		st.touch(s)
	}
	return s, ok
}

// GetOrCreate returns the session for id, creating an empty one if needed.
func (st *SessionStore) GetOrCreate(id string) *Session {
	if s, ok := st.Get(id); ok {
		return s
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[id]; ok {
		return s
	}

	cart := NewCart(st.logger)
	s := &Session{
		ID:       id,
		Cart:     cart,
		Builder:  NewBuilder(),
		Checkout: NewCheckout(cart, st.zones, st.notifier, st.logger),
	}
	st.touch(s)
	st.sessions[id] = s
	st.logger.Debug("session created", zap.String("session_id", id))
	return s
}

func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep drops sessions idle for longer than maxIdle and returns how many went.
func (st *SessionStore) Sweep(maxIdle time.Duration) int {
	cutoff := st.now().Add(-maxIdle)

	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, s := range st.sessions {
		if s.lastSeen.Load() < cutoff.UnixNano() {
			delete(st.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		st.logger.Info("expired sessions removed", zap.Int("removed", removed), zap.Int("remaining", len(st.sessions)))
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (st *SessionStore) Run(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.Sweep(maxIdle)
		}
	}
}

func (st *SessionStore) touch(s *Session) {
	s.lastSeen.Store(st.now().UnixNano())
}
