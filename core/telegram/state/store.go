package state

import "sync"

// Store keeps at most one session per user id. Sessions are volatile: a
// restart drops every in-progress conversation, which is acceptable because
// completed ones are already persisted elsewhere.
type Store[T any] struct {
	mu       sync.RWMutex
	sessions map[int64]*T

	fresh  func(userID int64) *T
	active func(*T) bool
}

// NewStore constructs a store. fresh builds a session for an unseen user,
// active reports whether a session represents an in-progress conversation.
func NewStore[T any](fresh func(userID int64) *T, active func(*T) bool) *Store[T] {
	return &Store[T]{
		sessions: make(map[int64]*T),
		fresh:    fresh,
		active:   active,
	}
}

// Get returns the user's session, creating one if absent. The returned
// pointer is shared: callers must serialize same-user access upstream.
func (s *Store[T]) Get(userID int64) *T {
	s.mu.RLock()
	sess, ok := s.sessions[userID]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok = s.sessions[userID]; ok {
		return sess
	}
	sess = s.fresh(userID)
	s.sessions[userID] = sess
	return sess
}

// Peek returns the session without creating one.
func (s *Store[T]) Peek(userID int64) (*T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[userID]
	return sess, ok
}

// Clear removes the user's session entirely.
func (s *Store[T]) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// InProgress reports whether the user has an active conversation.
func (s *Store[T]) InProgress(userID int64) bool {
	if s.active == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[userID]
	return ok && s.active(sess)
}

// Len returns the number of stored sessions.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
