package state

import (
	"sync"
	"testing"
)

type session struct {
	userID int64
	step   string
}

func newTestStore() *Store[session] {
	return NewStore(
		func(userID int64) *session { return &session{userID: userID, step: "idle"} },
		func(s *session) bool { return s.step != "idle" },
	)
}

func TestGetCreatesOnce(t *testing.T) {
	s := newTestStore()
	a := s.Get(1)
	b := s.Get(1)
	if a != b {
		t.Fatal("Get must return the same session for one user")
	}
	if a.userID != 1 {
		t.Errorf("fresh session userID = %d, want 1", a.userID)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}
}

func TestInProgress(t *testing.T) {
	s := newTestStore()
	if s.InProgress(1) {
		t.Error("unknown user reported in progress")
	}
	sess := s.Get(1)
	if s.InProgress(1) {
		t.Error("idle session reported in progress")
	}
	sess.step = "collect"
	if !s.InProgress(1) {
		t.Error("active session not reported in progress")
	}
	s.Clear(1)
	if s.InProgress(1) {
		t.Error("cleared session reported in progress")
	}
	if _, ok := s.Peek(1); ok {
		t.Error("Peek found a cleared session")
	}
}

func TestConcurrentAccess(t *testing.T) {
	s := newTestStore()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			sess := s.Get(id % 4)
			_ = sess.userID
			s.InProgress(id % 4)
		}(int64(i))
	}
	wg.Wait()
	if s.Len() != 4 {
		t.Errorf("Len = %d, want 4", s.Len())
	}
}
