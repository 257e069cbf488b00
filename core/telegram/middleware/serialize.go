package middleware

import (
	"sync"

	tele "gopkg.in/telebot.v4"
)

// SerializeMiddleware runs updates from the same user strictly one at a time.
// Conversation sessions are mutated without their own locking, so two quick
// messages from one user must not race; different users stay concurrent.
func SerializeMiddleware() tele.MiddlewareFunc {
	var (
		mu    sync.Mutex
		locks = make(map[int64]*userLock)
	)
	acquire := func(userID int64) *userLock {
		mu.Lock()
		defer mu.Unlock()
		l, ok := locks[userID]
		if !ok {
			l = &userLock{}
			locks[userID] = l
		}
		l.refs++
		return l
	}
	release := func(userID int64, l *userLock) {
		mu.Lock()
		defer mu.Unlock()
		l.refs--
		if l.refs == 0 {
			delete(locks, userID)
		}
	}

	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			user := c.Sender()
			if user == nil {
				return next(c)
			}
			l := acquire(user.ID)
			l.mu.Lock()
			defer func() {
				l.mu.Unlock()
				release(user.ID, l)
			}()
			return next(c)
		}
	}
}

type userLock struct {
	mu   sync.Mutex
	refs int
}
