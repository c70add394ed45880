package scheduling

import (
	"fmt"
	"sync"
	"time"
)

// slotLocks is an advisory in-process lock per calendar slot, guarding the
// check-then-insert window of Book against concurrent requests in this
// process. Other processes writing to the same calendar are not excluded;
// the stated guarantee level is at-most-one booking per slot per process.
// Entries expire so a crashed request cannot wedge a slot.
type slotLocks struct {
	mu   sync.Mutex
	held map[string]time.Time
	ttl  time.Duration
}

func newSlotLocks(ttl time.Duration) *slotLocks {
	return &slotLocks{
		held: make(map[string]time.Time),
		ttl:  ttl,
	}
}

func slotLockKey(calendarID string, start time.Time) string {
	return fmt.Sprintf("%s|%d", calendarID, start.Unix())
}

// acquire takes the lock for key, returning false if another request holds a
// live lock on the same slot.
func (l *slotLocks) acquire(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if expiry, ok := l.held[key]; ok && now.Before(expiry) {
		return false
	}
	l.held[key] = now.Add(l.ttl)
	return true
}

func (l *slotLocks) release(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, key)
}
