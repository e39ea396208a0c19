package router

import (
	"sync"
	"time"
)

// Bucket limits how often a user can run the commands sharing it.
type Bucket struct {
	delay time.Duration
	now   func() time.Time

	last   map[string]time.Time
	lastMu sync.Mutex
}

// NewBucket creates a bucket allowing one invocation per user every delay.
func NewBucket(delay time.Duration) *Bucket {
	return &Bucket{
		delay: delay,
		now:   time.Now,
		last:  make(map[string]time.Time),
	}
}

// Take records an invocation for the given user.
// It returns how long the user has to wait when the invocation is denied.
func (b *Bucket) Take(userID string) time.Duration {
	b.lastMu.Lock()
	defer b.lastMu.Unlock()

	now := b.now()

	if last, ok := b.last[userID]; ok {
		if wait := last.Add(b.delay).Sub(now); wait > 0 {
			return wait
		}
	}

	b.last[userID] = now

	return 0
}
