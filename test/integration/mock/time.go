package mock

import (
	"sync"
	"time"
)

// Time is a controllable clock. Once set, it keeps advancing with wall time
// from the configured instant.
type Time struct {
	mu               sync.RWMutex
	currentStartTime time.Time
	updatedAt        time.Time
}

func NewTime() *Time {
	now := time.Now()
	return &Time{
		currentStartTime: now,
		updatedAt:        now,
	}
}

func (t *Time) SetCurrentTime(currentTime time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.currentStartTime = currentTime
	t.updatedAt = time.Now()
}

// Reset makes the clock follow wall time again.
func (t *Time) Reset() {
	t.SetCurrentTime(time.Now())
}

func (t *Time) Now() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	elapsed := time.Since(t.updatedAt)
	return t.currentStartTime.Add(elapsed)
}
