package clock

import (
	"sync"
	"time"
)

// Clock is the single source of "now" for lead times, code validity windows and ledger
// timestamps.
type Clock interface {
	Now() time.Time
}

// Precision matches TIMESTAMPTZ so a timestamp reads back from storage unchanged.
const Precision = time.Microsecond

type RealClock struct{}

func NewRealClock() Clock {
	return RealClock{}
}

func (RealClock) Now() time.Time {
	return time.Now().Truncate(Precision)
}

// MockClock only moves when told to. Safe for concurrent use.
type MockClock struct {
	mu          sync.RWMutex
	currentTime time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{currentTime: t}
}

func (c *MockClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentTime
}

func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	c.currentTime = t
	c.mu.Unlock()
}

func (c *MockClock) Add(d time.Duration) {
	c.mu.Lock()
	c.currentTime = c.currentTime.Add(d)
	c.mu.Unlock()
}
