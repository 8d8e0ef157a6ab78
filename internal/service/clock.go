package service

import (
	"sync"
	"time"
)

// Clock supplies the current instant so time-dependent policy can be
// exercised deterministically in tests.
type Clock interface {
	NowUTC() time.Time
}

type realClock struct{}

// NewRealClock returns a Clock backed by the system time.
func NewRealClock() Clock {
	return realClock{}
}

func (realClock) NowUTC() time.Time {
	return time.Now().UTC()
}

// StubClock is a settable Clock for tests.
type StubClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewStubClock(now time.Time) *StubClock {
	return &StubClock{now: now.UTC()}
}

func (c *StubClock) NowUTC() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *StubClock) SetNow(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now.UTC()
}
