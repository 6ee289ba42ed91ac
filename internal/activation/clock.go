// Package activation schedules the staggered focus-then-click batch applied
// to a completed selection.
package activation

import (
	"sync"
	"time"
)

// Clock schedules deferred work. Production uses the system timer; tests
// drive a ManualClock so staggered batches run under virtual time.
type Clock interface {
	// AfterFunc runs f after d elapses, on an unspecified goroutine.
	AfterFunc(d time.Duration, f func())
}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// SystemClock returns the real-time clock.
func SystemClock() Clock { return systemClock{} }

type scheduledTask struct {
	at time.Duration
	f  func()
}

// ManualClock is a virtual clock: nothing fires until Advance moves time
// forward. Tasks fire in due order; ties fire in scheduling order.
type ManualClock struct {
	mu    sync.Mutex
	now   time.Duration
	tasks []scheduledTask
}

// NewManualClock starts a virtual clock at zero.
func NewManualClock() *ManualClock { return &ManualClock{} }

// AfterFunc schedules f at now+d without running it.
func (c *ManualClock) AfterFunc(d time.Duration, f func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tasks = append(c.tasks, scheduledTask{at: c.now + d, f: f})
}

// Pending returns the number of scheduled, unfired tasks.
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tasks)
}

// Now returns the elapsed virtual time.
func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves virtual time forward by d, firing every task that comes
// due, including tasks scheduled by earlier firings within the window.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	for {
		idx := c.earliestDueLocked(target)
		if idx < 0 {
			break
		}
		task := c.tasks[idx]
		c.tasks = append(c.tasks[:idx], c.tasks[idx+1:]...)
		c.now = task.at

		// Run without the lock: the task may schedule more work.
		c.mu.Unlock()
		task.f()
		c.mu.Lock()
	}
	c.now = target
	c.mu.Unlock()
}

func (c *ManualClock) earliestDueLocked(target time.Duration) int {
	best := -1
	for i, t := range c.tasks {
		if t.at > target {
			continue
		}
		if best < 0 || t.at < c.tasks[best].at {
			best = i
		}
	}
	return best
}
