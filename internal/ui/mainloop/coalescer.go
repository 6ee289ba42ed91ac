// Package mainloop funnels work from background goroutines onto the GTK
// main loop.
package mainloop

import "sync"

// Coalescer merges bursts of same-key tasks into one dispatch. Post
// schedules at most one dispatch per key; later posts under the same key
// replace the stored function, so only the newest runs. Config reloads
// arrive in bursts (editors fire several write events per save) and only
// the final state matters.
type Coalescer struct {
	mu     sync.Mutex
	latest map[string]func()
	post   func(func())
	closed bool
}

// NewCoalescer builds a coalescer around a post function, typically a
// glib idle dispatch. post must not be nil.
func NewCoalescer(post func(func())) *Coalescer {
	if post == nil {
		panic("mainloop.NewCoalescer: post function cannot be nil")
	}
	return &Coalescer{
		latest: make(map[string]func()),
		post:   post,
	}
}

// Post schedules fn under key. Safe to call from any goroutine.
func (c *Coalescer) Post(key string, fn func()) {
	if key == "" || fn == nil {
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	_, scheduled := c.latest[key]
	c.latest[key] = fn
	post := c.post
	c.mu.Unlock()

	if scheduled {
		return
	}

	post(func() {
		c.mu.Lock()
		fn := c.latest[key]
		delete(c.latest, key)
		closed := c.closed
		c.mu.Unlock()

		if fn != nil && !closed {
			fn()
		}
	})
}

// Close drops pending work and rejects future posts. Dispatches already
// handed to the main loop become no-ops.
func (c *Coalescer) Close() {
	c.mu.Lock()
	c.latest = map[string]func(){}
	c.closed = true
	c.mu.Unlock()
}
