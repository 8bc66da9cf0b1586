// Package mainloop schedules work onto the single goroutine that owns the UI.
package mainloop

import "sync"

// Coalescer merges bursts of same-key tasks into one run on the UI loop.
// Only the latest task posted under a key runs; earlier ones are dropped
// while a run is still queued.
type Coalescer[K comparable] struct {
	mu      sync.Mutex
	latest  map[K]func()
	post    func(func())
	stopped bool
}

// NewCoalescer returns a Coalescer that hands queued runs to post, which
// must execute them on the UI loop.
func NewCoalescer[K comparable](post func(func())) *Coalescer[K] {
	if post == nil {
		panic("mainloop.NewCoalescer: post function cannot be nil")
	}
	return &Coalescer[K]{
		latest: make(map[K]func()),
		post:   post,
	}
}

// Post queues fn under key. If a run for key is already queued, fn replaces
// its task and no new run is posted.
func (c *Coalescer[K]) Post(key K, fn func()) {
	if fn == nil {
		return
	}

	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	_, queued := c.latest[key]
	c.latest[key] = fn
	c.mu.Unlock()

	if !queued {
		c.post(func() { c.run(key) })
	}
}

// Pending reports how many keys have a queued run.
func (c *Coalescer[K]) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.latest)
}

func (c *Coalescer[K]) run(key K) {
	c.mu.Lock()
	fn, ok := c.latest[key]
	delete(c.latest, key)
	stopped := c.stopped
	c.mu.Unlock()

	if ok && !stopped {
		fn()
	}
}

// Destroy drops queued work; later posts are ignored.
func (c *Coalescer[K]) Destroy() {
	c.mu.Lock()
	c.stopped = true
	clear(c.latest)
	c.mu.Unlock()
}
