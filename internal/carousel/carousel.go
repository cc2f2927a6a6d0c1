// Package carousel cycles a single active slide over a fixed set of slides.
package carousel

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval is the time each slide stays active.
const DefaultInterval = 4500 * time.Millisecond

// Controller holds the current slide index. With fewer than two slides it never
// changes state.
type Controller struct {
	mu      sync.Mutex
	n       int
	current int
	onShow  func(idx int)
}

// New returns a controller over n slides starting at slide 0. onShow, if non-nil, is
// called after every change of the active slide.
func New(n int, onShow func(idx int)) *Controller {
	if n < 0 {
		n = 0
	}
	return &Controller{n: n, onShow: onShow}
}

// Len returns the number of slides.
func (c *Controller) Len() int { return c.n }

// Enabled reports whether the carousel cycles at all.
func (c *Controller) Enabled() bool { return c.n > 1 }

// Current returns the active slide index.
func (c *Controller) Current() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Active reports, per slide, whether it is the active one. A disabled carousel reports
// nil so callers leave the markup alone.
func (c *Controller) Active() []bool {
	if !c.Enabled() {
		return nil
	}
	cur := c.Current()
	out := make([]bool, c.n)
	out[cur] = true
	return out
}

// Tick advances to the next slide, wrapping around, and returns the new index.
func (c *Controller) Tick() int {
	if !c.Enabled() {
		return c.Current()
	}
	c.mu.Lock()
	c.current = (c.current + 1) % c.n
	idx := c.current
	c.mu.Unlock()
	if c.onShow != nil {
		c.onShow(idx)
	}
	return idx
}

// Run advances once per value received on ticks until ctx is done or ticks closes.
func (c *Controller) Run(ctx context.Context, ticks <-chan time.Time) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ticks:
			if !ok {
				return
			}
			c.Tick()
		}
	}
}

// Mount starts cycling every interval and returns the release func that stops it.
// Release waits for the cycling goroutine to exit and is safe to call more than once.
// A disabled carousel or a non-positive interval mounts nothing.
func (c *Controller) Mount(ctx context.Context, interval time.Duration) (release func()) {
	if !c.Enabled() || interval <= 0 {
		return func() {}
	}
	ctx, cancel := context.WithCancel(ctx)
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		defer close(done)
		c.Run(ctx, ticker.C)
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			ticker.Stop()
			<-done
		})
	}
}
