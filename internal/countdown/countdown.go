// Package countdown provides the cancellable timer that gates round
// starts. A countdown ticks once per interval down to zero, then fires
// its expiry callback exactly once unless cancelled first.
package countdown

import (
	"sync"
	"time"
)

// Countdown is a single outstanding delayed trigger.
type Countdown struct {
	mu        sync.Mutex
	cancelled bool
	stop      chan struct{}
}

// Start runs a countdown of the given number of seconds. onTick fires
// with the remaining seconds before each one-second wait; onExpire
// fires once when the countdown reaches zero.
func Start(seconds int, onTick func(remaining int), onExpire func()) *Countdown {
	return StartWithInterval(seconds, time.Second, onTick, onExpire)
}

// StartWithInterval is Start with a configurable tick interval. Tests
// use short intervals; production callers pass time.Second.
func StartWithInterval(seconds int, interval time.Duration, onTick func(remaining int), onExpire func()) *Countdown {
	c := &Countdown{stop: make(chan struct{})}
	go c.run(seconds, interval, onTick, onExpire)
	return c
}

func (c *Countdown) run(seconds int, interval time.Duration, onTick func(remaining int), onExpire func()) {
	for remaining := seconds; remaining > 0; remaining-- {
		// Checked before every sleep so a cancel never produces
		// further ticks.
		select {
		case <-c.stop:
			return
		default:
		}
		if onTick != nil {
			onTick(remaining)
		}
		select {
		case <-c.stop:
			return
		case <-time.After(interval):
		}
	}

	// Re-checked under the lock so Cancel can never race an
	// in-flight expiry.
	c.mu.Lock()
	if c.cancelled {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	if onExpire != nil {
		onExpire()
	}
}

// Cancel stops the countdown. After Cancel returns, onExpire is
// guaranteed never to fire. Safe to call more than once.
func (c *Countdown) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancelled {
		return
	}
	c.cancelled = true
	close(c.stop)
}
