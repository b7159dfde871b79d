package countdown

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestCountdownTicksDownThenExpires(t *testing.T) {
	var mu sync.Mutex
	var ticks []int
	expired := make(chan struct{})

	StartWithInterval(3, 5*time.Millisecond,
		func(remaining int) {
			mu.Lock()
			ticks = append(ticks, remaining)
			mu.Unlock()
		},
		func() { close(expired) },
	)

	select {
	case <-expired:
	case <-time.After(2 * time.Second):
		t.Fatalf("countdown never expired")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(ticks) != 3 || ticks[0] != 3 || ticks[1] != 2 || ticks[2] != 1 {
		t.Fatalf("unexpected tick sequence: %v", ticks)
	}
}

func TestCancelPreventsExpiry(t *testing.T) {
	var fired atomic.Bool
	c := StartWithInterval(2, 20*time.Millisecond, nil, func() { fired.Store(true) })

	time.Sleep(5 * time.Millisecond)
	c.Cancel()
	time.Sleep(100 * time.Millisecond)

	if fired.Load() {
		t.Fatalf("onExpire fired after cancel")
	}
}

func TestCancelStopsTicks(t *testing.T) {
	var ticks atomic.Int32
	c := StartWithInterval(100, 10*time.Millisecond, func(int) { ticks.Add(1) }, nil)

	time.Sleep(25 * time.Millisecond)
	c.Cancel()
	seen := ticks.Load()
	time.Sleep(50 * time.Millisecond)

	if got := ticks.Load(); got != seen {
		t.Fatalf("ticks continued after cancel: %d then %d", seen, got)
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	c := StartWithInterval(1, time.Millisecond, nil, nil)
	c.Cancel()
	c.Cancel()
}

func TestExpireFiresExactlyOnce(t *testing.T) {
	var fires atomic.Int32
	done := make(chan struct{})
	StartWithInterval(1, time.Millisecond, nil, func() {
		fires.Add(1)
		select {
		case <-done:
		default:
			close(done)
		}
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("countdown never expired")
	}
	time.Sleep(20 * time.Millisecond)
	if got := fires.Load(); got != 1 {
		t.Fatalf("onExpire fired %d times", got)
	}
}
