package sequencer

import (
	"sync"
	"time"
)

// ClockFunc is a tick callback. It receives the wall-clock time elapsed
// since Start and the step index before increment.
type ClockFunc func(elapsed time.Duration, step int)

// Clock is a self-rescheduling step timer. Each tick schedules exactly one
// pending timer for the next tick; stopping cancels it before clearing the
// running flag so no tick can fire after Stop returns.
//
// Scheduling is interval-chained, not drift-compensated: the elapsed time
// passed to the callback is measured from the wall clock, but the next tick
// is always "now + interval".
type Clock struct {
	// CurrentStep is the step bus: the tick index modulo PatternLength.
	// Instruments and the autopilot observe this, never the raw counter.
	CurrentStep *IntParameter

	mu           sync.Mutex
	bpm          float64
	subdivisions int
	shuffle      float64
	step         int
	running      bool
	gen          int // fences stale timer callbacks after cancel
	cb           ClockFunc
	started      time.Time
	cancel       func() bool

	// afterFunc schedules a single-shot timer. Swappable so tests can
	// capture intervals and fire ticks synchronously.
	afterFunc func(d time.Duration, fn func()) (cancel func() bool)
}

// NewClock creates a stopped clock. shuffle in [0,1) lengthens even-step
// intervals by (1+shuffle) and shortens odd-step intervals by (1-shuffle):
// long-short-long-short, the long interval first.
func NewClock(bpm float64, subdivisions int, shuffle float64) *Clock {
	return &Clock{
		CurrentStep:  NewIntParameter("clock-step", 0),
		bpm:          bpm,
		subdivisions: subdivisions,
		shuffle:      shuffle,
		afterFunc: func(d time.Duration, fn func()) func() bool {
			return time.AfterFunc(d, fn).Stop
		},
	}
}

// Bind replaces the tick callback. Affects only future ticks.
func (c *Clock) Bind(fn ClockFunc) {
	c.mu.Lock()
	c.cb = fn
	c.mu.Unlock()
}

// interval returns the duration before the tick for the given step.
// Callers must hold c.mu.
func (c *Clock) interval(step int) time.Duration {
	base := 60000.0 / c.bpm / float64(c.subdivisions) // ms per subdivision
	factor := 1 + c.shuffle
	if step%2 == 1 {
		factor = 1 - c.shuffle
	}
	return time.Duration(base * factor * float64(time.Millisecond))
}

// Start begins ticking at the current tempo. The step counter is preserved
// across stop/start cycles; only the elapsed-time origin resets.
func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return
	}
	c.running = true
	c.started = time.Now()
	c.gen++
	c.reschedule()
}

// Stop cancels the pending tick. The generation fence guarantees a timer
// that already fired but has not reached the lock does nothing.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.gen++
	c.running = false
}

// SetBpm changes the tempo. If running, the pending tick is cancelled and
// rescheduled at the new interval from now - it does not wait out the
// remainder of the stale interval.
func (c *Clock) SetBpm(bpm float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bpm = bpm
	if c.running {
		if c.cancel != nil {
			c.cancel()
		}
		c.gen++
		c.reschedule()
	}
}

// SetShuffle changes the swing amount, taking effect on the tick after the
// pending one.
func (c *Clock) SetShuffle(shuffle float64) {
	c.mu.Lock()
	c.shuffle = shuffle
	c.mu.Unlock()
}

// Bpm returns the current tempo.
func (c *Clock) Bpm() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bpm
}

// Running reports whether the clock is ticking.
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// reschedule arms the timer for the current step. Callers must hold c.mu.
func (c *Clock) reschedule() {
	gen := c.gen
	c.cancel = c.afterFunc(c.interval(c.step), func() { c.tick(gen) })
}

func (c *Clock) tick(gen int) {
	c.mu.Lock()
	if !c.running || gen != c.gen {
		// Cancelled or rescheduled while this callback was in flight.
		c.mu.Unlock()
		return
	}
	step := c.step
	elapsed := time.Since(c.started)
	cb := c.cb
	c.step++
	// Next interval uses the post-increment parity; exactly one timer is
	// ever pending.
	c.reschedule()
	c.mu.Unlock()

	c.CurrentStep.SetValue(step % PatternLength)
	if cb != nil {
		cb(elapsed, step)
	}
}
