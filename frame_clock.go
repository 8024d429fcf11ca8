package main

import (
	"time"
)

// FrameInterval is the target tick period (about 60 Hz).
const FrameInterval = 16 * time.Millisecond

// FrameClock drives the `time` uniform. It is polled from the event loop on
// the UI thread and never blocks; Wait tells the loop how long it may sleep.
type FrameClock struct {
	target   UniformSetter
	interval time.Duration
	now      func() time.Time

	epoch   time.Time
	next    time.Time
	last    float64
	ticks   uint64
	started bool
	stopped bool
}

// NewFrameClock returns an idle clock writing into target; ticks begin at
// Start.
func NewFrameClock(target UniformSetter, interval time.Duration) *FrameClock {
	if interval <= 0 {
		interval = FrameInterval
	}
	return &FrameClock{
		target:   target,
		interval: interval,
		now:      time.Now,
	}
}

// Start fixes the epoch. The first Poll after Start ticks immediately.
// time.Now carries a monotonic reading, so elapsed values do not follow wall
// clock adjustments.
func (c *FrameClock) Start() {
	if c.started || c.stopped {
		return
	}
	c.started = true
	c.epoch = c.now()
	c.next = c.epoch
}

// Poll fires one tick if it is due and reports whether it did.
func (c *FrameClock) Poll() bool {
	if !c.started || c.stopped {
		return false
	}
	now := c.now()
	if now.Before(c.next) {
		return false
	}

	elapsed := now.Sub(c.epoch).Seconds()
	if elapsed < c.last {
		elapsed = c.last
	}
	c.last = elapsed
	c.ticks++
	c.target.SetUniform("time", float32(elapsed))

	c.next = c.next.Add(c.interval)
	if !c.next.After(now) {
		// Fell behind; drop the missed ticks instead of bursting.
		c.next = now.Add(c.interval)
	}
	return true
}

// Wait returns how long until the next tick is due. A stopped clock waits a
// whole interval so the loop still services events.
func (c *FrameClock) Wait() time.Duration {
	if !c.started || c.stopped {
		return c.interval
	}
	d := c.next.Sub(c.now())
	if d < 0 {
		return 0
	}
	return d
}

// Stop cancels the clock. No tick fires afterwards.
func (c *FrameClock) Stop() {
	c.stopped = true
}

// Stopped reports whether Stop was called.
func (c *FrameClock) Stopped() bool {
	return c.stopped
}

// Elapsed returns the last value written to `time`, in seconds.
func (c *FrameClock) Elapsed() float64 {
	return c.last
}

// Ticks returns how many ticks have fired.
func (c *FrameClock) Ticks() uint64 {
	return c.ticks
}
