package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSetter struct {
	names  []string
	values []float32
}

func (r *recordingSetter) SetUniform(name string, value float32) {
	r.names = append(r.names, name)
	r.values = append(r.values, value)
}

// fakeClock is a manually advanced time source.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestFrameClock(interval time.Duration) (*FrameClock, *recordingSetter, *fakeClock) {
	target := &recordingSetter{}
	clk := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewFrameClock(target, interval)
	c.now = clk.now
	return c, target, clk
}

func TestFrameClockFirstTickIsZero(t *testing.T) {
	c, target, _ := newTestFrameClock(FrameInterval)

	assert.False(t, c.Poll(), "no ticks before Start")
	c.Start()
	require.True(t, c.Poll())

	assert.Equal(t, []string{"time"}, target.names)
	assert.InDelta(t, 0.0, target.values[0], 1e-9)
}

func TestFrameClockTicksOncePerInterval(t *testing.T) {
	c, target, clk := newTestFrameClock(FrameInterval)
	c.Start()
	require.True(t, c.Poll())

	assert.False(t, c.Poll(), "not due yet")
	assert.Equal(t, FrameInterval, c.Wait())

	clk.advance(10 * time.Millisecond)
	assert.False(t, c.Poll())
	assert.Equal(t, 6*time.Millisecond, c.Wait())

	clk.advance(6 * time.Millisecond)
	assert.Zero(t, c.Wait())
	require.True(t, c.Poll())

	assert.Len(t, target.values, 2)
	assert.InDelta(t, 0.016, target.values[1], 1e-6)
}

func TestFrameClockValuesAreNonDecreasing(t *testing.T) {
	c, target, clk := newTestFrameClock(FrameInterval)
	c.Start()

	jitter := []time.Duration{0, 16, 17, 15, 20, 16, 33, 16, 1, 16}
	for _, ms := range jitter {
		clk.advance(ms * time.Millisecond)
		c.Poll()
	}

	require.NotEmpty(t, target.values)
	for i := 1; i < len(target.values); i++ {
		assert.GreaterOrEqual(t, target.values[i], target.values[i-1])
	}
	assert.Equal(t, uint64(len(target.values)), c.Ticks())
	assert.InDelta(t, float64(target.values[len(target.values)-1]), c.Elapsed(), 1e-6)
}

func TestFrameClockDropsMissedTicks(t *testing.T) {
	c, target, clk := newTestFrameClock(FrameInterval)
	c.Start()
	require.True(t, c.Poll())

	clk.advance(100 * time.Millisecond)
	require.True(t, c.Poll())
	assert.False(t, c.Poll(), "a stall yields one tick, not a burst")
	assert.Equal(t, FrameInterval, c.Wait())
	assert.Len(t, target.values, 2)
}

func TestFrameClockStop(t *testing.T) {
	c, target, clk := newTestFrameClock(FrameInterval)
	c.Start()
	require.True(t, c.Poll())
	assert.False(t, c.Stopped())

	c.Stop()
	c.Stop()
	assert.True(t, c.Stopped())

	clk.advance(time.Second)
	assert.False(t, c.Poll())
	assert.Equal(t, FrameInterval, c.Wait())
	assert.Len(t, target.values, 1)

	c.Start()
	clk.advance(time.Second)
	assert.False(t, c.Poll(), "a stopped clock cannot be restarted")
}

func TestFrameClockDefaultsInterval(t *testing.T) {
	c := NewFrameClock(&recordingSetter{}, 0)
	assert.Equal(t, FrameInterval, c.Wait())
}

func TestFrameClockDrivesSurface(t *testing.T) {
	backend := newFakeBackend()
	logger, _ := newTestLogger()
	surface := NewRenderSurface(backend, logger, 800, 600)
	require.NoError(t, surface.Attach(DefaultShaderSource()))

	c := NewFrameClock(surface, FrameInterval)
	clk := &fakeClock{t: time.Now()}
	c.now = clk.now
	c.Start()
	clk.advance(250 * time.Millisecond)
	require.True(t, c.Poll())

	got, ok := backend.uniformValue(surface.program.Handle(), "time")
	require.True(t, ok)
	assert.InDelta(t, 0.25, got, 1e-6)

	c.Stop()
	surface.Destroy()
	clk.advance(time.Second)
	assert.False(t, c.Poll())
}
