package clock_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/diffpane/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMock_AdvanceFiresInDeadlineOrder(t *testing.T) {
	t.Parallel()

	c := clock.NewMock()
	var got []string
	c.AfterFunc(30*time.Millisecond, func() { got = append(got, "c") })
	c.AfterFunc(10*time.Millisecond, func() { got = append(got, "a") })
	c.AfterFunc(10*time.Millisecond, func() { got = append(got, "b") })

	c.Advance(20 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Equal(t, 1, c.Pending())

	c.Advance(10 * time.Millisecond)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Zero(t, c.Pending())
}

func TestMock_NowFollowsFiredTimer(t *testing.T) {
	t.Parallel()

	c := clock.NewMock()
	start := c.Now()

	var at time.Time
	c.AfterFunc(5*time.Millisecond, func() { at = c.Now() })
	c.Advance(time.Second)

	assert.Equal(t, start.Add(5*time.Millisecond), at)
	assert.Equal(t, start.Add(time.Second), c.Now())
}

func TestMock_CallbacksScheduledWhileAdvancing(t *testing.T) {
	t.Parallel()

	c := clock.NewMock()
	fired := 0
	c.AfterFunc(10*time.Millisecond, func() {
		fired++
		c.AfterFunc(10*time.Millisecond, func() { fired++ })
		c.AfterFunc(time.Second, func() { fired++ })
	})

	c.Advance(50 * time.Millisecond)

	assert.Equal(t, 2, fired)
	assert.Equal(t, 1, c.Pending())
}

func TestMock_Stop(t *testing.T) {
	t.Parallel()

	c := clock.NewMock()
	fired := false
	timer := c.AfterFunc(10*time.Millisecond, func() { fired = true })

	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())

	c.Advance(time.Second)
	assert.False(t, fired)
}

func TestLoop_RunDeliversCallbacks(t *testing.T) {
	t.Parallel()

	l := clock.NewLoop()
	var got []int
	l.AfterFunc(time.Millisecond, func() {
		got = append(got, 1)
		l.AfterFunc(time.Millisecond, func() { got = append(got, 2) })
	})
	stopped := l.AfterFunc(time.Millisecond, func() { got = append(got, 3) })
	assert.True(t, stopped.Stop())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, l.Run(ctx))

	assert.Equal(t, []int{1, 2}, got)
}

func TestLoop_RunStopsOnContext(t *testing.T) {
	t.Parallel()

	l := clock.NewLoop()
	l.AfterFunc(time.Hour, func() {})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, l.Run(ctx), context.Canceled)
}
