package bubbletea

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClock_DeliversCallbackAsMessage(t *testing.T) {
	t.Parallel()

	c := NewClock()
	called := false
	c.AfterFunc(time.Millisecond, func() { called = true })

	msg := c.wait()()

	fire, ok := msg.(timerMsg)
	require.True(t, ok)
	assert.False(t, called, "callback must not run before the message is handled")
	fire()
	assert.True(t, called)
}

func TestClock_StopAfterDeliveryPreventsCallback(t *testing.T) {
	t.Parallel()

	c := NewClock()
	called := false
	timer := c.AfterFunc(0, func() { called = true })

	fire := c.wait()().(timerMsg)

	assert.True(t, timer.Stop(), "callback was still pending")
	fire()
	assert.False(t, called)
	assert.False(t, timer.Stop())
}

func TestClock_StopAfterFire(t *testing.T) {
	t.Parallel()

	c := NewClock()
	timer := c.AfterFunc(0, func() {})

	c.wait()().(timerMsg)()

	assert.False(t, timer.Stop())
}

func TestPrompter_ArmedAnswerIsUsedOnce(t *testing.T) {
	t.Parallel()

	p := NewPrompter()
	p.arm(true)

	assert.True(t, p.Confirm("first?"))
	assert.False(t, p.Confirm("Close\n\ncompared files?"))

	p.Notify("File  \"a\" match.")
	notices, asked := p.take()
	assert.Equal(t, []string{`File "a" match.`}, notices)
	assert.Equal(t, "Close compared files?", asked)

	notices, asked = p.take()
	assert.Empty(t, notices)
	assert.Empty(t, asked)
}

func TestPrompter_TakeKeepsArmedAnswer(t *testing.T) {
	t.Parallel()

	p := NewPrompter()
	p.Notify("stale")
	p.arm(true)

	notices, _ := p.take()
	assert.Equal(t, []string{"stale"}, notices)
	assert.True(t, p.Confirm("Close compared files?"))

	p.arm(true)
	p.disarm()
	assert.False(t, p.Confirm("Close compared files?"))
}
