package timer

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountdown(t *testing.T) {
	mock := clock.NewMock()
	tm := New(WithClock(mock), WithSeconds(3))
	tm.OpenForm()
	tm.Start()
	require.True(t, tm.Running())
	assert.False(t, tm.FormOpen())

	assert.False(t, tm.Poll(), "no time passed")
	mock.Add(900 * time.Millisecond)
	assert.False(t, tm.Poll())
	assert.Equal(t, 3, tm.Seconds())

	mock.Add(100 * time.Millisecond)
	assert.False(t, tm.Poll())
	assert.Equal(t, 2, tm.Seconds())

	mock.Add(time.Second)
	assert.False(t, tm.Poll())
	mock.Add(time.Second)
	assert.True(t, tm.Poll())
	assert.False(t, tm.Running())
	assert.Zero(t, tm.Seconds())
	assert.False(t, tm.Poll(), "fires only once")
}

func TestPollStepsOncePerCall(t *testing.T) {
	mock := clock.NewMock()
	tm := New(WithClock(mock), WithSeconds(10))
	tm.Start()
	mock.Add(5 * time.Second)
	tm.Poll()
	assert.Equal(t, 9, tm.Seconds())
	tm.Poll()
	assert.Equal(t, 9, tm.Seconds(), "the last instant moved forward")
}

func TestZeroLengthFiresImmediately(t *testing.T) {
	tm := New(WithClock(clock.NewMock()))
	tm.Start()
	assert.True(t, tm.Poll())
	assert.False(t, tm.Running())
}

func TestReset(t *testing.T) {
	mock := clock.NewMock()
	tm := New(WithClock(mock), WithSeconds(5))
	tm.Start()
	tm.Reset()
	assert.False(t, tm.Running())
	assert.Zero(t, tm.Seconds())
	mock.Add(10 * time.Second)
	assert.False(t, tm.Poll())
}

func TestDigits(t *testing.T) {
	tm := New()
	assert.True(t, tm.AddDigit('1'))
	assert.True(t, tm.AddDigit('5'))
	assert.False(t, tm.AddDigit('x'))
	assert.Equal(t, 15, tm.Seconds())
	tm.DeleteDigit()
	assert.Equal(t, 1, tm.Seconds())

	for i := 0; i < 6; i++ {
		tm.AddDigit('9')
	}
	assert.Equal(t, MaxSeconds, tm.Seconds())
}

func TestSetSecondsIgnoredWhileRunning(t *testing.T) {
	tm := New(WithClock(clock.NewMock()), WithSeconds(4))
	tm.Start()
	tm.SetSeconds(20)
	assert.Equal(t, 4, tm.Seconds())
	tm.SetSeconds(-3)
	assert.Equal(t, 4, tm.Seconds())

	tm.Reset()
	tm.SetSeconds(-3)
	assert.Zero(t, tm.Seconds())
}
