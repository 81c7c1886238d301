// Package timer implements the delayed-capture countdown. It never blocks:
// the UI loop calls Poll once per tick and the countdown advances when at
// least a second of wall-clock time has passed.
package timer

import (
	"time"

	"github.com/benbjohnson/clock"
)

// MaxSeconds caps the countdown length.
const MaxSeconds = 3600

// Timer is a poll-driven countdown.
type Timer struct {
	clock    clock.Clock
	seconds  int
	formOpen bool
	running  bool
	last     time.Time
}

// Option configures a Timer.
type Option func(*Timer)

// WithClock replaces the wall clock, typically with clock.NewMock().
func WithClock(c clock.Clock) Option { return func(t *Timer) { t.clock = c } }

// WithSeconds sets the initial countdown length.
func WithSeconds(s int) Option { return func(t *Timer) { t.seconds = clamp(s) } }

// New returns a stopped timer.
func New(opts ...Option) *Timer {
	t := &Timer{clock: clock.New()}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Seconds returns the seconds left, or the configured length when stopped.
func (t *Timer) Seconds() int { return t.seconds }

// SetSeconds changes the countdown length. It is ignored while running.
func (t *Timer) SetSeconds(s int) {
	if t.running {
		return
	}
	t.seconds = clamp(s)
}

// AddDigit appends a decimal digit to the countdown length, as typed into
// the timer form.
func (t *Timer) AddDigit(r rune) bool {
	if r < '0' || r > '9' {
		return false
	}
	t.SetSeconds(t.seconds*10 + int(r-'0'))
	return true
}

// DeleteDigit drops the last decimal digit of the countdown length.
func (t *Timer) DeleteDigit() { t.SetSeconds(t.seconds / 10) }

// FormOpen reports whether the timer form is shown.
func (t *Timer) FormOpen() bool { return t.formOpen }

// OpenForm shows the timer form.
func (t *Timer) OpenForm() { t.formOpen = true }

// CloseForm hides the timer form.
func (t *Timer) CloseForm() { t.formOpen = false }

// Running reports whether the countdown is active.
func (t *Timer) Running() bool { return t.running }

// Start closes the form and begins counting down from Seconds.
func (t *Timer) Start() {
	t.formOpen = false
	t.running = true
	t.last = t.clock.Now()
}

// Poll advances the countdown by one second if at least a second has passed
// since the last step. It reports true once, when the countdown reaches
// zero; the timer is stopped at that point.
func (t *Timer) Poll() bool {
	if !t.running {
		return false
	}
	if t.seconds <= 0 {
		t.running = false
		return true
	}
	now := t.clock.Now()
	if now.Sub(t.last) < time.Second {
		return false
	}
	t.last = now
	t.seconds--
	if t.seconds > 0 {
		return false
	}
	t.running = false
	return true
}

// Reset stops the countdown and clears the length.
func (t *Timer) Reset() {
	t.seconds = 0
	t.formOpen = false
	t.running = false
	t.last = time.Time{}
}

func clamp(s int) int {
	if s < 0 {
		return 0
	}
	if s > MaxSeconds {
		return MaxSeconds
	}
	return s
}
