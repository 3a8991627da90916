// Package clock abstracts the current time so commands can be run against a
// fixed instant in tests.
package clock

import "time"

// Clock reports the current time. The returned time carries the location used
// for all local calendar math (day bucketing, HH:MM display).
type Clock interface {
	Now() time.Time
}

// Real is the wall clock in the process-local timezone.
type Real struct{}

// Now returns time.Now().
func (Real) Now() time.Time {
	return time.Now()
}

// Fake is a settable clock.
type Fake struct {
	current time.Time
}

// NewFake returns a clock frozen at t.
func NewFake(t time.Time) *Fake {
	return &Fake{current: t}
}

// Now returns the frozen time.
func (f *Fake) Now() time.Time {
	return f.current
}

// Set moves the clock to t.
func (f *Fake) Set(t time.Time) {
	f.current = t
}

// Advance moves the clock forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.current = f.current.Add(d)
}
