// Package clock provides Clock implementations.
package clock

import "time"

// Real returns the actual current time.
type Real struct{}

// Now returns the current time.
func (Real) Now() time.Time {
	return time.Now()
}

// Fixed is a clock pinned to one instant, for testing DOB/grade rules.
type Fixed struct {
	T time.Time
}

// Now returns the pinned time.
func (f Fixed) Now() time.Time {
	return f.T
}
