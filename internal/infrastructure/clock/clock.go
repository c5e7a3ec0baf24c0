// Package clock provides the wall clock used by the game engines.
package clock

import "time"

// System reads the real time in UTC
type System struct{}

// New returns the system clock
func New() System {
	return System{}
}

// Now returns the current UTC time
func (System) Now() time.Time {
	return time.Now().UTC()
}
