// File: timeutil/stopwatch.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package timeutil provides a small monotonic timekeeping helper.
package timeutil

import "time"

// Stopwatch measures elapsed time against the monotonic clock.
type Stopwatch struct {
	start time.Time
	last  time.Time
}

// Start returns a running stopwatch.
func Start() *Stopwatch {
	now := time.Now()
	return &Stopwatch{start: now, last: now}
}

// Lap returns the time since the previous Lap (or Start) and resets the
// lap mark.
func (s *Stopwatch) Lap() time.Duration {
	now := time.Now()
	d := now.Sub(s.last)
	s.last = now
	return d
}

// Elapsed returns the total time since Start.
func (s *Stopwatch) Elapsed() time.Duration {
	return time.Since(s.start)
}

// Reset restarts the stopwatch.
func (s *Stopwatch) Reset() {
	now := time.Now()
	s.start = now
	s.last = now
}
