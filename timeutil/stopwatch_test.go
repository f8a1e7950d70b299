// File: timeutil/stopwatch_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package timeutil

import (
	"testing"
	"time"
)

func TestStopwatch(t *testing.T) {
	sw := Start()
	time.Sleep(10 * time.Millisecond)

	lap := sw.Lap()
	if lap <= 0 {
		t.Fatalf("Lap = %v, want > 0", lap)
	}
	if e := sw.Elapsed(); e < lap {
		t.Fatalf("Elapsed %v < first lap %v", e, lap)
	}

	sw.Reset()
	if e := sw.Elapsed(); e > 5*time.Millisecond {
		t.Fatalf("Elapsed after Reset = %v", e)
	}
}
