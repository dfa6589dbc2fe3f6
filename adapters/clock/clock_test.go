package clock_test

import (
	"testing"
	"time"

	"github.com/rosterforge/rostergen/adapters/clock"
)

func TestReal_Now(t *testing.T) {
	c := clock.Real{}

	before := time.Now()
	got := c.Now()
	after := time.Now()

	if got.Before(before) || got.After(after) {
		t.Errorf("Now() = %v, expected between %v and %v", got, before, after)
	}
}

func TestFixed_Now_Stable(t *testing.T) {
	pinned := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	c := clock.Fixed{T: pinned}

	for i := 0; i < 10; i++ {
		if got := c.Now(); !got.Equal(pinned) {
			t.Errorf("call %d: Now() = %v, want %v", i, got, pinned)
		}
	}
}
