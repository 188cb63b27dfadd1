package api

import (
	"testing"
	"time"
)

func TestLoginThrottleBlocksAfterLimit(t *testing.T) {
	throttle := newLoginThrottle()
	now := time.Now()

	for attempt := 0; attempt < 3; attempt++ {
		if throttle.blocked("10.0.0.1", now, 3, time.Minute) {
			t.Fatalf("blocked after only %d failures", attempt)
		}
		throttle.recordFailure("10.0.0.1", now, time.Minute)
	}
	if !throttle.blocked("10.0.0.1", now, 3, time.Minute) {
		t.Fatal("expected a block after reaching the limit")
	}

	// Another address is unaffected.
	if throttle.blocked("10.0.0.2", now, 3, time.Minute) {
		t.Fatal("unrelated address must not be blocked")
	}
}

func TestLoginThrottleWindowExpires(t *testing.T) {
	throttle := newLoginThrottle()
	now := time.Now()

	for attempt := 0; attempt < 3; attempt++ {
		throttle.recordFailure("10.0.0.1", now, time.Minute)
	}
	later := now.Add(2 * time.Minute)
	if throttle.blocked("10.0.0.1", later, 3, time.Minute) {
		t.Fatal("expected the block to lift once the window passed")
	}

	// A failure after expiry starts a fresh window instead of stacking.
	throttle.recordFailure("10.0.0.1", later, time.Minute)
	if throttle.blocked("10.0.0.1", later, 3, time.Minute) {
		t.Fatal("one failure in a fresh window must not block")
	}
}

func TestLoginThrottleClearForgetsHistory(t *testing.T) {
	throttle := newLoginThrottle()
	now := time.Now()

	for attempt := 0; attempt < 3; attempt++ {
		throttle.recordFailure("10.0.0.1", now, time.Minute)
	}
	throttle.clear("10.0.0.1")
	if throttle.blocked("10.0.0.1", now, 3, time.Minute) {
		t.Fatal("cleared address must not stay blocked")
	}
}
