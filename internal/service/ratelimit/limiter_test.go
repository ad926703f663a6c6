package ratelimit

import (
	"testing"
	"time"
)

func TestAllowDrainsAndRefills(t *testing.T) {
	now := time.Unix(0, 0)
	l := New(2, 1)
	l.now = func() time.Time { return now }

	if !l.Allow("s") || !l.Allow("s") {
		t.Fatalf("expected first two calls to pass")
	}
	if l.Allow("s") {
		t.Fatalf("expected bucket to be empty")
	}
	if !l.Allow("other") {
		t.Fatalf("keys must not share a bucket")
	}

	now = now.Add(time.Second)
	if !l.Allow("s") {
		t.Fatalf("expected one token after refill")
	}
}

func TestZeroCapacityNeverLimits(t *testing.T) {
	l := New(0, 0)
	for i := 0; i < 10; i++ {
		if !l.Allow("s") {
			t.Fatalf("unexpected limit at %d", i)
		}
	}
}

func TestForgetResetsBucket(t *testing.T) {
	l := New(1, 0)
	l.Allow("s")
	if l.Allow("s") {
		t.Fatalf("expected limit")
	}
	l.Forget("s")
	if !l.Allow("s") {
		t.Fatalf("expected fresh bucket after forget")
	}
}
