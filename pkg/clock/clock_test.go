package clock_test

import (
	"testing"
	"time"

	"github.com/goliatone/go-eventforms/pkg/clock"
)

var start = time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC)

func TestFake_FiresTimersOnAdvance(t *testing.T) {
	fake := clock.NewFake(start)
	ch := fake.After(2 * time.Second)

	fake.Advance(time.Second)
	select {
	case <-ch:
		t.Fatalf("timer fired early")
	default:
	}

	fake.Advance(time.Second)
	select {
	case fired := <-ch:
		if !fired.Equal(start.Add(2 * time.Second)) {
			t.Fatalf("unexpected fire time %v", fired)
		}
	default:
		t.Fatalf("timer did not fire at its deadline")
	}
	if fake.Waiters() != 0 {
		t.Fatalf("expected no pending timers, got %d", fake.Waiters())
	}
}

func TestFake_NonPositiveDurationFiresImmediately(t *testing.T) {
	fake := clock.NewFake(start)
	select {
	case <-fake.After(0):
	default:
		t.Fatalf("expected immediate fire")
	}
}

func TestFake_BlockUntil(t *testing.T) {
	fake := clock.NewFake(start)

	if fake.BlockUntil(1, 10*time.Millisecond) {
		t.Fatalf("no timers registered yet")
	}

	go fake.After(time.Minute)
	if !fake.BlockUntil(1, time.Second) {
		t.Fatalf("expected a pending timer")
	}

	fake.Set(start.Add(time.Minute))
	if fake.Waiters() != 0 {
		t.Fatalf("expected timer to fire on Set")
	}
	if !fake.Now().Equal(start.Add(time.Minute)) {
		t.Fatalf("unexpected now %v", fake.Now())
	}
}

func TestReal(t *testing.T) {
	var c clock.Clock = clock.Real{}
	before := time.Now()
	if c.Now().Before(before) {
		t.Fatalf("real clock went backwards")
	}
	select {
	case <-c.After(time.Millisecond):
	case <-time.After(time.Second):
		t.Fatalf("real timer did not fire")
	}
}
