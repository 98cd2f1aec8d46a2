package timer_test

import (
	"testing"
	"time"

	"healthquest/internal/platform/timer"
)

func TestAdvanceFiresInDueOrder(t *testing.T) {
	t.Parallel()
	manual := timer.NewManual()
	var order []string
	manual.After(3*time.Second, func() { order = append(order, "late") })
	manual.After(1*time.Second, func() { order = append(order, "early") })

	manual.Advance(5 * time.Second)
	if len(order) != 2 || order[0] != "early" || order[1] != "late" {
		t.Fatalf("expected due order, got %v", order)
	}
}

func TestRepeatingTaskReArms(t *testing.T) {
	t.Parallel()
	manual := timer.NewManual()
	fired := 0
	manual.Every(time.Second, func() { fired++ })

	manual.Advance(3 * time.Second)
	if fired != 3 {
		t.Fatalf("expected 3 ticks, got %d", fired)
	}
	manual.Advance(500 * time.Millisecond)
	if fired != 3 {
		t.Fatalf("half a tick must not fire, got %d", fired)
	}
	manual.Advance(500 * time.Millisecond)
	if fired != 4 {
		t.Fatalf("expected the fourth tick, got %d", fired)
	}
}

func TestOneShotFiresOnce(t *testing.T) {
	t.Parallel()
	manual := timer.NewManual()
	fired := 0
	manual.After(time.Second, func() { fired++ })

	manual.Advance(10 * time.Second)
	manual.Advance(10 * time.Second)
	if fired != 1 {
		t.Fatalf("one-shot must fire once, got %d", fired)
	}
}

func TestStopRemovesTask(t *testing.T) {
	t.Parallel()
	manual := timer.NewManual()
	fired := 0
	handle := manual.Every(time.Second, func() { fired++ })

	manual.Advance(2 * time.Second)
	handle.Stop()
	manual.Advance(5 * time.Second)
	if fired != 2 {
		t.Fatalf("stopped task must not fire, got %d", fired)
	}
}

func TestCallbackMayScheduleMoreWork(t *testing.T) {
	t.Parallel()
	manual := timer.NewManual()
	fired := 0
	manual.After(time.Second, func() {
		manual.After(time.Second, func() { fired++ })
	})

	manual.Advance(3 * time.Second)
	if fired != 1 {
		t.Fatalf("chained one-shot should fire within the same advance, got %d", fired)
	}
}
