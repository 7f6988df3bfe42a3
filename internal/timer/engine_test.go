package timer

import "testing"

func run(e *Engine, ticks int) int {
	fired := 0
	for i := 0; i < ticks; i++ {
		if e.Tick() {
			fired++
		}
	}
	return fired
}

func TestNewIsIdle(t *testing.T) {
	e := New(3)
	if e.Running() {
		t.Fatal("new engine should not run")
	}
	if e.State() != StateIdle {
		t.Fatalf("state = %v, want IDLE", e.State())
	}
	if e.Remaining() != 3 || e.Duration() != 3 {
		t.Fatalf("remaining=%d duration=%d", e.Remaining(), e.Duration())
	}
	if !e.Pristine() {
		t.Fatal("new engine should be pristine")
	}
}

func TestStartPause(t *testing.T) {
	e := New(10)
	if !e.Start() {
		t.Fatal("start should succeed")
	}
	if e.Start() {
		t.Fatal("second start should be a no-op")
	}
	e.Tick()
	e.Pause()
	if e.Running() {
		t.Fatal("should be paused")
	}
	if e.State() != StatePaused {
		t.Fatalf("state = %v, want PAUSED", e.State())
	}
	if e.Pristine() {
		t.Fatal("engine that counted should not be pristine")
	}

	before := e.Remaining()
	e.Tick()
	if e.Remaining() != before {
		t.Fatal("tick while paused must not count")
	}
}

func TestToggle(t *testing.T) {
	e := New(5)
	if !e.Toggle() {
		t.Fatal("toggle should start")
	}
	if e.Toggle() {
		t.Fatal("toggle should pause")
	}
	if e.Running() {
		t.Fatal("should be paused")
	}
}

func TestStartWithZeroRemaining(t *testing.T) {
	e := New(0)
	if e.Start() {
		t.Fatal("start with nothing left should be a no-op")
	}
	if e.Running() {
		t.Fatal("should not run")
	}
}

func TestCompletionFiresExactlyOnce(t *testing.T) {
	e := New(3)
	e.Start()

	fired := run(&e, 10)
	if fired != 1 {
		t.Fatalf("completion fired %d times, want 1", fired)
	}
	if e.Remaining() != 0 || e.Running() {
		t.Fatalf("expected inert terminal state, got remaining=%d running=%v", e.Remaining(), e.Running())
	}
	if !e.Expired() || e.State() != StateExpired {
		t.Fatal("engine should be expired")
	}

	// Start on an expired engine does nothing and cannot re-fire.
	if e.Start() {
		t.Fatal("start on expired engine should be a no-op")
	}
	if run(&e, 5) != 0 {
		t.Fatal("expired engine must not fire again")
	}
}

func TestResetClearsCompletion(t *testing.T) {
	e := New(1)
	e.Start()
	if !e.Tick() {
		t.Fatal("expected completion")
	}

	e.Reset(2)
	if e.Expired() {
		t.Fatal("reset should clear expiry")
	}
	if e.Remaining() != 2 || e.Running() {
		t.Fatalf("unexpected state after reset: remaining=%d running=%v", e.Remaining(), e.Running())
	}

	e.Start()
	if run(&e, 2) != 1 {
		t.Fatal("completion should fire again after reset")
	}
}

func TestResetWhileRunningStops(t *testing.T) {
	e := New(10)
	e.Start()
	e.Tick()
	e.Reset(20)
	if e.Running() {
		t.Fatal("reset should stop the engine")
	}
	if e.Remaining() != 20 {
		t.Fatalf("remaining = %d, want 20", e.Remaining())
	}
}

func TestTagChanges(t *testing.T) {
	e := New(2)
	tags := map[int]bool{e.Tag(): true}

	record := func(step string) {
		t.Helper()
		if tags[e.Tag()] {
			t.Fatalf("tag %d reused after %s", e.Tag(), step)
		}
		tags[e.Tag()] = true
	}

	e.Start()
	record("start")
	e.Pause()
	record("pause")
	e.Start()
	record("restart")
	e.Tick()
	e.Tick()
	record("expiry")
	e.Reset(5)
	record("reset")
}

func TestTagStableWhileTicking(t *testing.T) {
	e := New(5)
	e.Start()
	tag := e.Tag()
	e.Tick()
	e.Tick()
	if e.Tag() != tag {
		t.Fatal("tag should not change on ordinary ticks")
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		duration, ticks int
		want            float64
	}{
		{4, 0, 0},
		{4, 1, 0.25},
		{4, 2, 0.5},
		{4, 4, 1},
		{0, 0, 0},
	}
	for _, tt := range tests {
		e := New(tt.duration)
		e.Start()
		run(&e, tt.ticks)
		if got := e.Progress(); got != tt.want {
			t.Errorf("Progress(duration=%d, ticks=%d) = %v, want %v", tt.duration, tt.ticks, got, tt.want)
		}
	}
}

func TestStateString(t *testing.T) {
	if StateRunning.String() != "RUNNING" || StateExpired.String() != "EXPIRED" {
		t.Fatal("unexpected state names")
	}
}
