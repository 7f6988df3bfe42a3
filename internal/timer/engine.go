// Package timer implements the pomodoro countdown as a plain state machine.
// It owns no goroutines: the caller delivers ticks and uses Tag to discard
// ticks that were scheduled before the last start, pause or reset.
package timer

// State is the observable state of an Engine.
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateExpired
)

var stateNames = map[State]string{
	StateIdle:    "IDLE",
	StateRunning: "RUNNING",
	StatePaused:  "PAUSED",
	StateExpired: "EXPIRED",
}

func (s State) String() string {
	return stateNames[s]
}

// Engine counts down whole seconds.
type Engine struct {
	duration  int
	remaining int
	running   bool
	fired     bool
	tag       int
}

// New returns an idle engine loaded with duration seconds.
func New(duration int) Engine {
	return Engine{duration: duration, remaining: duration}
}

// Start begins counting down. It reports false when the engine is already
// running or has nothing left to count.
func (e *Engine) Start() bool {
	if e.running || e.remaining <= 0 {
		return false
	}
	e.running = true
	e.tag++
	return true
}

func (e *Engine) Pause() {
	if !e.running {
		return
	}
	e.running = false
	e.tag++
}

// Toggle pauses a running engine or starts a stopped one. It reports whether
// the engine is running afterwards.
func (e *Engine) Toggle() bool {
	if e.running {
		e.Pause()
		return false
	}
	return e.Start()
}

// Tick advances the countdown by one second. It returns true exactly once,
// on the tick that brings remaining to zero.
func (e *Engine) Tick() bool {
	if !e.running || e.remaining <= 0 {
		return false
	}
	e.remaining--
	if e.remaining > 0 {
		return false
	}
	e.running = false
	e.tag++
	if e.fired {
		return false
	}
	e.fired = true
	return true
}

// Reset loads a new duration and clears the completion flag.
func (e *Engine) Reset(duration int) {
	e.duration = duration
	e.remaining = duration
	e.running = false
	e.fired = false
	e.tag++
}

func (e Engine) Remaining() int { return e.remaining }
func (e Engine) Duration() int  { return e.duration }
func (e Engine) Running() bool  { return e.running }
func (e Engine) Expired() bool  { return e.fired && e.remaining == 0 }

// Tag identifies the current run. It changes on every start, pause, reset
// and expiry, so a tick carrying an older tag belongs to a run that ended.
func (e Engine) Tag() int { return e.tag }

// Pristine reports whether the engine has not counted anything since its
// last reset.
func (e Engine) Pristine() bool {
	return !e.running && !e.fired && e.remaining == e.duration
}

func (e Engine) State() State {
	switch {
	case e.running:
		return StateRunning
	case e.Expired():
		return StateExpired
	case e.remaining < e.duration:
		return StatePaused
	default:
		return StateIdle
	}
}

// Progress returns the elapsed fraction of the current duration in [0, 1].
func (e Engine) Progress() float64 {
	if e.duration <= 0 {
		return 0
	}
	p := float64(e.duration-e.remaining) / float64(e.duration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
