package store

import (
	"fmt"
	"time"
)

// Slot names. They match the keys the data has always been stored under.
const (
	SlotTasks    = "pomodoro-tasks"
	SlotLogs     = "pomodoro-logs"
	SlotSettings = "pomodoro-settings"
)

type Task struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Completed          bool      `json:"completed"`
	Pomodoros          int       `json:"pomodoros"`
	CompletedPomodoros int       `json:"completedPomodoros"`
	CreatedAt          time.Time `json:"createdAt"`
}

// LogType discriminates the kind of interval a TimeLog records.
type LogType string

const (
	LogWork       LogType = "work"
	LogShortBreak LogType = "shortBreak"
	LogLongBreak  LogType = "longBreak"
)

// Valid reports whether t is one of the known interval types.
func (t LogType) Valid() bool {
	switch t {
	case LogWork, LogShortBreak, LogLongBreak:
		return true
	}
	return false
}

// UnmarshalText rejects unknown discriminants so a damaged slot is caught on load.
func (t *LogType) UnmarshalText(b []byte) error {
	v := LogType(b)
	if !v.Valid() {
		return fmt.Errorf("unknown log type %q", string(b))
	}
	*t = v
	return nil
}

type TimeLog struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	StartTime time.Time `json:"startTime"`
	Duration  int       `json:"duration"` // seconds
	Type      LogType   `json:"type"`
}

// TimerSettings holds the countdown lengths in seconds and how many work
// intervals pass between long breaks.
type TimerSettings struct {
	WorkDuration       int `json:"workDuration"`
	ShortBreakDuration int `json:"shortBreakDuration"`
	LongBreakDuration  int `json:"longBreakDuration"`
	LongBreakInterval  int `json:"longBreakInterval"`
}

func DefaultSettings() TimerSettings {
	return TimerSettings{
		WorkDuration:       25 * 60,
		ShortBreakDuration: 5 * 60,
		LongBreakDuration:  15 * 60,
		LongBreakInterval:  4,
	}
}

// DurationFor returns the configured length in seconds of an interval of type t.
func (s TimerSettings) DurationFor(t LogType) int {
	switch t {
	case LogShortBreak:
		return s.ShortBreakDuration
	case LogLongBreak:
		return s.LongBreakDuration
	default:
		return s.WorkDuration
	}
}
