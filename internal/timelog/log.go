package timelog

import (
	"time"

	"github.com/google/uuid"
	"github.com/sadopc/pomo/internal/store"
)

// Log is the append-only history of finished intervals. Entries are never
// edited or removed, and task ids are not checked against the registry.
type Log struct {
	entries []store.TimeLog
	newID   func() string
}

func New(initial []store.TimeLog) *Log {
	l := &Log{newID: func() string { return uuid.New().String() }}
	l.entries = append(l.entries, initial...)
	return l
}

// Record appends an entry and returns it.
func (l *Log) Record(typ store.LogType, taskID string, duration int, start time.Time) store.TimeLog {
	e := store.TimeLog{
		ID:        l.newID(),
		TaskID:    taskID,
		StartTime: start,
		Duration:  duration,
		Type:      typ,
	}
	l.entries = append(l.entries, e)
	return e
}

// List returns a copy of all entries, oldest first.
func (l *Log) List() []store.TimeLog {
	out := make([]store.TimeLog, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Log) Len() int { return len(l.entries) }
