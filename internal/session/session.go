// Package session holds the state of one running pomo process: tasks,
// the time log, timer settings, the selected task and the current phase.
// It is loaded once from a Store and writes the affected slot back after
// every mutation.
package session

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sadopc/pomo/internal/analytics"
	"github.com/sadopc/pomo/internal/store"
	"github.com/sadopc/pomo/internal/tasks"
	"github.com/sadopc/pomo/internal/timelog"
)

// Store is the persistence the session needs. *store.Store satisfies it.
type Store interface {
	Tasks() ([]store.Task, error)
	SaveTasks([]store.Task) error
	Logs() ([]store.TimeLog, error)
	SaveLogs([]store.TimeLog) error
	Settings() (store.TimerSettings, error)
	SaveSettings(store.TimerSettings) error
}

type Session struct {
	store  Store
	logger *log.Logger
	now    func() time.Time

	tasks    *tasks.Registry
	logs     *timelog.Log
	settings store.TimerSettings

	selected      string
	phase         store.LogType
	completedWork int

	saveErrs map[string]error
}

type Option func(*Session)

func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// Load reads all three slots. A slot that is absent or cannot be decoded is
// replaced by its default; only a damaged slot is logged.
func Load(st Store, opts ...Option) *Session {
	s := &Session{
		store:    st,
		logger:   log.New(io.Discard),
		now:      time.Now,
		phase:    store.LogWork,
		saveErrs: make(map[string]error),
	}
	for _, opt := range opts {
		opt(s)
	}

	taskList, err := st.Tasks()
	s.warnLoad(store.SlotTasks, err)
	logList, err := st.Logs()
	s.warnLoad(store.SlotLogs, err)
	settings, err := st.Settings()
	s.warnLoad(store.SlotSettings, err)

	s.tasks = tasks.New(taskList)
	s.logs = timelog.New(logList)
	s.settings = settings

	s.logger.Info("session loaded", "tasks", s.tasks.Len(), "logs", s.logs.Len())
	return s
}

func (s *Session) warnLoad(slot string, err error) {
	if err == nil || errors.Is(err, store.ErrSlotNotFound) {
		return
	}
	s.logger.Warn("slot unreadable, using default", "slot", slot, "err", err)
}

func (s *Session) Tasks() []store.Task {
	return s.tasks.List()
}

func (s *Session) Logs() []store.TimeLog {
	return s.logs.List()
}

func (s *Session) Settings() store.TimerSettings { return s.settings }
func (s *Session) Phase() store.LogType          { return s.phase }
func (s *Session) SelectedID() string            { return s.selected }

// CompletedWork counts work intervals finished since the process started.
func (s *Session) CompletedWork() int { return s.completedWork }

func (s *Session) Task(id string) (store.Task, bool) {
	return s.tasks.Get(id)
}

// SaveErr joins the outstanding write failures. A slot's failure is cleared
// only by a later successful write to that same slot.
func (s *Session) SaveErr() error {
	var errs []error
	for _, slot := range []string{store.SlotTasks, store.SlotLogs, store.SlotSettings} {
		if err := s.saveErrs[slot]; err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// PhaseDuration is the configured length in seconds of the current phase.
func (s *Session) PhaseDuration() int {
	return s.settings.DurationFor(s.phase)
}

// Selected returns the task the next work interval is credited to.
func (s *Session) Selected() (store.Task, bool) {
	return s.tasks.Get(s.selected)
}

func (s *Session) AddTask(title string, estimated int) (store.Task, error) {
	t, err := s.tasks.Add(title, estimated)
	if err != nil {
		return t, err
	}
	s.persistTasks()
	return t, nil
}

// ToggleTask flips a task's completed flag and returns the task list.
func (s *Session) ToggleTask(id string) []store.Task {
	if _, ok := s.tasks.ToggleComplete(id); ok {
		s.persistTasks()
	}
	return s.tasks.List()
}

// DeleteTask removes a task, clearing the selection if it pointed there.
func (s *Session) DeleteTask(id string) []store.Task {
	if s.tasks.Delete(id) {
		if s.selected == id {
			s.selected = ""
		}
		s.persistTasks()
	}
	return s.tasks.List()
}

// Select makes id the active task. An empty id clears the selection;
// an unknown id leaves it unchanged.
func (s *Session) Select(id string) bool {
	if id == "" {
		s.selected = ""
		return true
	}
	if _, ok := s.tasks.Get(id); !ok {
		return false
	}
	s.selected = id
	return true
}

// UpdateSettings replaces the settings record as a whole.
func (s *Session) UpdateSettings(ts store.TimerSettings) store.TimerSettings {
	s.settings = ts
	s.recordSave(store.SlotSettings, s.store.SaveSettings(ts))
	return s.settings
}

// Complete records the interval that just finished and moves to the next
// phase. A finished work interval credits the selected task.
func (s *Session) Complete() store.TimeLog {
	now := s.now()
	typ := s.phase
	dur := s.settings.DurationFor(typ)
	start := now.Add(-time.Duration(dur) * time.Second)

	entry := s.logs.Record(typ, s.selected, dur, start)
	s.persistLogs()

	if typ == store.LogWork {
		s.completedWork++
		if _, ok := s.tasks.IncrementProgress(s.selected); ok {
			s.persistTasks()
		}
	}
	s.advance()

	s.logger.Debug("interval complete", "type", entry.Type, "task", entry.TaskID, "next", s.phase)
	return entry
}

// Skip abandons the current break without logging it. Work cannot be skipped.
func (s *Session) Skip() store.LogType {
	if s.phase != store.LogWork {
		s.phase = store.LogWork
	}
	return s.phase
}

// Report computes analytics over the current state.
func (s *Session) Report() analytics.Report {
	return analytics.Summarize(s.tasks.List(), s.logs.List(), s.now())
}

func (s *Session) advance() {
	if s.phase != store.LogWork {
		s.phase = store.LogWork
		return
	}
	interval := s.settings.LongBreakInterval
	if interval > 0 && s.completedWork%interval == 0 {
		s.phase = store.LogLongBreak
	} else {
		s.phase = store.LogShortBreak
	}
}

func (s *Session) persistTasks() {
	s.recordSave(store.SlotTasks, s.store.SaveTasks(s.tasks.List()))
}

func (s *Session) persistLogs() {
	s.recordSave(store.SlotLogs, s.store.SaveLogs(s.logs.List()))
}

func (s *Session) recordSave(slot string, err error) {
	if err == nil {
		delete(s.saveErrs, slot)
		return
	}
	s.saveErrs[slot] = err
	s.logger.Error("save failed", "slot", slot, "err", err)
}
