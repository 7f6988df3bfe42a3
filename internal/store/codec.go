package store

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrCorruptSlot is returned when a stored value cannot be decoded.
var ErrCorruptSlot = errors.New("corrupt slot")

// Tasks reads the task slot. On any error the returned list is empty and
// usable; callers decide whether the error is worth reporting.
func (s *Store) Tasks() ([]Task, error) {
	var tasks []Task
	if err := s.readSlot(SlotTasks, &tasks); err != nil {
		return []Task{}, err
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}

func (s *Store) SaveTasks(tasks []Task) error {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		t.CreatedAt = t.CreatedAt.UTC()
		out[i] = t
	}
	return s.writeSlot(SlotTasks, out)
}

// Logs reads the time log slot, falling back to an empty list on error.
func (s *Store) Logs() ([]TimeLog, error) {
	var logs []TimeLog
	if err := s.readSlot(SlotLogs, &logs); err != nil {
		return []TimeLog{}, err
	}
	if logs == nil {
		logs = []TimeLog{}
	}
	return logs, nil
}

func (s *Store) SaveLogs(logs []TimeLog) error {
	out := make([]TimeLog, len(logs))
	for i, l := range logs {
		l.StartTime = l.StartTime.UTC()
		out[i] = l
	}
	return s.writeSlot(SlotLogs, out)
}

// Settings reads the settings slot, falling back to DefaultSettings on error.
func (s *Store) Settings() (TimerSettings, error) {
	var ts TimerSettings
	if err := s.readSlot(SlotSettings, &ts); err != nil {
		return DefaultSettings(), err
	}
	if ts.WorkDuration <= 0 || ts.ShortBreakDuration <= 0 || ts.LongBreakDuration <= 0 || ts.LongBreakInterval <= 0 {
		return DefaultSettings(), fmt.Errorf("decode slot %q: %w: non-positive field in %+v", SlotSettings, ErrCorruptSlot, ts)
	}
	return ts, nil
}

func (s *Store) SaveSettings(ts TimerSettings) error {
	return s.writeSlot(SlotSettings, ts)
}

func (s *Store) readSlot(name string, v any) error {
	raw, err := s.GetSlot(name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("decode slot %q: %w: %v", name, ErrCorruptSlot, err)
	}
	return nil
}

func (s *Store) writeSlot(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode slot %q: %w", name, err)
	}
	return s.PutSlot(name, string(data))
}
