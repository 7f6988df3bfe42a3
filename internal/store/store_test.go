package store

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/pomo.db"

	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.PutSlot("k", "v"); err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen: data survives and migration is skipped.
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	v, err := s2.GetSlot("k")
	if err != nil || v != "v" {
		t.Fatalf("GetSlot after reopen = %q, %v", v, err)
	}
}

func TestPragmasConfigured(t *testing.T) {
	s := newTestStore(t)
	var fk int
	s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk)
	if fk != 1 {
		t.Fatalf("expected foreign_keys=1, got %d", fk)
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

func TestCloseStore(t *testing.T) {
	s, _ := NewMemory()
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if err := s.PutSlot("k", "v"); err == nil {
		t.Fatal("expected error after close")
	}
}

// ============================================================
// Raw slots
// ============================================================

func TestGetSlotNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetSlot("missing")
	if !errors.Is(err, ErrSlotNotFound) {
		t.Fatalf("expected ErrSlotNotFound, got %v", err)
	}
}

func TestPutSlotOverwrite(t *testing.T) {
	s := newTestStore(t)
	s.PutSlot("k", "one")
	s.PutSlot("k", "two")

	v, err := s.GetSlot("k")
	if err != nil {
		t.Fatal(err)
	}
	if v != "two" {
		t.Fatalf("expected overwrite, got %q", v)
	}
}

// ============================================================
// Typed slots
// ============================================================

func TestTasksRoundTrip(t *testing.T) {
	s := newTestStore(t)
	created := time.Date(2026, 3, 14, 9, 26, 53, 589793238, time.UTC)
	want := []Task{
		{ID: "a", Title: "Write report", Pomodoros: 3, CompletedPomodoros: 5, CreatedAt: created},
		{ID: "b", Title: "Review", Completed: true, Pomodoros: 1, CreatedAt: created.Add(time.Hour)},
	}

	if err := s.SaveTasks(want); err != nil {
		t.Fatal(err)
	}
	got, err := s.Tasks()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestSaveTasksStoresUTC(t *testing.T) {
	s := newTestStore(t)
	loc := time.FixedZone("UTC+3", 3*3600)
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, loc)

	s.SaveTasks([]Task{{ID: "a", Title: "x", Pomodoros: 1, CreatedAt: created}})
	got, _ := s.Tasks()
	if !got[0].CreatedAt.Equal(created) {
		t.Fatalf("instant changed: %v vs %v", got[0].CreatedAt, created)
	}
	if got[0].CreatedAt.Location() != time.UTC {
		t.Fatalf("expected UTC, got %v", got[0].CreatedAt.Location())
	}
}

func TestLogsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	start := time.Date(2026, 10, 16, 8, 0, 0, 123, time.UTC)
	want := []TimeLog{
		{ID: "1", TaskID: "a", StartTime: start, Duration: 1500, Type: LogWork},
		{ID: "2", TaskID: "", StartTime: start.Add(25 * time.Minute), Duration: 300, Type: LogShortBreak},
		{ID: "3", TaskID: "gone", StartTime: start.Add(2 * time.Hour), Duration: 900, Type: LogLongBreak},
	}

	if err := s.SaveLogs(want); err != nil {
		t.Fatal(err)
	}
	got, err := s.Logs()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestLogTypeWireValues(t *testing.T) {
	s := newTestStore(t)
	s.SaveLogs([]TimeLog{{ID: "1", StartTime: time.Unix(0, 0).UTC(), Duration: 1, Type: LogShortBreak}})

	raw, _ := s.GetSlot(SlotLogs)
	want := `[{"id":"1","taskId":"","startTime":"1970-01-01T00:00:00Z","duration":1,"type":"shortBreak"}]`
	if raw != want {
		t.Fatalf("raw slot = %s\nwant %s", raw, want)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	want := TimerSettings{WorkDuration: 50 * 60, ShortBreakDuration: 10 * 60, LongBreakDuration: 30 * 60, LongBreakInterval: 2}

	if err := s.SaveSettings(want); err != nil {
		t.Fatal(err)
	}
	got, err := s.Settings()
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestAbsentSlotsFallBack(t *testing.T) {
	s := newTestStore(t)

	tasks, err := s.Tasks()
	if !errors.Is(err, ErrSlotNotFound) {
		t.Fatalf("expected ErrSlotNotFound, got %v", err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", tasks)
	}

	logs, err := s.Logs()
	if !errors.Is(err, ErrSlotNotFound) || len(logs) != 0 {
		t.Fatalf("logs = %v, %v", logs, err)
	}

	settings, err := s.Settings()
	if !errors.Is(err, ErrSlotNotFound) {
		t.Fatalf("expected ErrSlotNotFound, got %v", err)
	}
	if settings != DefaultSettings() {
		t.Fatalf("expected defaults, got %+v", settings)
	}
}

func TestCorruptSlotsFallBack(t *testing.T) {
	tests := []struct {
		name string
		slot string
		raw  string
	}{
		{"tasks garbage", SlotTasks, "{not json"},
		{"logs garbage", SlotLogs, "[1,2"},
		{"logs unknown type", SlotLogs, `[{"id":"1","type":"nap","duration":60,"startTime":"2026-01-01T00:00:00Z"}]`},
		{"logs bad time", SlotLogs, `[{"id":"1","type":"work","duration":60,"startTime":"yesterday"}]`},
		{"settings garbage", SlotSettings, "42x"},
		{"settings zero", SlotSettings, `{"workDuration":0,"shortBreakDuration":300,"longBreakDuration":900,"longBreakInterval":4}`},
		{"settings null", SlotSettings, "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			s.PutSlot(tt.slot, tt.raw)

			var err error
			switch tt.slot {
			case SlotTasks:
				var tasks []Task
				tasks, err = s.Tasks()
				if len(tasks) != 0 {
					t.Fatalf("expected empty tasks, got %v", tasks)
				}
			case SlotLogs:
				var logs []TimeLog
				logs, err = s.Logs()
				if len(logs) != 0 {
					t.Fatalf("expected empty logs, got %v", logs)
				}
			case SlotSettings:
				var ts TimerSettings
				ts, err = s.Settings()
				if ts != DefaultSettings() {
					t.Fatalf("expected defaults, got %+v", ts)
				}
			}
			if !errors.Is(err, ErrCorruptSlot) {
				t.Fatalf("expected ErrCorruptSlot, got %v", err)
			}
		})
	}
}

func TestEmptyListsStayEmpty(t *testing.T) {
	s := newTestStore(t)
	s.SaveTasks(nil)
	s.SaveLogs([]TimeLog{})

	tasks, err := s.Tasks()
	if err != nil || tasks == nil || len(tasks) != 0 {
		t.Fatalf("tasks = %#v, %v", tasks, err)
	}
	logs, err := s.Logs()
	if err != nil || logs == nil || len(logs) != 0 {
		t.Fatalf("logs = %#v, %v", logs, err)
	}
}

// ============================================================
// Models
// ============================================================

func TestDefaultSettings(t *testing.T) {
	d := DefaultSettings()
	if d.WorkDuration != 1500 || d.ShortBreakDuration != 300 || d.LongBreakDuration != 900 || d.LongBreakInterval != 4 {
		t.Fatalf("unexpected defaults: %+v", d)
	}
}

func TestDurationFor(t *testing.T) {
	s := TimerSettings{WorkDuration: 1, ShortBreakDuration: 2, LongBreakDuration: 3, LongBreakInterval: 4}
	tests := []struct {
		typ  LogType
		want int
	}{
		{LogWork, 1},
		{LogShortBreak, 2},
		{LogLongBreak, 3},
	}
	for _, tt := range tests {
		if got := s.DurationFor(tt.typ); got != tt.want {
			t.Errorf("DurationFor(%s) = %d, want %d", tt.typ, got, tt.want)
		}
	}
}

func TestLogTypeValid(t *testing.T) {
	for _, lt := range []LogType{LogWork, LogShortBreak, LogLongBreak} {
		if !lt.Valid() {
			t.Errorf("%q should be valid", lt)
		}
	}
	for _, lt := range []LogType{"", "Work", "short_break"} {
		if lt.Valid() {
			t.Errorf("%q should be invalid", lt)
		}
	}
}
