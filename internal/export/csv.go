package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/pomo/internal/store"
)

const unknownTask = "-"

func ToCSV(logs []store.TimeLog, tasks map[string]*store.Task, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	// Header
	if err := w.Write([]string{"ID", "Task", "Type", "Start", "Duration (s)", "Duration"}); err != nil {
		return err
	}

	for _, l := range logs {
		row := []string{
			l.ID,
			taskTitle(tasks, l.TaskID),
			string(l.Type),
			l.StartTime.Local().Format(time.RFC3339),
			fmt.Sprintf("%d", l.Duration),
			formatDuration(int64(l.Duration)),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// TaskIndex maps task ids to tasks for export lookups.
func TaskIndex(tasks []store.Task) map[string]*store.Task {
	m := make(map[string]*store.Task, len(tasks))
	for i := range tasks {
		m[tasks[i].ID] = &tasks[i]
	}
	return m
}

func taskTitle(tasks map[string]*store.Task, id string) string {
	if id == "" {
		return unknownTask
	}
	if t, ok := tasks[id]; ok {
		return t.Title
	}
	return unknownTask
}

func formatDuration(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
