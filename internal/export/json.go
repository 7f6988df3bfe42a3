package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/pomo/internal/store"
)

type jsonExport struct {
	ExportedAt string    `json:"exported_at"`
	Count      int       `json:"count"`
	Logs       []jsonLog `json:"logs"`
}

type jsonLog struct {
	ID          string `json:"id"`
	Task        string `json:"task"`
	TaskID      string `json:"task_id,omitempty"`
	Type        string `json:"type"`
	StartTime   string `json:"start_time"`
	DurationSec int    `json:"duration_seconds"`
	Duration    string `json:"duration"`
}

func ToJSON(logs []store.TimeLog, tasks map[string]*store.Task, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(logs),
	}

	for _, l := range logs {
		export.Logs = append(export.Logs, jsonLog{
			ID:          l.ID,
			Task:        taskTitle(tasks, l.TaskID),
			TaskID:      l.TaskID,
			Type:        string(l.Type),
			StartTime:   l.StartTime.Local().Format(time.RFC3339),
			DurationSec: l.Duration,
			Duration:    formatDuration(int64(l.Duration)),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
