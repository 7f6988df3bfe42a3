// Package analytics derives daily, weekly and per-task statistics from the
// task list and the time log. Every function is pure: the same inputs and
// the same "now" give the same result.
package analytics

import (
	"math"
	"time"

	"github.com/sadopc/pomo/internal/store"
)

// WeekDays is the length of the weekly series.
const WeekDays = 7

// TypeStats totals one kind of interval.
type TypeStats struct {
	Seconds int64
	Count   int
}

// DailyStats covers the calendar day containing now, in now's location.
type DailyStats struct {
	Date         time.Time
	FocusMinutes int
	Completed    int
	ByType       map[store.LogType]TypeStats
}

// DayStats is one point of the weekly series. Only work intervals count.
type DayStats struct {
	Date        time.Time
	Label       string
	WorkSeconds int64
	Minutes     float64
	Count       int
}

type TaskProgress struct {
	TaskID    string
	Title     string
	Done      bool
	Completed int
	Target    int
	// Ratio is Completed/Target. It is 0 when Target is not positive and may
	// exceed 1 when a task ran over its estimate.
	Ratio float64
}

type Report struct {
	Today          DailyStats
	Week           []DayStats
	Tasks          []TaskProgress
	TotalWorkHours int
}

// Summarize builds every statistic the analytics view shows.
func Summarize(tasks []store.Task, logs []store.TimeLog, now time.Time) Report {
	return Report{
		Today:          Daily(logs, now),
		Week:           Weekly(logs, now),
		Tasks:          Progress(tasks),
		TotalWorkHours: TotalWorkHours(logs),
	}
}

func Daily(logs []store.TimeLog, now time.Time) DailyStats {
	day := startOfDay(now)
	ds := DailyStats{
		Date: day,
		ByType: map[store.LogType]TypeStats{
			store.LogWork:       {},
			store.LogShortBreak: {},
			store.LogLongBreak:  {},
		},
	}
	for _, l := range logs {
		if !sameDay(l.StartTime, day) {
			continue
		}
		ts := ds.ByType[l.Type]
		ts.Seconds += int64(l.Duration)
		ts.Count++
		ds.ByType[l.Type] = ts
	}
	work := ds.ByType[store.LogWork]
	ds.FocusMinutes = roundMinutes(work.Seconds)
	ds.Completed = work.Count
	return ds
}

// Weekly returns the trailing seven calendar days ending today, oldest first.
func Weekly(logs []store.TimeLog, now time.Time) []DayStats {
	today := startOfDay(now)
	week := make([]DayStats, WeekDays)
	for i := range week {
		d := time.Date(today.Year(), today.Month(), today.Day()-(WeekDays-1-i), 0, 0, 0, 0, today.Location())
		week[i] = DayStats{Date: d, Label: d.Format("Mon")}
	}

	for _, l := range logs {
		if l.Type != store.LogWork {
			continue
		}
		for i := range week {
			if sameDay(l.StartTime, week[i].Date) {
				week[i].WorkSeconds += int64(l.Duration)
				week[i].Count++
				break
			}
		}
	}
	for i := range week {
		week[i].Minutes = float64(week[i].WorkSeconds) / 60
	}
	return week
}

func Progress(tasks []store.Task) []TaskProgress {
	out := make([]TaskProgress, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, TaskProgress{
			TaskID:    t.ID,
			Title:     t.Title,
			Done:      t.Completed,
			Completed: t.CompletedPomodoros,
			Target:    t.Pomodoros,
			Ratio:     Ratio(t.CompletedPomodoros, t.Pomodoros),
		})
	}
	return out
}

// Ratio divides completed by target, returning 0 for a non-positive target.
func Ratio(completed, target int) float64 {
	if target <= 0 {
		return 0
	}
	return float64(completed) / float64(target)
}

// TotalWorkHours is all-time work time rounded to whole hours.
func TotalWorkHours(logs []store.TimeLog) int {
	var secs int64
	for _, l := range logs {
		if l.Type == store.LogWork {
			secs += int64(l.Duration)
		}
	}
	return int(math.Round(float64(secs) / 3600))
}

func roundMinutes(secs int64) int {
	return int(math.Round(float64(secs) / 60))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// sameDay compares calendar dates in day's location.
func sameDay(t, day time.Time) bool {
	t = t.In(day.Location())
	y1, m1, d1 := t.Date()
	y2, m2, d2 := day.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
