package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/pomo/internal/analytics"
	"github.com/sadopc/pomo/internal/session"
	"github.com/sadopc/pomo/internal/store"
)

type analyticsModel struct {
	sess   *session.Session
	width  int
	height int
}

func newAnalyticsModel(s *session.Session) analyticsModel {
	return analyticsModel{sess: s}
}

func (a *analyticsModel) setSize(w, h int) {
	a.width = w
	a.height = h
}

func (a analyticsModel) view() string {
	w := a.width - 4
	r := a.sess.Report()

	title := titleStyle.Render("Analytics")

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		statCard("Focus today", fmt.Sprintf("%d min", r.Today.FocusMinutes)),
		statCard("Pomodoros today", fmt.Sprintf("%d", r.Today.Completed)),
		statCard("Breaks today", fmt.Sprintf("%d", breakCount(r.Today))),
		statCard("Total hours", fmt.Sprintf("%d", r.TotalWorkHours)),
	)

	chart := a.buildChart(r.Week)
	legend := mutedStyle.Render("  Focus minutes, last 7 days")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title, "", cards, "", chart.View(), legend, "", renderProgress(r.Tasks, w),
		),
	)
}

func (a analyticsModel) buildChart(week []analytics.DayStats) barchart.Model {
	chartWidth := a.width - 10
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if a.height > 36 {
		chartHeight = 14
	}

	chart := barchart.New(chartWidth, chartHeight)

	bars := make([]barchart.BarData, 0, len(week))
	for _, d := range week {
		bars = append(bars, barchart.BarData{
			Label: d.Label,
			Values: []barchart.BarValue{{
				Name:  d.Label,
				Value: d.Minutes,
				Style: lipgloss.NewStyle().Foreground(colorPrimary),
			}},
		})
	}

	chart.PushAll(bars)
	chart.Draw()
	return chart
}

func statCard(label, value string) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		subtitleStyle.Render(label),
		titleStyle.Render(value),
	)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorSubtle).
		Padding(0, 1).
		MarginRight(1).
		Render(body)
}

func breakCount(d analytics.DailyStats) int {
	return d.ByType[store.LogShortBreak].Count + d.ByType[store.LogLongBreak].Count
}

// renderProgress draws one bar per task. Bars are clamped at full; the
// counter keeps the real numbers.
func renderProgress(tasks []analytics.TaskProgress, w int) string {
	if len(tasks) == 0 {
		return mutedStyle.Render("  No tasks to track")
	}

	barWidth := clamp(w-56, 10, 30)
	rows := []string{titleStyle.Render("Task progress")}
	for _, t := range tasks {
		filled := clamp(int(t.Ratio*float64(barWidth)), 0, barWidth)
		bar := successStyle.Render(strings.Repeat("█", filled)) +
			mutedStyle.Render(strings.Repeat("░", barWidth-filled))

		name := t.Title
		if r := []rune(name); len(r) > 24 {
			name = string(r[:23]) + "…"
		}
		count := fmt.Sprintf("%d/%d", t.Completed, t.Target)
		if t.Done {
			count += " done"
		}
		rows = append(rows, fmt.Sprintf("  %-24s %s %s", name, bar, mutedStyle.Render(count)))
	}
	return strings.Join(rows, "\n")
}
