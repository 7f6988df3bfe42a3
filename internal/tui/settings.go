package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/pomo/internal/session"
	"github.com/sadopc/pomo/internal/store"
)

// Form ranges, in minutes except the interval.
const (
	maxWorkMinutes       = 60
	maxShortBreakMinutes = 30
	maxLongBreakMinutes  = 60
	maxLongBreakInterval = 10
)

type settingsModel struct {
	sess   *session.Session
	width  int
	height int

	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	work       *string
	shortBreak *string
	longBreak  *string
	interval   *string
}

func newSettingsModel(s *session.Session) settingsModel {
	w, sb, lb, iv := "", "", "", ""
	return settingsModel{
		sess:       s,
		work:       &w,
		shortBreak: &sb,
		longBreak:  &lb,
		interval:   &iv,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Enter):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	cur := s.sess.Settings()
	*s.work = secsToMin(cur.WorkDuration)
	*s.shortBreak = secsToMin(cur.ShortBreakDuration)
	*s.longBreak = secsToMin(cur.LongBreakDuration)
	*s.interval = strconv.Itoa(cur.LongBreakInterval)

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Work (min)").Value(s.work).
				Validate(rangeValidator(1, maxWorkMinutes)),
			huh.NewInput().Title("Short break (min)").Value(s.shortBreak).
				Validate(rangeValidator(1, maxShortBreakMinutes)),
			huh.NewInput().Title("Long break (min)").Value(s.longBreak).
				Validate(rangeValidator(1, maxLongBreakMinutes)),
			huh.NewInput().Title("Pomodoros before long break").Value(s.interval).
				Validate(rangeValidator(1, maxLongBreakInterval)),
		).Title("Timer"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		return s, s.save()
	}

	return s, cmd
}

func (s settingsModel) save() tea.Cmd {
	ts, err := parseSettings(*s.work, *s.shortBreak, *s.longBreak, *s.interval)
	if err != nil {
		return statusErrCmd(fmt.Sprintf("Settings not saved: %v", err))
	}
	saved := s.sess.UpdateSettings(ts)
	return func() tea.Msg { return settingsSavedMsg{settings: saved} }
}

// parseSettings converts the form's minute values into a settings record,
// enforcing the form ranges.
func parseSettings(work, shortBreak, longBreak, interval string) (store.TimerSettings, error) {
	fields := []struct {
		name string
		val  string
		max  int
		mult int
	}{
		{"work", work, maxWorkMinutes, 60},
		{"short break", shortBreak, maxShortBreakMinutes, 60},
		{"long break", longBreak, maxLongBreakMinutes, 60},
		{"interval", interval, maxLongBreakInterval, 1},
	}

	out := make([]int, len(fields))
	for i, f := range fields {
		if err := validateRange(f.val, 1, f.max); err != nil {
			return store.TimerSettings{}, fmt.Errorf("%s: %w", f.name, err)
		}
		n, _ := strconv.Atoi(strings.TrimSpace(f.val))
		out[i] = n * f.mult
	}

	return store.TimerSettings{
		WorkDuration:       out[0],
		ShortBreakDuration: out[1],
		LongBreakDuration:  out[2],
		LongBreakInterval:  out[3],
	}, nil
}

func rangeValidator(lo, hi int) func(string) error {
	return func(s string) error { return validateRange(s, lo, hi) }
}

func (s settingsModel) view() string {
	w := s.width - 4
	title := titleStyle.Render("Settings")

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	cur := s.sess.Settings()
	items := []struct {
		label string
		value string
	}{
		{"Work", formatMinutes(cur.WorkDuration)},
		{"Short break", formatMinutes(cur.ShortBreakDuration)},
		{"Long break", formatMinutes(cur.LongBreakDuration)},
		{"Long break every", fmt.Sprintf("%d pomodoros", cur.LongBreakInterval)},
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for _, it := range items {
		label := lipgloss.NewStyle().Width(24).Render(it.label)
		rows = append(rows, fmt.Sprintf("  %s %s", label, highlightStyle.Render(it.value)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("Press enter to edit settings"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func secsToMin(secs int) string {
	return strconv.Itoa(secs / 60)
}
