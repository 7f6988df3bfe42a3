package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/pomo/internal/alert"
	"github.com/sadopc/pomo/internal/session"
	"github.com/sadopc/pomo/internal/store"
	"github.com/sadopc/pomo/internal/timer"
)

// timerModel drives the countdown for the session's current phase.
type timerModel struct {
	sess   *session.Session
	engine timer.Engine
	player alert.Player
	sound  string
	width  int
	height int
}

func newTimerModel(s *session.Session, p alert.Player, sound string) timerModel {
	return timerModel{
		sess:   s,
		engine: timer.New(s.PhaseDuration()),
		player: p,
		sound:  sound,
	}
}

func (t *timerModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

func (t timerModel) isRunning() bool { return t.engine.Running() }

func (t timerModel) update(msg tea.Msg) (timerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if msg.tag != t.engine.Tag() {
			return t, nil
		}
		if t.engine.Tick() {
			return t.complete()
		}
		if t.engine.Running() {
			return t, tickCmd(t.engine.Tag())
		}
		return t, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Toggle):
			if t.engine.Toggle() {
				return t, tickCmd(t.engine.Tag())
			}
		case key.Matches(msg, keys.Reset):
			t.engine.Reset(t.sess.PhaseDuration())
		case key.Matches(msg, keys.Skip):
			if t.sess.Phase() == store.LogWork {
				return t, nil
			}
			t.sess.Skip()
			t.engine.Reset(t.sess.PhaseDuration())
			return t, func() tea.Msg {
				return statusMsg{text: "Break skipped"}
			}
		}
	}
	return t, nil
}

// complete records the finished interval and loads the next phase. The new
// countdown waits for the user to start it.
func (t timerModel) complete() (timerModel, tea.Cmd) {
	entry := t.sess.Complete()
	next := t.sess.Phase()
	t.engine.Reset(t.sess.PhaseDuration())

	done := func() tea.Msg {
		return intervalDoneMsg{entry: entry, next: next}
	}
	return t, tea.Batch(alert.Fire(t.player, t.sound), done)
}

// applySettings reloads the countdown when the user has not started it yet.
func (t *timerModel) applySettings() bool {
	if !t.engine.Pristine() {
		return false
	}
	t.engine.Reset(t.sess.PhaseDuration())
	return true
}

func (t timerModel) view() string {
	w := t.width - 4
	phase := t.sess.Phase()
	style := phaseStyle(string(phase))

	title := titleStyle.Render("Pomodoro Timer")
	clock := timerStyle.Inherit(style).Width(max(w-6, 10)).Render(formatClock(t.engine.Remaining()))
	label := style.Render(phaseLabel(phase))

	var state string
	switch t.engine.State() {
	case timer.StateRunning:
		state = successStyle.Render("running")
	case timer.StatePaused:
		state = warningStyle.Render("paused")
	default:
		state = mutedStyle.Render("ready")
	}

	task := mutedStyle.Render("No task selected")
	if sel, ok := t.sess.Selected(); ok {
		task = highlightStyle.Render(fmt.Sprintf("%s  %d/%d", sel.Title, sel.CompletedPomodoros, sel.Pomodoros))
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		clock,
		label+"  "+state,
		"",
		t.renderBar(max(w-10, 10)),
		t.renderCycle(),
		"",
		task,
	)

	controls := mutedStyle.Render("space: start/pause  r: reset")
	if phase != store.LogWork {
		controls = mutedStyle.Render("space: start/pause  r: reset  b: skip break")
	}

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Center, content, "", controls),
	)
}

func (t timerModel) renderBar(width int) string {
	filled := int(t.engine.Progress() * float64(width))
	filled = clamp(filled, 0, width)
	return phaseStyle(string(t.sess.Phase())).Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", width-filled))
}

// renderCycle shows work intervals completed toward the next long break.
func (t timerModel) renderCycle() string {
	interval := t.sess.Settings().LongBreakInterval
	if interval <= 0 {
		return ""
	}
	done := t.sess.CompletedWork() % interval
	if t.sess.Phase() == store.LogLongBreak {
		done = interval
	}

	var parts []string
	for i := 0; i < interval; i++ {
		switch {
		case i < done:
			parts = append(parts, successStyle.Render("●"))
		case i == done && t.sess.Phase() == store.LogWork:
			parts = append(parts, accentStyle.Render("◐"))
		default:
			parts = append(parts, mutedStyle.Render("○"))
		}
	}
	counter := mutedStyle.Render(fmt.Sprintf("  %d today", t.sess.Report().Today.Completed))
	return strings.Join(parts, " ") + counter
}
