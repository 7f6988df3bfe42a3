package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/pomo/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewTimer viewState = iota
	viewTasks
	viewAnalytics
	viewSettings
)

var viewNames = []string{"Timer", "Tasks", "Analytics", "Settings"}

// --- Messages ---

// tickMsg carries the engine tag it was scheduled under.
type tickMsg struct {
	tag int
}

type statusMsg struct {
	text    string
	isError bool
}

type intervalDoneMsg struct {
	entry store.TimeLog
	next  store.LogType
}

type settingsSavedMsg struct {
	settings store.TimerSettings
}

type exportDoneMsg struct {
	path string
}

type bellDoneMsg struct{}

func tickCmd(tag int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{tag: tag}
	})
}

// bellHold keeps the BEL in the view long enough for the renderer to flush
// at least one frame containing it.
const bellHold = 200 * time.Millisecond

func bellOffCmd() tea.Cmd {
	return tea.Tick(bellHold, func(time.Time) tea.Msg {
		return bellDoneMsg{}
	})
}

// --- Helpers ---

var phaseLabels = map[store.LogType]string{
	store.LogWork:       "WORK",
	store.LogShortBreak: "SHORT BREAK",
	store.LogLongBreak:  "LONG BREAK",
}

func phaseLabel(t store.LogType) string {
	if l, ok := phaseLabels[t]; ok {
		return l
	}
	return string(t)
}

// formatClock renders seconds as MM:SS, letting minutes run past 59.
func formatClock(secs int) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func formatMinutes(secs int) string {
	return fmt.Sprintf("%d min", secs/60)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func statusErrCmd(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text, isError: true} }
}

// validateRange accepts a whole number in [lo, hi].
func validateRange(s string, lo, hi int) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("enter a whole number")
	}
	if n < lo || n > hi {
		return fmt.Errorf("must be between %d and %d", lo, hi)
	}
	return nil
}
