package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/pomo/internal/alert"
	"github.com/sadopc/pomo/internal/export"
	"github.com/sadopc/pomo/internal/session"
	"github.com/sadopc/pomo/internal/store"
)

// App is the root Bubble Tea model.
type App struct {
	sess   *session.Session
	width  int
	height int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int
	exportDir     string

	timer     timerModel
	tasks     tasksModel
	analytics analyticsModel
	settings  settingsModel

	help      help.Model
	status    string
	statusErr bool

	bell    bool
	ringing bool
}

// NewApp builds the UI over sess. player announces finished intervals with
// sound; without one the terminal bell is rung through the rendered view.
func NewApp(sess *session.Session, player alert.Player, sound string) App {
	h := help.New()
	h.ShowAll = false

	home, _ := os.UserHomeDir()

	return App{
		sess:       sess,
		activeView: viewTimer,
		exportDir:  home,
		timer:      newTimerModel(sess, player, sound),
		tasks:      newTasksModel(sess),
		analytics:  newAnalyticsModel(sess),
		settings:   newSettingsModel(sess),
		help:       h,
		bell:       player == nil,
	}
}

func (a App) Init() tea.Cmd {
	return tea.SetWindowTitle("pomo")
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.timer.setSize(a.width, contentHeight)
		a.tasks.setSize(a.width, contentHeight)
		a.analytics.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			a.activeView = viewTimer
			return a, nil
		case key.Matches(msg, keys.Tab2):
			a.activeView = viewTasks
			return a, nil
		case key.Matches(msg, keys.Tab3):
			a.activeView = viewAnalytics
			return a, nil
		case key.Matches(msg, keys.Tab4):
			a.activeView = viewSettings
			return a, nil
		case key.Matches(msg, keys.Tab):
			a.activeView = (a.activeView + 1) % viewState(len(viewNames))
			return a, nil
		}

		// Timer controls work from every view.
		if a.activeView != viewTimer && isTimerKey(msg) {
			var cmd tea.Cmd
			a.timer, cmd = a.timer.update(msg)
			return a, cmd
		}

	case tickMsg:
		// Ticks always go to the timer, whatever view is showing.
		var cmd tea.Cmd
		a.timer, cmd = a.timer.update(msg)
		return a, cmd

	case intervalDoneMsg:
		a.setStatus(fmt.Sprintf("%s finished, %s next", phaseLabel(msg.entry.Type), phaseLabel(msg.next)), false)
		if a.bell {
			a.ringing = true
			return a, bellOffCmd()
		}
		return a, nil

	case bellDoneMsg:
		a.ringing = false
		return a, nil

	case settingsSavedMsg:
		a.setStatus("Settings saved", false)
		a.timer.applySettings()
		return a, nil

	case statusMsg:
		a.setStatus(msg.text, msg.isError)
		return a, nil

	case exportDoneMsg:
		a.setStatus("Exported to "+msg.path, false)
		a.exportPicking = false
		return a, nil
	}

	return a.updateActiveView(msg)
}

func (a *App) setStatus(text string, isError bool) {
	a.status = text
	a.statusErr = isError
}

func isTimerKey(msg tea.KeyMsg) bool {
	return key.Matches(msg, keys.Toggle) || key.Matches(msg, keys.Reset) || key.Matches(msg, keys.Skip)
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewTimer:
		a.timer, cmd = a.timer.update(msg)
	case viewTasks:
		a.tasks, cmd = a.tasks.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewTasks:
		return a.tasks.formActive
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) View() string {
	view := a.render()
	if a.ringing {
		view = "\a" + view
	}
	return view
}

func (a App) render() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewTimer:
		content = a.timer.view()
	case viewTasks:
		content = a.tasks.view()
	case viewAnalytics:
		content = a.analytics.view()
	case viewSettings:
		content = a.settings.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	if a.exportPicking {
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("pomo")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	switch {
	case a.sess.SaveErr() != nil:
		status = errorStyle.Render(" Save failed: " + a.sess.SaveErr().Error())
	case a.status != "" && a.statusErr:
		status = errorStyle.Render(" " + a.status)
	case a.status != "":
		status = mutedStyle.Render(" " + a.status)
	}

	// Countdown indicator while another view is showing
	timerInfo := ""
	if a.activeView != viewTimer && a.timer.isRunning() {
		timerInfo = phaseStyle(string(a.sess.Phase())).Render(" ● " + formatClock(a.timer.engine.Remaining()))
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	title := titleStyle.Render("Export Time Log")
	formats := []string{"CSV", "JSON"}
	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")
	for i, f := range formats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < 1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format int) tea.Cmd {
	logs := a.sess.Logs()
	tasks := export.TaskIndex(a.sess.Tasks())
	dir := a.exportDir

	return func() tea.Msg {
		return runExport(format, logs, tasks, dir, time.Now())
	}
}

func runExport(format int, logs []store.TimeLog, tasks map[string]*store.Task, dir string, now time.Time) tea.Msg {
	dateStr := now.Format("2006-01-02")

	if format == 0 {
		path := filepath.Join(dir, fmt.Sprintf("pomo-export-%s.csv", dateStr))
		if err := export.ToCSV(logs, tasks, path); err != nil {
			return statusMsg{text: fmt.Sprintf("CSV error: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}

	path := filepath.Join(dir, fmt.Sprintf("pomo-export-%s.json", dateStr))
	if err := export.ToJSON(logs, tasks, path); err != nil {
		return statusMsg{text: fmt.Sprintf("JSON error: %v", err), isError: true}
	}
	return exportDoneMsg{path: path}
}
