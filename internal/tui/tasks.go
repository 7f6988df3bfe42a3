package tui

import (
	"errors"
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

const (
	minEstimate = 1
	maxEstimate = 10
)

type tasksModel struct {
	sess   *session.Session
	width  int
	height int

	cursor int

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formTitle    *string
	formEstimate *string
}

func newTasksModel(s *session.Session) tasksModel {
	title, estimate := "", "1"
	return tasksModel{
		sess:         s,
		formTitle:    &title,
		formEstimate: &estimate,
	}
}

func (m *tasksModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m tasksModel) update(msg tea.Msg) (tasksModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	list := m.sess.Tasks()
	m.cursor = clamp(m.cursor, 0, max(len(list)-1, 0))

	switch {
	case key.Matches(km, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(km, keys.Down):
		if m.cursor < len(list)-1 {
			m.cursor++
		}
	case key.Matches(km, keys.New):
		return m.showNewTaskForm()
	case key.Matches(km, keys.Enter):
		if len(list) == 0 {
			return m, nil
		}
		id := list[m.cursor].ID
		if m.sess.SelectedID() == id {
			m.sess.Select("")
			return m, statusCmd("Selection cleared")
		}
		m.sess.Select(id)
		return m, statusCmd("Focusing on " + list[m.cursor].Title)
	case key.Matches(km, keys.Complete):
		if len(list) > 0 {
			m.sess.ToggleTask(list[m.cursor].ID)
		}
	case key.Matches(km, keys.Delete):
		if len(list) > 0 {
			list = m.sess.DeleteTask(list[m.cursor].ID)
			m.cursor = clamp(m.cursor, 0, max(len(list)-1, 0))
		}
	}
	return m, nil
}

func (m tasksModel) showNewTaskForm() (tasksModel, tea.Cmd) {
	*m.formTitle = ""
	*m.formEstimate = "1"

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task").Value(m.formTitle).Validate(validateTitle),
			huh.NewInput().Title("Estimated pomodoros").Value(m.formEstimate).Validate(validateEstimate),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m tasksModel) updateForm(msg tea.Msg) (tasksModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		return m, m.addTask(*m.formTitle, *m.formEstimate)
	}

	return m, cmd
}

func (m tasksModel) addTask(title, estimate string) tea.Cmd {
	if validateTitle(title) != nil || validateEstimate(estimate) != nil {
		return statusErrCmd("Task needs a title and 1-10 pomodoros")
	}
	n, _ := strconv.Atoi(strings.TrimSpace(estimate))
	t, err := m.sess.AddTask(title, n)
	if err != nil {
		return statusErrCmd(fmt.Sprintf("Error: %v", err))
	}
	return statusCmd("Added " + t.Title)
}

func validateTitle(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("title is required")
	}
	return nil
}

func validateEstimate(s string) error {
	return validateRange(s, minEstimate, maxEstimate)
}

func (m tasksModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := titleStyle.Render("New Task")
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Tasks")
	list := m.sess.Tasks()

	if len(list) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No tasks yet. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	header := mutedStyle.Render(fmt.Sprintf("  %-3s %-32s %9s", "", "Task", "Pomodoros"))
	rows = append(rows, header)

	cursor := clamp(m.cursor, 0, len(list)-1)
	for i, t := range list {
		rows = append(rows, m.renderRow(t, i == cursor))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  enter: focus  x: done/undo  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m tasksModel) renderRow(t store.Task, active bool) string {
	pointer := "  "
	style := normalItemStyle
	if active {
		pointer = "> "
		style = selectedItemStyle
	}
	if t.Completed {
		style = doneItemStyle
	}

	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}
	focus := " "
	if t.ID == m.sess.SelectedID() {
		focus = phaseStyle("work").Render("●")
	}

	count := fmt.Sprintf("%d/%d", t.CompletedPomodoros, t.Pomodoros)
	if t.CompletedPomodoros > t.Pomodoros {
		count = warningStyle.Render(count)
	}
	return pointer + focus + " " + style.Render(fmt.Sprintf("%s %-32s", check, t.Title)) + " " + count
}
