package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/daymark/internal/chart"
	"github.com/julianstephens/daymark/internal/reminder"
	"github.com/julianstephens/daymark/internal/widget"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateTasks:
		content = m.viewTasks()
	case StateProgress:
		content = m.viewProgress()
	case StateReminder:
		content = m.viewReminder()
	case StateTaskForm, StateReminderForm:
		content = m.viewForm()
	case StateConfirmDelete:
		content = m.viewConfirm("Are you sure you want to delete this task?")
	case StateConfirmClearTasks:
		content = m.viewConfirm("Delete every task? History is kept.")
	case StateConfirmClearHistory:
		content = m.viewConfirm("Clear all task history?")
	}

	var status string
	if m.status != "" {
		status = statusStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		status,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	active := m.activeTab()
	for i, title := range tabTitles {
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewTasks() string {
	header := warningStyle.Render(widget.Badge(m.summary.Remaining))
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, m.taskList.View()))
}

func (m Model) viewProgress() string {
	today := fmt.Sprintf("Today: %d of %d tasks complete", m.summary.Completed, m.summary.Total)
	width := m.width - 4
	if width <= 0 {
		width = 60
	}
	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		today,
		"",
		chart.Render(m.markers, width),
	))
}

func (m Model) viewReminder() string {
	schedule, enabled := reminder.FromSettings(m.settings)
	state := "Off"
	next := "-"
	if enabled {
		state = "On"
		loc := m.manager.Location()
		next = schedule.Next(m.manager.Now(), loc).Format("Mon Jan 2 15:04")
	}

	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
	}

	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		row("Time", schedule.String()),
		row("Status", state),
		row("Next", next),
	))
}

func (m Model) viewForm() string {
	if m.form == nil {
		return ""
	}
	view := m.form.View()
	if m.formError != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, view, dangerStyle.Render(m.formError))
	}
	return docStyle.Render(view)
}

func (m Model) viewConfirm(question string) string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(question),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
