package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daymark/internal/constants"
	"github.com/julianstephens/daymark/internal/logger"
	"github.com/julianstephens/daymark/internal/models"
	"github.com/julianstephens/daymark/internal/reminder"
	"github.com/julianstephens/daymark/internal/scheduler"
	"github.com/julianstephens/daymark/internal/tracker"
	"github.com/julianstephens/daymark/internal/tui/components/tasklist"
)

type resetTickMsg time.Time

type resetDoneMsg struct {
	marker *models.HistoryMarker
	err    error
}

func (m Model) runReset() tea.Cmd {
	manager := m.manager
	return func() tea.Msg {
		marker, err := manager.RunDailyResetAt(manager.Now())
		return resetDoneMsg{marker: marker, err: err}
	}
}

// scheduleResetCheck wakes the model shortly after midnight, or every
// ResetCheckInterval, whichever comes first.
func (m Model) scheduleResetCheck() tea.Cmd {
	wait := scheduler.DayBoundary(m.manager.Now(), m.manager.Location(), constants.ResetCheckInterval)
	return tea.Tick(wait, func(t time.Time) tea.Msg {
		return resetTickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.taskList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil
	case resetTickMsg:
		return m, tea.Batch(m.runReset(), m.scheduleResetCheck())
	case resetDoneMsg:
		switch {
		case errors.Is(msg.err, tracker.ErrResetInProgress):
		case msg.err != nil:
			m.setError("Daily reset failed", msg.err)
		case msg.marker != nil:
			m.status = fmt.Sprintf("New day: archived %d/%d completed", msg.marker.CompletedTasks, msg.marker.TotalTasks)
			m.afterMutation()
		}
		return m, nil
	}

	switch m.state {
	case StateTaskForm:
		return m.updateTaskForm(msg)
	case StateReminderForm:
		return m.updateReminderForm(msg)
	case StateConfirmDelete, StateConfirmClearTasks, StateConfirmClearHistory:
		return m.updateConfirm(msg)
	}

	switch msg := msg.(type) {
	case tasklist.AddTaskMsg:
		return m.openTaskForm(nil)
	case tasklist.EditTaskMsg:
		task := msg.Task
		return m.openTaskForm(&task)
	case tasklist.ToggleTaskMsg:
		if _, err := m.manager.SetComplete(msg.ID, msg.Complete); err != nil {
			m.setError("Failed to update task", err)
		}
		m.afterMutation()
		return m, nil
	case tasklist.DeleteTaskMsg:
		m.taskToDelete = msg.ID
		m.confirm(StateConfirmDelete)
		return m, nil
	case tasklist.ShareTaskMsg:
		m.status = m.share(msg.Task)
		return m, nil
	case tea.KeyMsg:
		if m.state == StateTasks && m.taskList.Filtering() {
			break
		}
		if handled, cmd := m.handleGlobalKeys(msg); handled {
			return m, cmd
		}
		if handled, cmd := m.handleTabKeys(msg); handled {
			return m, cmd
		}
	}

	if m.state == StateTasks {
		var cmd tea.Cmd
		m.taskList, cmd = m.taskList.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleGlobalKeys(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return true, tea.Quit
	case key.Matches(msg, m.keys.Tab):
		m.state = (m.state + 1) % SessionState(len(tabTitles))
		return true, nil
	case key.Matches(msg, m.keys.ShiftTab):
		m.state = (m.state + SessionState(len(tabTitles)) - 1) % SessionState(len(tabTitles))
		return true, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return true, nil
	case key.Matches(msg, m.keys.Refresh):
		m.status = ""
		m.reload()
		return true, m.runReset()
	}
	return false, nil
}

func (m *Model) handleTabKeys(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch m.state {
	case StateTasks:
		switch {
		case key.Matches(msg, m.keys.CompleteAll):
			if err := m.manager.CompleteAllTasks(); err != nil {
				m.setError("Failed to complete tasks", err)
			}
			m.afterMutation()
			return true, nil
		case key.Matches(msg, m.keys.ClearTasks):
			m.confirm(StateConfirmClearTasks)
			return true, nil
		}
	case StateProgress:
		if key.Matches(msg, m.keys.ClearHistory) {
			m.confirm(StateConfirmClearHistory)
			return true, nil
		}
	case StateReminder:
		switch {
		case key.Matches(msg, m.keys.EditReminder):
			model, cmd := m.openReminderForm()
			*m = model
			return true, cmd
		case key.Matches(msg, m.keys.ToggleNotify):
			settings, err := m.manager.UpdateSettings(func(s *models.Settings) error {
				s.NotifyEnabled = !s.NotifyEnabled
				return nil
			})
			if err != nil {
				m.setError("Failed to update reminder", err)
				return true, nil
			}
			m.settings = settings
			return true, nil
		}
	}
	return false, nil
}

func (m *Model) confirm(state SessionState) {
	m.previousState = m.state
	m.state = state
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		var err error
		switch m.state {
		case StateConfirmDelete:
			err = m.manager.DeleteTask(m.taskToDelete)
		case StateConfirmClearTasks:
			err = m.manager.DeleteAllTasks()
		case StateConfirmClearHistory:
			err = m.manager.DeleteAllMarkers()
		}
		if err != nil {
			m.setError("Delete failed", err)
		}
		m.taskToDelete = ""
		m.state = m.previousState
		m.afterMutation()
	case "n", "N", "esc", "q":
		m.taskToDelete = ""
		m.state = m.previousState
	}
	return m, nil
}

func (m Model) openTaskForm(task *models.Task) (tea.Model, tea.Cmd) {
	m.taskForm = &TaskFormModel{}
	m.editingTaskID = ""
	title := "New Task"
	if task != nil {
		m.editingTaskID = task.ID
		m.taskForm.Title = task.Title
		m.taskForm.Notes = task.NotesOrEmpty()
		m.taskForm.Done = task.IsComplete
		title = "Edit Task"
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&m.taskForm.Title),
			huh.NewText().
				Title("Notes").
				Description("Optional").
				Value(&m.taskForm.Notes),
			huh.NewConfirm().
				Title("Done?").
				Value(&m.taskForm.Done),
		).Title(title),
	)
	m.formError = ""
	m.confirm(StateTaskForm)
	return m, m.form.Init()
}

func (m Model) updateTaskForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.saveTaskForm(); err != nil {
			logger.Error("Failed to save task", "error", err)
			m.formError = fmt.Sprintf("Failed to save task: %v", err)
			m.form.State = huh.StateNormal
			return m, cmd
		}
		m.formError = ""
		m.state = m.previousState
		m.afterMutation()
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, cmd
}

func (m Model) saveTaskForm() error {
	var notes *string
	if m.taskForm.Notes != "" {
		n := m.taskForm.Notes
		notes = &n
	}

	if m.editingTaskID == "" {
		_, err := m.manager.CreateTask(m.taskForm.Title, notes, time.Time{}, m.taskForm.Done)
		return err
	}

	update := models.TaskUpdate{
		Title:      &m.taskForm.Title,
		Notes:      notes,
		ClearNotes: notes == nil,
		IsComplete: &m.taskForm.Done,
	}
	_, err := m.manager.UpdateTask(m.editingTaskID, update)
	return err
}

func (m Model) openReminderForm() (Model, tea.Cmd) {
	schedule, enabled := reminder.FromSettings(m.settings)
	m.reminderForm = &ReminderFormModel{Time: schedule.String(), Enabled: enabled}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Reminder time").
				Description("HH:MM, 24-hour").
				Value(&m.reminderForm.Time).
				Validate(func(s string) error {
					_, err := reminder.Parse(s)
					return err
				}),
			huh.NewConfirm().
				Title("Remind me every day?").
				Value(&m.reminderForm.Enabled),
		).Title("Daily Reminder"),
	)
	m.formError = ""
	m.confirm(StateReminderForm)
	return m, m.form.Init()
}

func (m Model) updateReminderForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = m.previousState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.saveReminderForm(); err != nil {
			m.formError = fmt.Sprintf("Failed to save reminder: %v", err)
			m.form.State = huh.StateNormal
			return m, cmd
		}
		m.formError = ""
		m.state = m.previousState
	case huh.StateAborted:
		m.state = m.previousState
	}
	return m, cmd
}

func (m *Model) saveReminderForm() error {
	schedule, err := reminder.Parse(m.reminderForm.Time)
	if err != nil {
		return err
	}
	enabled := m.reminderForm.Enabled
	settings, err := m.manager.UpdateSettings(func(s *models.Settings) error {
		s.NotificationHour = schedule.Hour
		s.NotificationMinute = schedule.Minute
		s.NotifyEnabled = enabled
		return nil
	})
	if err != nil {
		return err
	}
	m.settings = settings
	return nil
}

// share copies the task's status line to the clipboard when one is available.
func (m Model) share(task models.Task) string {
	text := task.ShareText()
	if err := clipboard.WriteAll(text); err != nil {
		logger.Debug("Clipboard unavailable", "error", err)
		return text
	}
	return text + " (copied)"
}
