package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/daymark/internal/constants"
	"github.com/julianstephens/daymark/internal/logger"
	"github.com/julianstephens/daymark/internal/models"
	"github.com/julianstephens/daymark/internal/tracker"
	"github.com/julianstephens/daymark/internal/tui/components/tasklist"
	"github.com/julianstephens/daymark/internal/widget"
)

type SessionState int

// Tab states come first so they double as tab indexes.
const (
	StateTasks SessionState = iota
	StateProgress
	StateReminder
	StateTaskForm
	StateReminderForm
	StateConfirmDelete
	StateConfirmClearTasks
	StateConfirmClearHistory
)

var tabTitles = []string{"Tasks", "Progress", "Reminder"}

func (s SessionState) isTab() bool {
	return int(s) < len(tabTitles)
}

type TaskFormModel struct {
	Title string
	Notes string
	Done  bool
}

type ReminderFormModel struct {
	Time    string
	Enabled bool
}

type Model struct {
	manager       *tracker.Manager
	refresher     widget.Refresher
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	taskList      tasklist.Model
	form          *huh.Form
	taskForm      *TaskFormModel
	reminderForm  *ReminderFormModel
	editingTaskID string // empty while adding
	taskToDelete  string
	summary       tracker.Summary
	markers       []models.HistoryMarker
	settings      models.Settings
	status        string
	formError     string
	quitting      bool
	width         int
	height        int
}

func NewModel(manager *tracker.Manager, refresher widget.Refresher) Model {
	if refresher == nil {
		refresher = widget.NopRefresher{}
	}
	m := Model{
		manager:   manager,
		refresher: refresher,
		state:     StateTasks,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		taskList:  tasklist.New(nil, 0, 0),
	}
	m.reload()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateTasks:
		list := tasklist.DefaultKeyMap()
		keys = append(keys, list.Add, list.Toggle, list.Edit, list.Delete)
	case StateProgress:
		keys = append(keys, m.keys.ClearHistory)
	case StateReminder:
		keys = append(keys, m.keys.EditReminder, m.keys.ToggleNotify)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh}

	var actions []key.Binding
	switch m.state {
	case StateTasks:
		list := tasklist.DefaultKeyMap()
		actions = []key.Binding{list.Add, list.Edit, list.Toggle, list.Delete, list.Share, m.keys.CompleteAll, m.keys.ClearTasks}
	case StateProgress:
		actions = []key.Binding{m.keys.ClearHistory}
	case StateReminder:
		actions = []key.Binding{m.keys.EditReminder, m.keys.ToggleNotify}
	}

	return [][]key.Binding{global, actions}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.runReset(), m.scheduleResetCheck())
}

// reload pulls tasks, counts, history and settings back out of the tracker.
func (m *Model) reload() {
	tasks, err := m.manager.ListTasks()
	if err != nil {
		m.setError("Failed to load tasks", err)
		tasks = nil
	}
	m.taskList.SetTasks(tasks)
	m.summary = m.manager.Snapshot()

	markers, err := m.manager.RecentMarkers(constants.HistoryChartDays)
	if err != nil {
		logger.Error("Failed to load history", "error", err)
		markers = nil
	}
	m.markers = markers

	settings, err := m.manager.Settings()
	if err != nil {
		logger.Error("Failed to load settings", "error", err)
		return
	}
	m.settings = settings
}

// afterMutation reloads and pushes the new remaining count to the widget surfaces.
func (m *Model) afterMutation() {
	m.reload()
	m.refresher.Refresh(m.summary.Remaining)
}

func (m *Model) setError(context string, err error) {
	logger.Error(context, "error", err)
	m.status = fmt.Sprintf("%s: %v", context, err)
}

// activeTab is the tab to highlight, including while a form or dialog is open.
func (m Model) activeTab() SessionState {
	if m.state.isTab() {
		return m.state
	}
	return m.previousState
}
