package tracker

import (
	"time"

	"github.com/julianstephens/daymark/internal/models"
)

// CreateTask stores a new task under a fresh id. A zero creationDate means now.
func (m *Manager) CreateTask(title string, notes *string, creationDate time.Time, isComplete bool) (models.Task, error) {
	if creationDate.IsZero() {
		creationDate = m.now()
	}
	task := models.Task{
		ID:           m.newID(),
		Title:        title,
		CreationDate: creationDate,
		IsComplete:   isComplete,
	}
	if notes != nil {
		n := *notes
		task.Notes = &n
	}

	err := m.do("create task", func() error {
		return m.store.AddTask(task)
	})
	if err != nil {
		return models.Task{}, err
	}
	return task.Clone(), nil
}

// ListTasks returns every task ordered by creation date.
func (m *Manager) ListTasks() ([]models.Task, error) {
	var tasks []models.Task
	err := m.do("list tasks", func() error {
		var err error
		tasks, err = m.store.GetAllTasks()
		return err
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (m *Manager) GetTask(id string) (models.Task, error) {
	var task models.Task
	err := m.do("get task", func() error {
		var err error
		task, err = m.store.GetTask(id)
		return err
	})
	return task, err
}

// UpdateTask applies the non-nil fields of update. CreationDate and ID never change.
func (m *Manager) UpdateTask(id string, update models.TaskUpdate) (models.Task, error) {
	var task models.Task
	err := m.do("update task", func() error {
		current, err := m.store.GetTask(id)
		if err != nil {
			return err
		}
		if update.Empty() {
			task = current
			return nil
		}
		next := update.Apply(current)
		if err := m.store.UpdateTask(next); err != nil {
			return err
		}
		task = next
		return nil
	})
	return task, err
}

func (m *Manager) SetComplete(id string, complete bool) (models.Task, error) {
	return m.UpdateTask(id, models.TaskUpdate{IsComplete: &complete})
}

// DeleteTask removes a task. Deleting an unknown id is not an error.
func (m *Manager) DeleteTask(id string) error {
	return m.do("delete task", func() error {
		return m.store.DeleteTask(id)
	})
}

func (m *Manager) DeleteAllTasks() error {
	return m.do("delete all tasks", func() error {
		return m.store.DeleteAllTasks()
	})
}

func (m *Manager) CompleteAllTasks() error {
	return m.do("complete all tasks", func() error {
		return m.store.SetAllTasksComplete(true)
	})
}
