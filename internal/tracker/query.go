package tracker

import (
	"github.com/julianstephens/daymark/internal/logger"
	"github.com/julianstephens/daymark/internal/models"
)

// Query is the read-only view used by badges, widgets and progress screens.
// Failures are logged and reported as zero.
type Query interface {
	RemainingCount() int
	CompletedCount() int
	TotalCount() int
	Snapshot() Summary
}

var _ Query = (*Manager)(nil)

// Summary holds the counts of one scan. Completed + Remaining == Total.
type Summary struct {
	Total     int `json:"total" yaml:"total"`
	Completed int `json:"completed" yaml:"completed"`
	Remaining int `json:"remaining" yaml:"remaining"`
}

func summarize(tasks []models.Task) Summary {
	s := Summary{Total: len(tasks)}
	for _, t := range tasks {
		if t.IsComplete {
			s.Completed++
		}
	}
	s.Remaining = s.Total - s.Completed
	return s
}

// Counts scans every task. Counts are never cached.
func (m *Manager) Counts() (Summary, error) {
	var s Summary
	err := m.do("count tasks", func() error {
		tasks, err := m.store.GetAllTasks()
		if err != nil {
			return err
		}
		s = summarize(tasks)
		return nil
	})
	return s, err
}

func (m *Manager) Snapshot() Summary {
	s, err := m.Counts()
	if err != nil {
		logger.Error("Failed to count tasks", "error", err)
		return Summary{}
	}
	return s
}

func (m *Manager) RemainingCount() int {
	return m.Snapshot().Remaining
}

func (m *Manager) CompletedCount() int {
	return m.Snapshot().Completed
}

func (m *Manager) TotalCount() int {
	return m.Snapshot().Total
}
