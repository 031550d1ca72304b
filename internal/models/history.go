package models

import (
	"fmt"
	"time"
)

// HistoryMarker is an immutable snapshot of one day's completion counts.
type HistoryMarker struct {
	ID             string    `json:"id" yaml:"id"`
	Date           time.Time `json:"date" yaml:"date"`
	CompletedTasks int       `json:"completed_tasks" yaml:"completed_tasks"`
	TotalTasks     int       `json:"total_tasks" yaml:"total_tasks"`
}

// ValidateCounts checks 0 <= completed <= total.
func ValidateCounts(completed, total int) error {
	if completed < 0 {
		return fmt.Errorf("completed tasks must be non-negative, got %d", completed)
	}
	if total < 0 {
		return fmt.Errorf("total tasks must be non-negative, got %d", total)
	}
	if completed > total {
		return fmt.Errorf("completed tasks (%d) cannot exceed total tasks (%d)", completed, total)
	}
	return nil
}

func (m HistoryMarker) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("history marker ID is required")
	}
	if m.Date.IsZero() {
		return fmt.Errorf("history marker date is required")
	}
	return ValidateCounts(m.CompletedTasks, m.TotalTasks)
}

// Remaining is the number of tasks left undone on the archived day.
func (m HistoryMarker) Remaining() int {
	return m.TotalTasks - m.CompletedTasks
}

// Rate is the completion ratio in [0, 1]. A day with no tasks has rate 0.
func (m HistoryMarker) Rate() float64 {
	if m.TotalTasks == 0 {
		return 0
	}
	return float64(m.CompletedTasks) / float64(m.TotalTasks)
}
