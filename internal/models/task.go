package models

import (
	"fmt"
	"time"
)

// Task is a single daily to-do item. IsComplete is cleared by the daily reset.
type Task struct {
	ID           string    `json:"id" yaml:"id"`
	Title        string    `json:"title" yaml:"title"`
	Notes        *string   `json:"notes,omitempty" yaml:"notes,omitempty"`
	CreationDate time.Time `json:"creation_date" yaml:"creation_date"`
	IsComplete   bool      `json:"is_complete" yaml:"is_complete"`
}

// TaskUpdate carries the user-editable fields of a task. Nil fields are left untouched.
type TaskUpdate struct {
	Title      *string
	Notes      *string
	ClearNotes bool
	IsComplete *bool
}

// Apply returns a copy of t with the update applied.
func (u TaskUpdate) Apply(t Task) Task {
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.ClearNotes {
		t.Notes = nil
	} else if u.Notes != nil {
		notes := *u.Notes
		t.Notes = &notes
	}
	if u.IsComplete != nil {
		t.IsComplete = *u.IsComplete
	}
	return t
}

// Empty reports whether the update would change nothing.
func (u TaskUpdate) Empty() bool {
	return u.Title == nil && u.Notes == nil && !u.ClearNotes && u.IsComplete == nil
}

// NotesOrEmpty returns the task notes, or "" when none are set.
func (t Task) NotesOrEmpty() string {
	if t.Notes == nil {
		return ""
	}
	return *t.Notes
}

// Status returns "complete" or "incomplete".
func (t Task) Status() string {
	if t.IsComplete {
		return "complete"
	}
	return "incomplete"
}

// ShareText is the plain-text status line used when sharing a task.
func (t Task) ShareText() string {
	return fmt.Sprintf("Task: %s is %s.", t.Title, t.Status())
}

// Clone returns a deep copy so callers never alias stored notes.
func (t Task) Clone() Task {
	if t.Notes != nil {
		notes := *t.Notes
		t.Notes = &notes
	}
	return t
}
