// Package widget produces the small remaining-tasks badge shown outside the
// main UI: an hourly timeline for status-bar widgets and push refreshers
// that update external surfaces after every task change.
package widget

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/daymark/internal/constants"
	"github.com/julianstephens/daymark/internal/logger"
	"github.com/julianstephens/daymark/internal/notifier"
)

// Entry is one point on the widget timeline.
type Entry struct {
	Date           time.Time `json:"date"`
	RemainingTasks int       `json:"remaining_tasks"`
}

// Timeline returns TimelineEntries hourly entries starting at now, all
// carrying the current remaining count.
func Timeline(now time.Time, remaining int) []Entry {
	entries := make([]Entry, 0, constants.TimelineEntries)
	for i := 0; i < constants.TimelineEntries; i++ {
		entries = append(entries, Entry{
			Date:           now.Add(time.Duration(i) * constants.TimelineStep),
			RemainingTasks: remaining,
		})
	}
	return entries
}

// Placeholder is shown while real data is loading.
func Placeholder() Entry {
	return Entry{Date: time.Now(), RemainingTasks: constants.WidgetPlaceholderRemaining}
}

// Badge renders the remaining count as a short label.
func Badge(remaining int) string {
	switch remaining {
	case 0:
		return "All tasks done"
	case 1:
		return "1 task remaining"
	default:
		return fmt.Sprintf("%d tasks remaining", remaining)
	}
}

// Refresher pushes the latest remaining count to an external surface.
// Refresh must not block the caller on failures.
type Refresher interface {
	Refresh(remaining int)
}

type NopRefresher struct{}

func (NopRefresher) Refresh(int) {}

// NotifierRefresher pops the badge up through the tray app.
type NotifierRefresher struct {
	Sender notifier.Sender
}

func (r NotifierRefresher) Refresh(remaining int) {
	if r.Sender == nil {
		return
	}
	if err := r.Sender.Notify(constants.AppName, Badge(remaining)); err != nil {
		logger.Debug("Widget refresh through tray failed", "error", err)
	}
}

// Status is the document written by FileRefresher.
type Status struct {
	Remaining int       `json:"remaining"`
	Badge     string    `json:"badge"`
	UpdatedAt time.Time `json:"updated_at"`
	Timeline  []Entry   `json:"timeline"`
}

// FileRefresher writes a JSON status file that status-bar widgets poll.
type FileRefresher struct {
	Path string
	Now  func() time.Time
}

func NewFileRefresher(configDir string) *FileRefresher {
	return &FileRefresher{Path: filepath.Join(configDir, constants.WidgetStatusFileName), Now: time.Now}
}

func (r *FileRefresher) Refresh(remaining int) {
	if err := r.Write(remaining); err != nil {
		logger.Warn("Failed to write widget status", "path", r.Path, "error", err)
	}
}

// Write replaces the status file atomically.
func (r *FileRefresher) Write(remaining int) error {
	now := time.Now()
	if r.Now != nil {
		now = r.Now()
	}
	status := Status{
		Remaining: remaining,
		Badge:     Badge(remaining),
		UpdatedAt: now,
		Timeline:  Timeline(now, remaining),
	}

	data, err := json.MarshalIndent(status, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(r.Path), 0700); err != nil {
		return err
	}

	tmp := r.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, r.Path)
}

// ReadStatus loads a status file written by FileRefresher.
func ReadStatus(path string) (Status, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Status{}, err
	}
	var status Status
	if err := json.Unmarshal(data, &status); err != nil {
		return Status{}, fmt.Errorf("failed to parse widget status: %w", err)
	}
	return status, nil
}

// Multi fans a refresh out to several refreshers.
type Multi []Refresher

func (m Multi) Refresh(remaining int) {
	for _, r := range m {
		r.Refresh(remaining)
	}
}
