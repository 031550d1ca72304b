package tracker

import (
	"time"

	dmerrors "github.com/julianstephens/daymark/internal/errors"
	"github.com/julianstephens/daymark/internal/logger"
	"github.com/julianstephens/daymark/internal/models"
	"github.com/julianstephens/daymark/internal/utils"
)

// ErrResetInProgress is returned when a reset is requested while another is running.
var ErrResetInProgress = dmerrors.ErrResetInProgress

// RunDailyReset archives yesterday's completion counts and clears every task,
// at most once per calendar day in the configured timezone.
func (m *Manager) RunDailyReset() error {
	_, err := m.RunDailyResetAt(m.now())
	return err
}

// RunDailyResetAt runs the reset as if the clock read now. It returns the new
// marker, or nil when the day has already been reset.
//
// Claiming the day, counting the tasks, the marker insert and the completion
// clear happen in one storage transaction, so processes sharing a store
// archive each day once. If it fails nothing changes and the next trigger
// retries the whole sequence.
func (m *Manager) RunDailyResetAt(now time.Time) (*models.HistoryMarker, error) {
	if !m.resetting.CompareAndSwap(false, true) {
		return nil, ErrResetInProgress
	}
	defer m.resetting.Store(false)

	due, today, err := m.resetDue(now)
	if err != nil {
		return nil, err
	}
	if !due {
		logger.Debug("Daily reset already done", "date", today)
		return nil, nil
	}

	if m.beforeReset != nil {
		if err := m.beforeReset(); err != nil {
			logger.Warn("Pre-reset hook failed", "error", err)
		}
	}

	var marker *models.HistoryMarker
	err = m.do("daily reset", func() error {
		stored, err := m.store.ArchiveDay(models.HistoryMarker{ID: m.newID(), Date: now}, today)
		if dmerrors.Is(err, dmerrors.ErrAlreadyReset) {
			// Another process got there first.
			logger.Debug("Daily reset already done elsewhere", "date", today)
			return nil
		}
		if err != nil {
			return err
		}
		marker = &stored
		return nil
	})
	if err != nil {
		logger.Error("Daily reset failed", "date", today, "error", err)
		return nil, err
	}

	if marker != nil {
		logger.Info("Daily reset complete", "date", today, "completed", marker.CompletedTasks, "total", marker.TotalTasks)
	}
	return marker, nil
}

func (m *Manager) resetDue(now time.Time) (bool, string, error) {
	settings, err := m.Settings()
	if err != nil {
		return false, "", err
	}
	today := utils.DayKey(now, locationOf(settings))
	return settings.LastResetDate != today, today, nil
}

// ForceArchive records a marker for the current counts without clearing any
// task or moving the reset date.
func (m *Manager) ForceArchive() (models.HistoryMarker, error) {
	var marker models.HistoryMarker
	err := m.do("force archive", func() error {
		tasks, err := m.store.GetAllTasks()
		if err != nil {
			return err
		}
		counts := summarize(tasks)
		marker = models.HistoryMarker{
			ID:             m.newID(),
			Date:           m.now(),
			CompletedTasks: counts.Completed,
			TotalTasks:     counts.Total,
		}
		return m.store.AddHistoryMarker(marker)
	})
	if err != nil {
		return models.HistoryMarker{}, err
	}
	return marker, nil
}
