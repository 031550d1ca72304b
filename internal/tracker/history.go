package tracker

import (
	"slices"
	"time"

	"github.com/julianstephens/daymark/internal/constants"
	dmerrors "github.com/julianstephens/daymark/internal/errors"
	"github.com/julianstephens/daymark/internal/models"
)

// AddMarker records a history entry. Counts must satisfy 0 <= completed <= total.
func (m *Manager) AddMarker(date time.Time, completed, total int) (models.HistoryMarker, error) {
	if err := models.ValidateCounts(completed, total); err != nil {
		return models.HistoryMarker{}, dmerrors.InvalidArgument("counts", err.Error())
	}
	if date.IsZero() {
		return models.HistoryMarker{}, dmerrors.InvalidArgument("date", "must be set")
	}

	marker := models.HistoryMarker{
		ID:             m.newID(),
		Date:           date,
		CompletedTasks: completed,
		TotalTasks:     total,
	}
	err := m.do("add history marker", func() error {
		return m.store.AddHistoryMarker(marker)
	})
	if err != nil {
		return models.HistoryMarker{}, err
	}
	return marker, nil
}

// ListMarkers returns history by date. An empty order means newest first.
func (m *Manager) ListMarkers(order constants.SortOrder) ([]models.HistoryMarker, error) {
	if order == "" {
		order = constants.SortDescending
	}
	if order != constants.SortAscending && order != constants.SortDescending {
		return nil, dmerrors.InvalidArgument("order", "must be asc or desc")
	}

	var markers []models.HistoryMarker
	err := m.do("list history markers", func() error {
		var err error
		markers, err = m.store.GetHistoryMarkers(order)
		return err
	})
	if err != nil {
		return nil, err
	}
	return markers, nil
}

// RecentMarkers returns up to n of the newest markers, oldest first.
func (m *Manager) RecentMarkers(n int) ([]models.HistoryMarker, error) {
	if n <= 0 {
		return []models.HistoryMarker{}, nil
	}
	markers, err := m.ListMarkers(constants.SortDescending)
	if err != nil {
		return nil, err
	}
	if len(markers) > n {
		markers = markers[:n]
	}
	slices.Reverse(markers)
	return markers, nil
}

func (m *Manager) DeleteAllMarkers() error {
	return m.do("delete all history markers", func() error {
		return m.store.DeleteAllHistoryMarkers()
	})
}
