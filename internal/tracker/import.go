package tracker

import (
	"fmt"

	"github.com/julianstephens/daymark/internal/constants"
	dmerrors "github.com/julianstephens/daymark/internal/errors"
	"github.com/julianstephens/daymark/internal/models"
)

// ImportResult counts what Import wrote and skipped.
type ImportResult struct {
	TasksAdded     int
	TasksSkipped   int
	MarkersAdded   int
	MarkersSkipped int
}

// Import adds tasks and markers that are not already stored, keeping their ids.
// With replace set, existing tasks and history are removed first. Every
// record is validated before anything is written.
func (m *Manager) Import(tasks []models.Task, markers []models.HistoryMarker, replace bool) (ImportResult, error) {
	for i, t := range tasks {
		if t.ID == "" {
			return ImportResult{}, dmerrors.InvalidArgument(fmt.Sprintf("tasks[%d].id", i), "must be set")
		}
		if t.CreationDate.IsZero() {
			return ImportResult{}, dmerrors.InvalidArgument(fmt.Sprintf("tasks[%d].creation_date", i), "must be set")
		}
	}
	for i, mk := range markers {
		if err := mk.Validate(); err != nil {
			return ImportResult{}, dmerrors.InvalidArgument(fmt.Sprintf("history[%d]", i), err.Error())
		}
	}

	var result ImportResult
	err := m.do("import", func() error {
		if replace {
			if err := m.store.DeleteAllTasks(); err != nil {
				return err
			}
			if err := m.store.DeleteAllHistoryMarkers(); err != nil {
				return err
			}
		}

		existingTasks, err := m.store.GetAllTasks()
		if err != nil {
			return err
		}
		haveTask := make(map[string]bool, len(existingTasks))
		for _, t := range existingTasks {
			haveTask[t.ID] = true
		}
		for _, t := range tasks {
			if haveTask[t.ID] {
				result.TasksSkipped++
				continue
			}
			if err := m.store.AddTask(t.Clone()); err != nil {
				return err
			}
			haveTask[t.ID] = true
			result.TasksAdded++
		}

		existingMarkers, err := m.store.GetHistoryMarkers(constants.SortAscending)
		if err != nil {
			return err
		}
		haveMarker := make(map[string]bool, len(existingMarkers))
		for _, mk := range existingMarkers {
			haveMarker[mk.ID] = true
		}
		for _, mk := range markers {
			if haveMarker[mk.ID] {
				result.MarkersSkipped++
				continue
			}
			if err := m.store.AddHistoryMarker(mk); err != nil {
				return err
			}
			haveMarker[mk.ID] = true
			result.MarkersAdded++
		}
		return nil
	})
	return result, err
}
