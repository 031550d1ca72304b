package sqlite

import (
	"fmt"

	"github.com/julianstephens/daymark/internal/constants"
	dmerrors "github.com/julianstephens/daymark/internal/errors"
	"github.com/julianstephens/daymark/internal/models"
)

func (s *Store) AddHistoryMarker(marker models.HistoryMarker) error {
	if err := marker.Validate(); err != nil {
		return err
	}
	_, err := s.db.Exec(`INSERT INTO history_markers (id, date, completed_tasks, total_tasks) VALUES (?, ?, ?, ?)`,
		marker.ID, formatTimestamp(marker.Date), marker.CompletedTasks, marker.TotalTasks)
	return err
}

func (s *Store) GetHistoryMarkers(order constants.SortOrder) ([]models.HistoryMarker, error) {
	direction := "DESC"
	if order == constants.SortAscending {
		direction = "ASC"
	}

	rows, err := s.db.Query(`SELECT id, date, completed_tasks, total_tasks FROM history_markers ORDER BY date ` + direction + `, id ` + direction)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	markers := []models.HistoryMarker{}
	for rows.Next() {
		var m models.HistoryMarker
		var date string
		if err := rows.Scan(&m.ID, &date, &m.CompletedTasks, &m.TotalTasks); err != nil {
			return nil, err
		}
		if m.Date, err = parseTimestamp(date); err != nil {
			return nil, fmt.Errorf("history marker %s has invalid date %q: %w", m.ID, date, err)
		}
		markers = append(markers, m)
	}

	return markers, rows.Err()
}

func (s *Store) DeleteAllHistoryMarkers() error {
	_, err := s.db.Exec(`DELETE FROM history_markers`)
	return err
}

// claimResetDate changes no row when resetDate is already recorded.
const claimResetDate = `
	INSERT INTO settings (key, value) VALUES (?, ?)
	ON CONFLICT (key) DO UPDATE SET value = excluded.value
	WHERE settings.value <> excluded.value
`

func (s *Store) ArchiveDay(marker models.HistoryMarker, resetDate string) (models.HistoryMarker, error) {
	if err := marker.Validate(); err != nil {
		return models.HistoryMarker{}, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return models.HistoryMarker{}, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(claimResetDate, constants.SettingLastResetDate, resetDate)
	if err != nil {
		return models.HistoryMarker{}, fmt.Errorf("failed to record reset date: %w", err)
	}
	claimed, err := res.RowsAffected()
	if err != nil {
		return models.HistoryMarker{}, err
	}
	if claimed == 0 {
		return models.HistoryMarker{}, dmerrors.ErrAlreadyReset
	}

	if err := tx.QueryRow(`SELECT COUNT(*), COALESCE(SUM(is_complete), 0) FROM tasks`).
		Scan(&marker.TotalTasks, &marker.CompletedTasks); err != nil {
		return models.HistoryMarker{}, fmt.Errorf("failed to count tasks: %w", err)
	}
	if _, err := tx.Exec(`INSERT INTO history_markers (id, date, completed_tasks, total_tasks) VALUES (?, ?, ?, ?)`,
		marker.ID, formatTimestamp(marker.Date), marker.CompletedTasks, marker.TotalTasks); err != nil {
		return models.HistoryMarker{}, fmt.Errorf("failed to insert history marker: %w", err)
	}
	if _, err := tx.Exec(`UPDATE tasks SET is_complete = 0`); err != nil {
		return models.HistoryMarker{}, fmt.Errorf("failed to clear task completion: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.HistoryMarker{}, err
	}
	return marker, nil
}
