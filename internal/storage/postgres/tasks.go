package postgres

import (
	"database/sql"
	"errors"

	dmerrors "github.com/julianstephens/daymark/internal/errors"
	"github.com/julianstephens/daymark/internal/models"
)

const taskColumns = "id, title, notes, creation_date, is_complete"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (models.Task, error) {
	var t models.Task
	var notes sql.NullString
	if err := row.Scan(&t.ID, &t.Title, &notes, &t.CreationDate, &t.IsComplete); err != nil {
		return models.Task{}, err
	}
	if notes.Valid {
		t.Notes = &notes.String
	}
	return t, nil
}

func nullableNotes(t models.Task) sql.NullString {
	if t.Notes == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *t.Notes, Valid: true}
}

func (s *Store) AddTask(task models.Task) error {
	_, err := s.db.Exec(`INSERT INTO tasks (`+taskColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		task.ID, task.Title, nullableNotes(task), task.CreationDate.UTC(), task.IsComplete)
	return err
}

func (s *Store) GetTask(id string) (models.Task, error) {
	t, err := scanTask(s.db.QueryRow(`SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, dmerrors.NotFound("task", id)
	}
	return t, err
}

func (s *Store) GetAllTasks() ([]models.Task, error) {
	rows, err := s.db.Query(`SELECT ` + taskColumns + ` FROM tasks ORDER BY creation_date ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) UpdateTask(task models.Task) error {
	res, err := s.db.Exec(`UPDATE tasks SET title = $1, notes = $2, is_complete = $3 WHERE id = $4`,
		task.Title, nullableNotes(task), task.IsComplete, task.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return dmerrors.NotFound("task", task.ID)
	}
	return nil
}

func (s *Store) DeleteTask(id string) error {
	_, err := s.db.Exec(`DELETE FROM tasks WHERE id = $1`, id)
	return err
}

func (s *Store) DeleteAllTasks() error {
	_, err := s.db.Exec(`DELETE FROM tasks`)
	return err
}

func (s *Store) SetAllTasksComplete(complete bool) error {
	_, err := s.db.Exec(`UPDATE tasks SET is_complete = $1`, complete)
	return err
}
