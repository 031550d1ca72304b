// Package jsonfile keeps the whole tracker state in a single JSON document.
// Every write produces a complete new document that replaces the old file
// by rename, so a failed write leaves the previous state untouched.
//
// The document is re-read on every call while holding a lock file next to
// it, so several processes can share one document without losing writes.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/julianstephens/daymark/internal/constants"
	dmerrors "github.com/julianstephens/daymark/internal/errors"
	"github.com/julianstephens/daymark/internal/models"
)

const documentVersion = 1

type document struct {
	Version  int                    `json:"version"`
	Settings models.Settings        `json:"settings"`
	Tasks    []models.Task          `json:"tasks"`
	History  []models.HistoryMarker `json:"history"`
}

func (d *document) taskIndex(id string) int {
	return slices.IndexFunc(d.Tasks, func(t models.Task) bool { return t.ID == id })
}

type Store struct {
	path   string
	lock   *flock.Flock
	mu     sync.Mutex
	loaded bool
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Init creates the document if it does not exist yet and loads it otherwise.
func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return s.locked(true, func() error {
		if _, err := os.Stat(s.path); err == nil {
			if _, err := s.readDocument(); err != nil {
				return err
			}
			s.loaded = true
			return nil
		}

		doc := &document{
			Version:  documentVersion,
			Settings: models.FirstRunSettings(time.Now()),
			Tasks:    []models.Task{},
			History:  []models.HistoryMarker{},
		}
		if err := s.write(doc); err != nil {
			return err
		}
		s.loaded = true
		return nil
	})
}

func (s *Store) Load() error {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'daymark init' first")
	}

	return s.locked(false, func() error {
		if _, err := s.readDocument(); err != nil {
			return err
		}
		s.loaded = true
		return nil
	})
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// locked runs fn holding the store mutex and the lock file, shared or exclusive.
func (s *Store) locked(exclusive bool, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	acquire := s.lock.RLock
	if exclusive {
		acquire = s.lock.Lock
	}
	if err := acquire(); err != nil {
		return fmt.Errorf("failed to lock storage: %w", err)
	}
	defer s.lock.Unlock()

	return fn()
}

func (s *Store) readDocument() (*document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("storage not initialized, run 'daymark init' first")
		}
		return nil, fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Version > documentVersion {
		return nil, fmt.Errorf("storage version %d is newer than supported version %d, please upgrade daymark", doc.Version, documentVersion)
	}
	if doc.Tasks == nil {
		doc.Tasks = []models.Task{}
	}
	if doc.History == nil {
		doc.History = []models.HistoryMarker{}
	}
	models.ApplyDefaultSettings(&doc.Settings)
	return doc, nil
}

func (s *Store) write(doc *document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

// mutate applies fn to the current document and writes the result back. If
// fn fails nothing is written.
func (s *Store) mutate(fn func(doc *document) error) error {
	return s.locked(true, func() error {
		if !s.loaded {
			return fmt.Errorf("storage not loaded")
		}
		doc, err := s.readDocument()
		if err != nil {
			return err
		}
		if err := fn(doc); err != nil {
			return err
		}
		return s.write(doc)
	})
}

func (s *Store) read(fn func(doc *document) error) error {
	return s.locked(false, func() error {
		if !s.loaded {
			return fmt.Errorf("storage not loaded")
		}
		doc, err := s.readDocument()
		if err != nil {
			return err
		}
		return fn(doc)
	})
}

func (s *Store) GetSettings() (models.Settings, error) {
	var settings models.Settings
	err := s.read(func(doc *document) error {
		settings = doc.Settings
		return nil
	})
	return settings, err
}

func (s *Store) SaveSettings(settings models.Settings) error {
	return s.mutate(func(doc *document) error {
		doc.Settings = settings
		return nil
	})
}

func (s *Store) AddTask(task models.Task) error {
	return s.mutate(func(doc *document) error {
		if doc.taskIndex(task.ID) >= 0 {
			return fmt.Errorf("task %s already exists", task.ID)
		}
		doc.Tasks = append(doc.Tasks, task.Clone())
		return nil
	})
}

func (s *Store) GetTask(id string) (models.Task, error) {
	var task models.Task
	err := s.read(func(doc *document) error {
		i := doc.taskIndex(id)
		if i < 0 {
			return dmerrors.NotFound("task", id)
		}
		task = doc.Tasks[i].Clone()
		return nil
	})
	return task, err
}

func (s *Store) GetAllTasks() ([]models.Task, error) {
	var tasks []models.Task
	err := s.read(func(doc *document) error {
		tasks = make([]models.Task, len(doc.Tasks))
		for i, t := range doc.Tasks {
			tasks[i] = t.Clone()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		if !tasks[i].CreationDate.Equal(tasks[j].CreationDate) {
			return tasks[i].CreationDate.Before(tasks[j].CreationDate)
		}
		return strings.Compare(tasks[i].ID, tasks[j].ID) < 0
	})
	return tasks, nil
}

func (s *Store) UpdateTask(task models.Task) error {
	return s.mutate(func(doc *document) error {
		i := doc.taskIndex(task.ID)
		if i < 0 {
			return dmerrors.NotFound("task", task.ID)
		}
		updated := task.Clone()
		updated.CreationDate = doc.Tasks[i].CreationDate
		doc.Tasks[i] = updated
		return nil
	})
}

func (s *Store) DeleteTask(id string) error {
	return s.mutate(func(doc *document) error {
		doc.Tasks = slices.DeleteFunc(doc.Tasks, func(t models.Task) bool { return t.ID == id })
		return nil
	})
}

func (s *Store) DeleteAllTasks() error {
	return s.mutate(func(doc *document) error {
		doc.Tasks = []models.Task{}
		return nil
	})
}

func (s *Store) SetAllTasksComplete(complete bool) error {
	return s.mutate(func(doc *document) error {
		for i := range doc.Tasks {
			doc.Tasks[i].IsComplete = complete
		}
		return nil
	})
}

func (s *Store) AddHistoryMarker(marker models.HistoryMarker) error {
	if err := marker.Validate(); err != nil {
		return err
	}
	return s.mutate(func(doc *document) error {
		return appendMarker(doc, marker)
	})
}

func appendMarker(doc *document, marker models.HistoryMarker) error {
	for _, m := range doc.History {
		if m.ID == marker.ID {
			return fmt.Errorf("history marker %s already exists", marker.ID)
		}
	}
	doc.History = append(doc.History, marker)
	return nil
}

func (s *Store) GetHistoryMarkers(order constants.SortOrder) ([]models.HistoryMarker, error) {
	var markers []models.HistoryMarker
	err := s.read(func(doc *document) error {
		markers = slices.Clone(doc.History)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if markers == nil {
		markers = []models.HistoryMarker{}
	}

	sort.SliceStable(markers, func(i, j int) bool {
		a, b := markers[i], markers[j]
		if order == constants.SortAscending {
			a, b = b, a
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		return a.ID > b.ID
	})
	return markers, nil
}

func (s *Store) DeleteAllHistoryMarkers() error {
	return s.mutate(func(doc *document) error {
		doc.History = []models.HistoryMarker{}
		return nil
	})
}

func (s *Store) ArchiveDay(marker models.HistoryMarker, resetDate string) (models.HistoryMarker, error) {
	if err := marker.Validate(); err != nil {
		return models.HistoryMarker{}, err
	}
	err := s.mutate(func(doc *document) error {
		if doc.Settings.LastResetDate == resetDate {
			return dmerrors.ErrAlreadyReset
		}
		marker.TotalTasks, marker.CompletedTasks = len(doc.Tasks), 0
		for i := range doc.Tasks {
			if doc.Tasks[i].IsComplete {
				marker.CompletedTasks++
			}
			doc.Tasks[i].IsComplete = false
		}
		if err := appendMarker(doc, marker); err != nil {
			return err
		}
		doc.Settings.LastResetDate = resetDate
		return nil
	})
	if err != nil {
		return models.HistoryMarker{}, err
	}
	return marker, nil
}
