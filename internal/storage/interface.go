package storage

import (
	"github.com/julianstephens/daymark/internal/constants"
	"github.com/julianstephens/daymark/internal/models"
)

// Provider is the persistence layer. It exclusively owns the task and history
// collections plus the settings key-value area.
//
// Lookups of unknown ids return an error matching errors.ErrNotFound. DeleteTask of
// an unknown id is a no-op.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Tasks
	AddTask(models.Task) error
	GetTask(id string) (models.Task, error)
	GetAllTasks() ([]models.Task, error)
	UpdateTask(models.Task) error
	DeleteTask(id string) error
	DeleteAllTasks() error
	SetAllTasksComplete(complete bool) error

	// History
	AddHistoryMarker(models.HistoryMarker) error
	GetHistoryMarkers(order constants.SortOrder) ([]models.HistoryMarker, error)
	DeleteAllHistoryMarkers() error

	// ArchiveDay records resetDate as the last reset date, stores a marker with
	// marker's id and date and the task counts as they stand, and clears every
	// task's completion flag, all in one transaction. It returns the stored
	// marker, or ErrAlreadyReset with nothing changed when resetDate is already
	// the last reset date.
	ArchiveDay(marker models.HistoryMarker, resetDate string) (models.HistoryMarker, error)

	// Utils
	GetConfigPath() string
}

// Migrator is implemented by backends with a versioned schema.
type Migrator interface {
	Migrate(logFn func(string)) (applied int, err error)
}

// SchemaChecker is implemented by backends that can verify their tables exist.
type SchemaChecker interface {
	CheckSchema() error
}
