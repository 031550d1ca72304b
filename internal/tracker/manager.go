// Package tracker owns the daily task list, its completion history and the
// once-per-day reset that moves one into the other.
//
// A Manager is the single point of access to a storage.Provider. Every call,
// reads included, runs while holding the Manager's lock, so background
// triggers and interactive commands never interleave inside the store.
package tracker

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	dmerrors "github.com/julianstephens/daymark/internal/errors"
	"github.com/julianstephens/daymark/internal/logger"
	"github.com/julianstephens/daymark/internal/models"
	"github.com/julianstephens/daymark/internal/storage"
	"github.com/julianstephens/daymark/internal/utils"
)

type Options struct {
	// Now overrides the clock. Defaults to time.Now.
	Now func() time.Time
	// NewID overrides id generation. Defaults to random UUIDs.
	NewID func() string
	// BeforeReset runs once a reset is known to be due, before anything is
	// archived. Errors are logged and never block the reset.
	BeforeReset func() error
}

type Manager struct {
	store storage.Provider

	mu        sync.Mutex
	resetting atomic.Bool

	now         func() time.Time
	newID       func() string
	beforeReset func() error
}

func New(store storage.Provider, opts Options) *Manager {
	m := &Manager{
		store:       store,
		now:         opts.Now,
		newID:       opts.NewID,
		beforeReset: opts.BeforeReset,
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.newID == nil {
		m.newID = func() string { return uuid.New().String() }
	}
	return m
}

// Store exposes the underlying provider for maintenance commands such as backup and doctor.
func (m *Manager) Store() storage.Provider {
	return m.store
}

// Now reads the manager's clock.
func (m *Manager) Now() time.Time {
	return m.now()
}

// do runs fn under the manager lock and maps raw provider errors into the storage taxonomy.
func (m *Manager) do(op string, fn func() error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return dmerrors.Storage(op, fn())
}

func (m *Manager) Settings() (models.Settings, error) {
	var settings models.Settings
	err := m.do("get settings", func() error {
		var err error
		settings, err = m.store.GetSettings()
		return err
	})
	return settings, err
}

// UpdateSettings loads the settings, lets fn edit them, and saves the result.
// Nothing is saved when fn returns an error.
func (m *Manager) UpdateSettings(fn func(*models.Settings) error) (models.Settings, error) {
	var settings models.Settings
	err := m.do("update settings", func() error {
		current, err := m.store.GetSettings()
		if err != nil {
			return err
		}
		if err := fn(&current); err != nil {
			return err
		}
		if err := m.store.SaveSettings(current); err != nil {
			return err
		}
		settings = current
		return nil
	})
	return settings, err
}

// Location resolves the configured timezone, falling back to the system zone.
func (m *Manager) Location() *time.Location {
	settings, err := m.Settings()
	if err != nil {
		logger.Warn("Falling back to local timezone", "error", err)
		return time.Local
	}
	return locationOf(settings)
}

func locationOf(settings models.Settings) *time.Location {
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		logger.Warn("Invalid timezone in settings, using local", "timezone", settings.Timezone, "error", err)
		return time.Local
	}
	return loc
}
