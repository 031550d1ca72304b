package system

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/daymark/internal/cli"
	"github.com/julianstephens/daymark/internal/storage/sqlite"
	"github.com/julianstephens/daymark/internal/tracker"
)

var fixedNow = time.Date(2024, 4, 26, 9, 30, 0, 0, time.UTC)

type recordingSender struct {
	titles []string
	bodies []string
}

func (r *recordingSender) Notify(title, text string) error {
	r.titles = append(r.titles, title)
	r.bodies = append(r.bodies, text)
	return nil
}

// newTestContext wires a context over an uninitialized SQLite store.
func newTestContext(t *testing.T) (*cli.Context, *bytes.Buffer, string) {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test.db")
	store := sqlite.NewStore(dbPath)
	t.Cleanup(func() { store.Close() })

	ctx := cli.NewContext(store, dir, tracker.Options{
		Now:         func() time.Time { return fixedNow },
		BeforeReset: func() error { return nil },
	})
	out := &bytes.Buffer{}
	ctx.Out = out
	ctx.Sender = &recordingSender{}
	return ctx, out, dbPath
}

// setupTestDB initializes the store with UTC settings already reset for fixedNow.
func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	ctx, out, _ := newTestContext(t)
	if err := ctx.Store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	settings.Timezone = "UTC"
	settings.LastResetDate = fixedNow.Format("2006-01-02")
	if err := ctx.Store.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}
	return ctx, out
}
