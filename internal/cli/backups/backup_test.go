package backups

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/daymark/internal/cli"
	"github.com/julianstephens/daymark/internal/storage/jsonfile"
	"github.com/julianstephens/daymark/internal/storage/sqlite"
	"github.com/julianstephens/daymark/internal/tracker"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	store := sqlite.NewStore(filepath.Join(dir, "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := cli.NewContext(store, dir, tracker.Options{})
	out := &bytes.Buffer{}
	ctx.Out = out
	return ctx, out
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No backups found") {
		t.Errorf("list output = %q", out.String())
	}

	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "1 total") {
		t.Errorf("list output = %q", out.String())
	}
}

func TestBackupRestore(t *testing.T) {
	ctx, _ := setupTestDB(t)

	if _, err := ctx.Manager.CreateTask("Keep me", nil, time.Time{}, false); err != nil {
		t.Fatal(err)
	}
	mgr, err := ctx.Backups()
	if err != nil {
		t.Fatal(err)
	}
	snapshot, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}
	if err := ctx.Manager.DeleteAllTasks(); err != nil {
		t.Fatal(err)
	}

	ctx.In = strings.NewReader("n\n")
	if err := (&BackupRestoreCmd{BackupFile: filepath.Base(snapshot)}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if ctx.Manager.TotalCount() != 0 {
		t.Fatal("declined restore should not change the database")
	}

	if err := (&BackupRestoreCmd{BackupFile: filepath.Base(snapshot), Yes: true}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if err := ctx.Store.Load(); err != nil {
		t.Fatalf("reload after restore failed: %v", err)
	}
	if ctx.Manager.TotalCount() != 1 {
		t.Errorf("restored task count = %d, want 1", ctx.Manager.TotalCount())
	}

	if err := (&BackupRestoreCmd{BackupFile: "missing.db", Yes: true}).Run(ctx); err == nil {
		t.Error("expected error for missing backup")
	}
}

func TestBackupRequiresSQLite(t *testing.T) {
	dir := t.TempDir()
	store := jsonfile.NewStore(filepath.Join(dir, "daymark.json"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	ctx := cli.NewContext(store, dir, tracker.Options{})

	if err := (&BackupCreateCmd{}).Run(ctx); err == nil {
		t.Error("expected error for non-SQLite storage")
	}
}
