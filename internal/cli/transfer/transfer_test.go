package transfer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/daymark/internal/cli"
	dmerrors "github.com/julianstephens/daymark/internal/errors"
	"github.com/julianstephens/daymark/internal/models"
	"github.com/julianstephens/daymark/internal/storage/jsonfile"
	"github.com/julianstephens/daymark/internal/storage/sqlite"
	"github.com/julianstephens/daymark/internal/tracker"
)

var fixedNow = time.Date(2024, 4, 26, 7, 30, 0, 0, time.UTC)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	store := sqlite.NewStore(filepath.Join(dir, "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	ctx := cli.NewContext(store, dir, tracker.Options{Now: func() time.Time { return fixedNow }})
	out := &bytes.Buffer{}
	ctx.Out = out
	return ctx, out
}

func seed(t *testing.T, ctx *cli.Context) {
	t.Helper()
	notes := "with notes"
	if _, err := ctx.Manager.CreateTask("Read", &notes, time.Time{}, true); err != nil {
		t.Fatal(err)
	}
	if _, err := ctx.Manager.CreateTask("Walk", nil, time.Time{}, false); err != nil {
		t.Fatal(err)
	}
	if _, err := ctx.Manager.AddMarker(fixedNow.AddDate(0, 0, -1), 2, 3); err != nil {
		t.Fatal(err)
	}
	if _, err := ctx.Manager.UpdateSettings(func(s *models.Settings) error {
		s.NotificationHour = 20
		s.NotifyEnabled = true
		s.Timezone = "Europe/London"
		return nil
	}); err != nil {
		t.Fatal(err)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	for _, ext := range []string{"yaml", "json"} {
		t.Run(ext, func(t *testing.T) {
			src, _ := setupTestDB(t)
			seed(t, src)

			file := filepath.Join(t.TempDir(), "export."+ext)
			if err := (&ExportCmd{Output: file, Settings: true}).Run(src); err != nil {
				t.Fatalf("export failed: %v", err)
			}

			dst, out := setupTestDB(t)
			before, _ := dst.Manager.Settings()
			if err := (&ImportCmd{File: file, Settings: true}).Run(dst); err != nil {
				t.Fatalf("import failed: %v", err)
			}
			if !strings.Contains(out.String(), "Imported 2 task(s) (0 skipped) and 1 history marker(s)") {
				t.Errorf("import output = %q", out.String())
			}

			tasks, _ := dst.Manager.ListTasks()
			if len(tasks) != 2 {
				t.Fatalf("imported %d tasks, want 2", len(tasks))
			}
			for _, task := range tasks {
				if task.Title == "Read" && (task.NotesOrEmpty() != "with notes" || !task.IsComplete) {
					t.Errorf("imported task lost fields: %+v", task)
				}
			}
			settings, _ := dst.Manager.Settings()
			if settings.NotificationHour != 20 || settings.Timezone != "Europe/London" {
				t.Errorf("settings not imported: %+v", settings)
			}
			if settings.LastResetDate != before.LastResetDate {
				t.Errorf("import changed LastResetDate to %q", settings.LastResetDate)
			}

			// Importing the same file again adds nothing.
			out.Reset()
			if err := (&ImportCmd{File: file}).Run(dst); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out.String(), "Imported 0 task(s) (2 skipped)") {
				t.Errorf("second import output = %q", out.String())
			}
		})
	}
}

func TestExportToStdout(t *testing.T) {
	ctx, out := setupTestDB(t)
	seed(t, ctx)

	if err := (&ExportCmd{Format: "json"}).Run(ctx); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(out.String(), `"title": "Walk"`) {
		t.Errorf("stdout export = %s", out.String())
	}

	if err := (&ExportCmd{Format: "toml"}).Run(ctx); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestImportReplaceIntoJSONStore(t *testing.T) {
	src, _ := setupTestDB(t)
	seed(t, src)
	file := filepath.Join(t.TempDir(), "export.yaml")
	if err := (&ExportCmd{Output: file}).Run(src); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	store := jsonfile.NewStore(filepath.Join(dir, "daymark.json"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	dst := cli.NewContext(store, dir, tracker.Options{Now: func() time.Time { return fixedNow }})
	dst.Out = &bytes.Buffer{}
	if _, err := dst.Manager.CreateTask("Old", nil, time.Time{}, false); err != nil {
		t.Fatal(err)
	}

	if err := (&ImportCmd{File: file, Replace: true, Yes: true}).Run(dst); err != nil {
		t.Fatalf("import --replace failed: %v", err)
	}
	tasks, _ := dst.Manager.ListTasks()
	if len(tasks) != 2 {
		t.Fatalf("tasks after replace = %d, want 2", len(tasks))
	}
	for _, task := range tasks {
		if task.Title == "Old" {
			t.Error("replace should drop existing tasks")
		}
	}
}

func TestImportRejectsBadSettings(t *testing.T) {
	ctx, _ := setupTestDB(t)

	file := filepath.Join(t.TempDir(), "bad.yaml")
	content := "version: 1\napp: daymark\nsettings:\n  notification_hour: 30\ntasks: []\nhistory: []\n"
	if err := os.WriteFile(file, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	err := (&ImportCmd{File: file, Settings: true}).Run(ctx)
	if !dmerrors.Is(err, dmerrors.ErrInvalidArgument) {
		t.Errorf("import error = %v, want ErrInvalidArgument", err)
	}
}
