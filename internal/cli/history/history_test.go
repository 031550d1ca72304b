package history

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/daymark/internal/cli"
	"github.com/julianstephens/daymark/internal/models"
	"github.com/julianstephens/daymark/internal/storage/sqlite"
	"github.com/julianstephens/daymark/internal/tracker"
)

var fixedNow = time.Date(2024, 4, 26, 7, 30, 0, 0, time.UTC)

// setupTestDB returns a context whose store was last reset the day before fixedNow.
func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	store := sqlite.NewStore(filepath.Join(dir, "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	settings.Timezone = "UTC"
	settings.LastResetDate = "2024-04-25"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}

	ctx := cli.NewContext(store, dir, tracker.Options{
		Now:         func() time.Time { return fixedNow },
		BeforeReset: func() error { return nil },
	})
	out := &bytes.Buffer{}
	ctx.Out = out
	return ctx, out
}

func TestResetCmd(t *testing.T) {
	ctx, out := setupTestDB(t)

	for i, title := range []string{"Task1", "Task2", "Task3"} {
		if _, err := ctx.Manager.CreateTask(title, nil, time.Time{}, i == 0); err != nil {
			t.Fatal(err)
		}
	}

	if err := (&ResetCmd{}).Run(ctx); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if !strings.Contains(out.String(), "Archived 1/3") {
		t.Errorf("reset output = %q", out.String())
	}
	if ctx.Manager.CompletedCount() != 0 || ctx.Manager.TotalCount() != 3 {
		t.Error("reset should clear completion but keep tasks")
	}

	out.Reset()
	if err := (&ResetCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Already reset today") {
		t.Errorf("second reset output = %q", out.String())
	}

	markers, err := ctx.Manager.ListMarkers("")
	if err != nil {
		t.Fatal(err)
	}
	if len(markers) != 1 {
		t.Errorf("markers = %d, want 1", len(markers))
	}
}

func TestHistoryListCmd(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&HistoryListCmd{Order: "desc"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No history yet") {
		t.Errorf("empty history output = %q", out.String())
	}

	for i := 0; i < 3; i++ {
		date := fixedNow.AddDate(0, 0, -3+i)
		if _, err := ctx.Manager.AddMarker(date, i, 3); err != nil {
			t.Fatal(err)
		}
	}

	out.Reset()
	if err := (&HistoryListCmd{Order: "asc", JSON: true}).Run(ctx); err != nil {
		t.Fatalf("history list failed: %v", err)
	}
	var markers []models.HistoryMarker
	if err := json.Unmarshal(out.Bytes(), &markers); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(markers) != 3 {
		t.Fatalf("listed %d markers, want 3", len(markers))
	}
	if !markers[0].Date.Before(markers[2].Date) {
		t.Error("asc order should list oldest first")
	}

	out.Reset()
	if err := (&HistoryListCmd{Order: "desc", Limit: 1}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 1 || !strings.HasPrefix(lines[0], "2024-04-25") {
		t.Errorf("limited desc output = %q", out.String())
	}
}

func TestHistoryArchiveAndClear(t *testing.T) {
	ctx, _ := setupTestDB(t)

	if _, err := ctx.Manager.CreateTask("Read", nil, time.Time{}, true); err != nil {
		t.Fatal(err)
	}

	if err := (&HistoryArchiveCmd{}).Run(ctx); err != nil {
		t.Fatalf("archive failed: %v", err)
	}
	if ctx.Manager.CompletedCount() != 1 {
		t.Error("archive must not clear completion")
	}
	markers, _ := ctx.Manager.ListMarkers("")
	if len(markers) != 1 || markers[0].CompletedTasks != 1 {
		t.Fatalf("unexpected markers after archive: %+v", markers)
	}

	if err := (&HistoryClearCmd{Yes: true}).Run(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	markers, _ = ctx.Manager.ListMarkers("")
	if len(markers) != 0 {
		t.Errorf("markers after clear = %d, want 0", len(markers))
	}
}

func TestProgressCmd(t *testing.T) {
	ctx, out := setupTestDB(t)

	if _, err := ctx.Manager.CreateTask("Read", nil, time.Time{}, true); err != nil {
		t.Fatal(err)
	}
	if _, err := ctx.Manager.CreateTask("Walk", nil, time.Time{}, false); err != nil {
		t.Fatal(err)
	}

	// Progress catches up on the missed reset first.
	if err := (&ProgressCmd{Width: 40}).Run(ctx); err != nil {
		t.Fatalf("progress failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Today: 0 of 2 tasks complete") {
		t.Errorf("progress output missing counts: %q", got)
	}
	if !strings.Contains(got, "1/2") {
		t.Errorf("progress chart missing archived day: %q", got)
	}
}
