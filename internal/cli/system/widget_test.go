package system

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/julianstephens/daymark/internal/constants"
	"github.com/julianstephens/daymark/internal/widget"
)

func TestWidgetCmd(t *testing.T) {
	ctx, out := setupTestDB(t)
	for _, title := range []string{"a", "b"} {
		if _, err := ctx.Manager.CreateTask(title, nil, fixedNow, false); err != nil {
			t.Fatal(err)
		}
	}

	if err := (&WidgetCmd{}).Run(ctx); err != nil {
		t.Fatalf("widget failed: %v", err)
	}
	if strings.TrimSpace(out.String()) != "2 tasks remaining" {
		t.Errorf("badge = %q", out.String())
	}

	out.Reset()
	if err := (&WidgetCmd{Timeline: true, JSON: true}).Run(ctx); err != nil {
		t.Fatalf("widget --timeline failed: %v", err)
	}
	var entries []widget.Entry
	if err := json.Unmarshal(out.Bytes(), &entries); err != nil {
		t.Fatalf("timeline is not JSON: %v", err)
	}
	if len(entries) != constants.TimelineEntries {
		t.Fatalf("got %d entries, want %d", len(entries), constants.TimelineEntries)
	}
	for _, e := range entries {
		if e.RemainingTasks != 2 {
			t.Errorf("entry %v remaining = %d, want 2", e.Date, e.RemainingTasks)
		}
	}
}

func TestWidgetCmd_Cached(t *testing.T) {
	ctx, out := setupTestDB(t)

	// Nothing written yet, so the placeholder shows.
	if err := (&WidgetCmd{Cached: true}).Run(ctx); err != nil {
		t.Fatalf("widget --cached failed: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != widget.Badge(constants.WidgetPlaceholderRemaining) {
		t.Errorf("badge = %q, want placeholder", got)
	}

	if _, err := ctx.Manager.CreateTask("a", nil, fixedNow, false); err != nil {
		t.Fatal(err)
	}
	ctx.TasksChanged()

	out.Reset()
	if err := (&WidgetCmd{Cached: true}).Run(ctx); err != nil {
		t.Fatalf("widget --cached failed: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != "1 task remaining" {
		t.Errorf("badge = %q, want 1 task remaining", got)
	}
}
