package widget

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/daymark/internal/constants"
)

type fakeSender struct {
	texts []string
	err   error
}

func (f *fakeSender) Notify(title, text string) error {
	f.texts = append(f.texts, text)
	return f.err
}

type countingRefresher struct{ last, calls int }

func (c *countingRefresher) Refresh(remaining int) {
	c.last = remaining
	c.calls++
}

func TestTimeline(t *testing.T) {
	now := time.Date(2024, 4, 25, 10, 15, 0, 0, time.UTC)
	entries := Timeline(now, 4)

	if len(entries) != constants.TimelineEntries {
		t.Fatalf("len(Timeline()) = %d, want %d", len(entries), constants.TimelineEntries)
	}
	for i, e := range entries {
		want := now.Add(time.Duration(i) * time.Hour)
		if !e.Date.Equal(want) {
			t.Errorf("entries[%d].Date = %v, want %v", i, e.Date, want)
		}
		if e.RemainingTasks != 4 {
			t.Errorf("entries[%d].RemainingTasks = %d, want 4", i, e.RemainingTasks)
		}
	}
}

func TestPlaceholder(t *testing.T) {
	if got := Placeholder().RemainingTasks; got != 3 {
		t.Errorf("Placeholder().RemainingTasks = %d, want 3", got)
	}
}

func TestBadge(t *testing.T) {
	tests := map[int]string{
		0: "All tasks done",
		1: "1 task remaining",
		5: "5 tasks remaining",
	}
	for n, want := range tests {
		if got := Badge(n); got != want {
			t.Errorf("Badge(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestNotifierRefresher(t *testing.T) {
	sender := &fakeSender{}
	NotifierRefresher{Sender: sender}.Refresh(2)
	if len(sender.texts) != 1 || sender.texts[0] != "2 tasks remaining" {
		t.Errorf("sent %v", sender.texts)
	}

	// Failures are swallowed.
	NotifierRefresher{Sender: &fakeSender{err: errors.New("down")}}.Refresh(1)
	NotifierRefresher{}.Refresh(1)
}

func TestFileRefresher(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 4, 25, 10, 0, 0, 0, time.UTC)
	r := NewFileRefresher(dir)
	r.Now = func() time.Time { return now }

	r.Refresh(3)
	status, err := ReadStatus(filepath.Join(dir, constants.WidgetStatusFileName))
	if err != nil {
		t.Fatalf("ReadStatus() error = %v", err)
	}
	if status.Remaining != 3 || status.Badge != "3 tasks remaining" || !status.UpdatedAt.Equal(now) {
		t.Errorf("status = %+v", status)
	}
	if len(status.Timeline) != constants.TimelineEntries {
		t.Errorf("len(status.Timeline) = %d", len(status.Timeline))
	}

	r.Refresh(0)
	status, _ = ReadStatus(r.Path)
	if status.Remaining != 0 {
		t.Errorf("status not replaced: %+v", status)
	}
}

func TestMulti(t *testing.T) {
	a, b := &countingRefresher{}, &countingRefresher{}
	Multi{a, NopRefresher{}, b}.Refresh(7)
	if a.last != 7 || b.last != 7 || a.calls != 1 || b.calls != 1 {
		t.Errorf("a=%+v b=%+v", a, b)
	}
}
