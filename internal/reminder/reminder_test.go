package reminder

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/daymark/internal/constants"
	dmerrors "github.com/julianstephens/daymark/internal/errors"
	"github.com/julianstephens/daymark/internal/models"
)

type recordingSender struct {
	titles []string
	bodies []string
	err    error
}

func (r *recordingSender) Notify(title, text string) error {
	if r.err != nil {
		return r.err
	}
	r.titles = append(r.titles, title)
	r.bodies = append(r.bodies, text)
	return nil
}

func TestParseAndString(t *testing.T) {
	s, err := Parse("21:05")
	if err != nil {
		t.Fatal(err)
	}
	if s != (Schedule{Hour: 21, Minute: 5}) || s.String() != "21:05" {
		t.Errorf("Parse() = %+v (%s)", s, s)
	}
	if _, err := Parse("25:00"); !errors.Is(err, dmerrors.ErrInvalidArgument) {
		t.Errorf("Parse(25:00) error = %v, want ErrInvalidArgument", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		s       Schedule
		wantErr bool
	}{
		{Schedule{0, 0}, false},
		{Schedule{23, 59}, false},
		{Schedule{24, 0}, true},
		{Schedule{-1, 0}, true},
		{Schedule{9, 60}, true},
	}
	for _, tt := range tests {
		t.Run(tt.s.String(), func(t *testing.T) {
			if err := tt.s.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNext(t *testing.T) {
	loc := time.UTC
	s := Schedule{Hour: 9, Minute: 0}

	before := time.Date(2024, 4, 25, 8, 0, 0, 0, loc)
	if got := s.Next(before, loc); !got.Equal(time.Date(2024, 4, 25, 9, 0, 0, 0, loc)) {
		t.Errorf("Next(before) = %v", got)
	}

	exactly := time.Date(2024, 4, 25, 9, 0, 0, 0, loc)
	if got := s.Next(exactly, loc); !got.Equal(time.Date(2024, 4, 26, 9, 0, 0, 0, loc)) {
		t.Errorf("Next(exactly) = %v", got)
	}

	endOfMonth := time.Date(2024, 4, 30, 22, 0, 0, 0, loc)
	if got := s.Next(endOfMonth, loc); !got.Equal(time.Date(2024, 5, 1, 9, 0, 0, 0, loc)) {
		t.Errorf("Next(end of month) = %v", got)
	}
}

func TestDue(t *testing.T) {
	loc := time.UTC
	s := Schedule{Hour: 9, Minute: 30}
	day := func(h, m int) time.Time { return time.Date(2024, 4, 25, h, m, 0, 0, loc) }

	if s.Due(day(9, 0), time.Time{}, loc) {
		t.Error("due before reminder time")
	}
	if !s.Due(day(9, 30), time.Time{}, loc) {
		t.Error("not due at reminder time")
	}
	if s.Due(day(12, 0), day(9, 31), loc) {
		t.Error("due again after being sent today")
	}
	if !s.Due(day(12, 0), day(9, 31).AddDate(0, 0, -1), loc) {
		t.Error("not due when last sent yesterday")
	}
}

func TestDispatcher(t *testing.T) {
	sender := &recordingSender{}
	d := NewDispatcher(sender)
	settings := models.Settings{NotificationHour: 9, NotificationMinute: 0, NotifyEnabled: true, Timezone: "UTC"}
	at := func(h int) time.Time { return time.Date(2024, 4, 25, h, 0, 0, 0, time.UTC) }

	if sent, _ := d.Tick(at(8), settings); sent {
		t.Error("sent before reminder time")
	}
	if sent, err := d.Tick(at(9), settings); !sent || err != nil {
		t.Fatalf("Tick(9) = %v, %v", sent, err)
	}
	if sent, _ := d.Tick(at(10), settings); sent {
		t.Error("sent twice in one day")
	}
	if sent, _ := d.Tick(at(9).AddDate(0, 0, 1), settings); !sent {
		t.Error("not sent next day")
	}

	if len(sender.titles) != 2 || sender.titles[0] != constants.ReminderTitle || sender.bodies[0] != constants.ReminderBody {
		t.Errorf("sent = %v / %v", sender.titles, sender.bodies)
	}

	settings.NotifyEnabled = false
	if sent, _ := d.Tick(at(9).AddDate(0, 0, 2), settings); sent {
		t.Error("sent while disabled")
	}
}

func TestDispatcherRetriesAfterFailure(t *testing.T) {
	sender := &recordingSender{err: errors.New("tray down")}
	d := NewDispatcher(sender)
	settings := models.Settings{NotificationHour: 9, NotifyEnabled: true, Timezone: "UTC"}
	now := time.Date(2024, 4, 25, 9, 5, 0, 0, time.UTC)

	if _, err := d.Tick(now, settings); err == nil {
		t.Fatal("Tick() should surface sender errors")
	}
	sender.err = nil
	if sent, err := d.Tick(now.Add(time.Minute), settings); !sent || err != nil {
		t.Errorf("Tick() after recovery = %v, %v", sent, err)
	}
}
