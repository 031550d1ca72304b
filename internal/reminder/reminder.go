// Package reminder decides when the daily "do your tasks" reminder is due and sends it.
package reminder

import (
	"fmt"
	"time"

	"github.com/julianstephens/daymark/internal/constants"
	dmerrors "github.com/julianstephens/daymark/internal/errors"
	"github.com/julianstephens/daymark/internal/logger"
	"github.com/julianstephens/daymark/internal/models"
	"github.com/julianstephens/daymark/internal/notifier"
	"github.com/julianstephens/daymark/internal/utils"
)

// Schedule is a time of day at which the reminder fires, every day.
type Schedule struct {
	Hour   int
	Minute int
}

// FromSettings returns the schedule and whether reminders are switched on.
func FromSettings(settings models.Settings) (Schedule, bool) {
	return Schedule{Hour: settings.NotificationHour, Minute: settings.NotificationMinute}, settings.NotifyEnabled
}

// Parse reads HH:MM.
func Parse(value string) (Schedule, error) {
	hour, minute, err := utils.ParseClock(value)
	if err != nil {
		return Schedule{}, dmerrors.InvalidArgument("time", err.Error())
	}
	return Schedule{Hour: hour, Minute: minute}, nil
}

func (s Schedule) Validate() error {
	if err := models.ValidateReminderTime(s.Hour, s.Minute); err != nil {
		return dmerrors.InvalidArgument("time", err.Error())
	}
	return nil
}

func (s Schedule) String() string {
	return utils.FormatClock(s.Hour, s.Minute)
}

// At returns the fire time on the calendar day of t in loc.
func (s Schedule) At(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), s.Hour, s.Minute, 0, 0, loc)
}

// Next returns the first fire time strictly after now.
func (s Schedule) Next(now time.Time, loc *time.Location) time.Time {
	at := s.At(now, loc)
	if !at.After(now) {
		local := now.In(loc)
		at = time.Date(local.Year(), local.Month(), local.Day()+1, s.Hour, s.Minute, 0, 0, loc)
	}
	return at
}

// Due reports whether today's reminder time has passed and nothing was sent since.
// A zero lastSent means never sent.
func (s Schedule) Due(now, lastSent time.Time, loc *time.Location) bool {
	at := s.At(now, loc)
	if now.Before(at) {
		return false
	}
	return lastSent.IsZero() || lastSent.Before(at)
}

// Message returns the reminder title and body.
func Message() (string, string) {
	return constants.ReminderTitle, constants.ReminderBody
}

// Dispatcher sends the reminder at most once per day while the process lives.
type Dispatcher struct {
	sender   notifier.Sender
	lastSent time.Time
}

func NewDispatcher(sender notifier.Sender) *Dispatcher {
	return &Dispatcher{sender: sender}
}

// Tick sends the reminder if it is enabled and due. It returns true when a
// reminder was delivered.
func (d *Dispatcher) Tick(now time.Time, settings models.Settings) (bool, error) {
	schedule, enabled := FromSettings(settings)
	if !enabled {
		return false, nil
	}
	if err := schedule.Validate(); err != nil {
		return false, err
	}

	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		logger.Warn("Invalid timezone, using local", "timezone", settings.Timezone)
		loc = time.Local
	}
	if !schedule.Due(now, d.lastSent, loc) {
		return false, nil
	}

	title, body := Message()
	if err := d.sender.Notify(title, body); err != nil {
		return false, fmt.Errorf("failed to send reminder: %w", err)
	}
	d.lastSent = now
	logger.Info("Reminder sent", "at", schedule.String())
	return true, nil
}
