package settings

import (
	"fmt"

	"github.com/julianstephens/daymark/internal/cli"
	"github.com/julianstephens/daymark/internal/constants"
	dmerrors "github.com/julianstephens/daymark/internal/errors"
	"github.com/julianstephens/daymark/internal/models"
	"github.com/julianstephens/daymark/internal/reminder"
	"github.com/julianstephens/daymark/internal/utils"
)

type SettingsCmd struct {
	Show   SettingsShowCmd   `cmd:"" default:"withargs" help:"Show or update general settings."`
	Notify SettingsNotifyCmd `cmd:"" help:"Configure the daily reminder."`
}

type SettingsShowCmd struct {
	List     bool   `help:"List current settings."`
	Timezone string `help:"IANA timezone used for day boundaries, or 'Local'."`
}

func (c *SettingsShowCmd) Run(ctx *cli.Context) error {
	if c.Timezone != "" {
		if !utils.ValidateTimezone(c.Timezone) {
			return dmerrors.InvalidArgument("timezone", fmt.Sprintf("unknown timezone %q", c.Timezone))
		}
		if _, err := ctx.Manager.UpdateSettings(func(s *models.Settings) error {
			s.Timezone = c.Timezone
			return nil
		}); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		ctx.Println("Settings updated successfully.")
		if !c.List {
			return nil
		}
	}

	settings, err := ctx.Manager.Settings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if !c.List && c.Timezone == "" {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	schedule, enabled := reminder.FromSettings(settings)
	lastReset := settings.LastResetDate
	if lastReset == "" {
		lastReset = "never"
	}

	ctx.Println("Current Settings:")
	ctx.Printf("  Timezone:          %s\n", settings.Timezone)
	ctx.Printf("  Last Reset:        %s\n", lastReset)
	ctx.Println("\nReminder Settings:")
	ctx.Printf("  Reminder Enabled:  %v\n", enabled)
	ctx.Printf("  Reminder Time:     %s\n", schedule.String())
	return nil
}

type SettingsNotifyCmd struct {
	At    string `help:"Remind every day at this time (HH:MM) and switch reminders on."`
	Off   bool   `help:"Switch the daily reminder off, keeping its time."`
	Reset bool   `help:"Remove the reminder time and switch reminders off."`
}

func (c *SettingsNotifyCmd) Validate() error {
	set := 0
	for _, on := range []bool{c.At != "", c.Off, c.Reset} {
		if on {
			set++
		}
	}
	if set > 1 {
		return fmt.Errorf("use only one of --at, --off or --reset")
	}
	return nil
}

func (c *SettingsNotifyCmd) Run(ctx *cli.Context) error {
	var schedule reminder.Schedule
	if c.At != "" {
		var err error
		schedule, err = reminder.Parse(c.At)
		if err != nil {
			return err
		}
	}

	settings, err := ctx.Manager.UpdateSettings(func(s *models.Settings) error {
		switch {
		case c.At != "":
			s.NotificationHour = schedule.Hour
			s.NotificationMinute = schedule.Minute
			s.NotifyEnabled = true
		case c.Off:
			s.NotifyEnabled = false
		case c.Reset:
			s.NotificationHour = constants.DefaultNotificationHour
			s.NotificationMinute = constants.DefaultNotificationMinute
			s.NotifyEnabled = false
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save reminder: %w", err)
	}

	current, enabled := reminder.FromSettings(settings)
	if !enabled {
		ctx.Println("Daily reminder is off.")
		return nil
	}
	next := current.Next(ctx.Manager.Now(), ctx.Manager.Location())
	ctx.Printf("Daily reminder set for %s (next: %s).\n", current.String(), next.Format("Mon Jan 2 15:04"))
	return nil
}
