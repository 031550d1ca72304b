package system

import (
	"fmt"

	"github.com/julianstephens/daymark/internal/cli"
	"github.com/julianstephens/daymark/internal/reminder"
)

// NotifyCmd sends the daily reminder right away, regardless of the schedule.
type NotifyCmd struct {
	DryRun bool `help:"Print the notification to stdout instead of sending it."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Manager.Settings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	title, body := reminder.Message()
	if c.DryRun {
		if !settings.NotifyEnabled {
			ctx.Println("Reminders are disabled in settings.")
		}
		ctx.Printf("[DryRun] %s: %s\n", title, body)
		return nil
	}

	if err := ctx.Notifier().Notify(title, body); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	ctx.Println("✓ Reminder sent")
	return nil
}
