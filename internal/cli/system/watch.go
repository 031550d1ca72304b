package system

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/daymark/internal/cli"
	"github.com/julianstephens/daymark/internal/constants"
	"github.com/julianstephens/daymark/internal/logger"
	"github.com/julianstephens/daymark/internal/reminder"
	"github.com/julianstephens/daymark/internal/scheduler"
	"github.com/julianstephens/daymark/internal/tracker"
	"github.com/julianstephens/daymark/internal/widget"
)

// WatchCmd keeps the daily reset and the reminder running in the foreground.
type WatchCmd struct {
	Once      bool `help:"Run the reset and reminder checks once and exit."`
	TrayBadge bool `help:"Also push the remaining-tasks badge to the tray app after each change."`
	Stderr    bool `help:"Log to stderr instead of the log file."`
}

func (c *WatchCmd) Run(ctx *cli.Context) error {
	if c.Stderr {
		logger.InitWriter(os.Stderr, false)
	}
	if c.TrayBadge {
		ctx.Refresher = widget.Multi{ctx.Refresher, widget.NotifierRefresher{Sender: ctx.Notifier()}}
	}
	dispatcher := reminder.NewDispatcher(ctx.Notifier())

	if c.Once {
		resetTick(ctx)
		reminderTick(ctx, dispatcher)
		return nil
	}

	sched := ctx.Scheduler
	if sched == nil {
		sched = scheduler.New()
	}

	if err := sched.RegisterTrigger("daily-reset", resetDelay(ctx), func(context.Context) {
		resetTick(ctx)
	}); err != nil {
		return err
	}
	if err := sched.RegisterPeriodicTrigger("reminder", constants.ReminderCheckInterval, func(context.Context) {
		reminderTick(ctx, dispatcher)
	}); err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Watching", "triggers", sched.Triggers())
	ctx.Println("Watching for the day to change. Press Ctrl+C to stop.")
	return sched.Run(runCtx)
}

// resetDelay waits for the next midnight, checking at least every
// ResetCheckInterval in case the clock or timezone changes.
func resetDelay(ctx *cli.Context) func() time.Duration {
	return func() time.Duration {
		return scheduler.DayBoundary(ctx.Manager.Now(), ctx.Manager.Location(), constants.ResetCheckInterval)
	}
}

func resetTick(ctx *cli.Context) {
	marker, err := ctx.Manager.RunDailyResetAt(ctx.Manager.Now())
	switch {
	case errors.Is(err, tracker.ErrResetInProgress):
	case err != nil:
		logger.Error("Daily reset failed", "error", err)
	case marker != nil:
		ctx.Printf("New day: archived %d/%d completed\n", marker.CompletedTasks, marker.TotalTasks)
		ctx.TasksChanged()
	}
}

func reminderTick(ctx *cli.Context, dispatcher *reminder.Dispatcher) {
	settings, err := ctx.Manager.Settings()
	if err != nil {
		logger.Error("Failed to load settings", "error", err)
		return
	}
	if _, err := dispatcher.Tick(ctx.Manager.Now(), settings); err != nil {
		logger.Warn("Reminder not delivered", "error", err)
	}
}
