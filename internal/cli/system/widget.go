package system

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/julianstephens/daymark/internal/cli"
	"github.com/julianstephens/daymark/internal/constants"
	"github.com/julianstephens/daymark/internal/logger"
	"github.com/julianstephens/daymark/internal/widget"
)

// WidgetCmd prints the remaining-tasks badge for status bars and scripts.
type WidgetCmd struct {
	Timeline bool `help:"Print the hourly timeline instead of a single badge."`
	JSON     bool `help:"Output as JSON." name:"json"`
	Cached   bool `help:"Read the last status file instead of the database."`
}

func (c *WidgetCmd) Run(ctx *cli.Context) error {
	remaining, err := c.remaining(ctx)
	if err != nil {
		logger.Warn("Showing placeholder badge", "error", err)
		remaining = widget.Placeholder().RemainingTasks
	}

	if c.Timeline {
		entries := widget.Timeline(ctx.Manager.Now(), remaining)
		if c.JSON {
			return printJSON(ctx, entries)
		}
		loc := ctx.Manager.Location()
		for _, e := range entries {
			ctx.Printf("%s  %s\n", e.Date.In(loc).Format("15:04"), widget.Badge(e.RemainingTasks))
		}
		return nil
	}

	if c.JSON {
		return printJSON(ctx, widget.Entry{Date: ctx.Manager.Now(), RemainingTasks: remaining})
	}
	ctx.Println(widget.Badge(remaining))
	return nil
}

func (c *WidgetCmd) remaining(ctx *cli.Context) (int, error) {
	if c.Cached {
		status, err := widget.ReadStatus(filepath.Join(ctx.ConfigDir, constants.WidgetStatusFileName))
		if err != nil {
			return 0, err
		}
		return status.Remaining, nil
	}
	ctx.CatchUp()
	counts, err := ctx.Manager.Counts()
	if err != nil {
		return 0, err
	}
	return counts.Remaining, nil
}

func printJSON(ctx *cli.Context, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(data))
	return nil
}
