package history

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/daymark/internal/cli"
	"github.com/julianstephens/daymark/internal/constants"
)

type HistoryListCmd struct {
	Order string `help:"Sort order by date (asc|desc)." enum:"asc,desc" default:"desc"`
	Limit int    `short:"n" help:"Show at most this many markers (0 for all)." default:"0"`
	JSON  bool   `help:"Print markers as JSON."`
}

func (c *HistoryListCmd) Run(ctx *cli.Context) error {
	markers, err := ctx.Manager.ListMarkers(constants.SortOrder(c.Order))
	if err != nil {
		return err
	}
	if c.Limit > 0 && len(markers) > c.Limit {
		markers = markers[:c.Limit]
	}

	if c.JSON {
		data, err := json.MarshalIndent(markers, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal history: %w", err)
		}
		ctx.Println(string(data))
		return nil
	}

	if len(markers) == 0 {
		ctx.Println("No history yet. Markers are recorded by the daily reset.")
		return nil
	}

	loc := ctx.Manager.Location()
	for _, m := range markers {
		ctx.Printf("%s  %d/%d complete  (%.0f%%)\n",
			m.Date.In(loc).Format(constants.DateFormat), m.CompletedTasks, m.TotalTasks, m.Rate()*100)
	}
	return nil
}

type HistoryClearCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HistoryClearCmd) Run(ctx *cli.Context) error {
	if !c.Yes && !cli.Confirm(ctx, "Clear all task history?") {
		ctx.Println("Cancelled.")
		return nil
	}
	if err := ctx.Manager.DeleteAllMarkers(); err != nil {
		return err
	}
	ctx.Println("Task history cleared.")
	return nil
}

// HistoryArchiveCmd records today's counts without clearing any task.
type HistoryArchiveCmd struct{}

func (c *HistoryArchiveCmd) Run(ctx *cli.Context) error {
	marker, err := ctx.Manager.ForceArchive()
	if err != nil {
		return err
	}
	ctx.Printf("Archived %d/%d complete for %s\n",
		marker.CompletedTasks, marker.TotalTasks, marker.Date.In(ctx.Manager.Location()).Format(constants.DateFormat))
	return nil
}
