package history

import (
	"errors"

	"github.com/julianstephens/daymark/internal/cli"
	"github.com/julianstephens/daymark/internal/tracker"
)

type ResetCmd struct{}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	marker, err := ctx.Manager.RunDailyResetAt(ctx.Manager.Now())
	if errors.Is(err, tracker.ErrResetInProgress) {
		ctx.Println("A daily reset is already running.")
		return nil
	}
	if err != nil {
		return err
	}
	if marker == nil {
		ctx.Println("Already reset today. Nothing to do.")
		return nil
	}

	ctx.TasksChanged()
	ctx.Printf("Archived %d/%d complete. All tasks cleared for the new day.\n",
		marker.CompletedTasks, marker.TotalTasks)
	return nil
}
