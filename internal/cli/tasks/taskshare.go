package tasks

import (
	"fmt"

	"github.com/julianstephens/daymark/internal/cli"
)

type TaskShareCmd struct {
	ID string `arg:"" help:"Task ID to share."`
}

func (c *TaskShareCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Manager.GetTask(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find task with ID %s: %w", c.ID, err)
	}
	ctx.Println(task.ShareText())
	return nil
}
