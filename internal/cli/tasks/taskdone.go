package tasks

import (
	"fmt"

	"github.com/julianstephens/daymark/internal/cli"
)

type TaskDoneCmd struct {
	ID string `arg:"" help:"Task ID to mark complete."`
}

func (c *TaskDoneCmd) Run(ctx *cli.Context) error {
	return setComplete(ctx, c.ID, true)
}

type TaskUndoCmd struct {
	ID string `arg:"" help:"Task ID to mark incomplete."`
}

func (c *TaskUndoCmd) Run(ctx *cli.Context) error {
	return setComplete(ctx, c.ID, false)
}

func setComplete(ctx *cli.Context, id string, complete bool) error {
	ctx.CatchUp()

	task, err := ctx.Manager.SetComplete(id, complete)
	if err != nil {
		return fmt.Errorf("failed to update task %s: %w", id, err)
	}
	ctx.TasksChanged()

	ctx.Printf("Marked %s: %s\n", task.Status(), task.Title)
	return nil
}

type TaskCompleteAllCmd struct{}

func (c *TaskCompleteAllCmd) Run(ctx *cli.Context) error {
	ctx.CatchUp()

	if err := ctx.Manager.CompleteAllTasks(); err != nil {
		return err
	}
	ctx.TasksChanged()

	ctx.Printf("Marked %d task(s) complete.\n", ctx.Manager.TotalCount())
	return nil
}
