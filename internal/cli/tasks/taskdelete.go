package tasks

import (
	"fmt"

	"github.com/julianstephens/daymark/internal/cli"
)

type TaskDeleteCmd struct {
	ID string `arg:"" help:"Task ID to delete."`
}

func (c *TaskDeleteCmd) Run(ctx *cli.Context) error {
	task, err := ctx.Manager.GetTask(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find task with ID %s: %w", c.ID, err)
	}

	if err := ctx.Manager.DeleteTask(c.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	ctx.TasksChanged()

	ctx.Printf("Deleted task: %s (ID: %s)\n", task.Title, c.ID)
	return nil
}

type TaskClearCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *TaskClearCmd) Run(ctx *cli.Context) error {
	if !c.Yes && !cli.Confirm(ctx, "Delete every task? History is kept.") {
		ctx.Println("Cancelled.")
		return nil
	}

	count := ctx.Manager.TotalCount()
	if err := ctx.Manager.DeleteAllTasks(); err != nil {
		return err
	}
	ctx.TasksChanged()

	ctx.Printf("Deleted %d task(s).\n", count)
	return nil
}
