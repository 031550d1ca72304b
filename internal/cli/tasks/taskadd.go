package tasks

import (
	"time"

	"github.com/julianstephens/daymark/internal/cli"
)

type TaskAddCmd struct {
	Title string `arg:"" help:"Task title."`
	Notes string `short:"n" help:"Optional notes."`
	Done  bool   `help:"Create the task already completed."`
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	ctx.CatchUp()

	var notes *string
	if c.Notes != "" {
		notes = &c.Notes
	}

	task, err := ctx.Manager.CreateTask(c.Title, notes, time.Time{}, c.Done)
	if err != nil {
		return err
	}
	ctx.TasksChanged()

	ctx.Printf("Added task: %s (ID: %s)\n", task.Title, task.ID)
	return nil
}
