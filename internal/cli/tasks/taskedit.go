package tasks

import (
	"fmt"

	"github.com/julianstephens/daymark/internal/cli"
	"github.com/julianstephens/daymark/internal/models"
)

type TaskEditCmd struct {
	ID         string  `arg:"" help:"Task ID to edit."`
	Title      *string `short:"t" help:"New title."`
	Notes      *string `short:"n" help:"New notes."`
	ClearNotes bool    `help:"Remove the task notes."`
}

func (c *TaskEditCmd) Validate() error {
	if c.Notes != nil && c.ClearNotes {
		return fmt.Errorf("--notes and --clear-notes cannot be used together")
	}
	return nil
}

func (c *TaskEditCmd) Run(ctx *cli.Context) error {
	update := models.TaskUpdate{
		Title:      c.Title,
		Notes:      c.Notes,
		ClearNotes: c.ClearNotes,
	}
	if update.Empty() {
		ctx.Println("No changes specified. Use --title, --notes or --clear-notes.")
		return nil
	}

	task, err := ctx.Manager.UpdateTask(c.ID, update)
	if err != nil {
		return fmt.Errorf("failed to update task %s: %w", c.ID, err)
	}

	ctx.Printf("Updated task: %s (ID: %s)\n", task.Title, task.ID)
	ctx.TasksChanged()
	return nil
}
