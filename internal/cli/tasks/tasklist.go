package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/daymark/internal/cli"
	"github.com/julianstephens/daymark/internal/widget"
)

type TaskListCmd struct {
	JSON bool `help:"Print tasks as JSON."`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	ctx.CatchUp()

	tasks, err := ctx.Manager.ListTasks()
	if err != nil {
		return err
	}

	if c.JSON {
		data, err := json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal tasks: %w", err)
		}
		ctx.Println(string(data))
		return nil
	}

	if len(tasks) == 0 {
		ctx.Println("No tasks yet. Add one with 'daymark task add'.")
		return nil
	}

	remaining := 0
	for _, t := range tasks {
		mark := "[ ]"
		if t.IsComplete {
			mark = "[x]"
		} else {
			remaining++
		}
		ctx.Printf("%s %s  (%s)\n", mark, t.Title, t.ID)
		if notes := t.NotesOrEmpty(); notes != "" {
			ctx.Printf("      %s\n", notes)
		}
	}
	ctx.Printf("\n%s\n", widget.Badge(remaining))
	return nil
}
