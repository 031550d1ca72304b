package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/daymark/internal/cli"
	"github.com/julianstephens/daymark/internal/constants"
	"github.com/julianstephens/daymark/internal/logger"
)

type DebugCmd struct {
	DBPath DebugDBPathCmd `cmd:"" help:"Show database path."`
	Dump   DebugDumpCmd   `cmd:"" help:"Print every task and history marker, oldest first."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	output := map[string]string{
		"path": ctx.Store.GetConfigPath(),
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	ctx.Println(string(jsonBytes))
	return nil
}

type DebugDumpCmd struct {
	Tasks   bool `help:"Only dump tasks."`
	History bool `help:"Only dump history markers."`
}

func (cmd *DebugDumpCmd) Run(ctx *cli.Context) error {
	both := !cmd.Tasks && !cmd.History

	if cmd.Tasks || both {
		if err := dumpTasks(ctx); err != nil {
			return err
		}
	}
	if cmd.History || both {
		if err := dumpHistory(ctx); err != nil {
			return err
		}
	}
	return nil
}

func dumpTasks(ctx *cli.Context) error {
	logger.Debug("Dumping all tasks")
	tasks, err := ctx.Manager.ListTasks()
	if err != nil {
		return err
	}

	ctx.Println("Dumping all tasks...")
	for _, t := range tasks {
		ctx.Printf("✅ Task - Id:%s Date:%s Complete:%t %s\n",
			t.ID, t.CreationDate.Format(constants.TimestampFormat), t.IsComplete, t.Title)
	}
	return nil
}

func dumpHistory(ctx *cli.Context) error {
	logger.Debug("Dumping all task history markers")
	markers, err := ctx.Manager.ListMarkers(constants.SortAscending)
	if err != nil {
		return err
	}

	ctx.Println("Dumping all task history markers...")
	for _, m := range markers {
		ctx.Printf("✅ TaskHistoryMarker - Id:%s Date:%s Number of completed tasks:%d Number of total tasks:%d\n",
			m.ID, m.Date.Format(constants.TimestampFormat), m.CompletedTasks, m.TotalTasks)
	}
	return nil
}
