package transfer

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/daymark/internal/cli"
	"github.com/julianstephens/daymark/internal/constants"
	"github.com/julianstephens/daymark/internal/export"
)

type ExportCmd struct {
	Output   string `short:"o" help:"Write to this file instead of stdout." type:"path"`
	Format   string `short:"f" help:"Output format (yaml|json). Defaults to the file extension, or yaml."`
	Settings bool   `help:"Include settings in the export." default:"true" negatable:""`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	format := export.FormatYAML
	if c.Output != "" {
		format = export.FormatForPath(c.Output)
	}
	if c.Format != "" {
		var err error
		if format, err = export.ParseFormat(c.Format); err != nil {
			return err
		}
	}

	tasks, err := ctx.Manager.ListTasks()
	if err != nil {
		return err
	}
	history, err := ctx.Manager.ListMarkers(constants.SortAscending)
	if err != nil {
		return err
	}
	doc := export.NewDocument(ctx.Manager.Now(), nil, tasks, history)
	if c.Settings {
		settings, err := ctx.Manager.Settings()
		if err != nil {
			return err
		}
		doc.Settings = &settings
	}

	if c.Output == "" {
		return export.Write(ctx.Writer(), doc, format)
	}

	f, err := os.OpenFile(c.Output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := writeAndClose(f, doc, format); err != nil {
		return err
	}
	ctx.Printf("Exported %d task(s) and %d history marker(s) to %s\n", len(tasks), len(history), c.Output)
	return nil
}

func writeAndClose(f io.WriteCloser, doc export.Document, format export.Format) error {
	if err := export.Write(f, doc, format); err != nil {
		f.Close()
		return fmt.Errorf("failed to write export: %w", err)
	}
	return f.Close()
}
