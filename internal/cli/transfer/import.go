package transfer

import (
	"fmt"
	"os"

	"github.com/julianstephens/daymark/internal/cli"
	dmerrors "github.com/julianstephens/daymark/internal/errors"
	"github.com/julianstephens/daymark/internal/export"
	"github.com/julianstephens/daymark/internal/models"
	"github.com/julianstephens/daymark/internal/utils"
)

type ImportCmd struct {
	File     string `arg:"" help:"Export file to import." type:"existingfile"`
	Format   string `short:"f" help:"Input format (yaml|json). Defaults to the file extension."`
	Replace  bool   `help:"Delete existing tasks and history before importing."`
	Settings bool   `help:"Also restore settings from the file, except the last reset date."`
	Yes      bool   `short:"y" help:"Skip the confirmation prompt for --replace."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	format := export.FormatForPath(c.File)
	if c.Format != "" {
		var err error
		if format, err = export.ParseFormat(c.Format); err != nil {
			return err
		}
	}

	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	doc, err := export.Read(f, format)
	if err != nil {
		return err
	}

	if c.Settings && doc.Settings != nil {
		if err := validateSettings(*doc.Settings); err != nil {
			return err
		}
	}

	if c.Replace && !c.Yes && !cli.Confirm(ctx, "Replace all tasks and history with the imported data?") {
		ctx.Println("Import cancelled.")
		return nil
	}

	result, err := ctx.Manager.Import(doc.Tasks, doc.History, c.Replace)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	ctx.TasksChanged()

	if c.Settings && doc.Settings != nil {
		imported := *doc.Settings
		if _, err := ctx.Manager.UpdateSettings(func(s *models.Settings) error {
			lastReset := s.LastResetDate
			*s = imported
			models.ApplyDefaultSettings(s)
			s.LastResetDate = lastReset
			return nil
		}); err != nil {
			return fmt.Errorf("failed to import settings: %w", err)
		}
	}

	ctx.Printf("Imported %d task(s) (%d skipped) and %d history marker(s) (%d skipped).\n",
		result.TasksAdded, result.TasksSkipped, result.MarkersAdded, result.MarkersSkipped)
	return nil
}

func validateSettings(s models.Settings) error {
	if err := models.ValidateReminderTime(s.NotificationHour, s.NotificationMinute); err != nil {
		return dmerrors.InvalidArgument("settings", err.Error())
	}
	if s.Timezone != "" && !utils.ValidateTimezone(s.Timezone) {
		return dmerrors.InvalidArgument("settings.timezone", fmt.Sprintf("unknown timezone %q", s.Timezone))
	}
	return nil
}
