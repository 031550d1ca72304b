package system

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/julianstephens/daymark/internal/backup"
	"github.com/julianstephens/daymark/internal/cli"
	"github.com/julianstephens/daymark/internal/constants"
	"github.com/julianstephens/daymark/internal/migration"
	"github.com/julianstephens/daymark/internal/storage"
	"github.com/julianstephens/daymark/internal/storage/sqlite"
	"github.com/julianstephens/daymark/internal/utils"
	"github.com/julianstephens/daymark/migrations"
)

type DoctorCmd struct{}

type check struct {
	name  string
	needs bool // requires a reachable database
	run   func(*cli.Context) error
	warn  bool // failures are reported but do not fail the run
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := false

	if err := checkDBReachable(ctx); err != nil {
		ctx.Printf("❌ Database reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		ctx.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	checks := []check{
		{name: "Schema", needs: true, run: checkSchema},
		{name: "Migrations complete", needs: true, run: checkMigrationsComplete},
		{name: "Backups present", run: checkBackupsPresent, warn: true},
		{name: "Data validation", needs: true, run: checkData},
		{name: "Clock/timezone", needs: true, run: checkClockTimezone},
	}

	for _, c := range checks {
		if c.needs && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warn:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	if sqliteStore, ok := ctx.Store.(*sqlite.Store); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchema(ctx *cli.Context) error {
	checker, ok := ctx.Store.(storage.SchemaChecker)
	if !ok {
		return nil
	}
	return checker.CheckSchema()
}

func checkMigrationsComplete(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		// Postgres validates its version on Load; JSON has none.
		return nil
	}

	db := sqliteStore.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	runner := migration.NewRunner(db, subFS)

	current, err := runner.GetCurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	latest, err := runner.GetLatestVersion()
	if err != nil {
		return fmt.Errorf("failed to get latest schema version: %w", err)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return nil
	}
	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found, one is taken before each daily reset or with 'daymark backup create'")
	}
	return nil
}

func checkData(ctx *cli.Context) error {
	tasks, err := ctx.Store.GetAllTasks()
	if err != nil {
		return fmt.Errorf("failed to read tasks: %w", err)
	}
	seen := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if t.ID == "" {
			return fmt.Errorf("task %q has no id", t.Title)
		}
		if seen[t.ID] {
			return fmt.Errorf("duplicate task id %s", t.ID)
		}
		seen[t.ID] = true
		if t.CreationDate.IsZero() {
			return fmt.Errorf("task %s has no creation date", t.ID)
		}
	}

	markers, err := ctx.Store.GetHistoryMarkers(constants.SortAscending)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	for _, m := range markers {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("history marker %s: %w", m.ID, err)
		}
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Manager.Now()
	if now.Year() < 2000 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}

	settings, err := ctx.Manager.Settings()
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return err
	}

	if settings.LastResetDate == "" {
		return nil
	}
	last, err := time.ParseInLocation(constants.DateFormat, settings.LastResetDate, loc)
	if err != nil {
		return fmt.Errorf("invalid last reset date %q", settings.LastResetDate)
	}
	if last.After(utils.StartOfDay(now, loc)) {
		return fmt.Errorf("last reset date %s is in the future, check the system clock", settings.LastResetDate)
	}
	return nil
}
