package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/daymark/internal/backup"
	"github.com/julianstephens/daymark/internal/logger"
	"github.com/julianstephens/daymark/internal/notifier"
	"github.com/julianstephens/daymark/internal/scheduler"
	"github.com/julianstephens/daymark/internal/storage"
	"github.com/julianstephens/daymark/internal/storage/sqlite"
	"github.com/julianstephens/daymark/internal/tracker"
	"github.com/julianstephens/daymark/internal/widget"
)

type Context struct {
	Store     storage.Provider
	Manager   *tracker.Manager
	Scheduler *scheduler.Scheduler
	Refresher widget.Refresher
	// Sender delivers reminders; the tray app notifier when nil.
	Sender notifier.Sender
	// ConfigDir holds logs, backups and the widget status file.
	ConfigDir string
	Out       io.Writer
	In        io.Reader
}

// NewContext wires a tracker over store. SQLite stores get an automatic
// backup before each daily reset.
func NewContext(store storage.Provider, configDir string, opts tracker.Options) *Context {
	if _, ok := store.(*sqlite.Store); ok && opts.BeforeReset == nil {
		opts.BeforeReset = backup.NewManager(store.GetConfigPath()).Hook()
	}
	return &Context{
		Store:     store,
		Manager:   tracker.New(store, opts),
		Scheduler: scheduler.New(),
		Refresher: widget.NewFileRefresher(configDir),
		ConfigDir: configDir,
		Out:       os.Stdout,
		In:        os.Stdin,
	}
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Writer(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Writer(), args...)
}

// Writer is where commands print; stdout unless Out is set.
func (c *Context) Writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// CatchUp runs the daily reset if the day has changed since the last one.
// Failures are logged and never abort the command that asked.
func (c *Context) CatchUp() {
	marker, err := c.Manager.RunDailyResetAt(c.Manager.Now())
	switch {
	case errors.Is(err, tracker.ErrResetInProgress):
	case err != nil:
		logger.Error("Daily reset failed", "error", err)
	case marker != nil:
		c.TasksChanged()
	}
}

// TasksChanged pushes the current remaining count to the widget surfaces.
func (c *Context) TasksChanged() {
	if c.Refresher == nil {
		return
	}
	c.Refresher.Refresh(c.Manager.RemainingCount())
}

// Notifier returns the reminder sender.
func (c *Context) Notifier() notifier.Sender {
	if c.Sender == nil {
		return notifier.New()
	}
	return c.Sender
}

// Backups returns the backup manager for SQLite stores.
func (c *Context) Backups() (*backup.Manager, error) {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil, fmt.Errorf("backups are only supported for SQLite storage")
	}
	return backup.NewManager(c.Store.GetConfigPath()), nil
}

// Confirm asks a yes/no question on ctx.In. Anything but y or yes is a no.
func Confirm(ctx *Context, question string) bool {
	ctx.Printf("%s [y/N]: ", question)
	in := ctx.In
	if in == nil {
		in = os.Stdin
	}
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
