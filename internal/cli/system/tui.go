package system

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/daymark/internal/cli"
	"github.com/julianstephens/daymark/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	p := tea.NewProgram(tui.NewModel(ctx.Manager, ctx.Refresher), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
