package history

import (
	"github.com/julianstephens/daymark/internal/chart"
	"github.com/julianstephens/daymark/internal/cli"
	"github.com/julianstephens/daymark/internal/constants"
)

type ProgressCmd struct {
	Width int `help:"Chart width in columns." default:"60"`
}

func (c *ProgressCmd) Run(ctx *cli.Context) error {
	ctx.CatchUp()

	summary, err := ctx.Manager.Counts()
	if err != nil {
		return err
	}
	markers, err := ctx.Manager.RecentMarkers(constants.HistoryChartDays)
	if err != nil {
		return err
	}

	ctx.Printf("Today: %d of %d tasks complete\n\n", summary.Completed, summary.Total)
	ctx.Println(chart.Render(markers, c.Width))
	return nil
}
