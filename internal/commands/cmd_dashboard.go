package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/aristath/salesboard/internal/domain"
)

type DashboardCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewDashboardCmd creates a new dashboard command
func NewDashboardCmd(flags *Flags) *DashboardCmd {
	return &DashboardCmd{flags: flags}
}

// Register adds the dashboard command to the application
func (cmd *DashboardCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "dashboard",
		Usage:     "Show the sales overview",
		UsageText: "salesctl dashboard [--json]",
		Description: `Loads today's figures, sales patterns and product performance together,
plus the daily and weekly insights.

The overview fails if any of the three analytics requests fails. Insights
that cannot be loaded are listed as warnings instead.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output the full view as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *DashboardCmd) run(ctx context.Context, c *cli.Command) error {
	page, err := cmd.flags.Container.DashboardService.LoadPage(ctx)
	if err != nil {
		return fmt.Errorf("load dashboard: %w", err)
	}

	w := c.Root().Writer
	if cmd.jsonOutput {
		return writeJSON(w, page)
	}

	m := page.Dashboard.Metrics
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Today\t%.2f\t%+.1f%% vs yesterday (%s)\n", m.Today.Current, m.Today.ChangePercent, m.Today.Trend)
	_, _ = fmt.Fprintf(tw, "This week\t%.2f\t%+.1f%% vs last week (%s)\n", m.Week.Current, m.Week.ChangePercent, m.Week.Trend)
	if m.PeakHour != nil {
		_, _ = fmt.Fprintf(tw, "Peak hour\t%s\t%.2f over %d orders\n", m.PeakHour.Label, m.PeakHour.TotalSales, m.PeakHour.OrderCount)
	}
	for i, p := range m.TopProducts {
		_, _ = fmt.Fprintf(tw, "#%d\t%s\t%.2f (%.1f%%)\n", i+1, p.ProductName, p.TotalRevenue, p.RevenueShare)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, cadence := range []domain.Cadence{domain.CadenceDaily, domain.CadenceWeekly} {
		if insight, ok := page.Insights[cadence]; ok {
			_, _ = fmt.Fprintf(w, "\n%s insight:\n%s\n", cadence, insight.Message)
		}
	}
	for _, warning := range page.Warnings {
		_, _ = fmt.Fprintf(w, "\nwarning: %s unavailable: %s\n", warning.Section, warning.Message)
	}

	return nil
}
