package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/aristath/salesboard/internal/domain"
)

type InsightCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewInsightCmd creates a new insight command
func NewInsightCmd(flags *Flags) *InsightCmd {
	return &InsightCmd{flags: flags}
}

// Register adds the insight command to the application
func (cmd *InsightCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "insight",
		Usage:     "Show the daily or weekly AI insight",
		UsageText: "salesctl insight <daily|weekly> [--json]",
		Description: `Serves the insight from the cache when it is still fresh, otherwise
fetches it from the insights API and caches it.

Daily insights are fresh for the calendar day they were stored on. Weekly
insights are fresh for seven days when stored on the refresh weekday.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output the raw insight payload",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *InsightCmd) run(ctx context.Context, c *cli.Command) error {
	cadence, err := domain.ParseCadence(c.Args().First())
	if err != nil {
		return err
	}

	insight, warning := cmd.flags.Container.DashboardService.LoadInsight(ctx, cadence)
	if warning != nil {
		return fmt.Errorf("%s unavailable: %s", warning.Section, warning.Message)
	}

	if cmd.jsonOutput {
		return writeJSON(c.Root().Writer, insight)
	}
	_, _ = fmt.Fprintln(c.Root().Writer, insight.Message)
	return nil
}
