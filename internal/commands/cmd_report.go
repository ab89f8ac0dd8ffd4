package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/aristath/salesboard/internal/modules/reports"
)

type ReportCmd struct {
	flags *Flags
}

// NewReportCmd creates a new report command
func NewReportCmd(flags *Flags) *ReportCmd {
	return &ReportCmd{flags: flags}
}

// Register adds the report command and its subcommands to the application
func (cmd *ReportCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "report",
		Usage:     "Print a sales report as JSON",
		UsageText: "salesctl report <weekly|monthly|yearly|customers|products|patterns> [options]",
		Commands: []*cli.Command{
			{
				Name:  "weekly",
				Usage: "Weekly totals with change and moving average",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "weeks",
						Usage: fmt.Sprintf("number of weeks, one of %v", reports.AllowedWeeks),
						Value: reports.DefaultWeeks,
					},
				},
				Action: cmd.weekly,
			},
			{
				Name:  "monthly",
				Usage: "Monthly totals with change and moving average",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "months",
						Usage: fmt.Sprintf("number of months, 1 to %d", reports.MaxMonths),
						Value: reports.DefaultMonths,
					},
				},
				Action: cmd.monthly,
			},
			{
				Name:   "yearly",
				Usage:  "Year over year summary",
				Action: cmd.yearly,
			},
			{
				Name:   "customers",
				Usage:  "Top customers and their share of spend",
				Action: cmd.customers,
			},
			{
				Name:  "products",
				Usage: "Product performance and year over year growth",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "search",
						Usage: "only show growth for products whose name contains this text",
					},
					&cli.IntFlag{
						Name:  "page",
						Usage: "growth page, starting at 1",
						Value: 1,
					},
					&cli.IntFlag{
						Name:  "size",
						Usage: "products per growth page",
						Value: reports.DefaultPageSize,
					},
				},
				Action: cmd.products,
			},
			{
				Name:   "patterns",
				Usage:  "Hourly, daily and weekday sales patterns",
				Action: cmd.patterns,
			},
		},
	})

	return app
}

func (cmd *ReportCmd) weekly(ctx context.Context, c *cli.Command) error {
	report, err := cmd.flags.Container.ReportService.Weekly(ctx, c.Int("weeks"))
	return cmd.print(c, "weekly", report, err)
}

func (cmd *ReportCmd) monthly(ctx context.Context, c *cli.Command) error {
	report, err := cmd.flags.Container.ReportService.Monthly(ctx, c.Int("months"))
	return cmd.print(c, "monthly", report, err)
}

func (cmd *ReportCmd) yearly(ctx context.Context, c *cli.Command) error {
	report, err := cmd.flags.Container.ReportService.Yearly(ctx)
	return cmd.print(c, "yearly", report, err)
}

func (cmd *ReportCmd) customers(ctx context.Context, c *cli.Command) error {
	report, err := cmd.flags.Container.ReportService.Customers(ctx)
	return cmd.print(c, "customers", report, err)
}

func (cmd *ReportCmd) products(ctx context.Context, c *cli.Command) error {
	report, err := cmd.flags.Container.ReportService.Products(ctx, c.String("search"), c.Int("page"), c.Int("size"))
	return cmd.print(c, "products", report, err)
}

func (cmd *ReportCmd) patterns(ctx context.Context, c *cli.Command) error {
	report, err := cmd.flags.Container.ReportService.Patterns(ctx)
	return cmd.print(c, "patterns", report, err)
}

func (cmd *ReportCmd) print(c *cli.Command, name string, report interface{}, err error) error {
	if err != nil {
		return fmt.Errorf("%s report: %w", name, err)
	}
	return writeJSON(c.Root().Writer, report)
}
