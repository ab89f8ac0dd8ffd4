package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/aristath/salesboard/internal/clientdata"
	"github.com/aristath/salesboard/internal/domain"
)

type CacheCmd struct {
	flags *Flags
}

// NewCacheCmd creates a new cache command
func NewCacheCmd(flags *Flags) *CacheCmd {
	return &CacheCmd{flags: flags}
}

// Register adds the cache command and its subcommands to the application
func (cmd *CacheCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "cache",
		Usage:     "Inspect and maintain the insight cache",
		UsageText: "salesctl cache <status|clear|sweep>",
		Commands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "Show which cached insights exist and whether they are fresh",
				Action: cmd.status,
			},
			{
				Name:      "clear",
				Usage:     "Delete cached insights",
				UsageText: "salesctl cache clear [daily|weekly]",
				Description: `Deletes the cached insight for one cadence, or for every cadence when
none is given. The next request fetches a fresh insight.`,
				Action: cmd.clear,
			},
			{
				Name:   "sweep",
				Usage:  "Delete stale and unreadable entries now",
				Action: cmd.sweep,
			},
		},
	})

	return app
}

func (cmd *CacheCmd) status(ctx context.Context, c *cli.Command) error {
	statuses, err := cmd.flags.Container.ResultCache.Statuses(ctx)
	if err != nil {
		return fmt.Errorf("read cache: %w", err)
	}

	tw := tabwriter.NewWriter(c.Root().Writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "CADENCE\tPRESENT\tFRESH\tSTORED")
	for _, s := range statuses {
		stored := "-"
		if s.StoredAt != nil {
			stored = s.StoredAt.Local().Format(time.RFC3339)
		}
		_, _ = fmt.Fprintf(tw, "%s\t%t\t%t\t%s\n", s.Cadence, s.Present, s.Valid, stored)
	}
	return tw.Flush()
}

func (cmd *CacheCmd) clear(ctx context.Context, c *cli.Command) error {
	cadences := clientdata.Cadences
	if arg := c.Args().First(); arg != "" {
		cadence, err := domain.ParseCadence(arg)
		if err != nil {
			return err
		}
		cadences = []domain.Cadence{cadence}
	}

	for _, cadence := range cadences {
		if err := cmd.flags.Container.ResultCache.Clear(ctx, cadence); err != nil {
			return fmt.Errorf("clear %s: %w", cadence, err)
		}
		_, _ = fmt.Fprintf(c.Root().Writer, "cleared %s\n", cadence)
	}
	return nil
}

func (cmd *CacheCmd) sweep(ctx context.Context, c *cli.Command) error {
	removed, err := cmd.flags.Container.ResultCache.Sweep(ctx)
	if err != nil {
		return fmt.Errorf("sweep cache: %w", err)
	}

	if len(removed) == 0 {
		_, _ = fmt.Fprintln(c.Root().Writer, "nothing to remove")
		return nil
	}
	for _, key := range removed {
		_, _ = fmt.Fprintf(c.Root().Writer, "removed %s\n", key)
	}
	return nil
}
