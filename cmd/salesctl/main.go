package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/aristath/salesboard/internal/commands"
	"github.com/aristath/salesboard/internal/config"
	"github.com/aristath/salesboard/internal/di"
	"github.com/aristath/salesboard/pkg/logger"
)

// Populated at build-time via -ldflags
var version = "dev"

func main() {
	ctx := context.Background()

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "salesctl",
		Usage:     "Query the sales analytics API from the terminal",
		UsageText: "salesctl [global options] command [command options]",
		Description: `salesctl reads the same analytics and insights as the dashboard server and
shares its insight cache, so insights fetched here are reused by the server.

Requests to the analytics API are made with --token (or API_BEARER_TOKEN).`,
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error)",
				Sources:     cli.EnvVars("LOG_LEVEL"),
				Value:       "warn",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "token",
				Usage:       "bearer token for the analytics API",
				Sources:     cli.EnvVars("API_BEARER_TOKEN"),
				Destination: &flags.Token,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			l := logger.New(logger.Config{
				Level:  flags.LogLevel,
				Pretty: true,
				Output: os.Stderr,
			})
			logger.SetGlobalLogger(l)

			cfg, err := config.Load()
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			if flags.Token != "" {
				cfg.API.BearerToken = flags.Token
			}

			container, jobs, err := di.Wire(cfg, l)
			if err != nil {
				return ctx, fmt.Errorf("wire dependencies: %w", err)
			}
			flags.Container = container
			flags.Jobs = jobs

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if flags.Container == nil {
				return nil
			}
			if err := flags.Container.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close storage")
				return err
			}
			return nil
		},
	}

	app = commands.NewDashboardCmd(flags).Register(app)
	app = commands.NewInsightCmd(flags).Register(app)
	app = commands.NewReportCmd(flags).Register(app)
	app = commands.NewCacheCmd(flags).Register(app)

	exitCode := 0
	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
