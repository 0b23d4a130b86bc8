package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/alertle/internal/commands"
	"github.com/colonyops/alertle/internal/core/config"
	"github.com/colonyops/alertle/internal/core/logging"
	"github.com/colonyops/alertle/internal/core/styles"
	"github.com/colonyops/alertle/internal/printer"
	"github.com/colonyops/alertle/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx = printer.NewContext(ctx, printer.New(os.Stderr))

	var logCloser func()

	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "alertle",
		Usage:     "Deduplicating, self-expiring alerts for the terminal",
		UsageText: "alertle [global options] command [command options]",
		Description: `alertle keeps a live set of alerts. Raising an alert whose type, title and
message match a live one replaces it and marks it as a duplicate. Alerts expire
on their own after a per-alert or configured default delay.

Run 'alertle' with no arguments to open the toast container.
Run 'alertle notify' to raise an alert headless and follow its lifecycle.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("ALERTLE_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file",
				Sources:     cli.EnvVars("ALERTLE_LOG_FILE"),
				Value:       commands.DefaultLogFile(),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("ALERTLE_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile, logging.ContextHook{})
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			// Commands decide whether a bad config is fatal; config validate
			// reports it instead.
			flags.Config, flags.ConfigErr = config.Load(flags.ConfigPath)
			if flags.ConfigErr != nil {
				flags.ConfigErr = fmt.Errorf("load config: %w", flags.ConfigErr)
				log.Warn().Err(flags.ConfigErr).Str("path", flags.ConfigPath).Msg("config not loaded")
				return ctx, nil
			}

			// Validation ensures the theme name is known.
			styles.SetThemeByName(flags.Config.TUI.Theme)

			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	tuiCmd := commands.NewTuiCmd(flags)

	app = tuiCmd.Register(app)
	app = commands.NewNotifyCmd(flags).Register(app)
	app = commands.NewBatchCmd(flags).Register(app)
	app = commands.NewConfigValidateCmd(flags).Register(app)

	// Register TUI flags on root command
	app.Flags = append(app.Flags, tuiCmd.Flags()...)

	// Set TUI as default action when no subcommand is provided
	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'alertle --help' for usage", c.Args().First())
		}
		return tuiCmd.Run(ctx, c)
	}

	exitCode := 0
	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		exitCode = 1
	}

	stop()
	os.Exit(exitCode)
}
