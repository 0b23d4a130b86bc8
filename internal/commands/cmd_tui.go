package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/alertle/internal/core/alert"
	"github.com/colonyops/alertle/internal/core/config"
	"github.com/colonyops/alertle/internal/core/logging"
	"github.com/colonyops/alertle/internal/tui"
)

type TuiCmd struct {
	flags   *Flags
	noWatch bool
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "no-watch",
			Usage:       "do not reload the config file when it changes",
			Sources:     cli.EnvVars("ALERTLE_NO_WATCH"),
			Destination: &cmd.noWatch,
		},
	}
}

// Register adds the tui command to the application.
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "tui",
		Usage:       "Open the interactive toast container",
		UsageText:   "alertle tui [options]",
		Description: "Shows live alerts as toasts in the lower-right corner. Press ? for key bindings.",
		Action:      cmd.run,
	})
	return app
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *TuiCmd) run(ctx context.Context, _ *cli.Command) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("tui requires a terminal; use 'alertle notify' for headless output")
	}

	cfg, err := cmd.flags.RequireConfig()
	if err != nil {
		return err
	}

	ctx = logging.WithCommand(ctx, "tui")

	reg, err := newRegistry(cfg)
	if err != nil {
		return err
	}
	defer reg.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var updates chan *config.Config
	if !cmd.noWatch && cmd.flags.ConfigPath != "" {
		updates = make(chan *config.Config, 1)
		watcher := config.NewWatcher(cmd.flags.ConfigPath, logging.Component("config"), func(next *config.Config) {
			applyReload(reg, next)
			publishLatest(updates, next)
		})
		go func() {
			if err := watcher.Run(ctx); err != nil {
				log.Debug().Ctx(ctx).Err(err).Msg("config watcher not started")
			}
		}()
	}

	m := tui.New(tui.Options{
		Registry:      reg,
		Config:        cfg,
		ConfigUpdates: updates,
		Logger:        logging.Component("tui"),
	})
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}

// applyReload pushes registry settings from a reloaded config. Live alerts
// keep the expiry they were created with.
func applyReload(reg *alert.Registry, cfg *config.Config) {
	if err := reg.SetDefaultExpiresIn(cfg.Alerts.DefaultExpiry()); err != nil {
		log.Warn().Err(err).Msg("ignoring reloaded default expiry")
	}
}

// publishLatest delivers cfg without blocking, replacing any config the
// reader has not picked up yet.
func publishLatest(ch chan *config.Config, cfg *config.Config) {
	for {
		select {
		case ch <- cfg:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
