package commands

import (
	"context"
	"errors"
	"os"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/alertle/internal/core/config"
	"github.com/colonyops/alertle/internal/printer"
	"github.com/colonyops/alertle/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "alertle config validate [options]",
				Description: "Validates the configuration file, checking the default expiry, theme and toast layout.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

// validationIssue is one failed check.
type validationIssue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	var issues []validationIssue

	cfg, err := config.Parse(cmd.flags.ConfigPath)
	if err != nil {
		issues = append(issues, validationIssue{Field: "config_file", Message: err.Error()})
	} else {
		issues = collectIssues(cfg.ValidateDeep(cmd.flags.ConfigPath))
	}

	if cmd.format == "json" {
		errOut := c.Root().ErrWriter
		if errOut == nil {
			errOut = os.Stderr
		}
		if err := iojson.Write(c.Root().Writer, errOut, struct {
			Path   string            `json:"path"`
			Valid  bool              `json:"valid"`
			Issues []validationIssue `json:"issues,omitempty"`
		}{
			Path:   cmd.flags.ConfigPath,
			Valid:  len(issues) == 0,
			Issues: issues,
		}); err != nil {
			return err
		}
		if len(issues) > 0 {
			return cli.Exit("", 1)
		}
		return nil
	}

	p := printer.Ctx(ctx)
	for _, issue := range issues {
		if issue.Field != "" {
			p.Errorf("%s: %s", issue.Field, issue.Message)
			continue
		}
		p.Errorf("%s", issue.Message)
	}

	if len(issues) == 0 {
		p.Successf("Configuration is valid (%s)", cmd.flags.ConfigPath)
		return nil
	}

	p.Printf("")
	p.Errorf("%d error(s) found", len(issues))
	return cli.Exit("", 1)
}

func collectIssues(err error) []validationIssue {
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []validationIssue{{Message: err.Error()}}
	}

	issues := make([]validationIssue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, validationIssue{Field: fe.Field, Message: fe.Err.Error()})
	}
	return issues
}
