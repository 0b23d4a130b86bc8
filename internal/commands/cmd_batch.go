package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/alertle/internal/core/alert"
	"github.com/colonyops/alertle/internal/core/logging"
	"github.com/colonyops/alertle/pkg/iojson"
)

// BatchAlert is one alert in batch input.
type BatchAlert struct {
	Type      string      `json:"type"`
	Title     string      `json:"title"`
	Message   string      `json:"message"`
	ExpiresIn BatchExpiry `json:"expires_in"`
}

// BatchExpiry accepts milliseconds, a duration string, or null for never.
// An absent field uses the configured default.
type BatchExpiry struct {
	alert.Expiry
}

func (e *BatchExpiry) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		e.Expiry = alert.Never()
		return nil
	}

	if ms, err := strconv.ParseInt(string(data), 10, 64); err == nil {
		e.Expiry = alert.After(alert.Millis(ms))
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("expires_in must be milliseconds, a duration string, or null, got %s", data)
	}
	parsed, err := alert.ParseExpiry(s)
	if err != nil {
		return err
	}
	e.Expiry = parsed
	return nil
}

// BatchResult reports what happened to one input alert.
type BatchResult struct {
	Index     int    `json:"index"`
	Key       string `json:"key,omitempty"`
	Stored    bool   `json:"stored"`
	Duplicate bool   `json:"duplicate"`
	Error     string `json:"error,omitempty"`
}

// BatchOutput is the JSON written once the batch settles.
type BatchOutput struct {
	Results []BatchResult `json:"results"`
	Expired int64         `json:"expired"`
	Live    []alertJSON   `json:"live"`
}

type BatchCmd struct {
	flags *Flags
	fr    *iojson.FileReader[[]BatchAlert]
	wait  time.Duration
}

// NewBatchCmd creates a new batch command.
func NewBatchCmd(flags *Flags) *BatchCmd {
	return &BatchCmd{
		flags: flags,
		fr:    &iojson.FileReader[[]BatchAlert]{},
	}
}

// Register adds the batch command to the application.
func (cmd *BatchCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "batch",
		Usage:     "Raise alerts from JSON input",
		UsageText: "alertle batch [-f file] [--wait duration]",
		Description: `Reads a JSON array of alerts and raises them in order in one registry.

Each entry has type, title, message and an optional expires_in given as
milliseconds, a duration string, or null for never. After --wait elapses the
command reports what was stored, what was suppressed as a duplicate, how many
alerts expired, and which are still live.`,
		Flags: []cli.Flag{
			cmd.fr.Flag(),
			&cli.DurationFlag{
				Name:        "wait",
				Usage:       "let expiries run for this long before reporting",
				Destination: &cmd.wait,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *BatchCmd) run(ctx context.Context, c *cli.Command) error {
	errOut := c.Root().ErrWriter
	if errOut == nil {
		errOut = os.Stderr
	}

	cfg, err := cmd.flags.RequireConfig()
	if err != nil {
		_ = iojson.WriteError(errOut, fmt.Sprintf("load config: %s", err), nil)
		return cli.Exit("", 1)
	}

	input, err := cmd.fr.Read()
	if err != nil {
		_ = iojson.WriteError(errOut, fmt.Sprintf("read input: %s", err), nil)
		return cli.Exit("", 1)
	}

	ctx = logging.WithCommand(ctx, "batch")

	reg, err := newRegistry(cfg)
	if err != nil {
		return err
	}
	defer reg.Close()

	var expired atomic.Int64
	onExpire := func(alert.Alert) { expired.Add(1) }

	results := make([]BatchResult, 0, len(input))
	for i, in := range input {
		typ, err := alert.ParseType(in.Type)
		if err != nil {
			results = append(results, BatchResult{Index: i, Error: err.Error()})
			continue
		}

		a := reg.Notify(alert.Params{
			Type:      typ,
			Title:     in.Title,
			Message:   in.Message,
			ExpiresIn: in.ExpiresIn.Expiry,
			OnExpire:  onExpire,
		})

		stored, ok := reg.Snapshot().Get(a.Key)
		results = append(results, BatchResult{
			Index:     i,
			Key:       a.Key,
			Stored:    ok && stored.ID == a.ID,
			Duplicate: a.IsDuplicate,
		})
	}

	if cmd.wait > 0 {
		select {
		case <-time.After(cmd.wait):
		case <-ctx.Done():
		}
	}

	live := make([]alertJSON, 0, reg.Len())
	for _, a := range reg.Snapshot().Alerts() {
		live = append(live, toAlertJSON(a))
	}

	return iojson.Write(c.Root().Writer, errOut, BatchOutput{
		Results: results,
		Expired: expired.Load(),
		Live:    live,
	})
}
