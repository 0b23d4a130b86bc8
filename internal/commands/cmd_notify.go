package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/alertle/internal/core/alert"
	"github.com/colonyops/alertle/internal/core/logging"
	"github.com/colonyops/alertle/internal/printer"
	"github.com/colonyops/alertle/pkg/iojson"
)

type NotifyCmd struct {
	flags *Flags

	typ         string
	title       string
	message     string
	expiresIn   string
	repeat      int
	interactive bool
	json        bool
	wait        time.Duration
}

// NewNotifyCmd creates a new notify command.
func NewNotifyCmd(flags *Flags) *NotifyCmd {
	return &NotifyCmd{flags: flags}
}

// Register adds the notify command to the application.
func (cmd *NotifyCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "notify",
		Usage:     "Raise an alert and follow it until it expires",
		UsageText: "alertle notify [options]",
		Description: `Raises one alert in a fresh registry and prints every lifecycle event
(notify, duplicate, expire) and every change to the live set.

Use --repeat to raise the same alert several times and see duplicate
suppression. The command returns once no alerts are live, or when --wait
elapses.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "type",
				Aliases:     []string{"t"},
				Usage:       "alert type (success, error, warning, info)",
				Value:       string(alert.TypeInfo),
				Destination: &cmd.typ,
			},
			&cli.StringFlag{
				Name:        "title",
				Usage:       "alert title",
				Destination: &cmd.title,
			},
			&cli.StringFlag{
				Name:        "message",
				Aliases:     []string{"m"},
				Usage:       "alert message",
				Destination: &cmd.message,
			},
			&cli.StringFlag{
				Name:        "expires-in",
				Aliases:     []string{"e"},
				Usage:       "expiry as a duration (5s), milliseconds (1500) or 'never'; defaults to the configured expiry",
				Destination: &cmd.expiresIn,
			},
			&cli.IntFlag{
				Name:        "repeat",
				Usage:       "raise the alert this many times",
				Value:       1,
				Destination: &cmd.repeat,
			},
			&cli.BoolFlag{
				Name:        "interactive",
				Aliases:     []string{"i"},
				Usage:       "prompt for the alert fields",
				Destination: &cmd.interactive,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print events as JSON lines",
				Destination: &cmd.json,
			},
			&cli.DurationFlag{
				Name:        "wait",
				Usage:       "stop following after this long (0 waits until no alerts are live)",
				Destination: &cmd.wait,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *NotifyCmd) run(ctx context.Context, c *cli.Command) error {
	cfg, err := cmd.flags.RequireConfig()
	if err != nil {
		return err
	}

	if cmd.interactive {
		if err := cmd.prompt(ctx); err != nil {
			return err
		}
	}

	params, err := cmd.params()
	if err != nil {
		return err
	}

	ctx = logging.WithCommand(ctx, "notify")
	ctx = logging.WithAlertKey(ctx, alert.Key(params.Type, params.Title, params.Message))

	reg, err := newRegistry(cfg)
	if err != nil {
		return err
	}
	defer reg.Close()

	return cmd.follow(alert.WithRegistry(ctx, reg), newEventWriter(c.Root().Writer, cmd.json), params)
}

// follow raises params on the registry bound to ctx and reports events to
// out until no alerts are live, --wait elapses, or ctx is cancelled.
func (cmd *NotifyCmd) follow(ctx context.Context, out *eventWriter, params alert.Params) error {
	reg, err := alert.FromContext(ctx)
	if err != nil {
		return err
	}

	drained := make(chan struct{}, 1)

	unsubscribe := reg.Subscribe(func() {
		snap := reg.Snapshot()
		out.change(snap)
		if snap.Len() == 0 {
			select {
			case drained <- struct{}{}:
			default:
			}
		}
	})
	defer unsubscribe()

	params.OnNotify = func(a alert.Alert) { out.alert("notify", a) }
	params.OnDuplicated = func(a alert.Alert) { out.alert("duplicate", a) }
	params.OnExpire = func(a alert.Alert) { out.alert("expire", a) }

	for range max(cmd.repeat, 1) {
		reg.Notify(params)
	}

	if reg.Len() == 0 {
		return nil
	}

	waitCtx := ctx
	if cmd.wait > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, cmd.wait)
		defer cancel()
	}

	select {
	case <-drained:
	case <-waitCtx.Done():
		log.Debug().Ctx(ctx).Int("live", reg.Len()).Msg("stopped following with live alerts")
	}

	return nil
}

func (cmd *NotifyCmd) params() (alert.Params, error) {
	typ, err := alert.ParseType(cmd.typ)
	if err != nil {
		return alert.Params{}, err
	}

	expiry, err := alert.ParseExpiry(cmd.expiresIn)
	if err != nil {
		return alert.Params{}, fmt.Errorf("--expires-in: %w", err)
	}

	if cmd.title == "" && cmd.message == "" {
		return alert.Params{}, errors.New("an alert needs a --title or a --message")
	}

	return alert.Params{
		Type:      typ,
		Title:     cmd.title,
		Message:   cmd.message,
		ExpiresIn: expiry,
	}, nil
}

func (cmd *NotifyCmd) prompt(ctx context.Context) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("--interactive requires a terminal")
	}

	options := make([]huh.Option[string], 0, len(alert.Types))
	for _, t := range alert.Types {
		options = append(options, huh.NewOption(string(t), string(t)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Type").
				Options(options...).
				Value(&cmd.typ),
			huh.NewInput().
				Title("Title").
				Value(&cmd.title),
			huh.NewText().
				Title("Message").
				Value(&cmd.message),
			huh.NewInput().
				Title("Expires in").
				Description("5s, 1500 (ms), never, or empty for the default").
				Validate(func(s string) error {
					_, err := alert.ParseExpiry(s)
					return err
				}).
				Value(&cmd.expiresIn),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return cli.Exit("aborted", 1)
		}
		return fmt.Errorf("prompt: %w", err)
	}
	return nil
}

// alertJSON is the wire shape of an alert in notify output.
type alertJSON struct {
	ID          string     `json:"id"`
	Key         string     `json:"key"`
	Type        alert.Type `json:"type"`
	Title       string     `json:"title,omitempty"`
	Message     string     `json:"message,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresInMs *int64     `json:"expires_in_ms"` // null never expires
	IsDuplicate bool       `json:"is_duplicate"`
}

func toAlertJSON(a alert.Alert) alertJSON {
	out := alertJSON{
		ID:          a.ID,
		Key:         a.Key,
		Type:        a.Type,
		Title:       a.Title,
		Message:     a.Message,
		CreatedAt:   a.CreatedAt,
		IsDuplicate: a.IsDuplicate,
	}
	if a.ExpiresIn != nil {
		ms := a.ExpiresIn.Milliseconds()
		out.ExpiresInMs = &ms
	}
	return out
}

type notifyEvent struct {
	Event string     `json:"event"`
	Alert *alertJSON `json:"alert,omitempty"`
	Live  *int       `json:"live,omitempty"`
	Keys  []string   `json:"keys,omitempty"`
}

// eventWriter serializes output from the caller and from timer goroutines.
type eventWriter struct {
	mu   sync.Mutex
	w    io.Writer
	p    *printer.Printer
	json bool
}

func newEventWriter(w io.Writer, asJSON bool) *eventWriter {
	return &eventWriter{w: w, p: printer.New(w), json: asJSON}
}

func (ew *eventWriter) alert(event string, a alert.Alert) {
	ew.mu.Lock()
	defer ew.mu.Unlock()

	if ew.json {
		aj := toAlertJSON(a)
		ew.writeJSON(notifyEvent{Event: event, Alert: &aj})
		return
	}

	expiry := "never expires"
	if a.ExpiresIn != nil {
		expiry = "expires in " + a.ExpiresIn.String()
	}

	switch event {
	case "notify":
		ew.p.Infof("%s %s (%s)", a.Type, a.Key, expiry)
	case "duplicate":
		ew.p.Warnf("duplicate %s", a.Key)
	case "expire":
		ew.p.Successf("expired %s", a.Key)
	}
}

func (ew *eventWriter) change(snap alert.Snapshot) {
	ew.mu.Lock()
	defer ew.mu.Unlock()

	live := snap.Len()
	if ew.json {
		ew.writeJSON(notifyEvent{Event: "change", Live: &live, Keys: snap.Keys()})
		return
	}
	ew.p.Printf("  live alerts: %d", live)
}

func (ew *eventWriter) writeJSON(ev notifyEvent) {
	if err := iojson.WriteLine(ew.w, ev); err != nil {
		log.Warn().Err(err).Msg("write event")
	}
}
