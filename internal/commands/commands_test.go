package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/alertle/internal/core/config"
	"github.com/colonyops/alertle/internal/printer"
)

type testApp struct {
	flags *Flags
	app   *cli.Command
	out   *bytes.Buffer
	batch *BatchCmd
}

func newTestApp(t *testing.T, configPath string) *testApp {
	t.Helper()

	flags := &Flags{ConfigPath: configPath}
	flags.Config, flags.ConfigErr = config.Load(configPath)

	out := &bytes.Buffer{}
	app := &cli.Command{
		Name:           "alertle",
		Writer:         out,
		ErrWriter:      out,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}

	batch := NewBatchCmd(flags)
	app = NewNotifyCmd(flags).Register(app)
	app = batch.Register(app)
	app = NewConfigValidateCmd(flags).Register(app)

	return &testApp{flags: flags, app: app, out: out, batch: batch}
}

func (a *testApp) run(t *testing.T, args ...string) error {
	t.Helper()
	ctx := printer.NewContext(context.Background(), printer.New(a.out))
	return a.app.Run(ctx, append([]string{"alertle"}, args...))
}

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func jsonLines(t *testing.T, s string) []map[string]any {
	t.Helper()

	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m), line)
		out = append(out, m)
	}
	return out
}
