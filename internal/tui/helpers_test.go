package tui

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/alertle/internal/core/alert"
	"github.com/colonyops/alertle/internal/core/timers/faketimers"
)

var testStart = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func newTestRegistry(t *testing.T, defaultExpiry alert.Expiry) (*alert.Registry, *faketimers.Clock) {
	t.Helper()

	clock := faketimers.New(testStart)
	reg, err := alert.NewRegistry(
		alert.Config{DefaultExpiresIn: defaultExpiry},
		alert.WithClock(clock),
		alert.WithLogger(zerolog.Nop()),
	)
	require.NoError(t, err)
	t.Cleanup(reg.Close)
	return reg, clock
}

func info(title, message string) alert.Params {
	return alert.Params{Type: alert.TypeInfo, Title: title, Message: message}
}
