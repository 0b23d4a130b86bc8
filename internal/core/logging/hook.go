package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// ContextHook copies command and alert_key from the event context.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}

	if cmd := GetCommand(ctx); cmd != "" {
		e.Str("command", cmd)
	}

	if key := GetAlertKey(ctx); key != "" {
		e.Str("alert_key", key)
	}
}
