package logging

import "context"

type contextKey string

const (
	commandKey  contextKey = "command"
	alertKeyKey contextKey = "alert_key"
)

// WithCommand records the running CLI command on the context.
func WithCommand(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, commandKey, name)
}

// WithAlertKey records the alert key being worked on.
func WithAlertKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, alertKeyKey, key)
}

// GetCommand returns the command name, or "" when absent.
func GetCommand(ctx context.Context) string {
	if v, ok := ctx.Value(commandKey).(string); ok {
		return v
	}
	return ""
}

// GetAlertKey returns the alert key, or "" when absent.
func GetAlertKey(ctx context.Context) string {
	if v, ok := ctx.Value(alertKeyKey).(string); ok {
		return v
	}
	return ""
}
