// Package alert holds the alert data model, the alert factory and the
// registry that manages live alerts, their expiry timers and change
// subscriptions.
package alert

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Type is the kind of an alert.
type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeWarning Type = "warning"
	TypeInfo    Type = "info"
)

// Types lists every alert type in display order.
var Types = []Type{TypeSuccess, TypeError, TypeWarning, TypeInfo}

// Valid reports whether t is a known alert type.
func (t Type) Valid() bool {
	switch t {
	case TypeSuccess, TypeError, TypeWarning, TypeInfo:
		return true
	default:
		return false
	}
}

// ParseType converts a user-supplied string into a Type.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown alert type %q (want one of success, error, warning, info)", s)
	}
	return t, nil
}

// Callback is a lifecycle hook. It receives the alert the event applies to.
type Callback func(Alert)

// Alert is a single notification.
type Alert struct {
	ID          string         `json:"id"`
	Key         string         `json:"key"`
	Type        Type           `json:"type"`
	Title       string         `json:"title,omitempty"`
	Message     string         `json:"message"`
	CreatedAt   time.Time      `json:"created_at"`
	ExpiresIn   *time.Duration `json:"expires_in,omitempty"` // nil never expires
	IsDuplicate bool           `json:"is_duplicate"`

	OnNotify     Callback `json:"-"`
	OnExpire     Callback `json:"-"`
	OnDuplicated Callback `json:"-"`
}

// Expires reports whether the alert has a finite lifetime.
func (a Alert) Expires() bool {
	return a.ExpiresIn != nil
}

// Params describes an alert to create.
type Params struct {
	Type      Type
	Title     string
	Message   string
	ExpiresIn Expiry

	OnNotify     Callback
	OnExpire     Callback
	OnDuplicated Callback
}

// TypedParams is Params without the type, for the per-type helpers.
type TypedParams struct {
	Title     string
	Message   string
	ExpiresIn Expiry

	OnNotify     Callback
	OnExpire     Callback
	OnDuplicated Callback
}

func (p TypedParams) withType(t Type) Params {
	return Params{
		Type:         t,
		Title:        p.Title,
		Message:      p.Message,
		ExpiresIn:    p.ExpiresIn,
		OnNotify:     p.OnNotify,
		OnExpire:     p.OnExpire,
		OnDuplicated: p.OnDuplicated,
	}
}

// New builds an alert from p. An unset p.ExpiresIn falls back to fallback;
// when that is unset too the alert never expires.
func New(p Params, now time.Time, fallback Expiry) Alert {
	expiry := p.ExpiresIn
	if !expiry.IsSet() {
		expiry = fallback
	}

	return Alert{
		ID:           uuid.NewString(),
		Key:          Key(p.Type, p.Title, p.Message),
		Type:         p.Type,
		Title:        p.Title,
		Message:      p.Message,
		CreatedAt:    now,
		ExpiresIn:    expiry.resolve(),
		OnNotify:     p.OnNotify,
		OnExpire:     p.OnExpire,
		OnDuplicated: p.OnDuplicated,
	}
}

// Key derives the dedup identity of an alert. Title and message are
// compared with all whitespace removed and case folded.
func Key(t Type, title, message string) string {
	return string(t) + ":" + normalize(title) + ":" + normalize(message)
}

func normalize(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	return strings.ToLower(s)
}
