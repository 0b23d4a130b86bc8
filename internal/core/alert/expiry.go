package alert

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Expiry is an optional alert lifetime. The zero value is unset, which
// defers to a default. Never and After are explicit.
type Expiry struct {
	set   bool
	never bool
	d     time.Duration
}

// After expires an alert d after it is stored. Zero or negative values
// expire immediately, so the alert is never stored.
func After(d time.Duration) Expiry {
	return Expiry{set: true, d: d}
}

// Never keeps an alert until it is expired explicitly.
func Never() Expiry {
	return Expiry{set: true, never: true}
}

// ExpiryFromMillis maps an optional millisecond count. nil is unset.
func ExpiryFromMillis(ms *int64) Expiry {
	if ms == nil {
		return Expiry{}
	}
	return After(Millis(*ms))
}

// maxMillis is the largest millisecond count a time.Duration can hold.
const maxMillis = math.MaxInt64 / int64(time.Millisecond)

// Millis converts a millisecond count to a duration, saturating at the
// largest representable duration instead of wrapping.
func Millis(ms int64) time.Duration {
	switch {
	case ms > maxMillis:
		return time.Duration(maxMillis) * time.Millisecond
	case ms < -maxMillis:
		return -time.Duration(maxMillis) * time.Millisecond
	default:
		return time.Duration(ms) * time.Millisecond
	}
}

// ParseExpiry reads an expiry from user input: "" is unset, "never" or
// "null" is Never, a bare integer is milliseconds, anything else is a
// time.ParseDuration string.
func ParseExpiry(s string) (Expiry, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "":
		return Expiry{}, nil
	case "never", "null":
		return Never(), nil
	}

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return After(Millis(ms)), nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return Expiry{}, fmt.Errorf("invalid expiry %q: %w", s, err)
	}
	return After(d), nil
}

// IsSet reports whether the expiry was given explicitly.
func (e Expiry) IsSet() bool { return e.set }

// IsNever reports whether the expiry is explicitly Never.
func (e Expiry) IsNever() bool { return e.set && e.never }

// Duration returns the delay when the expiry is a finite duration.
func (e Expiry) Duration() (time.Duration, bool) {
	if !e.set || e.never {
		return 0, false
	}
	return e.d, true
}

func (e Expiry) String() string {
	switch {
	case !e.set:
		return "unset"
	case e.never:
		return "never"
	default:
		return e.d.String()
	}
}

// resolve turns the expiry into the stored form. Unset and Never both
// resolve to nil; negative durations clamp to zero.
func (e Expiry) resolve() *time.Duration {
	d, ok := e.Duration()
	if !ok {
		return nil
	}
	d = max(d, 0)
	return &d
}
