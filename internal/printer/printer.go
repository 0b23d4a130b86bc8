// Package printer writes styled, human oriented command output.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/colonyops/alertle/internal/core/styles"
)

type ctxKey struct{}

// Printer writes status lines prefixed with a styled icon.
type Printer struct {
	out io.Writer
}

// New returns a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{out: w}
}

// NewContext attaches p to ctx.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the Printer attached to ctx, or one writing to stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok && p != nil {
		return p
	}
	return New(os.Stderr)
}

func (p *Printer) line(prefix, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if prefix != "" {
		msg = prefix + " " + msg
	}
	_, _ = fmt.Fprintln(p.out, msg)
}

// Printf writes an unadorned line.
func (p *Printer) Printf(format string, args ...any) {
	p.line("", format, args...)
}

func (p *Printer) Successf(format string, args ...any) {
	p.line(styles.SuccessTextStyle.Render(styles.IconNotifySuccess), format, args...)
}

func (p *Printer) Infof(format string, args ...any) {
	p.line(styles.InfoTextStyle.Render(styles.IconNotifyInfo), format, args...)
}

func (p *Printer) Warnf(format string, args ...any) {
	p.line(styles.WarningTextStyle.Render(styles.IconNotifyWarning), format, args...)
}

func (p *Printer) Errorf(format string, args ...any) {
	p.line(styles.ErrorTextStyle.Render(styles.IconNotifyError), format, args...)
}
