package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/thoreinstein/prism/internal/redact"
)

// Handler is a slog.Handler tuned for terminal output: short kitchen
// timestamps, a colorized level column when the writer is a capable TTY,
// and secret masking on attr values.
type Handler struct {
	opts   slog.HandlerOptions
	out    io.Writer
	mu     *sync.Mutex
	attrs  []slog.Attr
	groups []string

	// nil when color is disabled
	timeColor  *color.Color
	debugColor *color.Color
	infoColor  *color.Color
	warnColor  *color.Color
	errorColor *color.Color
	keyColor   *color.Color
}

// NewHandler creates a terminal text handler writing to out.
func NewHandler(out io.Writer, opts *slog.HandlerOptions) *Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	h := &Handler{
		opts: *opts,
		out:  out,
		mu:   &sync.Mutex{},
	}
	if SupportsColor(out) {
		h.timeColor = color.New(color.FgHiBlack)
		h.debugColor = color.New(color.FgMagenta)
		h.infoColor = color.New(color.FgGreen)
		h.warnColor = color.New(color.FgYellow)
		h.errorColor = color.New(color.FgRed, color.Bold)
		h.keyColor = color.New(color.FgCyan)
	}
	return h
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	min := slog.LevelInfo
	if h.opts.Level != nil {
		min = h.opts.Level.Level()
	}
	return level >= min
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !r.Time.IsZero() {
		ts := r.Time.Format(time.Kitchen)
		if h.timeColor != nil {
			ts = h.timeColor.Sprint(ts)
		}
		fmt.Fprintf(h.out, "%s ", ts)
	}

	level := r.Level.String()
	if h.timeColor != nil { // color enabled
		switch {
		case r.Level >= slog.LevelError:
			level = h.errorColor.Sprint(level)
		case r.Level >= slog.LevelWarn:
			level = h.warnColor.Sprint(level)
		case r.Level >= slog.LevelInfo:
			level = h.infoColor.Sprint(level)
		default:
			level = h.debugColor.Sprint(level)
		}
	}
	fmt.Fprintf(h.out, "%-5s %s", level, r.Message)

	for _, a := range h.attrs {
		h.writeAttr(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(a)
		return true
	})

	fmt.Fprintln(h.out)
	return nil
}

// writeAttr emits " key=value", masking the value when the key looks
// secret-bearing or the value carries a known token prefix.
func (h *Handler) writeAttr(a slog.Attr) {
	key := a.Key
	if h.keyColor != nil {
		key = h.keyColor.Sprint(key)
	}

	value := a.Value.Any()
	switch {
	case redact.ShouldMask(a.Key):
		value = redact.MaskValue(fmt.Sprint(value))
	default:
		if s, ok := value.(string); ok && redact.ContainsTokenPrefix(s) {
			value = redact.MaskValue(s)
		}
	}

	fmt.Fprintf(h.out, " %s=%v", key, value)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(append(clone.attrs, h.attrs...), attrs...)
	return &clone
}

// WithGroup records the group name. Groups render as plain keys; the
// CLI never nests attrs deep enough for prefixing to pay for itself.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string(nil), h.groups...), name)
	return &clone
}
