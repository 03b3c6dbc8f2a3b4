package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/fatih/color"
)

type Options struct {
	Level      slog.Leveler
	TimeFormat string
}

var DefaultOptions = Options{
	Level:      slog.LevelDebug,
	TimeFormat: "15:04:05.000",
}

// Handler is a human-oriented slog handler: colored single-line records with
// key=value attrs, meant for a terminal rather than log aggregation.
type Handler struct {
	opts   Options
	mu     *sync.Mutex
	out    io.Writer
	attrs  []slog.Attr
	groups []string
}

func NewHandler(out io.Writer, opts Options) *Handler {
	if opts.Level == nil {
		opts.Level = DefaultOptions.Level
	}
	if opts.TimeFormat == "" {
		opts.TimeFormat = DefaultOptions.TimeFormat
	}
	return &Handler{
		opts: opts,
		mu:   &sync.Mutex{},
		out:  out,
	}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	var sb strings.Builder

	sb.WriteString(color.HiBlackString(r.Time.Format(h.opts.TimeFormat)))
	sb.WriteByte(' ')
	sb.WriteString(levelString(r.Level))
	sb.WriteByte(' ')
	sb.WriteString(r.Message)

	appendAttr := func(a slog.Attr) {
		if a.Equal(slog.Attr{}) {
			return
		}
		key := a.Key
		if len(h.groups) > 0 {
			key = strings.Join(h.groups, ".") + "." + key
		}
		if key == ErrKey {
			sb.WriteString(" " + color.RedString("%s=%v", key, a.Value.Any()))
			return
		}
		sb.WriteString(" " + color.CyanString(key) + "=" + fmt.Sprint(a.Value.Any()))
	}

	for _, a := range attrsFromContext(ctx) {
		appendAttr(a)
	}
	for _, a := range h.attrs {
		appendAttr(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(a)
		return true
	})

	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, sb.String())
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	h2.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &h2
}

func (h *Handler) WithGroup(name string) slog.Handler {
	h2 := *h
	h2.groups = append(append([]string{}, h.groups...), name)
	return &h2
}

func levelString(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return color.RedString("ERR")
	case level >= slog.LevelWarn:
		return color.YellowString("WRN")
	case level >= slog.LevelInfo:
		return color.GreenString("INF")
	default:
		return color.MagentaString("DBG")
	}
}
