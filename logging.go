package termconsole

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"unicode"
)

// Writer returns an io.Writer that prints everything written to it at the
// given level. Each Write is one message: a trailing newline is dropped and
// embedded newlines become separate log lines. It plugs the standard log
// package into the console:
//
//	log.SetOutput(c.Writer(termconsole.LevelInfo))
//	log.SetFlags(0)
func (c *Console) Writer(level Level) io.Writer {
	return &lineWriter{console: c, level: level}
}

type lineWriter struct {
	console *Console
	level   Level
}

func (w *lineWriter) Write(p []byte) (int, error) {
	text := strings.TrimRight(string(p), "\r\n")
	for _, line := range strings.Split(text, "\n") {
		w.console.Print(w.level, strings.TrimSuffix(line, "\r"))
	}
	return len(p), nil
}

// Logger returns a slog.Logger that prints through the console at Info level and above.
func (c *Console) Logger() *slog.Logger {
	return slog.New(NewSlogHandler(c, nil))
}

// NewSlogHandler returns a slog.Handler that prints records above the input
// line. Debug records use the plain prefix, Info, Warn and Error their own.
// Attributes follow the message as key=value pairs; groups qualify keys as
// group.key. A nil opts logs Info and above.
func NewSlogHandler(c *Console, opts *slog.HandlerOptions) slog.Handler {
	h := &slogHandler{console: c}
	if opts != nil {
		h.opts = *opts
	}
	return h
}

type slogHandler struct {
	console      *Console
	opts         slog.HandlerOptions
	preformatted string   // Attributes from WithAttrs
	groups       []string // Open groups from WithGroup
}

func (h *slogHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

func (h *slogHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Message)
	b.WriteString(h.preformatted)
	r.Attrs(func(a slog.Attr) bool {
		h.appendAttr(&b, h.groups, a)
		return true
	})
	h.console.Print(consoleLevel(r.Level), b.String())
	return nil
}

func (h *slogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := h.clone()
	var b strings.Builder
	for _, a := range attrs {
		h2.appendAttr(&b, h2.groups, a)
	}
	h2.preformatted += b.String()
	return h2
}

func (h *slogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := h.clone()
	h2.groups = append(h2.groups, name)
	return h2
}

func (h *slogHandler) clone() *slogHandler {
	h2 := *h
	h2.groups = append([]string(nil), h.groups...)
	return &h2
}

func (h *slogHandler) appendAttr(b *strings.Builder, groups []string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if h.opts.ReplaceAttr != nil && a.Value.Kind() != slog.KindGroup {
		a = h.opts.ReplaceAttr(groups, a)
		a.Value = a.Value.Resolve()
	}
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		inner := groups
		if a.Key != "" {
			inner = append(append([]string(nil), groups...), a.Key)
		}
		for _, ga := range a.Value.Group() {
			h.appendAttr(b, inner, ga)
		}
		return
	}

	b.WriteByte(' ')
	for _, g := range groups {
		b.WriteString(g)
		b.WriteByte('.')
	}
	b.WriteString(a.Key)
	b.WriteByte('=')
	b.WriteString(quoteIfNeeded(a.Value.String()))
}

func quoteIfNeeded(s string) string {
	if s == "" {
		return `""`
	}
	for _, r := range s {
		if unicode.IsSpace(r) || r == '"' || r == '=' || !unicode.IsPrint(r) {
			return strconv.Quote(s)
		}
	}
	return s
}

func consoleLevel(l slog.Level) Level {
	switch {
	case l >= slog.LevelError:
		return LevelError
	case l >= slog.LevelWarn:
		return LevelWarn
	case l >= slog.LevelInfo:
		return LevelInfo
	default:
		return LevelPlain
	}
}
