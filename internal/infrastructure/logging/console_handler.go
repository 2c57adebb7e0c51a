package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/term"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
)

// ConsoleHandler is a slog.Handler printing one bracketed line per record:
// [LEVEL] [system] [HH:MM:SS] message key=value
//
// The "system" attribute is lifted into its own bracket. Group names prefix
// attribute keys with a dot.
type ConsoleHandler struct {
	w         io.Writer
	level     slog.Leveler
	mu        *sync.Mutex
	system    string
	useColors bool
	prefix    string
	attrs     []string
}

// NewConsoleHandler creates a console handler. Colors are enabled only when w
// is a terminal.
func NewConsoleHandler(w io.Writer, opts *slog.HandlerOptions) *ConsoleHandler {
	h := &ConsoleHandler{
		w:         w,
		level:     slog.LevelInfo,
		mu:        &sync.Mutex{},
		useColors: isTerminal(w),
	}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	return h
}

func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// Enabled reports whether the handler handles records at the given level.
func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes a log record.
func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	var buf strings.Builder

	h.colored(&buf, levelColor(r.Level), "["+levelString(r.Level)+"]")
	if h.system != "" {
		buf.WriteString(" [" + h.system + "]")
	}
	if !r.Time.IsZero() {
		buf.WriteString(" ")
		h.colored(&buf, colorGray, "["+r.Time.Format("15:04:05")+"]")
	}
	buf.WriteString(" ")
	buf.WriteString(r.Message)

	for _, kv := range h.attrs {
		buf.WriteString(" ")
		buf.WriteString(kv)
	}
	r.Attrs(func(a slog.Attr) bool {
		if a.Key != "system" || h.prefix != "" {
			appendAttr(&buf, h.prefix, a)
		}
		return true
	})
	buf.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, buf.String())
	return err
}

// WithAttrs returns a handler that always prints the given attributes.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := h.clone()
	for _, a := range attrs {
		if a.Key == "system" && h.prefix == "" {
			clone.system = a.Value.String()
			continue
		}
		var buf strings.Builder
		appendAttr(&buf, h.prefix, a)
		if s := strings.TrimPrefix(buf.String(), " "); s != "" {
			clone.attrs = append(clone.attrs, s)
		}
	}
	return clone
}

// WithGroup returns a handler that prefixes subsequent keys with name.
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := h.clone()
	clone.prefix = h.prefix + name + "."
	return clone
}

func (h *ConsoleHandler) clone() *ConsoleHandler {
	return &ConsoleHandler{
		w:         h.w,
		level:     h.level,
		mu:        h.mu,
		system:    h.system,
		useColors: h.useColors,
		prefix:    h.prefix,
		attrs:     append([]string(nil), h.attrs...),
	}
}

func (h *ConsoleHandler) colored(buf *strings.Builder, color, s string) {
	if h.useColors {
		buf.WriteString(color)
		buf.WriteString(s)
		buf.WriteString(colorReset)
		return
	}
	buf.WriteString(s)
}

func appendAttr(buf *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		p := prefix
		if a.Key != "" {
			p += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			appendAttr(buf, p, ga)
		}
		return
	}
	buf.WriteString(" ")
	buf.WriteString(prefix)
	buf.WriteString(a.Key)
	buf.WriteString("=")
	buf.WriteString(formatValue(a.Value))
}

func formatValue(v slog.Value) string {
	var s string
	switch v.Kind() {
	case slog.KindString:
		s = v.String()
	case slog.KindFloat64:
		s = strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	default:
		s = fmt.Sprint(v.Any())
	}
	if s == "" || strings.ContainsAny(s, " \t\"=") {
		return strconv.Quote(s)
	}
	return s
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return colorRed
	case level >= slog.LevelWarn:
		return colorYellow
	case level >= slog.LevelInfo:
		return colorCyan
	default:
		return colorGray
	}
}

func levelString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return level.String()
	}
}
