package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is a slog.Logger tagged with the component that owns it. Every
// record carries a component attribute.
type Logger struct {
	*slog.Logger
	untagged  *slog.Logger
	component string
}

// Config selects the level, component and destination of a Logger. Handler,
// when set, takes precedence over Level and Output.
type Config struct {
	Level     slog.Level
	Component string
	Output    io.Writer
	Handler   slog.Handler
}

// New builds a text logger writing to cfg.Output, or stderr when it is nil.
// The report owns stdout.
func New(cfg Config) *Logger {
	handler := cfg.Handler
	if handler == nil {
		out := cfg.Output
		if out == nil {
			out = os.Stderr
		}
		handler = slog.NewTextHandler(out, &slog.HandlerOptions{Level: cfg.Level})
	}
	return tagged(slog.New(handler), cfg.Component)
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(Config{Output: io.Discard})
}

func tagged(base *slog.Logger, component string) *Logger {
	if component == "" {
		component = ComponentApp
	}
	return &Logger{
		Logger:    base.With(FieldComponent, component),
		untagged:  base,
		component: component,
	}
}

// ParseLevel maps "debug", "info", "warn" and "error" to a slog level.
// Unknown values fall back to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// With returns a logger that adds args to every record.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		Logger:    l.Logger.With(args...),
		untagged:  l.untagged.With(args...),
		component: l.component,
	}
}

// WithComponent keeps the attributes added so far and swaps the component.
func (l *Logger) WithComponent(component string) *Logger {
	return tagged(l.untagged, component)
}

func (l *Logger) Component() string {
	return l.component
}

// SetDefault installs logger as the slog default, without its component tag.
func SetDefault(logger *Logger) {
	slog.SetDefault(logger.untagged)
}
