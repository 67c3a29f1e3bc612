package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger is a structured logger for selectsync components
type Logger struct {
	*slog.Logger
}

// NewLogger creates a JSON logger on stdout.
func NewLogger(component string, level slog.Level) *Logger {
	return NewLoggerWithWriter(os.Stdout, component, level, "json")
}

// NewLoggerWithWriter creates a logger writing to w. Format is "json" or
// "text"; anything else falls back to json.
func NewLoggerWithWriter(w io.Writer, component string, level slog.Level, format string) *Logger {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if strings.EqualFold(format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	logger := slog.New(handler).With(
		slog.String("component", component),
		slog.String("system", "selectsync"),
	)

	return &Logger{Logger: logger}
}

// NopLogger discards everything.
func NopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.DiscardHandler)}
}

// ParseLevel maps a config string to a slog level. Unknown values are info.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
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

// WithWidget returns a logger with widget-specific fields
func (l *Logger) WithWidget(widgetID, name string) *Logger {
	return &Logger{
		Logger: l.Logger.With(
			slog.String("widget_id", widgetID),
			slog.String("widget_name", name),
		),
	}
}

// WidgetAttached logs a widget being bound to a field
func (l *Logger) WidgetAttached(name string, multiple bool, options int) {
	l.Info("widget attached",
		slog.String("name", name),
		slog.Bool("multiple", multiple),
		slog.Int("options", options),
	)
}

// WidgetDestroyed logs a widget teardown
func (l *Logger) WidgetDestroyed(name string) {
	l.Info("widget destroyed",
		slog.String("name", name),
	)
}

// SelectionCommitted logs a selection transition
func (l *Logger) SelectionCommitted(mode string, selected, previous []int, notified bool) {
	l.Debug("selection committed",
		slog.String("mode", mode),
		slog.Any("selected", selected),
		slog.Any("previous", previous),
		slog.Bool("notified", notified),
	)
}

// ModelSynced logs a full model replacement
func (l *Logger) ModelSynced(options int, selected []int) {
	l.Debug("model synced",
		slog.Int("options", options),
		slog.Any("selected", selected),
	)
}

// ResolutionMissed logs a reference that matched no option
func (l *Logger) ResolutionMissed(ref string) {
	l.Debug("reference resolved to no option",
		slog.String("ref", ref),
	)
}

// BridgeWriteFailed logs a failed write to the bound control
func (l *Logger) BridgeWriteFailed(op string, err error) {
	l.Warn("bound control write failed",
		slog.String("op", op),
		slog.String("error", err.Error()),
	)
}

// NotificationDropped logs a notification that could not be exported
func (l *Logger) NotificationDropped(subject string, err error) {
	l.Warn("notification dropped",
		slog.String("subject", subject),
		slog.String("error", err.Error()),
	)
}
