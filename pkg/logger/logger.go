// Package logger is the service's structured logger. Every line carries the
// service name; domain failures and infrastructure faults go through separate
// methods so they land at different levels.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

const LevelCritical = slog.Level(12)

const defaultService = "household-ledger"

type Logger interface {
	Debug(message string, args ...any)
	Info(message string, args ...any)
	Warn(message string, args ...any)
	Error(message string, args ...any)
	Critical(message string, args ...any)
	// BusinessError logs a rejected request (unknown partner, duplicate
	// request, bad amount) at warn level. A nil err is ignored.
	BusinessError(message string, err error, args ...any)
	// InternalError logs a store or wiring fault at error level. A nil err is
	// ignored.
	InternalError(message string, err error, args ...any)
	With(args ...any) Logger
}

// Options controls handler construction. Empty fields fall back to defaults
// chosen by Env.
type Options struct {
	Level   string
	Format  string
	Env     string
	Service string
}

var levelNames = map[string]slog.Level{
	"debug":    slog.LevelDebug,
	"info":     slog.LevelInfo,
	"warn":     slog.LevelWarn,
	"warning":  slog.LevelWarn,
	"error":    slog.LevelError,
	"critical": LevelCritical,
	"fatal":    LevelCritical,
}

type slogLogger struct {
	base *slog.Logger
}

func NewFromEnv() Logger {
	return New(os.Stdout, Options{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Env:     os.Getenv("ENV"),
		Service: os.Getenv("SERVICE_NAME"),
	})
}

func New(output io.Writer, opts Options) Logger {
	handlerOptions := &slog.HandlerOptions{
		Level:       ParseLevel(opts.Level, normalize(opts.Env)),
		ReplaceAttr: renameCritical,
	}

	var handler slog.Handler = slog.NewJSONHandler(output, handlerOptions)
	if normalize(opts.Format) == "text" {
		handler = slog.NewTextHandler(output, handlerOptions)
	}

	service := strings.TrimSpace(opts.Service)
	if service == "" {
		service = defaultService
	}
	return &slogLogger{base: slog.New(handler).With("service", service)}
}

func Nop() Logger {
	return &slogLogger{base: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func (l *slogLogger) Debug(message string, args ...any) { l.base.Debug(message, args...) }
func (l *slogLogger) Info(message string, args ...any)  { l.base.Info(message, args...) }
func (l *slogLogger) Warn(message string, args ...any)  { l.base.Warn(message, args...) }
func (l *slogLogger) Error(message string, args ...any) { l.base.Error(message, args...) }

func (l *slogLogger) Critical(message string, args ...any) {
	l.base.Log(context.Background(), LevelCritical, message, args...)
}

func (l *slogLogger) BusinessError(message string, err error, args ...any) {
	l.logErr(slog.LevelWarn, message, err, args)
}

func (l *slogLogger) InternalError(message string, err error, args ...any) {
	l.logErr(slog.LevelError, message, err, args)
}

func (l *slogLogger) logErr(level slog.Level, message string, err error, args []any) {
	if err == nil {
		return
	}
	l.base.Log(context.Background(), level, message, append([]any{"err", err}, args...)...)
}

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{base: l.base.With(args...)}
}

// ParseLevel maps LOG_LEVEL to a slog level. Unset or unknown values give
// debug in development and info elsewhere.
func ParseLevel(value string, env string) slog.Level {
	if level, ok := levelNames[normalize(value)]; ok {
		return level
	}
	if env == "development" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func renameCritical(_ []string, attr slog.Attr) slog.Attr {
	if attr.Key != slog.LevelKey {
		return attr
	}
	if level, ok := attr.Value.Any().(slog.Level); ok && level == LevelCritical {
		attr.Value = slog.StringValue("CRITICAL")
	}
	return attr
}
