package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
)

type ctxKey struct{}

type Logger struct {
	service  string
	hostname string
	handler  *slog.Logger
}

func New(service string) *Logger {
	return NewWithWriter(service, os.Stdout)
}

func NewWithWriter(service string, w io.Writer) *Logger {
	hostname, _ := os.Hostname()

	handler := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	return &Logger{
		service:  service,
		hostname: hostname,
		handler:  handler,
	}
}

// Discard is used by tests that do not care about output.
func Discard() *Logger {
	return NewWithWriter("test", io.Discard)
}

func (l *Logger) attrs(action, requestID string) []slog.Attr {
	return []slog.Attr{
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		slog.String("service", l.service),
		slog.String("hostname", l.hostname),
		slog.String("action", action),
		slog.String("request_id", requestID),
	}
}

func (l *Logger) Info(action, requestID, message string, extra ...slog.Attr) {
	l.handler.LogAttrs(context.TODO(), slog.LevelInfo, message, append(l.attrs(action, requestID), extra...)...)
}

func (l *Logger) Debug(action, requestID, message string, extra ...slog.Attr) {
	l.handler.LogAttrs(context.TODO(), slog.LevelDebug, message, append(l.attrs(action, requestID), extra...)...)
}

func (l *Logger) Warn(action, requestID, message string, extra ...slog.Attr) {
	l.handler.LogAttrs(context.TODO(), slog.LevelWarn, message, append(l.attrs(action, requestID), extra...)...)
}

func (l *Logger) Error(action, requestID, message string, err error) {
	attrs := l.attrs(action, requestID)
	attrs = append(attrs, slog.Group("error",
		slog.String("msg", err.Error()),
		slog.String("stack", string(debug.Stack())),
	))
	l.handler.LogAttrs(context.TODO(), slog.LevelError, message, attrs...)
}

// NewRequestID returns a fresh id for correlating log lines of one request.
func NewRequestID() string {
	return uuid.NewString()
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, requestID)
}

// RequestID returns the id stored by WithRequestID, or "" when absent.
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
