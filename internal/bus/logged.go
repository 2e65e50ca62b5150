package bus

import (
	"context"
	"log/slog"
	"time"

	"github.com/godbus/dbus/v5"

	"stratis/internal/logging"
)

// Logged wraps a Transport and logs every call at debug level. Context
// fields such as the correlation id are attached per call.
func Logged(next Transport, logger *slog.Logger) Transport {
	return &loggedTransport{next: next, logger: logging.NewComponentLogger(logger, "bus")}
}

type loggedTransport struct {
	next   Transport
	logger *slog.Logger
}

func (l *loggedTransport) Call(ctx context.Context, path dbus.ObjectPath, iface, method string, args ...any) ([]any, error) {
	start := time.Now()
	body, err := l.next.Call(ctx, path, iface, method, args...)
	l.log(ctx, "call", path, iface, method, start, err)
	return body, err
}

func (l *loggedTransport) GetProperty(ctx context.Context, path dbus.ObjectPath, iface, name string) (any, error) {
	start := time.Now()
	value, err := l.next.GetProperty(ctx, path, iface, name)
	l.log(ctx, "get property", path, iface, name, start, err)
	return value, err
}

func (l *loggedTransport) log(ctx context.Context, op string, path dbus.ObjectPath, iface, name string, start time.Time, err error) {
	logger := logging.WithContext(ctx, l.logger)
	attrs := []logging.Attr{
		logging.String(logging.FieldInterface, iface),
		logging.String(logging.FieldMethod, name),
		logging.String(logging.FieldObjectPath, string(path)),
		logging.Duration("elapsed", time.Since(start)),
	}
	if err != nil {
		attrs = append(attrs, logging.Error(err))
	}
	logger.Debug("bus "+op, logging.Args(attrs...)...)
}
