package bus

import (
	"context"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"
)

const propertiesGet = "org.freedesktop.DBus.Properties.Get"

// Options configures Dial.
type Options struct {
	// Address is "system", "session", or a D-Bus server address.
	Address string
	// Service is the well-known name stratisd owns on the bus.
	Service string
	// Timeout bounds each call when the caller's context has no deadline.
	// Zero leaves calls bounded only by the context.
	Timeout time.Duration
}

var _ Transport = (*DBusTransport)(nil)

// DBusTransport is the production Transport backed by a godbus connection.
type DBusTransport struct {
	conn    *dbus.Conn
	service string
	timeout time.Duration
}

// Dial opens a private connection to the configured bus.
func Dial(ctx context.Context, opts Options) (*DBusTransport, error) {
	var (
		conn *dbus.Conn
		err  error
	)
	address := strings.TrimSpace(opts.Address)
	switch address {
	case "", "system":
		conn, err = dbus.ConnectSystemBus(dbus.WithContext(ctx))
	case "session":
		conn, err = dbus.ConnectSessionBus(dbus.WithContext(ctx))
	default:
		conn, err = dbus.Connect(address, dbus.WithContext(ctx))
	}
	if err != nil {
		return nil, &TransportError{Op: "connect", Member: address, Err: err}
	}
	return &DBusTransport{conn: conn, service: opts.Service, timeout: opts.Timeout}, nil
}

// Close closes the underlying connection.
func (t *DBusTransport) Close() error {
	if t == nil || t.conn == nil {
		return nil
	}
	return t.conn.Close()
}

// Call invokes iface.method on path.
func (t *DBusTransport) Call(ctx context.Context, path dbus.ObjectPath, iface, method string, args ...any) ([]any, error) {
	ctx, cancel := t.callContext(ctx)
	defer cancel()

	call := t.conn.Object(t.service, path).CallWithContext(ctx, member(iface, method), 0, args...)
	if call.Err != nil {
		return nil, call.Err
	}
	return call.Body, nil
}

// GetProperty reads iface.name on path through org.freedesktop.DBus.Properties.
func (t *DBusTransport) GetProperty(ctx context.Context, path dbus.ObjectPath, iface, name string) (any, error) {
	ctx, cancel := t.callContext(ctx)
	defer cancel()

	var value dbus.Variant
	call := t.conn.Object(t.service, path).CallWithContext(ctx, propertiesGet, 0, iface, name)
	if err := call.Store(&value); err != nil {
		return nil, err
	}
	return value.Value(), nil
}

func (t *DBusTransport) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if t.timeout <= 0 {
		return ctx, func() {}
	}
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, t.timeout)
}
