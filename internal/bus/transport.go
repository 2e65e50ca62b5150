package bus

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/godbus/dbus/v5"
)

// Transport performs raw calls against objects exported by one bus service.
// Implementations must be safe for concurrent use.
type Transport interface {
	Call(ctx context.Context, path dbus.ObjectPath, iface, method string, args ...any) ([]any, error)
	GetProperty(ctx context.Context, path dbus.ObjectPath, iface, name string) (any, error)
}

const (
	errServiceUnknown = "org.freedesktop.DBus.Error.ServiceUnknown"
	errNameHasNoOwner = "org.freedesktop.DBus.Error.NameHasNoOwner"
	errNoReply        = "org.freedesktop.DBus.Error.NoReply"
	errTimeout        = "org.freedesktop.DBus.Error.Timeout"
)

// TransportError reports that a call could not be completed by the bus: the
// bus is unreachable, stratisd is not running, or the call timed out.
type TransportError struct {
	Op     string
	Path   dbus.ObjectPath
	Member string
	Err    error
}

func (e *TransportError) Error() string {
	var b strings.Builder
	b.WriteString("bus ")
	b.WriteString(e.Op)
	if e.Member != "" {
		b.WriteByte(' ')
		b.WriteString(e.Member)
	}
	if e.Path != "" {
		b.WriteString(" on ")
		b.WriteString(string(e.Path))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *TransportError) Unwrap() error { return e.Err }

// DaemonUnavailable reports whether the bus answered but nothing owns the
// stratisd service name.
func (e *TransportError) DaemonUnavailable() bool {
	switch errorName(e.Err) {
	case errServiceUnknown, errNameHasNoOwner:
		return true
	}
	return false
}

// TimedOut reports whether the call was abandoned because no reply arrived in time.
func (e *TransportError) TimedOut() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	switch errorName(e.Err) {
	case errNoReply, errTimeout:
		return true
	}
	return false
}

// IsTransport reports whether err, or anything it wraps, is a *TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

func errorName(err error) string {
	var dbusErr dbus.Error
	if errors.As(err, &dbusErr) {
		return dbusErr.Name
	}
	var dbusErrPtr *dbus.Error
	if errors.As(err, &dbusErrPtr) && dbusErrPtr != nil {
		return dbusErrPtr.Name
	}
	return ""
}

func wrapTransport(op string, path dbus.ObjectPath, member string, err error) error {
	if err == nil {
		return nil
	}
	var te *TransportError
	if errors.As(err, &te) {
		return err
	}
	return &TransportError{Op: op, Path: path, Member: member, Err: err}
}

func member(iface, name string) string {
	if iface == "" {
		return name
	}
	return fmt.Sprintf("%s.%s", iface, name)
}
