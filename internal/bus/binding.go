package bus

import (
	"context"

	"github.com/godbus/dbus/v5"
)

// Binding is a handle on one interface of one remote object. It does not own
// the Transport; whoever dialed it closes it.
type Binding struct {
	transport Transport
	path      dbus.ObjectPath
	iface     string
}

// NewBinding pairs an object path with an interface name on transport.
func NewBinding(transport Transport, path dbus.ObjectPath, iface string) Binding {
	return Binding{transport: transport, path: path, iface: iface}
}

// Path returns the bound object path.
func (b Binding) Path() dbus.ObjectPath { return b.path }

// Interface returns the bound interface name.
func (b Binding) Interface() string { return b.iface }

// Invoke calls method on the bound interface and returns the reply body as
// sent by the daemon. It blocks until a reply or a transport failure; there
// is exactly one attempt.
func (b Binding) Invoke(ctx context.Context, method string, args ...any) ([]any, error) {
	body, err := b.transport.Call(ctx, b.path, b.iface, method, args...)
	if err != nil {
		return nil, wrapTransport("call", b.path, member(b.iface, method), err)
	}
	return body, nil
}

// Property reads a property of the bound interface.
func (b Binding) Property(ctx context.Context, name string) (any, error) {
	return b.PropertyOf(ctx, b.iface, name)
}

// PropertyOf reads a property of an arbitrary interface on the bound object.
func (b Binding) PropertyOf(ctx context.Context, iface, name string) (any, error) {
	value, err := b.transport.GetProperty(ctx, b.path, iface, name)
	if err != nil {
		return nil, wrapTransport("get property", b.path, member(iface, name), err)
	}
	return value, nil
}
