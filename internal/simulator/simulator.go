package simulator

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/godbus/dbus/v5"

	"stratis/internal/bus"
	"stratis/internal/dbusapi"
	"stratis/internal/errcodes"
)

const (
	errUnknownMethod = "org.freedesktop.DBus.Error.UnknownMethod"
	errUnknownObject = "org.freedesktop.DBus.Error.UnknownObject"
	errInvalidArgs   = "org.freedesktop.DBus.Error.InvalidArgs"
	errServiceUnknown = "org.freedesktop.DBus.Error.ServiceUnknown"

	// DefaultDeviceSize is the size reported for every simulated block device.
	DefaultDeviceSize uint64 = 1 << 30
)

var codeNames = []struct{ name, desc string }{
	{errcodes.OK, "Ok"},
	{errcodes.GenericError, "A general error happened"},
	{"STRATIS_NULL", "Null parameter was supplied"},
	{errcodes.NotFound, "Not found"},
	{errcodes.PoolNotFound, "Pool not found"},
	{errcodes.VolumeNotFound, "Volume not found"},
	{errcodes.DevNotFound, "Device not found"},
	{errcodes.CacheNotFound, "Cache not found"},
	{errcodes.BadParam, "Bad parameter"},
	{errcodes.AlreadyExists, "Already exists"},
	{errcodes.NullName, "Null name supplied"},
	{errcodes.NoPools, "No pools"},
	{errcodes.ListFailure, "List operation failure"},
}

var raidLevels = []dbusapi.CodeEntry{
	{Name: "none", Code: 0, Description: "No redundancy"},
	{Name: "raid1", Code: 1, Description: "Mirrored"},
	{Name: "raid5", Code: 2, Description: "Single parity"},
	{Name: "raid6", Code: 3, Description: "Double parity"},
}

// Option customizes a Daemon.
type Option func(*Daemon)

// WithCodeOffset shifts every published error code by offset, so callers that
// hard-code numeric values break.
func WithCodeOffset(offset int) Option {
	return func(d *Daemon) { d.codeOffset = offset }
}

// WithVersion sets the Version property.
func WithVersion(version string) Option {
	return func(d *Daemon) { d.version = version }
}

// WithLogLevel sets the LogLevel property.
func WithLogLevel(level string) Option {
	return func(d *Daemon) { d.logLevel = level }
}

// Daemon is the simulated stratisd. It is safe for concurrent use.
type Daemon struct {
	mu         sync.Mutex
	codeOffset int
	version    string
	logLevel   string
	down       bool
	nextID     int
	pools      []*pool
	objects    map[dbus.ObjectPath]any
	calls      map[string]int
}

type pool struct {
	path        dbus.ObjectPath
	name        string
	devices     []*device
	cache       []*device
	cachePath   dbus.ObjectPath
	filesystems []*filesystem
}

type filesystem struct {
	path dbus.ObjectPath
	name string
	pool *pool
}

type device struct {
	path    dbus.ObjectPath
	devnode string
	size    uint64
}

var _ bus.Transport = (*Daemon)(nil)

// New returns an empty daemon.
func New(opts ...Option) *Daemon {
	d := &Daemon{
		version:  "0.1.0",
		logLevel: "Info",
		objects:  make(map[dbus.ObjectPath]any),
		calls:    make(map[string]int),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SetDown makes every call fail the way the bus does when stratisd is not running.
func (d *Daemon) SetDown(down bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.down = down
}

// Calls returns how many times method (e.g. "GetErrorCodes") was invoked.
func (d *Daemon) Calls(method string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls[method]
}

// TotalCalls returns the number of method calls and property reads served.
func (d *Daemon) TotalCalls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	total := 0
	for _, n := range d.calls {
		total += n
	}
	return total
}

// ResetCalls clears the call counters.
func (d *Daemon) ResetCalls() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = make(map[string]int)
}

// Code returns the code this daemon publishes for name.
func (d *Daemon) Code(name string) int {
	for i, entry := range codeNames {
		if entry.name == name {
			return i + d.codeOffset
		}
	}
	panic(fmt.Sprintf("simulator: unknown code name %s", name))
}

// Call implements bus.Transport.
func (d *Daemon) Call(ctx context.Context, path dbus.ObjectPath, iface, method string, args ...any) ([]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.down {
		return nil, dbus.Error{Name: errServiceUnknown, Body: []any{"The name " + dbusapi.ServiceName + " was not provided by any .service files"}}
	}
	d.calls[method]++

	if path == dbusapi.ManagerPath {
		if iface != dbusapi.ManagerInterface {
			return nil, unknownMethod(iface, method)
		}
		return d.managerCall(method, args)
	}
	switch obj := d.objects[path].(type) {
	case *pool:
		if path == obj.cachePath {
			if iface != dbusapi.CacheInterface {
				return nil, unknownMethod(iface, method)
			}
			return d.cacheCall(obj, method)
		}
		if iface != dbusapi.PoolInterface {
			return nil, unknownMethod(iface, method)
		}
		return d.poolCall(obj, method, args)
	case *filesystem:
		if iface != dbusapi.FilesystemInterface {
			return nil, unknownMethod(iface, method)
		}
		return d.filesystemCall(obj, method, args)
	case *device:
		return nil, unknownMethod(iface, method)
	default:
		return nil, dbus.Error{Name: errUnknownObject, Body: []any{fmt.Sprintf("no object at %s", path)}}
	}
}

// GetProperty implements bus.Transport.
func (d *Daemon) GetProperty(ctx context.Context, path dbus.ObjectPath, iface, name string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.down {
		return nil, dbus.Error{Name: errServiceUnknown}
	}
	d.calls["Get"]++

	key := iface + "." + name
	if path == dbusapi.ManagerPath {
		switch key {
		case dbusapi.ManagerInterface + ".Version":
			return d.version, nil
		case dbusapi.ManagerInterface + ".LogLevel":
			return d.logLevel, nil
		}
		return nil, unknownProperty(key)
	}
	switch obj := d.objects[path].(type) {
	case *pool:
		if key == dbusapi.PoolInterface+".Name" {
			return obj.name, nil
		}
	case *filesystem:
		if key == dbusapi.FilesystemInterface+".Name" {
			return obj.name, nil
		}
	case *device:
		switch key {
		case dbusapi.BlockDeviceInterface + ".Devnode":
			return obj.devnode, nil
		case dbusapi.BlockDeviceInterface + ".TotalSize":
			return obj.size, nil
		}
	case nil:
		return nil, dbus.Error{Name: errUnknownObject, Body: []any{fmt.Sprintf("no object at %s", path)}}
	}
	return nil, unknownProperty(key)
}

func (d *Daemon) status(name, format string, args ...any) (uint16, string) {
	return uint16(d.Code(name)), fmt.Sprintf(format, args...)
}

func (d *Daemon) ok() (uint16, string) {
	return d.status(errcodes.OK, "Ok")
}

func (d *Daemon) newPath(kind string) dbus.ObjectPath {
	d.nextID++
	return dbus.ObjectPath(fmt.Sprintf("%s/%s/%d", dbusapi.ManagerPath, kind, d.nextID))
}

func (d *Daemon) findPool(name string) *pool {
	for _, p := range d.pools {
		if p.name == name {
			return p
		}
	}
	return nil
}

func (d *Daemon) deviceInUse(devnode string) bool {
	for _, p := range d.pools {
		for _, dev := range append(append([]*device{}, p.devices...), p.cache...) {
			if dev.devnode == devnode {
				return true
			}
		}
	}
	return false
}

func (d *Daemon) newDevices(devnodes []string) []*device {
	out := make([]*device, 0, len(devnodes))
	for _, node := range devnodes {
		dev := &device{path: d.newPath("dev"), devnode: node, size: DefaultDeviceSize}
		d.objects[dev.path] = dev
		out = append(out, dev)
	}
	return out
}

func reply(values ...any) []any { return values }

func unknownMethod(iface, method string) error {
	return dbus.Error{Name: errUnknownMethod, Body: []any{fmt.Sprintf("unknown method %s.%s", iface, method)}}
}

func unknownProperty(key string) error {
	return dbus.Error{Name: errInvalidArgs, Body: []any{fmt.Sprintf("unknown property %s", key)}}
}

func invalidArgs(method string, args []any) error {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprintf("%T", a)
	}
	return dbus.Error{Name: errInvalidArgs, Body: []any{fmt.Sprintf("%s: unexpected arguments (%s)", method, strings.Join(parts, ", "))}}
}
