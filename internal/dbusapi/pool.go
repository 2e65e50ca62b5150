package dbusapi

import (
	"context"

	"github.com/godbus/dbus/v5"

	"stratis/internal/bus"
)

// Pool wraps the per-pool interface. Obtain the path from
// Manager.GetPoolObjectPath.
type Pool struct {
	binding bus.Binding
}

// NewPool binds the pool interface at path.
func NewPool(transport bus.Transport, path dbus.ObjectPath) *Pool {
	return &Pool{binding: bus.NewBinding(transport, path, PoolInterface)}
}

// CreateFilesystems creates one filesystem per name.
func (p *Pool) CreateFilesystems(ctx context.Context, names []string) (FilesystemsResult, error) {
	const method = "CreateFilesystems"
	body, err := p.binding.Invoke(ctx, method, names)
	if err != nil {
		return FilesystemsResult{}, err
	}
	return decodeFilesystemsResult(method, body)
}

// DestroyFilesystems removes the named filesystems and returns the names destroyed.
func (p *Pool) DestroyFilesystems(ctx context.Context, names []string) (NamesResult, error) {
	body, err := p.binding.Invoke(ctx, "DestroyFilesystems", names)
	if err != nil {
		return NamesResult{}, err
	}
	return decodeNamesResult("DestroyFilesystems", body)
}

// ListFilesystems returns the filesystem names in the pool.
func (p *Pool) ListFilesystems(ctx context.Context) (NamesResult, error) {
	body, err := p.binding.Invoke(ctx, "ListFilesystems")
	if err != nil {
		return NamesResult{}, err
	}
	return decodeNamesResult("ListFilesystems", body)
}

// AddDevs adds data devices and returns the devnodes accepted.
func (p *Pool) AddDevs(ctx context.Context, devices []string) (NamesResult, error) {
	body, err := p.binding.Invoke(ctx, "AddDevs", devices)
	if err != nil {
		return NamesResult{}, err
	}
	return decodeNamesResult("AddDevs", body)
}

// AddCacheDevs adds cache devices and returns the devnodes accepted.
func (p *Pool) AddCacheDevs(ctx context.Context, devices []string) (NamesResult, error) {
	body, err := p.binding.Invoke(ctx, "AddCacheDevs", devices)
	if err != nil {
		return NamesResult{}, err
	}
	return decodeNamesResult("AddCacheDevs", body)
}

// ListDevs returns the data devices of the pool.
func (p *Pool) ListDevs(ctx context.Context) (DevicesResult, error) {
	body, err := p.binding.Invoke(ctx, "ListDevs")
	if err != nil {
		return DevicesResult{}, err
	}
	return decodeDevicesResult("ListDevs", body)
}

// SetName renames the pool.
func (p *Pool) SetName(ctx context.Context, name string) (FlagResult, error) {
	body, err := p.binding.Invoke(ctx, "SetName", name)
	if err != nil {
		return FlagResult{}, err
	}
	return decodeFlagResult("SetName", body)
}

// Name reads the pool name property.
func (p *Pool) Name(ctx context.Context) (string, error) {
	value, err := p.binding.Property(ctx, "Name")
	if err != nil {
		return "", err
	}
	var name string
	if err := decodeProperty("Name", value, &name); err != nil {
		return "", err
	}
	return name, nil
}
