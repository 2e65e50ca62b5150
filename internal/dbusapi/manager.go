package dbusapi

import (
	"context"

	"github.com/godbus/dbus/v5"

	"stratis/internal/bus"
)

// Manager wraps the top-level stratisd interface.
type Manager struct {
	binding bus.Binding
}

// NewManager binds the Manager interface at ManagerPath.
func NewManager(transport bus.Transport) *Manager {
	return &Manager{binding: bus.NewBinding(transport, ManagerPath, ManagerInterface)}
}

// CreatePool asks the daemon to build a pool named name from devices.
func (m *Manager) CreatePool(ctx context.Context, name string, devices []string, redundancy uint16) (PathResult, error) {
	body, err := m.binding.Invoke(ctx, "CreatePool", name, devices, redundancy)
	if err != nil {
		return PathResult{}, err
	}
	return decodePathResult("CreatePool", body)
}

// DestroyPool asks the daemon to tear down the named pool.
func (m *Manager) DestroyPool(ctx context.Context, name string) (FlagResult, error) {
	body, err := m.binding.Invoke(ctx, "DestroyPool", name)
	if err != nil {
		return FlagResult{}, err
	}
	return decodeFlagResult("DestroyPool", body)
}

// GetPoolObjectPath resolves a pool name.
func (m *Manager) GetPoolObjectPath(ctx context.Context, name string) (PathResult, error) {
	body, err := m.binding.Invoke(ctx, "GetPoolObjectPath", name)
	if err != nil {
		return PathResult{}, err
	}
	return decodePathResult("GetPoolObjectPath", body)
}

// GetVolumeObjectPath resolves a filesystem within a pool.
func (m *Manager) GetVolumeObjectPath(ctx context.Context, pool, volume string) (PathResult, error) {
	body, err := m.binding.Invoke(ctx, "GetVolumeObjectPath", pool, volume)
	if err != nil {
		return PathResult{}, err
	}
	return decodePathResult("GetVolumeObjectPath", body)
}

// GetCacheObjectPath resolves the cache tier of a pool.
func (m *Manager) GetCacheObjectPath(ctx context.Context, pool string) (PathResult, error) {
	body, err := m.binding.Invoke(ctx, "GetCacheObjectPath", pool)
	if err != nil {
		return PathResult{}, err
	}
	return decodePathResult("GetCacheObjectPath", body)
}

// ListPools returns a snapshot of the pool names known to the daemon.
func (m *Manager) ListPools(ctx context.Context) (NamesResult, error) {
	body, err := m.binding.Invoke(ctx, "ListPools")
	if err != nil {
		return NamesResult{}, err
	}
	return decodeNamesResult("ListPools", body)
}

// GetErrorCodes returns the daemon's error code table. Callers should go
// through errcodes.Catalog rather than calling this directly.
func (m *Manager) GetErrorCodes(ctx context.Context) ([]CodeEntry, error) {
	body, err := m.binding.Invoke(ctx, "GetErrorCodes")
	if err != nil {
		return nil, err
	}
	return decodeCodeEntries("GetErrorCodes", body)
}

// GetRaidLevels returns the redundancy designations the daemon understands.
func (m *Manager) GetRaidLevels(ctx context.Context) ([]CodeEntry, error) {
	body, err := m.binding.Invoke(ctx, "GetRaidLevels")
	if err != nil {
		return nil, err
	}
	return decodeCodeEntries("GetRaidLevels", body)
}

// Version reads the daemon version property.
func (m *Manager) Version(ctx context.Context) (string, error) {
	return m.stringProperty(ctx, "Version")
}

// LogLevel reads the daemon log level property.
func (m *Manager) LogLevel(ctx context.Context) (string, error) {
	return m.stringProperty(ctx, "LogLevel")
}

func (m *Manager) stringProperty(ctx context.Context, name string) (string, error) {
	value, err := m.binding.Property(ctx, name)
	if err != nil {
		return "", err
	}
	var s string
	if err := decodeProperty(name, value, &s); err != nil {
		return "", err
	}
	return s, nil
}

// Path returns the manager object path.
func (m *Manager) Path() dbus.ObjectPath { return m.binding.Path() }
