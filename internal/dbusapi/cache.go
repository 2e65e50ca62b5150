package dbusapi

import (
	"context"

	"github.com/godbus/dbus/v5"

	"stratis/internal/bus"
)

// Cache wraps the cache tier of a pool. Obtain the path from
// Manager.GetCacheObjectPath.
type Cache struct {
	binding bus.Binding
}

// NewCache binds the cache interface at path.
func NewCache(transport bus.Transport, path dbus.ObjectPath) *Cache {
	return &Cache{binding: bus.NewBinding(transport, path, CacheInterface)}
}

// ListDevs returns the cache devices.
func (c *Cache) ListDevs(ctx context.Context) (DevicesResult, error) {
	body, err := c.binding.Invoke(ctx, "ListDevs")
	if err != nil {
		return DevicesResult{}, err
	}
	return decodeDevicesResult("ListDevs", body)
}
