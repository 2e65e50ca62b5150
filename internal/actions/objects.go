package actions

import (
	"github.com/godbus/dbus/v5"

	"stratis/internal/dbusapi"
)

func (c *Client) pool(path dbus.ObjectPath) *dbusapi.Pool {
	return dbusapi.NewPool(c.transport, path)
}

func (c *Client) filesystem(path dbus.ObjectPath) *dbusapi.Filesystem {
	return dbusapi.NewFilesystem(c.transport, path)
}

func (c *Client) cache(path dbus.ObjectPath) *dbusapi.Cache {
	return dbusapi.NewCache(c.transport, path)
}

func (c *Client) blockDevice(path dbus.ObjectPath) *dbusapi.BlockDevice {
	return dbusapi.NewBlockDevice(c.transport, path)
}
