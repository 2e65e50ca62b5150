package dbusapi

import "github.com/godbus/dbus/v5"

const (
	// ServiceName is the well-known bus name owned by stratisd.
	ServiceName = "org.storage.stratis1"
	// ManagerPath is the object exporting the Manager interface.
	ManagerPath dbus.ObjectPath = "/org/storage/stratis1"

	ManagerInterface     = "org.storage.stratis1.Manager"
	PoolInterface        = "org.storage.stratis1.pool"
	CacheInterface       = "org.storage.stratis1.cache"
	FilesystemInterface  = "org.storage.stratis1.filesystem"
	BlockDeviceInterface = "org.storage.stratis1.blockdev"
)
