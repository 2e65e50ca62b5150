package dbusapi

import (
	"context"

	"github.com/godbus/dbus/v5"

	"stratis/internal/bus"
)

// BlockDevice wraps one pool member. Paths come from Pool.ListDevs or
// Cache.ListDevs.
type BlockDevice struct {
	binding bus.Binding
}

// NewBlockDevice binds the blockdev interface at path.
func NewBlockDevice(transport bus.Transport, path dbus.ObjectPath) *BlockDevice {
	return &BlockDevice{binding: bus.NewBinding(transport, path, BlockDeviceInterface)}
}

// Devnode reads the device node the member was added as.
func (d *BlockDevice) Devnode(ctx context.Context) (string, error) {
	value, err := d.binding.Property(ctx, "Devnode")
	if err != nil {
		return "", err
	}
	var devnode string
	if err := decodeProperty("Devnode", value, &devnode); err != nil {
		return "", err
	}
	return devnode, nil
}

// TotalSize reads the member size in bytes.
func (d *BlockDevice) TotalSize(ctx context.Context) (uint64, error) {
	value, err := d.binding.Property(ctx, "TotalSize")
	if err != nil {
		return 0, err
	}
	var size uint64
	if err := decodeProperty("TotalSize", value, &size); err != nil {
		return 0, err
	}
	return size, nil
}
