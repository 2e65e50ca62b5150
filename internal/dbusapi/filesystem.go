package dbusapi

import (
	"context"

	"github.com/godbus/dbus/v5"

	"stratis/internal/bus"
)

// Filesystem wraps a single filesystem object. Obtain the path from
// Manager.GetVolumeObjectPath.
type Filesystem struct {
	binding bus.Binding
}

// NewFilesystem binds the filesystem interface at path.
func NewFilesystem(transport bus.Transport, path dbus.ObjectPath) *Filesystem {
	return &Filesystem{binding: bus.NewBinding(transport, path, FilesystemInterface)}
}

// SetName renames the filesystem.
func (f *Filesystem) SetName(ctx context.Context, name string) (FlagResult, error) {
	body, err := f.binding.Invoke(ctx, "SetName", name)
	if err != nil {
		return FlagResult{}, err
	}
	return decodeFlagResult("SetName", body)
}

// Name reads the filesystem name property.
func (f *Filesystem) Name(ctx context.Context) (string, error) {
	value, err := f.binding.Property(ctx, "Name")
	if err != nil {
		return "", err
	}
	var name string
	if err := decodeProperty("Name", value, &name); err != nil {
		return "", err
	}
	return name, nil
}
