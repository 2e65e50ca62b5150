package dbusapi

import "github.com/godbus/dbus/v5"

// Status is the (return code, message) pair stratisd appends to replies.
type Status struct {
	Code    int
	Message string
}

// CodeEntry is one (name, code, description) triple as published by
// GetErrorCodes and GetRaidLevels.
type CodeEntry struct {
	Name        string
	Code        int
	Description string
}

// PathResult carries an object path returned by a lookup or create call.
type PathResult struct {
	Path   dbus.ObjectPath
	Status Status
}

// FlagResult carries the boolean payload of DestroyPool and SetName.
type FlagResult struct {
	Changed bool
	Status  Status
}

// NamesResult carries a list of names.
type NamesResult struct {
	Names  []string
	Status Status
}

// NamedPath pairs an object path with the name the daemon assigned it.
type NamedPath struct {
	Path dbus.ObjectPath
	Name string
}

// FilesystemsResult is returned by Pool.CreateFilesystems.
type FilesystemsResult struct {
	Filesystems []NamedPath
	Status      Status
}

// Device describes one pool or cache member as listed by ListDevs.
type Device struct {
	Path      dbus.ObjectPath
	Devnode   string
	TotalSize uint64
}

// DevicesResult is returned by ListDevs.
type DevicesResult struct {
	Devices []Device
	Status  Status
}
