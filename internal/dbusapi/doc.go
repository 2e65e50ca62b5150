// Package dbusapi wraps the interfaces stratisd exports on D-Bus.
//
// Each wrapper (Manager, Pool, Cache, Filesystem, BlockDevice) fixes one
// interface name and forwards domain-named operations through a bus.Binding.
// Replies are decoded here, once, into typed records so callers never handle
// raw reply bodies. Daemon-reported status pairs are returned as Status values
// and are not interpreted; the errcodes package decides what they mean.
package dbusapi
