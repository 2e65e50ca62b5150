// Package bus binds the CLI to stratisd over D-Bus.
//
// It owns the Transport abstraction (method calls and property reads against
// an object path on a fixed service), the godbus-backed implementation used in
// production, and Binding, the thin handle that pairs one object path with one
// interface name. Failures of the bus itself surface as *TransportError so
// callers can tell them apart from statuses reported by the daemon.
//
// The package performs no retries and does not interpret reply bodies; typed
// decoding lives in the dbusapi package.
package bus
