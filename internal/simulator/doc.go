// Package simulator is an in-memory stratisd that speaks the bus.Transport
// contract. Tests drive the CLI and the action layer against it the same way
// they would drive the real daemon over D-Bus, including reply shapes,
// return codes, and bus-level failures.
package simulator
