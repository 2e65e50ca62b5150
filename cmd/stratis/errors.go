package main

import (
	"errors"

	"stratis/internal/actions"
	"stratis/internal/bus"
	"stratis/internal/config"
	"stratis/internal/errcodes"
)

const (
	exitOK        = 0
	exitUsage     = 2
	exitTransport = 3

	// Domain failures exit with exitDomainBase plus the daemon's return
	// code, clamped so shells never see a signal-style status.
	exitDomainBase = 10
	exitDomainMax  = 125
)

// usageError marks a malformed invocation.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

func newUsageError(err error) error {
	if err == nil {
		return nil
	}
	return &usageError{err: err}
}

// exitCode maps err to the process status. Errors raised before any handler
// started (argument counts, flag groups, unknown commands, bad config) are
// usage errors.
func exitCode(err error, started bool) int {
	if err == nil {
		return exitOK
	}
	if e, ok := errcodes.AsError(err); ok {
		return domainExitCode(e.Code)
	}
	var ue *usageError
	if errors.As(err, &ue) || actions.IsUsage(err) {
		return exitUsage
	}
	if bus.IsTransport(err) {
		return exitTransport
	}
	if !started {
		return exitUsage
	}
	return exitTransport
}

// domainExitCode maps a daemon return code into exitDomainBase..exitDomainMax.
func domainExitCode(code int) int {
	switch {
	case code < 0:
		return exitDomainBase
	case code > exitDomainMax-exitDomainBase:
		return exitDomainMax
	}
	return exitDomainBase + code
}

func failureHint(err error) string {
	var te *bus.TransportError
	if !errors.As(err, &te) {
		return ""
	}
	switch {
	case te.Op == "connect":
		return "Hint: the message bus could not be reached; check [bus] address or " + config.BusAddressEnv + "."
	case te.DaemonUnavailable():
		return "Hint: stratisd is not running; start it with `systemctl start stratisd`."
	case te.TimedOut():
		return "Hint: stratisd did not answer in time; raise [bus] timeout_seconds if it is busy."
	}
	return ""
}
