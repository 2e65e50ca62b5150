package errcodes

import (
	"errors"
	"strings"
)

// Kind classifies a daemon-reported failure.
type Kind int

const (
	// KindDomain is a failed primary operation.
	KindDomain Kind = iota
	// KindResolution is a failed name-to-path lookup that ran before the
	// primary operation.
	KindResolution
)

func (k Kind) String() string {
	switch k {
	case KindResolution:
		return "resolution"
	default:
		return "domain"
	}
}

// Error is a failure stratisd reported through a return code. The process
// keeps running; the CLI turns it into a non-zero exit status.
type Error struct {
	Kind        Kind
	Op          string
	Target      string
	Code        int
	Name        string
	Description string
	Message     string
}

func (e *Error) Error() string {
	parts := make([]string, 0, 4)
	if e.Op != "" {
		op := e.Op
		if e.Target != "" {
			op += " " + e.Target
		}
		parts = append(parts, op)
	}
	parts = append(parts, e.Name)
	if e.Description != "" {
		parts = append(parts, e.Description)
	}
	if msg := strings.TrimSpace(e.Message); msg != "" && msg != e.Description {
		parts = append(parts, msg)
	}
	return strings.Join(parts, ": ")
}

// NotFound reports whether the daemon said the target does not exist.
func (e *Error) NotFound() bool {
	return strings.HasSuffix(e.Name, "_NOTFOUND")
}

// AsError extracts a *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsCode reports whether err carries the daemon code registered under name.
// The comparison is by name so it survives renumbering between daemon versions.
func IsCode(err error, name string) bool {
	e, ok := AsError(err)
	return ok && e.Name == name
}
