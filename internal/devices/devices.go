package devices

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"stratis/internal/logging"
)

var (
	// ErrNotFound means the path does not exist.
	ErrNotFound = errors.New("no such device")
	// ErrNotBlockDevice means the path exists but is not a block special file.
	ErrNotBlockDevice = errors.New("not a block device")
	// ErrDuplicate means two arguments name the same device.
	ErrDuplicate = errors.New("device given more than once")
)

// Error describes why a device argument was rejected.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string { return fmt.Sprintf("device %s: %v", e.Path, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

// Device is an accepted argument.
type Device struct {
	// Path is the absolute path sent to the daemon.
	Path string
	// Resolved is Path with symlinks evaluated.
	Resolved string
	// Size is the capacity in bytes, or zero when it could not be read.
	Size uint64
}

// Checker validates device arguments.
type Checker interface {
	Check(paths []string) ([]Device, error)
}

// System is the slice of the OS the checker needs.
type System interface {
	EvalSymlinks(path string) (string, error)
	IsBlockDevice(path string) (bool, error)
	BlockDeviceSize(path string) (uint64, error)
}

// Preflight is the default Checker.
type Preflight struct {
	sys    System
	logger *slog.Logger
}

// NewPreflight returns a checker backed by sys. A nil sys uses the host.
func NewPreflight(sys System, logger *slog.Logger) *Preflight {
	if sys == nil {
		sys = Host{}
	}
	return &Preflight{sys: sys, logger: logging.NewComponentLogger(logger, "devices")}
}

// Check validates paths in order and returns the accepted devices. It stops
// at the first rejected argument.
func (p *Preflight) Check(paths []string) ([]Device, error) {
	seen := make(map[string]string, len(paths))
	out := make([]Device, 0, len(paths))
	for _, raw := range paths {
		abs, err := filepath.Abs(raw)
		if err != nil {
			return nil, &Error{Path: raw, Err: err}
		}
		resolved, err := p.sys.EvalSymlinks(abs)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, &Error{Path: raw, Err: ErrNotFound}
			}
			return nil, &Error{Path: raw, Err: err}
		}
		if first, dup := seen[resolved]; dup {
			return nil, &Error{Path: raw, Err: fmt.Errorf("%w (same as %s)", ErrDuplicate, first)}
		}
		seen[resolved] = raw

		block, err := p.sys.IsBlockDevice(resolved)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, &Error{Path: raw, Err: ErrNotFound}
			}
			return nil, &Error{Path: raw, Err: err}
		}
		if !block {
			return nil, &Error{Path: raw, Err: ErrNotBlockDevice}
		}

		size, err := p.sys.BlockDeviceSize(resolved)
		if err != nil {
			p.logger.Debug("device size unavailable",
				logging.String("device", raw),
				logging.Error(err),
			)
			size = 0
		}
		p.logger.Debug("device accepted",
			logging.String("device", raw),
			logging.String("resolved", resolved),
			logging.String("size", humanize.IBytes(size)),
		)
		out = append(out, Device{Path: abs, Resolved: resolved, Size: size})
	}
	return out, nil
}

// Paths returns the Path of every device.
func Paths(devs []Device) []string {
	out := make([]string, len(devs))
	for i, d := range devs {
		out[i] = d.Path
	}
	return out
}

// Skip is a Checker that accepts every argument unchanged.
type Skip struct{}

// Check returns paths as devices without touching the filesystem.
func (Skip) Check(paths []string) ([]Device, error) {
	out := make([]Device, len(paths))
	for i, p := range paths {
		out[i] = Device{Path: p, Resolved: p}
	}
	return out, nil
}
