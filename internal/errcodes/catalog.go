package errcodes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"stratis/internal/dbusapi"
	"stratis/internal/logging"
)

// ErrUnknownName is returned when a symbolic name is absent from the catalog.
var ErrUnknownName = errors.New("error name not published by stratisd")

// ErrUnknownCode is returned when a numeric code is absent from the catalog.
var ErrUnknownCode = errors.New("return code not published by stratisd")

// Source supplies the daemon's code table. *dbusapi.Manager satisfies it.
type Source interface {
	GetErrorCodes(ctx context.Context) ([]dbusapi.CodeEntry, error)
}

// Option customizes a Catalog.
type Option func(*Catalog)

// WithLogger attaches a logger for fetch diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		c.logger = logging.NewComponentLogger(logger, "errcodes")
	}
}

// Catalog is the per-process view of the daemon's error codes. The zero value
// is not usable; construct with New. A Catalog is safe for concurrent use:
// loading is single-flight and reads after loading take no locks.
type Catalog struct {
	source Source
	logger *slog.Logger
	group  singleflight.Group
	table  atomic.Pointer[table]
}

type table struct {
	ordered []dbusapi.CodeEntry
	byName  map[string]dbusapi.CodeEntry
	byCode  map[int]dbusapi.CodeEntry
}

// New returns an unloaded catalog backed by source.
func New(source Source, opts ...Option) *Catalog {
	c := &Catalog{source: source, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// EnsureLoaded fetches the table if no earlier call has. A failed fetch is
// not cached; the next call tries again.
func (c *Catalog) EnsureLoaded(ctx context.Context) error {
	_, err := c.load(ctx)
	return err
}

// Loaded reports whether the table has been fetched.
func (c *Catalog) Loaded() bool {
	return c.table.Load() != nil
}

// CodeFor resolves a symbolic name to the daemon's numeric code.
func (c *Catalog) CodeFor(ctx context.Context, name string) (int, error) {
	t, err := c.load(ctx)
	if err != nil {
		return 0, err
	}
	entry, ok := t.byName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownName, name)
	}
	return entry.Code, nil
}

// Describe resolves a numeric code to its symbolic name and description.
func (c *Catalog) Describe(ctx context.Context, code int) (string, string, error) {
	t, err := c.load(ctx)
	if err != nil {
		return "", "", err
	}
	entry, ok := t.byCode[code]
	if !ok {
		return "", "", fmt.Errorf("%w: %d", ErrUnknownCode, code)
	}
	return entry.Name, entry.Description, nil
}

// Entries returns the table in the order the daemon published it.
func (c *Catalog) Entries(ctx context.Context) ([]dbusapi.CodeEntry, error) {
	t, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dbusapi.CodeEntry, len(t.ordered))
	copy(out, t.ordered)
	return out, nil
}

// Check converts a daemon status into nil on success or a domain *Error.
func (c *Catalog) Check(ctx context.Context, op, target string, status dbusapi.Status) error {
	return c.check(ctx, KindDomain, op, target, status)
}

// CheckLookup is Check for name-to-path resolution calls; failures carry
// KindResolution.
func (c *Catalog) CheckLookup(ctx context.Context, op, target string, status dbusapi.Status) error {
	return c.check(ctx, KindResolution, op, target, status)
}

func (c *Catalog) check(ctx context.Context, kind Kind, op, target string, status dbusapi.Status) error {
	t, err := c.load(ctx)
	if err != nil {
		return err
	}
	if status.Code == t.okCode() {
		return nil
	}
	name, desc := "UNKNOWN", "unrecognized return code"
	if entry, ok := t.byCode[status.Code]; ok {
		name, desc = entry.Name, entry.Description
	}
	return &Error{
		Kind:        kind,
		Op:          op,
		Target:      target,
		Code:        status.Code,
		Name:        name,
		Description: desc,
		Message:     status.Message,
	}
}

func (c *Catalog) load(ctx context.Context) (*table, error) {
	if t := c.table.Load(); t != nil {
		return t, nil
	}
	v, err, _ := c.group.Do("catalog", func() (any, error) {
		// A caller that lost the race may arrive after the winner stored.
		if t := c.table.Load(); t != nil {
			return t, nil
		}
		entries, err := c.source.GetErrorCodes(ctx)
		if err != nil {
			c.logger.Debug("error code fetch failed", logging.Error(err))
			return nil, fmt.Errorf("fetch error codes: %w", err)
		}
		t := buildTable(entries)
		c.table.Store(t)
		c.logger.Debug("error codes loaded", logging.Int("count", len(t.ordered)))
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*table), nil
}

func buildTable(entries []dbusapi.CodeEntry) *table {
	t := &table{
		ordered: make([]dbusapi.CodeEntry, len(entries)),
		byName:  make(map[string]dbusapi.CodeEntry, len(entries)),
		byCode:  make(map[int]dbusapi.CodeEntry, len(entries)),
	}
	copy(t.ordered, entries)
	for _, entry := range entries {
		if _, dup := t.byName[entry.Name]; !dup {
			t.byName[entry.Name] = entry
		}
		if _, dup := t.byCode[entry.Code]; !dup {
			t.byCode[entry.Code] = entry
		}
	}
	return t
}

// okCode falls back to zero when the daemon does not publish STRATIS_OK.
func (t *table) okCode() int {
	if entry, ok := t.byName[OK]; ok {
		return entry.Code
	}
	return 0
}
