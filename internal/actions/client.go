package actions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/godbus/dbus/v5"

	"stratis/internal/bus"
	"stratis/internal/dbusapi"
	"stratis/internal/devices"
	"stratis/internal/errcodes"
	"stratis/internal/logging"
)

// Client dispatches actions over one transport. It is safe for concurrent
// use when the transport is.
type Client struct {
	transport bus.Transport
	manager   *dbusapi.Manager
	catalog   *errcodes.Catalog
	devices   devices.Checker
	logger    *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithCatalog shares an existing catalog instead of building one.
func WithCatalog(catalog *errcodes.Catalog) Option {
	return func(c *Client) { c.catalog = catalog }
}

// WithDeviceChecker replaces the device preflight. Pass devices.Skip{} to
// disable it.
func WithDeviceChecker(checker devices.Checker) Option {
	return func(c *Client) { c.devices = checker }
}

// New returns a client for transport.
func New(transport bus.Transport, opts ...Option) *Client {
	c := &Client{transport: transport, manager: dbusapi.NewManager(transport)}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.NewNop()
	}
	if c.catalog == nil {
		c.catalog = errcodes.New(c.manager, errcodes.WithLogger(c.logger))
	}
	if c.devices == nil {
		c.devices = devices.NewPreflight(nil, c.logger)
	}
	c.logger = logging.NewComponentLogger(c.logger, "actions")
	return c
}

// Catalog returns the error code catalog the client checks statuses against.
func (c *Client) Catalog() *errcodes.Catalog { return c.catalog }

// Manager returns the manager wrapper.
func (c *Client) Manager() *dbusapi.Manager { return c.manager }

func (c *Client) log(ctx context.Context) *slog.Logger {
	return logging.WithContext(ctx, c.logger)
}

// begin loads the catalog so a mutation is never followed by an unreadable
// status.
func (c *Client) begin(ctx context.Context) error {
	return c.catalog.EnsureLoaded(ctx)
}

func (c *Client) resolvePool(ctx context.Context, op, pool string) (dbus.ObjectPath, error) {
	res, err := c.manager.GetPoolObjectPath(ctx, pool)
	if err != nil {
		return "", err
	}
	if err := c.catalog.CheckLookup(ctx, op, pool, res.Status); err != nil {
		return "", err
	}
	c.log(ctx).Debug("pool resolved", logging.String("pool", pool), logging.String(logging.FieldObjectPath, string(res.Path)))
	return res.Path, nil
}

func (c *Client) resolveFilesystem(ctx context.Context, op, pool, name string) (dbus.ObjectPath, error) {
	res, err := c.manager.GetVolumeObjectPath(ctx, pool, name)
	if err != nil {
		return "", err
	}
	if err := c.catalog.CheckLookup(ctx, op, pool+"/"+name, res.Status); err != nil {
		return "", err
	}
	return res.Path, nil
}

// resolveCache returns ok=false when the pool exists but has no cache tier.
func (c *Client) resolveCache(ctx context.Context, op, pool string) (dbus.ObjectPath, bool, error) {
	res, err := c.manager.GetCacheObjectPath(ctx, pool)
	if err != nil {
		return "", false, err
	}
	if err := c.catalog.CheckLookup(ctx, op, pool, res.Status); err != nil {
		if errcodes.IsCode(err, errcodes.CacheNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return res.Path, true, nil
}

// notFound builds a resolution failure for lookups the client performs
// itself, using the daemon's own code for name.
func (c *Client) notFound(ctx context.Context, op, target, name, message string) error {
	code, err := c.catalog.CodeFor(ctx, name)
	if err != nil {
		return fmt.Errorf("%s %s: %s: %w", op, target, message, err)
	}
	_, desc, err := c.catalog.Describe(ctx, code)
	if err != nil {
		return fmt.Errorf("%s %s: %s: %w", op, target, message, err)
	}
	return &errcodes.Error{
		Kind:        errcodes.KindResolution,
		Op:          op,
		Target:      target,
		Code:        code,
		Name:        name,
		Description: desc,
		Message:     message,
	}
}

func (c *Client) checkDevices(paths []string) ([]string, error) {
	accepted, err := c.devices.Check(paths)
	if err != nil {
		return nil, err
	}
	return devices.Paths(accepted), nil
}

// IsUsage reports whether err was caused by bad arguments rather than by the
// daemon or the bus.
func IsUsage(err error) bool {
	var devErr *devices.Error
	return errors.As(err, &devErr) || errors.Is(err, ErrUnknownRedundancy)
}
