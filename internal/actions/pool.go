package actions

import (
	"context"

	"github.com/godbus/dbus/v5"

	"stratis/internal/logging"
)

// CreatePool builds a pool from devicePaths with the named redundancy
// designation. An empty designation means "none".
func (c *Client) CreatePool(ctx context.Context, name string, devicePaths []string, redundancy string) (dbus.ObjectPath, error) {
	const op = "create pool"
	paths, err := c.checkDevices(devicePaths)
	if err != nil {
		return "", err
	}
	if err := c.begin(ctx); err != nil {
		return "", err
	}
	code, err := c.ResolveRedundancy(ctx, redundancy)
	if err != nil {
		return "", err
	}
	res, err := c.manager.CreatePool(ctx, name, paths, code)
	if err != nil {
		return "", err
	}
	if err := c.catalog.Check(ctx, op, name, res.Status); err != nil {
		return "", err
	}
	c.log(ctx).Info("pool created",
		logging.String("pool", name),
		logging.Strings("devices", paths),
		logging.String(logging.FieldObjectPath, string(res.Path)),
	)
	return res.Path, nil
}

// DestroyPool tears down the named pool. The daemon decides whether that is
// safe.
func (c *Client) DestroyPool(ctx context.Context, name string) error {
	if err := c.begin(ctx); err != nil {
		return err
	}
	res, err := c.manager.DestroyPool(ctx, name)
	if err != nil {
		return err
	}
	if err := c.catalog.Check(ctx, "destroy pool", name, res.Status); err != nil {
		return err
	}
	c.log(ctx).Info("pool destroyed", logging.String("pool", name))
	return nil
}

// ListPools returns the pool names in the order the daemon reports them.
func (c *Client) ListPools(ctx context.Context) ([]string, error) {
	if err := c.begin(ctx); err != nil {
		return nil, err
	}
	res, err := c.manager.ListPools(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.catalog.Check(ctx, "list pools", "", res.Status); err != nil {
		return nil, err
	}
	return res.Names, nil
}

// RenamePool changes a pool's name. changed is false when the new name equals
// the old one.
func (c *Client) RenamePool(ctx context.Context, current, next string) (bool, error) {
	const op = "rename pool"
	if err := c.begin(ctx); err != nil {
		return false, err
	}
	path, err := c.resolvePool(ctx, op, current)
	if err != nil {
		return false, err
	}
	res, err := c.pool(path).SetName(ctx, next)
	if err != nil {
		return false, err
	}
	if err := c.catalog.Check(ctx, op, current, res.Status); err != nil {
		return false, err
	}
	return res.Changed, nil
}
