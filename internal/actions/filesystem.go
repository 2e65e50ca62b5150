package actions

import (
	"context"

	"stratis/internal/dbusapi"
	"stratis/internal/logging"
)

// CreateFilesystems creates one filesystem per name in pool.
func (c *Client) CreateFilesystems(ctx context.Context, pool string, names []string) ([]dbusapi.NamedPath, error) {
	const op = "create filesystems in"
	if err := c.begin(ctx); err != nil {
		return nil, err
	}
	path, err := c.resolvePool(ctx, op, pool)
	if err != nil {
		return nil, err
	}
	res, err := c.pool(path).CreateFilesystems(ctx, names)
	if err != nil {
		return nil, err
	}
	if err := c.catalog.Check(ctx, op, pool, res.Status); err != nil {
		return nil, err
	}
	c.log(ctx).Info("filesystems created", logging.String("pool", pool), logging.Strings("filesystems", names))
	return res.Filesystems, nil
}

// ListFilesystems returns the filesystem names in pool with one list call.
// An existing pool without filesystems yields an empty, non-nil slice.
func (c *Client) ListFilesystems(ctx context.Context, pool string) ([]string, error) {
	const op = "list filesystems in"
	if err := c.begin(ctx); err != nil {
		return nil, err
	}
	path, err := c.resolvePool(ctx, op, pool)
	if err != nil {
		return nil, err
	}
	res, err := c.pool(path).ListFilesystems(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.catalog.Check(ctx, op, pool, res.Status); err != nil {
		return nil, err
	}
	if res.Names == nil {
		return []string{}, nil
	}
	return res.Names, nil
}

// DestroyFilesystems removes the named filesystems from pool and returns the
// names the daemon destroyed.
func (c *Client) DestroyFilesystems(ctx context.Context, pool string, names []string) ([]string, error) {
	const op = "destroy filesystems in"
	if err := c.begin(ctx); err != nil {
		return nil, err
	}
	path, err := c.resolvePool(ctx, op, pool)
	if err != nil {
		return nil, err
	}
	res, err := c.pool(path).DestroyFilesystems(ctx, names)
	if err != nil {
		return nil, err
	}
	if err := c.catalog.Check(ctx, op, pool, res.Status); err != nil {
		return nil, err
	}
	c.log(ctx).Info("filesystems destroyed", logging.String("pool", pool), logging.Strings("filesystems", res.Names))
	return res.Names, nil
}

// RenameFilesystem renames current to next within pool.
func (c *Client) RenameFilesystem(ctx context.Context, pool, current, next string) (bool, error) {
	const op = "rename filesystem"
	if err := c.begin(ctx); err != nil {
		return false, err
	}
	path, err := c.resolveFilesystem(ctx, op, pool, current)
	if err != nil {
		return false, err
	}
	res, err := c.filesystem(path).SetName(ctx, next)
	if err != nil {
		return false, err
	}
	if err := c.catalog.Check(ctx, op, pool+"/"+current, res.Status); err != nil {
		return false, err
	}
	return res.Changed, nil
}
