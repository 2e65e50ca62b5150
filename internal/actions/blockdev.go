package actions

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/godbus/dbus/v5"

	"stratis/internal/dbusapi"
	"stratis/internal/errcodes"
	"stratis/internal/logging"
)

// Tier names the part of a pool a block device serves.
type Tier string

const (
	TierData  Tier = "data"
	TierCache Tier = "cache"
)

// BlockdevInfo describes one pool member as reported by its own object.
type BlockdevInfo struct {
	Pool      string          `json:"pool"`
	Tier      Tier            `json:"tier"`
	Path      dbus.ObjectPath `json:"object_path"`
	Devnode   string          `json:"devnode"`
	TotalSize uint64          `json:"total_size"`
}

// AddBlockdevs adds devices to pool's data tier, or to its cache tier when
// cache is set, and returns the devnodes the daemon accepted.
func (c *Client) AddBlockdevs(ctx context.Context, pool string, devicePaths []string, cache bool) ([]string, error) {
	op := "add data devices to"
	if cache {
		op = "add cache devices to"
	}
	paths, err := c.checkDevices(devicePaths)
	if err != nil {
		return nil, err
	}
	if err := c.begin(ctx); err != nil {
		return nil, err
	}
	path, err := c.resolvePool(ctx, op, pool)
	if err != nil {
		return nil, err
	}
	var res dbusapi.NamesResult
	if cache {
		res, err = c.pool(path).AddCacheDevs(ctx, paths)
	} else {
		res, err = c.pool(path).AddDevs(ctx, paths)
	}
	if err != nil {
		return nil, err
	}
	if err := c.catalog.Check(ctx, op, pool, res.Status); err != nil {
		return nil, err
	}
	c.log(ctx).Info("block devices added",
		logging.String("pool", pool),
		logging.Bool("cache", cache),
		logging.Strings("devices", res.Names),
	)
	return res.Names, nil
}

// ListBlockdevs lists the data devices of pool, or its cache devices when
// cache is set, in one round trip. A pool without a cache tier has no cache
// devices.
func (c *Client) ListBlockdevs(ctx context.Context, pool string, cache bool) ([]dbusapi.Device, error) {
	const op = "list block devices in"
	if err := c.begin(ctx); err != nil {
		return nil, err
	}
	var res dbusapi.DevicesResult
	if cache {
		path, ok, err := c.resolveCache(ctx, op, pool)
		if err != nil {
			return nil, err
		}
		if !ok {
			return []dbusapi.Device{}, nil
		}
		if res, err = c.cache(path).ListDevs(ctx); err != nil {
			return nil, err
		}
	} else {
		path, err := c.resolvePool(ctx, op, pool)
		if err != nil {
			return nil, err
		}
		if res, err = c.pool(path).ListDevs(ctx); err != nil {
			return nil, err
		}
	}
	if err := c.catalog.Check(ctx, op, pool, res.Status); err != nil {
		return nil, err
	}
	if res.Devices == nil {
		return []dbusapi.Device{}, nil
	}
	return res.Devices, nil
}

// BlockdevInfo finds the member of pool added as device and reads its
// properties from the member object itself.
func (c *Client) BlockdevInfo(ctx context.Context, pool, device string) (BlockdevInfo, error) {
	const op = "show block device in"
	if err := c.begin(ctx); err != nil {
		return BlockdevInfo{}, err
	}
	poolPath, err := c.resolvePool(ctx, op, pool)
	if err != nil {
		return BlockdevInfo{}, err
	}
	data, err := c.pool(poolPath).ListDevs(ctx)
	if err != nil {
		return BlockdevInfo{}, err
	}
	if err := c.catalog.Check(ctx, op, pool, data.Status); err != nil {
		return BlockdevInfo{}, err
	}
	tier := TierData
	member, found := matchDevice(data.Devices, device)
	if !found {
		cachePath, ok, err := c.resolveCache(ctx, op, pool)
		if err != nil {
			return BlockdevInfo{}, err
		}
		if ok {
			cached, err := c.cache(cachePath).ListDevs(ctx)
			if err != nil {
				return BlockdevInfo{}, err
			}
			if err := c.catalog.Check(ctx, op, pool, cached.Status); err != nil {
				return BlockdevInfo{}, err
			}
			member, found = matchDevice(cached.Devices, device)
			tier = TierCache
		}
	}
	if !found {
		return BlockdevInfo{}, c.notFound(ctx, op, pool, errcodes.DevNotFound, fmt.Sprintf("%s is not a member of pool %s", device, pool))
	}

	bd := c.blockDevice(member.Path)
	devnode, err := bd.Devnode(ctx)
	if err != nil {
		return BlockdevInfo{}, err
	}
	size, err := bd.TotalSize(ctx)
	if err != nil {
		return BlockdevInfo{}, err
	}
	return BlockdevInfo{Pool: pool, Tier: tier, Path: member.Path, Devnode: devnode, TotalSize: size}, nil
}

func matchDevice(devs []dbusapi.Device, device string) (dbusapi.Device, bool) {
	abs, err := filepath.Abs(device)
	if err != nil {
		abs = device
	}
	for _, d := range devs {
		if d.Devnode == device || d.Devnode == abs {
			return d, true
		}
	}
	return dbusapi.Device{}, false
}
