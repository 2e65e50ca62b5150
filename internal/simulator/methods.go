package simulator

import (
	"github.com/godbus/dbus/v5"

	"stratis/internal/errcodes"
)

func (d *Daemon) managerCall(method string, args []any) ([]any, error) {
	switch method {
	case "CreatePool":
		name, ok1 := argString(args, 0)
		devices, ok2 := argStrings(args, 1)
		redundancy, ok3 := argUint16(args, 2)
		if len(args) != 3 || !ok1 || !ok2 || !ok3 {
			return nil, invalidArgs(method, args)
		}
		return d.createPool(name, devices, redundancy), nil
	case "DestroyPool":
		name, ok := argString(args, 0)
		if len(args) != 1 || !ok {
			return nil, invalidArgs(method, args)
		}
		return d.destroyPool(name), nil
	case "GetPoolObjectPath":
		name, ok := argString(args, 0)
		if len(args) != 1 || !ok {
			return nil, invalidArgs(method, args)
		}
		p := d.findPool(name)
		if p == nil {
			rc, msg := d.status(errcodes.PoolNotFound, "no pool named %s", name)
			return reply(dbus.ObjectPath("/"), rc, msg), nil
		}
		rc, msg := d.ok()
		return reply(p.path, rc, msg), nil
	case "GetVolumeObjectPath":
		poolName, ok1 := argString(args, 0)
		volume, ok2 := argString(args, 1)
		if len(args) != 2 || !ok1 || !ok2 {
			return nil, invalidArgs(method, args)
		}
		p := d.findPool(poolName)
		if p == nil {
			rc, msg := d.status(errcodes.PoolNotFound, "no pool named %s", poolName)
			return reply(dbus.ObjectPath("/"), rc, msg), nil
		}
		for _, fs := range p.filesystems {
			if fs.name == volume {
				rc, msg := d.ok()
				return reply(fs.path, rc, msg), nil
			}
		}
		rc, msg := d.status(errcodes.VolumeNotFound, "no volume named %s in pool %s", volume, poolName)
		return reply(dbus.ObjectPath("/"), rc, msg), nil
	case "GetCacheObjectPath":
		poolName, ok := argString(args, 0)
		if len(args) != 1 || !ok {
			return nil, invalidArgs(method, args)
		}
		p := d.findPool(poolName)
		if p == nil {
			rc, msg := d.status(errcodes.PoolNotFound, "no pool named %s", poolName)
			return reply(dbus.ObjectPath("/"), rc, msg), nil
		}
		if len(p.cache) == 0 {
			rc, msg := d.status(errcodes.CacheNotFound, "pool %s has no cache", poolName)
			return reply(dbus.ObjectPath("/"), rc, msg), nil
		}
		rc, msg := d.ok()
		return reply(p.cachePath, rc, msg), nil
	case "ListPools":
		if len(args) != 0 {
			return nil, invalidArgs(method, args)
		}
		names := make([]string, 0, len(d.pools))
		for _, p := range d.pools {
			names = append(names, p.name)
		}
		rc, msg := d.ok()
		return reply(names, rc, msg), nil
	case "GetErrorCodes":
		rows := make([][]any, 0, len(codeNames))
		for i, entry := range codeNames {
			rows = append(rows, []any{entry.name, uint16(i + d.codeOffset), entry.desc})
		}
		return reply(rows), nil
	case "GetRaidLevels":
		rows := make([][]any, 0, len(raidLevels))
		for _, level := range raidLevels {
			rows = append(rows, []any{level.Name, uint16(level.Code), level.Description})
		}
		return reply(rows), nil
	}
	return nil, unknownMethod("Manager", method)
}

func (d *Daemon) createPool(name string, devnodes []string, redundancy uint16) []any {
	none := dbus.ObjectPath("/")
	if name == "" {
		rc, msg := d.status(errcodes.NullName, "pool name must not be empty")
		return reply(none, rc, msg)
	}
	if d.findPool(name) != nil {
		rc, msg := d.status(errcodes.AlreadyExists, "pool %s already exists", name)
		return reply(none, rc, msg)
	}
	if len(devnodes) == 0 {
		rc, msg := d.status(errcodes.BadParam, "at least one device is required")
		return reply(none, rc, msg)
	}
	known := false
	for _, level := range raidLevels {
		if uint16(level.Code) == redundancy {
			known = true
		}
	}
	if !known {
		rc, msg := d.status(errcodes.BadParam, "unknown redundancy code %d", redundancy)
		return reply(none, rc, msg)
	}
	if redundancy != 0 {
		rc, msg := d.status(errcodes.GenericError, "redundancy %s is not supported", raidLevels[redundancy].Name)
		return reply(none, rc, msg)
	}
	for _, node := range devnodes {
		if d.deviceInUse(node) {
			rc, msg := d.status(errcodes.AlreadyExists, "device %s already belongs to a pool", node)
			return reply(none, rc, msg)
		}
	}

	p := &pool{path: d.newPath("pool"), name: name}
	p.cachePath = p.path + "/cache"
	p.devices = d.newDevices(devnodes)
	d.pools = append(d.pools, p)
	d.objects[p.path] = p
	d.objects[p.cachePath] = p
	rc, msg := d.ok()
	return reply(p.path, rc, msg)
}

func (d *Daemon) destroyPool(name string) []any {
	for i, p := range d.pools {
		if p.name != name {
			continue
		}
		if len(p.filesystems) > 0 {
			rc, msg := d.status(errcodes.GenericError, "pool %s still has %d filesystems", name, len(p.filesystems))
			return reply(false, rc, msg)
		}
		d.pools = append(d.pools[:i], d.pools[i+1:]...)
		delete(d.objects, p.path)
		delete(d.objects, p.cachePath)
		for _, dev := range append(p.devices, p.cache...) {
			delete(d.objects, dev.path)
		}
		rc, msg := d.ok()
		return reply(true, rc, msg)
	}
	rc, msg := d.status(errcodes.PoolNotFound, "no pool named %s", name)
	return reply(false, rc, msg)
}

func (d *Daemon) poolCall(p *pool, method string, args []any) ([]any, error) {
	switch method {
	case "CreateFilesystems":
		names, ok := argStrings(args, 0)
		if len(args) != 1 || !ok {
			return nil, invalidArgs(method, args)
		}
		return d.createFilesystems(p, names), nil
	case "DestroyFilesystems":
		names, ok := argStrings(args, 0)
		if len(args) != 1 || !ok {
			return nil, invalidArgs(method, args)
		}
		return d.destroyFilesystems(p, names), nil
	case "ListFilesystems":
		names := make([]string, 0, len(p.filesystems))
		for _, fs := range p.filesystems {
			names = append(names, fs.name)
		}
		rc, msg := d.ok()
		return reply(names, rc, msg), nil
	case "AddDevs", "AddCacheDevs":
		devnodes, ok := argStrings(args, 0)
		if len(args) != 1 || !ok {
			return nil, invalidArgs(method, args)
		}
		for _, node := range devnodes {
			if d.deviceInUse(node) {
				rc, msg := d.status(errcodes.AlreadyExists, "device %s already belongs to a pool", node)
				return reply([]string{}, rc, msg), nil
			}
		}
		added := d.newDevices(devnodes)
		if method == "AddCacheDevs" {
			p.cache = append(p.cache, added...)
		} else {
			p.devices = append(p.devices, added...)
		}
		rc, msg := d.ok()
		return reply(devnodes, rc, msg), nil
	case "ListDevs":
		rc, msg := d.ok()
		return reply(deviceRows(p.devices), rc, msg), nil
	case "SetName":
		name, ok := argString(args, 0)
		if len(args) != 1 || !ok {
			return nil, invalidArgs(method, args)
		}
		if name == "" {
			rc, msg := d.status(errcodes.NullName, "pool name must not be empty")
			return reply(false, rc, msg), nil
		}
		if name == p.name {
			rc, msg := d.ok()
			return reply(false, rc, msg), nil
		}
		if d.findPool(name) != nil {
			rc, msg := d.status(errcodes.AlreadyExists, "pool %s already exists", name)
			return reply(false, rc, msg), nil
		}
		p.name = name
		rc, msg := d.ok()
		return reply(true, rc, msg), nil
	}
	return nil, unknownMethod("pool", method)
}

func (d *Daemon) cacheCall(p *pool, method string) ([]any, error) {
	if method != "ListDevs" {
		return nil, unknownMethod("cache", method)
	}
	rc, msg := d.ok()
	return reply(deviceRows(p.cache), rc, msg), nil
}

func (d *Daemon) filesystemCall(fs *filesystem, method string, args []any) ([]any, error) {
	if method != "SetName" {
		return nil, unknownMethod("filesystem", method)
	}
	name, ok := argString(args, 0)
	if len(args) != 1 || !ok {
		return nil, invalidArgs(method, args)
	}
	if name == "" {
		rc, msg := d.status(errcodes.NullName, "filesystem name must not be empty")
		return reply(false, rc, msg), nil
	}
	if name == fs.name {
		rc, msg := d.ok()
		return reply(false, rc, msg), nil
	}
	for _, other := range fs.pool.filesystems {
		if other.name == name {
			rc, msg := d.status(errcodes.AlreadyExists, "filesystem %s already exists", name)
			return reply(false, rc, msg), nil
		}
	}
	fs.name = name
	rc, msg := d.ok()
	return reply(true, rc, msg), nil
}

func (d *Daemon) createFilesystems(p *pool, names []string) []any {
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if name == "" {
			rc, msg := d.status(errcodes.NullName, "filesystem name must not be empty")
			return reply([][]any{}, rc, msg)
		}
		if seen[name] {
			rc, msg := d.status(errcodes.BadParam, "filesystem %s requested twice", name)
			return reply([][]any{}, rc, msg)
		}
		seen[name] = true
		for _, fs := range p.filesystems {
			if fs.name == name {
				rc, msg := d.status(errcodes.AlreadyExists, "filesystem %s already exists", name)
				return reply([][]any{}, rc, msg)
			}
		}
	}
	rows := make([][]any, 0, len(names))
	for _, name := range names {
		fs := &filesystem{path: d.newPath("filesystem"), name: name, pool: p}
		p.filesystems = append(p.filesystems, fs)
		d.objects[fs.path] = fs
		rows = append(rows, []any{fs.path, fs.name})
	}
	rc, msg := d.ok()
	return reply(rows, rc, msg)
}

func (d *Daemon) destroyFilesystems(p *pool, names []string) []any {
	for _, name := range names {
		found := false
		for _, fs := range p.filesystems {
			if fs.name == name {
				found = true
			}
		}
		if !found {
			rc, msg := d.status(errcodes.VolumeNotFound, "no volume named %s in pool %s", name, p.name)
			return reply([]string{}, rc, msg)
		}
	}
	drop := make(map[string]bool, len(names))
	for _, name := range names {
		drop[name] = true
	}
	kept := p.filesystems[:0]
	destroyed := make([]string, 0, len(names))
	for _, fs := range p.filesystems {
		if drop[fs.name] {
			delete(d.objects, fs.path)
			destroyed = append(destroyed, fs.name)
			continue
		}
		kept = append(kept, fs)
	}
	p.filesystems = kept
	rc, msg := d.ok()
	return reply(destroyed, rc, msg)
}

func deviceRows(devices []*device) [][]any {
	rows := make([][]any, 0, len(devices))
	for _, dev := range devices {
		rows = append(rows, []any{dev.path, dev.devnode, dev.size})
	}
	return rows
}

func argString(args []any, i int) (string, bool) {
	if i >= len(args) {
		return "", false
	}
	s, ok := args[i].(string)
	return s, ok
}

func argStrings(args []any, i int) ([]string, bool) {
	if i >= len(args) {
		return nil, false
	}
	s, ok := args[i].([]string)
	return s, ok
}

func argUint16(args []any, i int) (uint16, bool) {
	if i >= len(args) {
		return 0, false
	}
	n, ok := args[i].(uint16)
	return n, ok
}
