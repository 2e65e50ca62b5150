// Package devices checks device arguments on the client before they are
// handed to stratisd. Each path must exist, must be a block device, and may
// appear only once per request, counting symlinks that land on the same node.
package devices
