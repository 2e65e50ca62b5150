package testsupport

import (
	"context"
	"testing"

	"stratis/internal/actions"
	"stratis/internal/devices"
	"stratis/internal/simulator"
)

// NewDaemon returns an empty simulated stratisd.
func NewDaemon(t testing.TB, opts ...simulator.Option) *simulator.Daemon {
	t.Helper()
	return simulator.New(opts...)
}

// NewClient returns an action client on daemon with the device preflight
// disabled, since test device paths do not exist.
func NewClient(t testing.TB, daemon *simulator.Daemon) *actions.Client {
	t.Helper()
	return actions.New(daemon, actions.WithDeviceChecker(devices.Skip{}))
}

// MustCreatePool creates a pool with no redundancy and fails the test on error.
func MustCreatePool(t testing.TB, client *actions.Client, name string, devs ...string) {
	t.Helper()
	if len(devs) == 0 {
		devs = []string{"/dev/test-" + name}
	}
	if _, err := client.CreatePool(context.Background(), name, devs, actions.DefaultRedundancy); err != nil {
		t.Fatalf("create pool %s: %v", name, err)
	}
}

// MustCreateFilesystems creates filesystems in pool and fails the test on error.
func MustCreateFilesystems(t testing.TB, client *actions.Client, pool string, names ...string) {
	t.Helper()
	if _, err := client.CreateFilesystems(context.Background(), pool, names); err != nil {
		t.Fatalf("create filesystems in %s: %v", pool, err)
	}
}
