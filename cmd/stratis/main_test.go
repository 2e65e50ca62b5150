package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"stratis/internal/actions"
	"stratis/internal/bus"
	"stratis/internal/config"
	"stratis/internal/devices"
	"stratis/internal/errcodes"
	"stratis/internal/simulator"
	"stratis/internal/testsupport"
)

func TestFilesystemListMissingPool(t *testing.T) {
	env := setupCLITestEnv(t)

	out, errOut, code := env.run(t, "filesystem", "list", "deadpool")
	requireExit(t, code, domainExitCode(env.daemon.Code(errcodes.PoolNotFound)), errOut)
	if out != "" {
		t.Fatalf("expected no stdout, got %q", out)
	}
	requireContains(t, errOut, "Execution failed:")
	requireContains(t, errOut, errcodes.PoolNotFound)
}

func TestDomainExitFollowsDaemonCode(t *testing.T) {
	cases := []struct {
		offset int
		want   int
	}{
		{0, 14},
		{40, 54},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("offset %d", tc.offset), func(t *testing.T) {
			env := setupCLITestEnv(t)
			env.daemon = testsupport.NewDaemon(t, simulator.WithCodeOffset(tc.offset))
			want := exitDomainBase + env.daemon.Code(errcodes.PoolNotFound)
			if want != tc.want {
				t.Fatalf("pool-not-found status = %d, want %d", want, tc.want)
			}

			for _, args := range [][]string{
				{"filesystem", "list", "deadpool"},
				{"destroy", "ghost"},
			} {
				_, errOut, code := env.run(t, args...)
				requireExit(t, code, want, errOut)
				if code == exitUsage || code == exitTransport {
					t.Fatalf("%v: domain status collides with %d", args, code)
				}
			}
		})
	}
}

func TestPoolLifecycleThroughCLI(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithOutputFormat(config.OutputPlain))

	if out := env.mustRun(t, "create", "tank", "/dev/vdb", "/dev/vdc"); out != "" {
		t.Fatalf("create printed %q", out)
	}
	env.mustRun(t, "filesystem", "create", "tank", "home", "srv")

	out := env.mustRun(t, "list")
	if strings.TrimSpace(out) != "tank" {
		t.Fatalf("list = %q", out)
	}
	out = env.mustRun(t, "filesystem", "list", "tank")
	if strings.TrimSpace(out) != "home\nsrv" {
		t.Fatalf("filesystem list = %q", out)
	}

	env.mustRun(t, "filesystem", "rename", "tank", "srv", "data")
	env.mustRun(t, "filesystem", "destroy", "tank", "home", "data")
	env.mustRun(t, "rename", "tank", "pond")
	env.mustRun(t, "destroy", "pond")

	if out := env.mustRun(t, "list"); out != "" {
		t.Fatalf("expected no pools, got %q", out)
	}
}

func TestListOutputFormats(t *testing.T) {
	env := setupCLITestEnv(t)
	env.mustRun(t, "create", "tank", "/dev/vdb")

	table := env.mustRun(t, "list")
	requireContains(t, table, "Pool")
	requireContains(t, table, "tank")

	var pools []string
	out := env.mustRun(t, "--output", "json", "list")
	if err := json.Unmarshal([]byte(out), &pools); err != nil {
		t.Fatalf("decode json %q: %v", out, err)
	}
	if len(pools) != 1 || pools[0] != "tank" {
		t.Fatalf("pools = %v", pools)
	}

	out = env.mustRun(t, "-o", "json", "filesystem", "list", "tank")
	if strings.TrimSpace(out) != "[]" {
		t.Fatalf("empty filesystem list json = %q", out)
	}
}

func TestInvalidOutputFlagIsUsage(t *testing.T) {
	env := setupCLITestEnv(t)

	_, errOut, code := env.run(t, "--output", "yaml", "list")
	requireExit(t, code, exitUsage, errOut)
	if env.daemon.TotalCalls() != 0 {
		t.Fatalf("expected no bus traffic, got %d calls", env.daemon.TotalCalls())
	}
}

func TestUsageErrors(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"missing devices", []string{"create", "tank"}},
		{"extra args", []string{"destroy", "a", "b"}},
		{"unknown command", []string{"frobnicate"}},
		{"unknown flag", []string{"list", "--bogus"}},
		{"stratisd without flag", []string{"stratisd"}},
		{"stratisd with two flags", []string{"stratisd", "--version", "--log-level"}},
		{"unknown redundancy", []string{"create", "tank", "/dev/vdb", "--redundancy", "raid42"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := setupCLITestEnv(t)
			_, errOut, code := env.run(t, tc.args...)
			requireExit(t, code, exitUsage, errOut)
			if env.daemon.Calls("CreatePool") != 0 {
				t.Fatalf("usage error reached CreatePool")
			}
		})
	}
}

func TestDaemonDownIsTransportFailure(t *testing.T) {
	env := setupCLITestEnv(t)
	env.daemon.SetDown(true)

	_, errOut, code := env.run(t, "list")
	requireExit(t, code, exitTransport, errOut)
	requireContains(t, errOut, "stratisd is not running")
}

func TestGlobalVersion(t *testing.T) {
	env := setupCLITestEnv(t)

	out := env.mustRun(t, "--version")
	if strings.TrimSpace(out) != version {
		t.Fatalf("--version = %q, want %q", out, version)
	}
	if env.daemon.TotalCalls() != 0 {
		t.Fatalf("--version touched the bus: %d calls", env.daemon.TotalCalls())
	}
}

func TestClientLogLevelWithStratisdQuery(t *testing.T) {
	env := setupCLITestEnv(t)

	out, errOut, code := env.run(t, "--client-log-level", "debug", "stratisd", "--version")
	requireExit(t, code, exitOK, errOut)
	if strings.TrimSpace(out) != "0.1.0" {
		t.Fatalf("version = %q", out)
	}
	requireContains(t, errOut, "bus get property")

	out, errOut, code = env.run(t, "stratisd", "--log-level", "--client-log-level", "debug")
	requireExit(t, code, exitOK, errOut)
	if strings.TrimSpace(out) != "Info" {
		t.Fatalf("log level = %q", out)
	}
}

func TestStratisdQueries(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithOutputFormat(config.OutputPlain))

	if out := env.mustRun(t, "stratisd", "--version"); strings.TrimSpace(out) != "0.1.0" {
		t.Fatalf("version = %q", out)
	}
	if out := env.mustRun(t, "stratisd", "--log-level"); strings.TrimSpace(out) != "Info" {
		t.Fatalf("log level = %q", out)
	}
	out := env.mustRun(t, "stratisd", "--redundancy")
	requireContains(t, out, "none\t0\tNo redundancy")
	requireContains(t, out, "raid6\t3")
}

func TestBlockdevCommands(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithOutputFormat(config.OutputPlain))
	env.mustRun(t, "create", "tank", "/dev/vdb")
	env.mustRun(t, "blockdev", "add", "tank", "/dev/vdc")

	out := env.mustRun(t, "blockdev", "list", "tank")
	requireContains(t, out, "/dev/vdb\t1.0 GiB")
	requireContains(t, out, "/dev/vdc")

	if out := env.mustRun(t, "blockdev", "list", "--cache", "tank"); out != "" {
		t.Fatalf("expected empty cache tier, got %q", out)
	}
	env.mustRun(t, "blockdev", "add", "--cache", "tank", "/dev/nvme0n1")
	out = env.mustRun(t, "blockdev", "list", "--cache", "tank")
	requireContains(t, out, "/dev/nvme0n1")

	out = env.mustRun(t, "-o", "json", "blockdev", "info", "tank", "/dev/nvme0n1")
	var info actions.BlockdevInfo
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("decode info %q: %v", out, err)
	}
	if info.Tier != actions.TierCache || info.Pool != "tank" || info.Devnode != "/dev/nvme0n1" {
		t.Fatalf("unexpected info %+v", info)
	}

	_, errOut, code := env.run(t, "blockdev", "info", "tank", "/dev/sdz")
	requireExit(t, code, domainExitCode(env.daemon.Code(errcodes.DevNotFound)), errOut)
	requireContains(t, errOut, errcodes.DevNotFound)
}

func TestDescribeError(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithOutputFormat(config.OutputPlain))

	out := env.mustRun(t, "describe-error", "stratis_pool_notfound")
	want := fmt.Sprintf("%s\t%d\tPool not found", errcodes.PoolNotFound, env.daemon.Code(errcodes.PoolNotFound))
	if strings.TrimSpace(out) != want {
		t.Fatalf("describe-error by name = %q, want %q", out, want)
	}

	out = env.mustRun(t, "describe-error", fmt.Sprint(env.daemon.Code(errcodes.BadParam)))
	requireContains(t, out, errcodes.BadParam)

	out = env.mustRun(t, "describe-error")
	requireContains(t, out, errcodes.OK)
	requireContains(t, out, errcodes.ListFailure)

	_, errOut, code := env.run(t, "describe-error", "STRATIS_NO_SUCH")
	requireExit(t, code, exitUsage, errOut)
	_, errOut, code = env.run(t, "describe-error", "9999")
	requireExit(t, code, exitUsage, errOut)
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out := env.mustRun(t, "config", "validate")
	requireContains(t, out, "Config path: "+env.configPath)
	requireContains(t, out, "Configuration valid")

	target := t.TempDir() + "/nested/config.toml"
	out = env.mustRun(t, "config", "init", "--path", target)
	requireContains(t, out, "Wrote sample configuration")

	_, errOut, code := env.run(t, "config", "init", "--path", target)
	requireExit(t, code, exitUsage, errOut)
	requireContains(t, errOut, "already exists")

	env.mustRun(t, "config", "init", "--path", target, "--overwrite")
	if env.daemon.TotalCalls() != 0 {
		t.Fatalf("config commands touched the bus: %d calls", env.daemon.TotalCalls())
	}
}

func TestBrokenConfigIsUsage(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFile(t, env.configPath, "[bus]\nunknown_key = 1\n")

	_, errOut, code := env.run(t, "list")
	requireExit(t, code, exitUsage, errOut)

	_, errOut, code = env.run(t, "config", "validate")
	requireExit(t, code, exitUsage, errOut)
}

func TestExitCodeMapping(t *testing.T) {
	domain := &errcodes.Error{Name: errcodes.PoolNotFound, Code: 4}
	transport := &bus.TransportError{Op: "call", Err: errors.New("boom")}
	preflight := &devices.Error{Path: "/dev/nope", Err: devices.ErrNotFound}

	cases := []struct {
		name    string
		err     error
		started bool
		want    int
	}{
		{"nil", nil, true, exitOK},
		{"domain", domain, true, 14},
		{"wrapped domain", fmt.Errorf("outer: %w", domain), true, 14},
		{"domain before start", domain, false, 14},
		{"large domain code", &errcodes.Error{Code: 400}, true, exitDomainMax},
		{"negative domain code", &errcodes.Error{Code: -1}, true, exitDomainBase},
		{"usage", newUsageError(errors.New("bad")), true, exitUsage},
		{"preflight", preflight, true, exitUsage},
		{"redundancy", fmt.Errorf("%w: x", actions.ErrUnknownRedundancy), true, exitUsage},
		{"transport", transport, true, exitTransport},
		{"unexpected after start", errors.New("boom"), true, exitTransport},
		{"unexpected before start", errors.New("boom"), false, exitUsage},
	}
	for _, tc := range cases {
		if got := exitCode(tc.err, tc.started); got != tc.want {
			t.Fatalf("%s: exitCode = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestRegistryCoversCommandTable(t *testing.T) {
	reg, err := newRegistry(commandTable())
	if err != nil {
		t.Fatalf("newRegistry: %v", err)
	}
	for _, path := range [][]string{
		{"create"}, {"destroy"}, {"list"}, {"rename"},
		{"blockdev", "add"}, {"blockdev", "list"}, {"blockdev", "info"},
		{"filesystem", "create"}, {"filesystem", "list"}, {"filesystem", "destroy"}, {"filesystem", "rename"},
		{"stratisd"}, {"describe-error"}, {"config", "init"}, {"config", "validate"},
	} {
		if _, ok := reg.lookup(path...); !ok {
			t.Fatalf("no handler for %q", strings.Join(path, " "))
		}
	}
	if _, ok := reg.lookup("blockdev"); ok {
		t.Fatalf("group command should not have a handler")
	}

	dup := append(commandTable(), commandSpec{path: []string{"list"}})
	if _, err := newRegistry(dup); err == nil {
		t.Fatalf("expected duplicate path error")
	}
	orphan := []commandSpec{{path: []string{"pool", "list"}}}
	if _, err := newRegistry(orphan); err == nil {
		t.Fatalf("expected missing parent error")
	}
}
