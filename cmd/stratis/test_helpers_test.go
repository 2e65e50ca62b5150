package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stratis/internal/config"
	"stratis/internal/simulator"
	"stratis/internal/testsupport"
)

type cliTestEnv struct {
	daemon     *simulator.Daemon
	cfg        *config.Config
	configPath string
	homeDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	homeDir := filepath.Join(t.TempDir(), "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv(config.BusAddressEnv, "")

	opts = append([]testsupport.ConfigOption{testsupport.WithPreflight(false)}, opts...)
	cfg := testsupport.NewConfig(t, opts...)
	return &cliTestEnv{
		daemon:     testsupport.NewDaemon(t),
		cfg:        cfg,
		configPath: testsupport.WriteConfig(t, cfg),
		homeDir:    homeDir,
	}
}

// run executes one invocation against the simulated daemon and returns
// stdout, stderr and the exit status.
func (env *cliTestEnv) run(t *testing.T, args ...string) (string, string, int) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cc := newCommandContext(withTransport(env.daemon))
	full := append([]string{"--config", env.configPath}, args...)
	code := execute(context.Background(), cc, full, &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

// mustRun is run for invocations expected to succeed.
func (env *cliTestEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()

	out, errOut, code := env.run(t, args...)
	if code != exitOK {
		t.Fatalf("stratis %s: exit %d\nstderr: %s", strings.Join(args, " "), code, errOut)
	}
	return out
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected %q to contain %q", haystack, needle)
	}
}

func requireExit(t *testing.T, got, want int, stderr string) {
	t.Helper()
	if got != want {
		t.Fatalf("exit = %d, want %d\nstderr: %s", got, want, stderr)
	}
}
