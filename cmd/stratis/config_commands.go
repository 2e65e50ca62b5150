package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"stratis/internal/config"
)

func runConfigInit(_ context.Context, inv *invocation) error {
	targetPath, err := inv.cmd.Flags().GetString("path")
	if err != nil {
		return err
	}
	overwrite, err := inv.cmd.Flags().GetBool("overwrite")
	if err != nil {
		return err
	}

	target := strings.TrimSpace(targetPath)
	if target == "" {
		defaultPath, err := config.DefaultConfigPath()
		if err != nil {
			return fmt.Errorf("determine default config path: %w", err)
		}
		target = defaultPath
	} else {
		expanded, err := config.ExpandPath(target)
		if err != nil {
			return fmt.Errorf("resolve config path: %w", err)
		}
		target = expanded
	}

	if !overwrite {
		if _, err := os.Stat(target); err == nil {
			return newUsageError(fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target))
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("check config path: %w", err)
		}
	}

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory %q: %w", dir, err)
	}
	if err := config.CreateSample(target); err != nil {
		return fmt.Errorf("create sample config: %w", err)
	}

	out := inv.cmd.OutOrStdout()
	fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
	fmt.Fprintf(out, "Set [bus] address (or export %s) to reach a non-default bus.\n", config.BusAddressEnv)
	return nil
}

func runConfigValidate(_ context.Context, inv *invocation) error {
	cfg, path, exists, err := config.Load(strings.TrimSpace(inv.cc.flags.config))
	if err != nil {
		return newUsageError(fmt.Errorf("load config: %w", err))
	}
	out := inv.cmd.OutOrStdout()
	fmt.Fprintf(out, "Config path: %s\n", path)
	if !exists {
		fmt.Fprintln(out, "Config file did not exist; defaults were used")
	}
	fmt.Fprintf(out, "Bus: %s (service %s, timeout %s)\n", cfg.Bus.Address, cfg.Bus.Service, cfg.Timeout())
	fmt.Fprintln(out, "Configuration valid")
	return nil
}
