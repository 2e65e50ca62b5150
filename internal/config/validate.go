package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateBus(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateOutput()
}

func (c *Config) validateBus() error {
	switch c.Bus.Address {
	case BusSystem, BusSession:
	default:
		// Raw addresses use the transport:key=value form.
		if !strings.Contains(c.Bus.Address, ":") || !strings.Contains(c.Bus.Address, "=") {
			return fmt.Errorf("bus.address must be %q, %q, or a D-Bus address, got %q", BusSystem, BusSession, c.Bus.Address)
		}
	}
	if strings.ContainsAny(c.Bus.Service, " /") || !strings.Contains(c.Bus.Service, ".") {
		return fmt.Errorf("bus.service %q is not a valid bus name", c.Bus.Service)
	}
	if c.Bus.TimeoutSeconds < 0 {
		return errors.New("bus.timeout_seconds must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateOutput() error {
	if err := ValidateOutputFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("output.color must be auto, always, or never, got %q", c.Output.Color)
	}
	return nil
}

// ValidateOutputFormat reports whether format names a supported renderer.
func ValidateOutputFormat(format string) error {
	switch format {
	case OutputTable, OutputPlain, OutputJSON:
		return nil
	}
	return fmt.Errorf("unsupported output format %q (want table, plain, or json)", format)
}
