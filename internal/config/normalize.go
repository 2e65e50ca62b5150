package config

import (
	"os"
	"strings"
)

func (c *Config) normalize() {
	c.normalizeBus()
	c.normalizeLogging()
	c.normalizeOutput()
}

func (c *Config) normalizeBus() {
	c.Bus.Address = strings.TrimSpace(c.Bus.Address)
	if c.Bus.Address == "" {
		if value, ok := os.LookupEnv(BusAddressEnv); ok {
			c.Bus.Address = strings.TrimSpace(value)
		}
	}
	if c.Bus.Address == "" {
		c.Bus.Address = defaultBusAddress
	}
	if lowered := strings.ToLower(c.Bus.Address); lowered == BusSystem || lowered == BusSession {
		c.Bus.Address = lowered
	}
	c.Bus.Service = strings.TrimSpace(c.Bus.Service)
	if c.Bus.Service == "" {
		c.Bus.Service = defaultService
	}
	if c.Bus.TimeoutSeconds == 0 {
		c.Bus.TimeoutSeconds = defaultTimeoutSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeOutput() {
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Format == "" {
		c.Output.Format = defaultOutputFormat
	}
	c.Output.Color = strings.ToLower(strings.TrimSpace(c.Output.Color))
	if c.Output.Color == "" {
		c.Output.Color = defaultColor
	}
}
