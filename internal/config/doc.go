// Package config loads, normalizes, and validates stratis client configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours the STRATIS_BUS_ADDRESS environment fallback. The
// Config type holds every knob the CLI needs: which bus to dial, how long to
// wait for stratisd, how to log, and how to render results.
//
// Always obtain settings through this package so callers receive canonical
// values and clear validation errors.
package config
