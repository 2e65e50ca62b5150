// Package errcodes translates stratisd return codes into structured errors.
//
// Catalog fetches the daemon's (name, code, description) table with a single
// GetErrorCodes call the first time it is needed and serves every later lookup
// from memory. Concurrent first use is collapsed into one fetch. Numeric codes
// are never compiled in: callers refer to codes by symbolic name and the
// catalog resolves them against what the running daemon published.
//
// The table is assumed stable for the lifetime of a Catalog. Long-lived
// embedders that outlive a daemon upgrade should build a new Catalog.
package errcodes
