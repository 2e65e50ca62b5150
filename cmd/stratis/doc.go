// Package main hosts the stratis CLI entrypoint and command graph.
//
// Every subcommand is declared once in the command table (commands.go) as a
// path, an argument shape, and a handler. The table is turned into the cobra
// tree at startup and also kept as a path-keyed registry so the set of
// commands is fixed data rather than something assembled piecemeal.
//
// Handlers stay thin: they unpack arguments, call into internal/actions, and
// hand results to the renderer. Configuration loading, logger setup, bus
// dialing, and exit status mapping live in this package so the action layer
// never sees cobra.
package main
