// Package actions runs one stratis command against the daemon.
//
// Every action follows the same linear pass: resolve names to object paths
// through the Manager, invoke the primary operation on the resolved object,
// then check the returned status against the error code catalog. A failed
// lookup stops the pass before anything is mutated. Listing actions make a
// single round trip regardless of how many items come back.
package actions
