// Package prefs remembers the preferred layout file of each steno system.
//
// When a user loads a layout file, its path is stored under the current
// system's name; when the host later switches to that system, the display
// reloads the remembered file. Paths are stored as given and re-validated
// by the display before reuse, since the file may have been deleted.
//
// # Backends
//
//   - [Memory]: in-process map, for tests and the HTTP server
//   - [File]: a JSON object on disk, for the CLI
//   - sqlite: a migrated SQLite table (subpackage sqlite)
//   - redis: one Redis hash shared by several instances (subpackage redis)
//
// All backends satisfy [Store].
package prefs

import "context"

// Store persists one layout path per system name.
type Store interface {
	// Get returns the stored path for system and whether one exists.
	Get(ctx context.Context, system string) (string, bool, error)

	// Set stores path for system, replacing any previous value.
	Set(ctx context.Context, system, path string) error

	// Delete removes the entry for system. Deleting a missing entry is
	// not an error.
	Delete(ctx context.Context, system string) error

	// All returns every stored entry keyed by system.
	All(ctx context.Context) (map[string]string, error)

	// Close releases the backend.
	Close() error
}

// Backend names accepted by configuration.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Backends lists the valid backend names.
var Backends = []string{BackendMemory, BackendFile, BackendSQLite, BackendRedis}
