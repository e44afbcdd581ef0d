package nix

import (
	"fmt"
	"sync"
)

// Backend provides byte-level persistence for container documents.
// Implementations report a missing container from Load with an error
// matching fs.ErrNotExist.
type Backend interface {
	// Load returns the stored document bytes for path.
	Load(path string) ([]byte, error)

	// Store replaces the document bytes at path.
	Store(path string, data []byte) error
}

// DefaultBackend is the name of the built-in file-system backend.
const DefaultBackend = "file"

var (
	backendsMu sync.RWMutex
	backends   = make(map[string]Backend)
)

// Register makes a backend available under the given name. It panics if
// the backend is nil or the name is already taken, mirroring the driver
// registration convention of database/sql.
func Register(name string, backend Backend) {
	backendsMu.Lock()
	defer backendsMu.Unlock()

	if backend == nil {
		panic("nix: Register backend is nil")
	}

	if _, dup := backends[name]; dup {
		panic("nix: Register called twice for backend " + name)
	}

	backends[name] = backend
}

// LookupBackend returns the backend registered under name, or an
// *UnknownBackendError when no such backend exists. Callers that only
// need an availability check at initialization time can discard the
// backend and keep the error.
func LookupBackend(name string) (Backend, error) {
	backendsMu.RLock()
	defer backendsMu.RUnlock()

	backend, ok := backends[name]
	if !ok {
		return nil, &UnknownBackendError{Name: name}
	}

	return backend, nil
}

// UnknownBackendError reports that no backend is registered under the
// requested name.
type UnknownBackendError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownBackendError) Error() string {
	return fmt.Sprintf("nix: unknown backend %q (missing registration?)", e.Name)
}
