package nix

import (
	"fmt"
	"os"
)

// filePerm is the permission used for stored container files.
const filePerm = 0o644

// fileBackend is the default backend. It persists container documents as
// plain files addressed by their path.
type fileBackend struct{}

func init() {
	Register(DefaultBackend, fileBackend{})
}

// Load implements Backend.
func (fileBackend) Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading container file %s: %w", path, err)
	}

	return data, nil
}

// Store implements Backend.
func (fileBackend) Store(path string, data []byte) error {
	err := os.WriteFile(path, data, filePerm)
	if err != nil {
		return fmt.Errorf("writing container file %s: %w", path, err)
	}

	return nil
}
