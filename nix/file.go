// Package nix exposes a persistent hierarchical container: files holding
// block-like root nodes which in turn hold group-like children. It covers
// the surface a neo writer needs — open/close, root creation and
// enumeration, child creation — backed by pluggable storage backends.
package nix

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/google/uuid"

	"github.com/G-Node/neo2nix/nix/internal/container"
)

//go:generate go tool stringer -type=FileMode

// FileMode selects how a container file is opened.
type FileMode int

const (
	// ReadOnly opens an existing container for inspection; mutation fails.
	ReadOnly FileMode = iota
	// ReadWrite opens a container for appending, creating it on first write.
	ReadWrite
	// Overwrite discards any prior content at the path and starts fresh.
	Overwrite
)

var (
	// ErrClosed is returned when operating on a closed file handle.
	ErrClosed = errors.New("nix: file is closed")
	// ErrReadOnly is returned when mutating a read-only file handle.
	ErrReadOnly = errors.New("nix: file is read-only")
	// ErrDuplicateBlock is returned when creating a root block whose name
	// is already taken in the container.
	ErrDuplicateBlock = errors.New("nix: duplicate block name")
)

// File is an open handle on a container. Mutations are written through to
// the backend immediately, so several sequential handles on the same path
// observe each other's completed writes; Close only invalidates the
// handle.
type File struct {
	path    string
	mode    FileMode
	backend Backend
	doc     *container.Document
	blocks  []*Block
	closed  bool
}

// Open opens the container at path with the default file backend.
func Open(path string, mode FileMode) (*File, error) {
	return OpenBackend(DefaultBackend, path, mode)
}

// OpenBackend opens the container at path through the named backend.
func OpenBackend(backend, path string, mode FileMode) (*File, error) {
	b, err := LookupBackend(backend)
	if err != nil {
		return nil, err
	}

	f := &File{
		path:    path,
		mode:    mode,
		backend: b,
		doc:     container.New(),
	}

	switch mode {
	case Overwrite:
		// Destroy prior content right away, not at close time.
		if err := f.store(); err != nil {
			return nil, fmt.Errorf("truncating container %s: %w", path, err)
		}

	case ReadWrite, ReadOnly:
		data, err := b.Load(path)

		switch {
		case errors.Is(err, fs.ErrNotExist):
			if mode == ReadOnly {
				return nil, fmt.Errorf("opening container %s read-only: %w", path, err)
			}
			// Read-write starts from an empty document and creates the
			// container on the first mutation.

		case err != nil:
			return nil, fmt.Errorf("loading container %s: %w", path, err)

		default:
			doc, err := container.Decode(data)
			if err != nil {
				return nil, fmt.Errorf("decoding container %s: %w", path, err)
			}

			f.doc = doc
		}

	default:
		return nil, fmt.Errorf("nix: invalid file mode %d", mode)
	}

	f.blocks = make([]*Block, 0, len(f.doc.Blocks))
	for _, node := range f.doc.Blocks {
		f.blocks = append(f.blocks, wrapBlock(f, node))
	}

	return f, nil
}

// Path returns the container path this handle was opened on.
func (f *File) Path() string { return f.path }

// Mode returns the mode this handle was opened with.
func (f *File) Mode() FileMode { return f.mode }

// Blocks returns the root blocks of the container in creation order.
func (f *File) Blocks() []*Block { return f.blocks }

// CreateBlock appends a root block with the given name and type tag.
// The block's identity and creation time are assigned here and never
// change afterwards.
func (f *File) CreateBlock(name, typ string) (*Block, error) {
	if err := f.writable(); err != nil {
		return nil, err
	}

	for _, b := range f.blocks {
		if b.Name() == name {
			return nil, fmt.Errorf("creating block %q: %w", name, ErrDuplicateBlock)
		}
	}

	node := container.NewNode(uuid.NewString(), name, typ, time.Now().UTC())

	f.doc.Blocks = append(f.doc.Blocks, node)
	if err := f.store(); err != nil {
		f.doc.Blocks = f.doc.Blocks[:len(f.doc.Blocks)-1]
		return nil, err
	}

	block := wrapBlock(f, node)
	f.blocks = append(f.blocks, block)

	return block, nil
}

// Close invalidates the handle. Mutations are persisted as they happen,
// so no flush is pending here; closing twice is harmless.
func (f *File) Close() error {
	f.closed = true
	return nil
}

// writable reports whether the handle accepts mutations.
func (f *File) writable() error {
	if f.closed {
		return ErrClosed
	}

	if f.mode == ReadOnly {
		return ErrReadOnly
	}

	return nil
}

// store writes the current document through the backend.
func (f *File) store() error {
	data, err := container.Encode(f.doc)
	if err != nil {
		return err
	}

	if err := f.backend.Store(f.path, data); err != nil {
		return fmt.Errorf("storing container %s: %w", f.path, err)
	}

	return nil
}
