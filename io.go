// Package neo2nix writes the in-memory neo data model (blocks containing
// segments) into a persistent NIX container. The mapping is declarative:
// a fixed attribute table (name→name, description→definition) and a fixed
// container table (segments→groups) drive both the write path and the
// structural equivalence check. Reading containers back into the source
// model is out of scope.
package neo2nix

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/G-Node/neo2nix/neo"
	"github.com/G-Node/neo2nix/nix"
)

// Extension is the conventional file extension for target containers.
const Extension = "h5"

// Type tags assigned to created target entities.
const (
	blockType   = "neo.block"
	segmentType = "neo.segment"
)

// IO writes neo blocks and segments to one target container file.
type IO struct {
	filename string
	backend  string
	log      *zap.Logger
}

// Option configures an IO.
type Option func(*IO)

// WithLogger sets the logger used for write diagnostics. The default is
// a nop logger.
func WithLogger(log *zap.Logger) Option {
	return func(io *IO) { io.log = log }
}

// WithBackend selects the nix storage backend by registered name. The
// default is the built-in file backend.
func WithBackend(name string) Option {
	return func(io *IO) { io.backend = name }
}

// New builds an IO targeting the container at filename. It verifies the
// configured storage backend is available and returns the backend's
// typed lookup error when it is not.
func New(filename string, opts ...Option) (*IO, error) {
	io := &IO{
		filename: filename,
		backend:  nix.DefaultBackend,
		log:      zap.NewNop(),
	}

	for _, opt := range opts {
		opt(io)
	}

	if _, err := nix.LookupBackend(io.backend); err != nil {
		return nil, err
	}

	return io, nil
}

// Filename returns the target container path.
func (io *IO) Filename() string { return io.filename }

// WriteBlock writes the block as a fresh root of the target container,
// destroying any prior content at the path. With cascade, every child
// segment is written under the new root in order. The container handle is
// released on every exit path.
func (io *IO) WriteBlock(block *neo.Block, cascade bool) (err error) {
	io.log.Debug("writing block",
		zap.String("file", io.filename),
		zap.String("name", block.Name),
		zap.Bool("cascade", cascade),
		zap.Int("segments", len(block.Segments)))

	f, err := nix.OpenBackend(io.backend, io.filename, nix.Overwrite)
	if err != nil {
		return fmt.Errorf("opening %s for overwrite: %w", io.filename, err)
	}

	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	target, err := f.CreateBlock(block.Name, blockType)
	if err != nil {
		return fmt.Errorf("writing block %q: %w", block.Name, err)
	}

	if err := target.SetDefinition(block.Description); err != nil {
		return fmt.Errorf("writing block %q: %w", block.Name, err)
	}

	if cascade {
		for _, segment := range block.Segments {
			if err := io.WriteSegment(segment, block, true); err != nil {
				return err
			}
		}
	}

	return nil
}

// WriteSegment appends the segment as a group under the existing target
// block equivalent to parent, comparing attributes only. When no such
// block exists the container is left unchanged and a *ParentNotFoundError
// is returned; the handle is released on that path too.
//
// The cascade parameter is accepted for signature parity with WriteBlock
// and ignored: a group write has no child collections to cascade into.
func (io *IO) WriteSegment(segment *neo.Segment, parent *neo.Block, cascade bool) (err error) {
	_ = cascade

	io.log.Debug("writing segment",
		zap.String("file", io.filename),
		zap.String("name", segment.Name),
		zap.String("parent", parent.Name))

	f, err := nix.OpenBackend(io.backend, io.filename, nix.ReadWrite)
	if err != nil {
		return fmt.Errorf("opening %s for read-write: %w", io.filename, err)
	}

	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	for _, candidate := range f.Blocks() {
		if !Equivalent(parent, candidate, false) {
			continue
		}

		// The group goes under the matched block itself, not under the
		// first root; with several roots those differ.
		target, err := candidate.CreateGroup(segment.Name, segmentType)
		if err != nil {
			return fmt.Errorf("writing segment %q: %w", segment.Name, err)
		}

		if err := target.SetDefinition(segment.Description); err != nil {
			return fmt.Errorf("writing segment %q: %w", segment.Name, err)
		}

		return nil
	}

	return &ParentNotFoundError{
		Parent:   parent.Name,
		Segment:  segment.Name,
		Filename: io.filename,
	}
}

// Supports reports whether the IO can write the given entity kind. Only
// blocks and segments are supported.
func Supports(entity neo.Entity) bool {
	switch entity.(type) {
	case *neo.Block, *neo.Segment:
		return true
	default:
		return false
	}
}

// IsParentNotFound reports whether err is a parent-not-found failure from
// the segment write path.
func IsParentNotFound(err error) bool {
	var pnf *ParentNotFoundError
	return errors.As(err, &pnf)
}
