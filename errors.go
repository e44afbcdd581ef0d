package neo2nix

import "fmt"

// ParentNotFoundError reports that no block equivalent to a segment's
// declared parent exists in the target container. The store is closed
// before the error propagates and no target mutation has occurred.
type ParentNotFoundError struct {
	Parent   string
	Segment  string
	Filename string
}

// Error implements the error interface.
func (e *ParentNotFoundError) Error() string {
	return fmt.Sprintf("parent block %q for segment %q does not exist in file %q",
		e.Parent, e.Segment, e.Filename)
}
