// Package neo holds the in-memory source data model: blocks that contain
// an ordered sequence of segments. It is the Go counterpart of the neo
// core objects consumed by the NIX writer.
package neo

// Block is a top-level named entity holding a sequence of Segments.
type Block struct {
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Segments    []*Segment `json:"segments,omitempty"`
}

// Segment is a named child entity belonging to exactly one Block.
type Segment struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// Entity is the common accessor surface of the source model. Writers and
// equivalence checks consume entities through it so blocks and segments
// can share one mapping table.
type Entity interface {
	GetName() string
	GetDescription() *string
}

var (
	_ Entity = (*Block)(nil)
	_ Entity = (*Segment)(nil)
)

// GetName returns the block name.
func (b *Block) GetName() string { return b.Name }

// GetDescription returns the block description, nil when unset.
func (b *Block) GetDescription() *string { return b.Description }

// GetName returns the segment name.
func (s *Segment) GetName() string { return s.Name }

// GetDescription returns the segment description, nil when unset.
func (s *Segment) GetDescription() *string { return s.Description }
