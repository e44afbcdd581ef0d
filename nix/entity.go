package nix

import (
	"time"

	"github.com/google/uuid"

	"github.com/G-Node/neo2nix/nix/internal/container"
)

// Entity is the accessor surface shared by blocks and groups.
type Entity interface {
	ID() string
	Name() string
	Type() string
	Definition() *string
	CreatedAt() time.Time
}

var (
	_ Entity = (*Block)(nil)
	_ Entity = (*Group)(nil)
)

// entity wraps one document node and guards mutations through the owning
// file handle.
type entity struct {
	file *File
	node *container.Node
}

// ID returns the immutable identity assigned at creation.
func (e *entity) ID() string { return e.node.ID }

// Name returns the entity name.
func (e *entity) Name() string { return e.node.Name }

// Type returns the entity type tag.
func (e *entity) Type() string { return e.node.Type }

// Definition returns the entity definition, nil when unset.
func (e *entity) Definition() *string { return e.node.Definition }

// CreatedAt returns the creation timestamp assigned when the entity was
// first written.
func (e *entity) CreatedAt() time.Time { return e.node.CreatedAt }

// SetDefinition sets or clears the entity definition and persists the
// change.
func (e *entity) SetDefinition(definition *string) error {
	if err := e.file.writable(); err != nil {
		return err
	}

	if definition == nil {
		e.node.Definition = nil
	} else {
		d := *definition
		e.node.Definition = &d
	}

	return e.file.store()
}

// Block is a root node of a container. It holds group children in
// creation order.
type Block struct {
	entity
	groups []*Group
}

// Group is a child node of a Block.
type Group struct {
	entity
}

// wrapBlock builds live handles over a root node and its children.
func wrapBlock(f *File, node *container.Node) *Block {
	b := &Block{entity: entity{file: f, node: node}}

	b.groups = make([]*Group, 0, len(node.Groups))
	for _, child := range node.Groups {
		b.groups = append(b.groups, &Group{entity: entity{file: f, node: child}})
	}

	return b
}

// Groups returns the block's group children in creation order.
func (b *Block) Groups() []*Group { return b.groups }

// CreateGroup appends a group child with the given name and type tag.
// Group names are not required to be unique: distinct source children may
// legitimately share a name.
func (b *Block) CreateGroup(name, typ string) (*Group, error) {
	if err := b.file.writable(); err != nil {
		return nil, err
	}

	node := container.NewNode(uuid.NewString(), name, typ, time.Now().UTC())

	b.node.Groups = append(b.node.Groups, node)
	if err := b.file.store(); err != nil {
		b.node.Groups = b.node.Groups[:len(b.node.Groups)-1]
		return nil, err
	}

	group := &Group{entity: entity{file: b.file, node: node}}
	b.groups = append(b.groups, group)

	return group, nil
}
