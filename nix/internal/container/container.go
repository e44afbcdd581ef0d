// Package container defines the serialized document form of a NIX
// container and its YAML codec. The nix package wraps these nodes with
// live handles; nothing outside nix should depend on this layout.
package container

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Version of the document schema.
const Version = 1

// Document is the root of a serialized container.
type Document struct {
	// Version of the document schema (for future compatibility).
	Version int `yaml:"version"`

	// Blocks are the root nodes, in creation order.
	Blocks []*Node `yaml:"blocks"`
}

// Node is one entity in the container tree. Root nodes are block-like and
// may carry Groups; child nodes leave Groups empty.
type Node struct {
	ID         string    `yaml:"id"`
	Name       string    `yaml:"name"`
	Type       string    `yaml:"type"`
	Definition *string   `yaml:"definition,omitempty"`
	CreatedAt  time.Time `yaml:"created_at"`
	Groups     []*Node   `yaml:"groups,omitempty"`
}

// New returns an empty document at the current schema version.
func New() *Document {
	return &Document{Version: Version}
}

// NewNode builds a node with identity and creation metadata set.
func NewNode(id, name, typ string, createdAt time.Time) *Node {
	return &Node{
		ID:        id,
		Name:      name,
		Type:      typ,
		CreatedAt: createdAt,
	}
}

// Encode serializes a document to YAML.
func Encode(doc *Document) ([]byte, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal container document: %w", err)
	}

	return data, nil
}

// Decode parses YAML data into a document.
func Decode(data []byte) (*Document, error) {
	var doc Document

	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse container document: %w", err)
	}

	if doc.Version == 0 {
		doc.Version = Version
	}

	return &doc, nil
}
