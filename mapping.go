package neo2nix

import (
	"github.com/G-Node/neo2nix/neo"
	"github.com/G-Node/neo2nix/nix"
)

// attributeMapping relates one source attribute to its target counterpart
// through explicit accessors. The names are kept for documentation and
// diagnostics; lookup never goes through attribute-name strings.
type attributeMapping struct {
	Source string
	Target string

	fromNeo func(neo.Entity) *string
	fromNix func(nix.Entity) *string
}

// containerMapping relates one source child collection to its target
// counterpart. The accessors report ok=false when the entity kind has no
// such collection, the counterpart of an absent attribute.
type containerMapping struct {
	Source string
	Target string

	fromNeo func(neo.Entity) ([]neo.Entity, bool)
	fromNix func(nix.Entity) ([]nix.Entity, bool)
}

// attributeMappings is the fixed attribute correspondence table:
// name→name and description→definition.
var attributeMappings = []attributeMapping{
	{
		Source: "name",
		Target: "name",
		fromNeo: func(e neo.Entity) *string {
			name := e.GetName()
			return &name
		},
		fromNix: func(e nix.Entity) *string {
			name := e.Name()
			return &name
		},
	},
	{
		Source: "description",
		Target: "definition",
		fromNeo: func(e neo.Entity) *string { return e.GetDescription() },
		fromNix: func(e nix.Entity) *string { return e.Definition() },
	},
}

// containerMappings is the fixed container correspondence table:
// segments→groups.
var containerMappings = []containerMapping{
	{
		Source: "segments",
		Target: "groups",
		fromNeo: func(e neo.Entity) ([]neo.Entity, bool) {
			block, ok := e.(*neo.Block)
			if !ok {
				return nil, false
			}

			children := make([]neo.Entity, len(block.Segments))
			for i, segment := range block.Segments {
				children[i] = segment
			}

			return children, true
		},
		fromNix: func(e nix.Entity) ([]nix.Entity, bool) {
			block, ok := e.(*nix.Block)
			if !ok {
				return nil, false
			}

			groups := block.Groups()

			children := make([]nix.Entity, len(groups))
			for i, group := range groups {
				children[i] = group
			}

			return children, true
		},
	},
}

// equalText compares two nullable attribute values. Absent matches only
// absent; present values must be identical.
func equalText(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return *a == *b
}

// Equivalent reports whether a target entity corresponds to a source
// entity under the mapping tables. It is a pure predicate: no store
// access, no side effects.
//
// Every mapped attribute pair must hold equal values; any mismatch
// short-circuits to false. With cascade, every mapped container pair must
// be present on both sides or absent on both, hold equally many children,
// and match pairwise in iteration order — children are compared on direct
// attributes only, one level deep, never recursing further.
func Equivalent(src neo.Entity, tgt nix.Entity, cascade bool) bool {
	for _, m := range attributeMappings {
		if !equalText(m.fromNeo(src), m.fromNix(tgt)) {
			return false
		}
	}

	if !cascade {
		return true
	}

	for _, m := range containerMappings {
		srcChildren, srcOK := m.fromNeo(src)
		tgtChildren, tgtOK := m.fromNix(tgt)

		if !srcOK && !tgtOK {
			continue
		}

		if srcOK != tgtOK {
			return false
		}

		if len(srcChildren) != len(tgtChildren) {
			return false
		}

		for i := range srcChildren {
			if !Equivalent(srcChildren[i], tgtChildren[i], false) {
				return false
			}
		}
	}

	return true
}
