package neo2nix

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/G-Node/neo2nix/neo"
	"github.com/G-Node/neo2nix/nix"
)

// tempContainer returns a container path inside a per-test directory.
func tempContainer(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "test."+Extension)
}

// readBlocks reopens the container read-only and returns its roots.
func readBlocks(t *testing.T, path string) []*nix.Block {
	t.Helper()

	f, err := nix.Open(path, nix.ReadOnly)
	require.NoError(t, err)

	defer func() { require.NoError(t, f.Close()) }()

	return f.Blocks()
}

func TestNew_UnknownBackend(t *testing.T) {
	_, err := New(tempContainer(t), WithBackend("does-not-exist"))
	require.Error(t, err)

	var ube *nix.UnknownBackendError
	require.ErrorAs(t, err, &ube)
	assert.Equal(t, "does-not-exist", ube.Name)
}

func TestWriteBlock_NoCascade(t *testing.T) {
	path := tempContainer(t)

	io, err := New(path)
	require.NoError(t, err)

	block := &neo.Block{
		Name:        "b1",
		Description: strp("d1"),
		Segments:    []*neo.Segment{{Name: "s1"}, {Name: "s2"}},
	}
	require.NoError(t, io.WriteBlock(block, false))

	roots := readBlocks(t, path)
	require.Len(t, roots, 1)
	assert.Equal(t, "b1", roots[0].Name())
	assert.Equal(t, "neo.block", roots[0].Type())
	require.NotNil(t, roots[0].Definition())
	assert.Equal(t, "d1", *roots[0].Definition())
	assert.Empty(t, roots[0].Groups())
}

func TestWriteBlock_CascadeRoundTrip(t *testing.T) {
	path := tempContainer(t)

	io, err := New(path, WithLogger(zap.NewNop()))
	require.NoError(t, err)

	block := &neo.Block{
		Name:        "B1",
		Description: strp("d1"),
		Segments: []*neo.Segment{
			{Name: "S1", Description: strp("x")},
			{Name: "S2", Description: strp("y")},
		},
	}
	require.NoError(t, io.WriteBlock(block, true))

	roots := readBlocks(t, path)
	require.Len(t, roots, 1)
	assert.Equal(t, "B1", roots[0].Name())
	require.NotNil(t, roots[0].Definition())
	assert.Equal(t, "d1", *roots[0].Definition())

	groups := roots[0].Groups()
	require.Len(t, groups, 2)

	assert.Equal(t, "S1", groups[0].Name())
	assert.Equal(t, "neo.segment", groups[0].Type())
	require.NotNil(t, groups[0].Definition())
	assert.Equal(t, "x", *groups[0].Definition())

	assert.Equal(t, "S2", groups[1].Name())
	require.NotNil(t, groups[1].Definition())
	assert.Equal(t, "y", *groups[1].Definition())

	assert.True(t, Equivalent(block, roots[0], true))
}

func TestWriteBlock_OverwritesPriorContent(t *testing.T) {
	path := tempContainer(t)

	io, err := New(path)
	require.NoError(t, err)

	first := &neo.Block{
		Name:     "old",
		Segments: []*neo.Segment{{Name: "stale"}},
	}
	require.NoError(t, io.WriteBlock(first, true))

	second := &neo.Block{Name: "new", Description: strp("fresh")}
	require.NoError(t, io.WriteBlock(second, true))

	roots := readBlocks(t, path)
	require.Len(t, roots, 1)
	assert.Equal(t, "new", roots[0].Name())
	assert.Empty(t, roots[0].Groups())
}

func TestWriteBlock_NilDescription(t *testing.T) {
	path := tempContainer(t)

	io, err := New(path)
	require.NoError(t, err)

	require.NoError(t, io.WriteBlock(&neo.Block{Name: "b"}, false))

	roots := readBlocks(t, path)
	require.Len(t, roots, 1)
	assert.Nil(t, roots[0].Definition())
}

func TestWriteSegment_ParentNotFound(t *testing.T) {
	path := tempContainer(t)

	io, err := New(path)
	require.NoError(t, err)

	// Seed a container whose only root does not match the parent.
	require.NoError(t, io.WriteBlock(&neo.Block{Name: "present"}, false))

	parent := &neo.Block{Name: "absent"}
	segment := &neo.Segment{Name: "s1"}

	err = io.WriteSegment(segment, parent, true)
	require.Error(t, err)

	var pnf *ParentNotFoundError
	require.ErrorAs(t, err, &pnf)
	assert.Equal(t, "absent", pnf.Parent)
	assert.Equal(t, "s1", pnf.Segment)
	assert.Equal(t, path, pnf.Filename)
	assert.True(t, IsParentNotFound(err))

	// Existing content is untouched by the failed write.
	roots := readBlocks(t, path)
	require.Len(t, roots, 1)
	assert.Equal(t, "present", roots[0].Name())
	assert.Empty(t, roots[0].Groups())
}

func TestWriteSegment_MissingContainer(t *testing.T) {
	path := tempContainer(t)

	io, err := New(path)
	require.NoError(t, err)

	err = io.WriteSegment(&neo.Segment{Name: "s1"}, &neo.Block{Name: "b1"}, true)
	assert.True(t, IsParentNotFound(err))

	// The failed lookup must not have materialized a container.
	_, statErr := os.Stat(path)
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}

// The segment lands under the block that actually matched its parent,
// not under the first root of the container.
func TestWriteSegment_MultipleRoots(t *testing.T) {
	path := tempContainer(t)

	f, err := nix.Open(path, nix.Overwrite)
	require.NoError(t, err)

	_, err = f.CreateBlock("b1", "neo.block")
	require.NoError(t, err)
	_, err = f.CreateBlock("b2", "neo.block")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	io, err := New(path)
	require.NoError(t, err)

	err = io.WriteSegment(&neo.Segment{Name: "s", Description: strp("x")}, &neo.Block{Name: "b2"}, true)
	require.NoError(t, err)

	roots := readBlocks(t, path)
	require.Len(t, roots, 2)
	assert.Empty(t, roots[0].Groups())
	require.Len(t, roots[1].Groups(), 1)
	assert.Equal(t, "s", roots[1].Groups()[0].Name())
}

func TestWriteSegment_CascadeIsIgnored(t *testing.T) {
	path := tempContainer(t)

	io, err := New(path)
	require.NoError(t, err)

	parent := &neo.Block{Name: "b1"}
	require.NoError(t, io.WriteBlock(parent, false))

	// cascade has no effect on the group write path; both calls append.
	require.NoError(t, io.WriteSegment(&neo.Segment{Name: "s1"}, parent, true))
	require.NoError(t, io.WriteSegment(&neo.Segment{Name: "s2"}, parent, false))

	roots := readBlocks(t, path)
	require.Len(t, roots, 1)
	assert.Len(t, roots[0].Groups(), 2)
}

func TestSupports(t *testing.T) {
	assert.True(t, Supports(&neo.Block{}))
	assert.True(t, Supports(&neo.Segment{}))
	assert.False(t, Supports(nil))
}
