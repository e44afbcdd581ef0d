package nix

import (
	"io"

	"github.com/davecgh/go-spew/spew"
)

// dumpConfig renders deterministic output: no pointer addresses or
// capacities, sorted map keys.
var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Dump writes a human-readable rendering of the container's current
// document to w. Intended for troubleshooting and test diagnostics.
func Dump(w io.Writer, f *File) {
	dumpConfig.Fdump(w, f.doc)
}
