package geom

import (
	"fmt"

	"github.com/paulmach/orb"
)

// ReferenceSize is the canonical tile pixel size that feature coordinates
// are extent-normalized against.
const ReferenceSize = 256.0

// TileCoord identifies a tile in the XYZ scheme (Tiled web map).
type TileCoord struct {
	X int
	Y int
	Z int
}

func (t TileCoord) String() string { return fmt.Sprintf("%d/%d/%d", t.Z, t.X, t.Y) }

// Region is an axis-aligned box in projected coordinates. Corners are
// normalized to min/max at construction, so downstream logic never depends
// on which corner was listed first.
type Region struct {
	bound orb.Bound
}

// NewRegion builds a Region from two corner points in any order.
func NewRegion(a, b orb.Point) Region {
	return Region{bound: orb.MultiPoint{a, b}.Bound()}
}

// Contains reports whether p lies inside the region, edges included.
// A zero-area region still contains the point both corners sit on.
func (r Region) Contains(p orb.Point) bool { return r.bound.Contains(p) }

// Bound returns the normalized min/max box.
func (r Region) Bound() orb.Bound { return r.bound }
