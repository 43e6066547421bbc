package geom

import (
	"math"

	"github.com/paulmach/orb"
)

// Transform converts a tile-local point into the map's global pixel space.
// tileSize is the tile's square pixel size; local coordinates are
// extent-normalized against ReferenceSize.
func Transform(local orb.Point, tileSize float64, tc TileCoord) orb.Point {
	pxPerExtent := tileSize / ReferenceSize
	return orb.Point{
		float64(tc.X)*tileSize + local[0]*pxPerExtent,
		float64(tc.Y)*tileSize + local[1]*pxPerExtent,
	}
}

// Unprojector converts a global pixel coordinate into a geographic one.
// Containment queries run entirely in projected space; unprojection is
// only needed where geographic values are displayed.
type Unprojector interface {
	Unproject(p orb.Point, zoom int) orb.Point
}

// WebMercator maps between lon/lat and zoom-scaled global pixel space,
// where the world at zoom z spans ReferenceSize*2^z pixels and y grows
// southward.
type WebMercator struct{}

// Project maps a lon/lat point to global pixel coordinates at zoom.
func (WebMercator) Project(g orb.Point, zoom int) orb.Point {
	scale := ReferenceSize * math.Exp2(float64(zoom))
	rad := g[1] * math.Pi / 180.0
	x := (g[0] + 180.0) / 360.0 * scale
	y := (1.0 - math.Log(math.Tan(rad)+1.0/math.Cos(rad))/math.Pi) / 2.0 * scale
	return orb.Point{x, y}
}

// Unproject maps global pixel coordinates at zoom back to lon/lat.
func (WebMercator) Unproject(p orb.Point, zoom int) orb.Point {
	scale := ReferenceSize * math.Exp2(float64(zoom))
	lon := p[0]/scale*360.0 - 180.0
	lat := 180.0 / math.Pi * math.Atan(math.Sinh(math.Pi*(1.0-2.0*p[1]/scale)))
	return orb.Point{lon, lat}
}
