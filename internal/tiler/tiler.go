// Package tiler cuts point sources into XYZ tiles with tile-local pixel
// coordinates, the shape the selection engine queries against. It is also
// where feature ids get their global uniqueness: ids are taken from the
// source when present and generated otherwise, and a duplicate id within
// a tile shadows the earlier feature rather than failing.
package tiler

import (
	"math"

	"github.com/google/uuid"
	"github.com/paulmach/orb"

	"gopick/internal/geom"
	"gopick/internal/store"
)

// Cut slices sources into tiles at the given zoom. Each point is
// projected to global pixel space, assigned to its covering tile, and
// stored with tile-local coordinates. Every feature carries "id" and
// "sourcefile" properties.
func Cut(sources []Source, zoom int, sourcefile string) []*store.Tile {
	merc := geom.WebMercator{}
	limit := 1 << zoom
	tiles := make(map[geom.TileCoord]*store.Tile)

	for _, src := range sources {
		gp := merc.Project(orb.Point{src.Lon, src.Lat}, zoom)
		tc := geom.TileCoord{
			X: clamp(int(math.Floor(gp[0]/geom.ReferenceSize)), 0, limit-1),
			Y: clamp(int(math.Floor(gp[1]/geom.ReferenceSize)), 0, limit-1),
			Z: zoom,
		}
		t := tiles[tc]
		if t == nil {
			t = store.NewTile(tc, geom.ReferenceSize)
			tiles[tc] = t
		}

		id := src.ID
		if id == "" {
			id = uuid.NewString()
		}
		props := make(map[string]string, len(src.Props)+2)
		for k, v := range src.Props {
			props[k] = v
		}
		props["id"] = id
		props["sourcefile"] = sourcefile

		t.Put(&store.Feature{
			ID:    id,
			Props: props,
			Point: orb.Point{
				gp[0] - float64(tc.X)*geom.ReferenceSize,
				gp[1] - float64(tc.Y)*geom.ReferenceSize,
			},
		})
	}

	out := make([]*store.Tile, 0, len(tiles))
	for _, t := range tiles {
		out = append(out, t)
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
