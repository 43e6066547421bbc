package tiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopick/internal/geom"
	"gopick/internal/store"
)

func TestCutRoundTripsThroughTransform(t *testing.T) {
	sources := []Source{
		{Lon: -122.4194, Lat: 37.7749, Props: map[string]string{}},
		{Lon: 151.2093, Lat: -33.8688, Props: map[string]string{}},
		{Lon: 0, Lat: 0, Props: map[string]string{}},
		{Lon: 13.4050, Lat: 52.5200, Props: map[string]string{}},
	}
	const zoom = 4
	var merc geom.WebMercator

	tiles := Cut(sources, zoom, "pts.csv")
	n := 0
	for _, tile := range tiles {
		assert.Equal(t, zoom, tile.Coord.Z)
		assert.Equal(t, float64(geom.ReferenceSize), tile.Size)
		for _, f := range tile.Features {
			n++
			// reconstructing the global point from tile-local
			// coordinates must land where the source projected
			global := geom.Transform(f.Point, tile.Size, tile.Coord)
			geo := merc.Unproject(global, zoom)
			matched := false
			for _, src := range sources {
				if absf(src.Lon-geo[0]) < 1e-6 && absf(src.Lat-geo[1]) < 1e-6 {
					matched = true
					break
				}
			}
			assert.True(t, matched, "feature %s unprojects to a source point", f.ID)
		}
	}
	assert.Equal(t, len(sources), n)
}

func TestCutGeneratesUniqueIDs(t *testing.T) {
	sources := make([]Source, 50)
	for i := range sources {
		sources[i] = Source{Lon: float64(i) - 25, Lat: float64(i%10) * 5, Props: map[string]string{}}
	}
	tiles := Cut(sources, 2, "gen.csv")

	seen := make(map[string]bool)
	for _, tile := range tiles {
		for id, f := range tile.Features {
			assert.False(t, seen[id], "id %s assigned twice", id)
			seen[id] = true
			assert.Equal(t, id, f.Props["id"])
			assert.Equal(t, "gen.csv", f.Props["sourcefile"])
		}
	}
	assert.Len(t, seen, len(sources))
}

func TestCutKeepsSourceID(t *testing.T) {
	tiles := Cut([]Source{
		{ID: "station-7", Lon: 2.3522, Lat: 48.8566, Props: map[string]string{"name": "paris"}},
	}, 3, "stations.csv")

	require.Len(t, tiles, 1)
	f, ok := findFeature(tiles, "station-7")
	require.True(t, ok)
	assert.Equal(t, "station-7", f.Props["id"])
	assert.Equal(t, "paris", f.Props["name"])
	assert.Equal(t, "stations.csv", f.Props["sourcefile"])
}

func TestCutDuplicateIDShadows(t *testing.T) {
	// two sources claiming the same id near the same location: the
	// store must end up with one feature, not a crash
	tiles := Cut([]Source{
		{ID: "dup", Lon: 10, Lat: 10, Props: map[string]string{"v": "first"}},
		{ID: "dup", Lon: 10.001, Lat: 10.001, Props: map[string]string{"v": "second"}},
	}, 1, "dups.csv")

	f, ok := findFeature(tiles, "dup")
	require.True(t, ok)
	assert.Equal(t, "second", f.Props["v"], "last write wins")
	total := 0
	for _, tile := range tiles {
		total += len(tile.Features)
	}
	assert.Equal(t, 1, total)
}

func TestCutClampsEdgeOfWorld(t *testing.T) {
	tiles := Cut([]Source{
		{Lon: 180, Lat: 0, Props: map[string]string{}},
		{Lon: -180, Lat: 0, Props: map[string]string{}},
	}, 2, "edge.csv")

	for _, tile := range tiles {
		assert.GreaterOrEqual(t, tile.Coord.X, 0)
		assert.Less(t, tile.Coord.X, 4)
		assert.GreaterOrEqual(t, tile.Coord.Y, 0)
		assert.Less(t, tile.Coord.Y, 4)
	}
}

func findFeature(tiles []*store.Tile, id string) (*store.Feature, bool) {
	for _, tile := range tiles {
		if f, ok := tile.Features[id]; ok {
			return f, true
		}
	}
	return nil, false
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
