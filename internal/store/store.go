// Package store holds the live collection of loaded tiles and their
// point features. The ingestion side is its only mutator; readers treat
// every call as a point-in-time snapshot and tolerate features vanishing
// between calls.
package store

import (
	"github.com/paulmach/orb"

	"gopick/internal/geom"
)

// Feature is a single point entity inside a tile. Point is in tile-local
// pixel units. Props carries at least "id" and "sourcefile".
type Feature struct {
	ID    string
	Props map[string]string
	Point orb.Point
}

// Tile owns the features whose geometry falls inside it, keyed by id.
type Tile struct {
	Coord    geom.TileCoord
	Size     float64
	Features map[string]*Feature
}

func NewTile(tc geom.TileCoord, size float64) *Tile {
	return &Tile{Coord: tc, Size: size, Features: make(map[string]*Feature)}
}

// Put inserts f, shadowing any previous feature with the same id.
func (t *Tile) Put(f *Feature) { t.Features[f.ID] = f }

// Store is the set of currently loaded tiles.
type Store struct {
	tiles map[geom.TileCoord]*Tile
}

func New() *Store {
	return &Store{tiles: make(map[geom.TileCoord]*Tile)}
}

// Put loads a tile, replacing any tile already at its coordinate.
func (s *Store) Put(t *Tile) { s.tiles[t.Coord] = t }

// Evict unloads the tile at tc, if present.
func (s *Store) Evict(tc geom.TileCoord) { delete(s.tiles, tc) }

// Clear unloads every tile.
func (s *Store) Clear() { s.tiles = make(map[geom.TileCoord]*Tile) }

// Len returns the number of loaded tiles.
func (s *Store) Len() int { return len(s.tiles) }

// Count returns the number of features across all loaded tiles.
func (s *Store) Count() int {
	n := 0
	for _, t := range s.tiles {
		n += len(t.Features)
	}
	return n
}

// Each visits every loaded tile. Visit order is unspecified.
func (s *Store) Each(fn func(*Tile)) {
	for _, t := range s.tiles {
		fn(t)
	}
}

// Find looks up a feature by id across all loaded tiles. A missing id is
// not an error; the feature's tile may simply have been evicted.
func (s *Store) Find(id string) (*Feature, bool) {
	for _, t := range s.tiles {
		if f, ok := t.Features[id]; ok {
			return f, true
		}
	}
	return nil, false
}

// Bounds returns the projected bounding box of all loaded features.
// ok is false when the store holds no features.
func (s *Store) Bounds() (bound orb.Bound, ok bool) {
	for _, t := range s.tiles {
		for _, f := range t.Features {
			p := geom.Transform(f.Point, t.Size, t.Coord)
			if !ok {
				bound = orb.Bound{Min: p, Max: p}
				ok = true
			} else {
				bound = bound.Extend(p)
			}
		}
	}
	return bound, ok
}
