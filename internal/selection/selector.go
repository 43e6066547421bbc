package selection

import (
	"gopick/internal/geom"
	"gopick/internal/store"
)

// Selector answers containment queries over the live tile store. It keeps
// no index: only tiles already resident for rendering are ever scanned,
// so a full scan is bounded by what is on screen.
type Selector struct {
	store *store.Store
}

func NewSelector(s *store.Store) *Selector {
	return &Selector{store: s}
}

// Within returns the ids of all features whose projected point falls
// inside the region, edges included. The order is discovery order over an
// unordered store: every match appears exactly once, but callers must not
// depend on a particular sequence.
func (s *Selector) Within(r geom.Region) []string {
	var ids []string
	s.store.Each(func(t *store.Tile) {
		for _, f := range t.Features {
			if r.Contains(geom.Transform(f.Point, t.Size, t.Coord)) {
				ids = append(ids, f.ID)
			}
		}
	})
	return ids
}
