package selection

import (
	"gopick/internal/geom"
	"gopick/internal/store"
)

// Layer is the controller the host wires its events into. It is the
// single owner of the selection state; every operation runs synchronously
// to completion inside one event-handler invocation.
type Layer struct {
	selector *Selector
	state    *State
	exporter *Exporter

	// OnShapeClear, when set, is notified before a single-feature
	// selection mutates state, so a drawing tool can drop a stale
	// region overlay.
	OnShapeClear func()

	// Deliver, when set, receives export artifacts for the host to
	// surface (write to disk, download, clipboard).
	Deliver func(Artifact)
}

func NewLayer(st *store.Store, applier StyleApplier) *Layer {
	return &Layer{
		selector: NewSelector(st),
		state:    NewState(applier),
		exporter: NewExporter(st),
	}
}

// SelectFeature handles a click resolved to a single feature id.
func (l *Layer) SelectFeature(id string) {
	if l.OnShapeClear != nil {
		l.OnShapeClear()
	}
	l.state.Select(id)
}

// SelectFeatures replaces the selection with the given ids.
func (l *Layer) SelectFeatures(ids []string) {
	l.state.SelectMany(ids)
}

// SelectWithin resolves a drawn region against the store and replaces
// the selection with the features inside it. It returns the resolved ids.
func (l *Layer) SelectWithin(r geom.Region) []string {
	ids := l.selector.Within(r)
	l.state.SelectMany(ids)
	return ids
}

// ClearSelected empties the selection.
func (l *Layer) ClearSelected() {
	l.state.Clear()
}

// Selected returns the selected ids in selection order.
func (l *Layer) Selected() []string { return l.state.Selected() }

// Has reports whether id is currently selected.
func (l *Layer) Has(id string) bool { return l.state.Has(id) }

// Len returns the selection size.
func (l *Layer) Len() int { return l.state.Len() }

// Records resolves the current selection for host-side display.
func (l *Layer) Records() []Record {
	return l.exporter.Records(l.state.Selected())
}

// ExportSelectedCSV serializes the current selection and hands the
// artifact to the Deliver hook. It reports whether an artifact was
// produced; a selection that resolves to zero live records produces none.
func (l *Layer) ExportSelectedCSV() bool {
	recs := l.exporter.Records(l.state.Selected())
	if len(recs) == 0 {
		return false
	}
	if l.Deliver != nil {
		l.Deliver(NewArtifact(SerializeCSV(recs)))
	}
	return true
}
