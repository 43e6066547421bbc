// Package selection implements the point-selection engine: containment
// queries over loaded tiles, the toggle/replace selection state machine,
// and CSV export of the selected features.
package selection

// Style mirrors the host renderer's point styling surface.
type Style struct {
	Weight      int
	Color       string
	FillColor   string
	Opacity     float64
	FillOpacity float64
	Fill        bool
	Radius      int
}

// Highlight is the fixed style applied to every selected feature.
var Highlight = Style{
	Weight:      1,
	Color:       "yellow",
	FillColor:   "yellow",
	Opacity:     1,
	FillOpacity: 1,
	Fill:        true,
	Radius:      3,
}

// StyleApplier renders selection state for a single feature id. Reset
// restores the default (unselected) style and is the canonical way to
// undo a highlight.
type StyleApplier interface {
	Apply(style Style, id string)
	Reset(id string)
}
