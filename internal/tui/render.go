package tui

import (
	"sort"
	"strings"

	"github.com/paulmach/orb"

	"gopick/internal/geom"
	"gopick/internal/store"
)

// eachProjected visits every loaded feature with its global projected
// point. Iteration order is whatever the store yields.
func (m Model) eachProjected(fn func(f *store.Feature, px orb.Point)) {
	m.st.Each(func(t *store.Tile) {
		for _, f := range t.Features {
			fn(f, geom.Transform(f.Point, t.Size, t.Coord))
		}
	})
}

// screenXYMicro maps a projected point into a 2x4 microgrid per cell for
// braille rendering. Projected y grows southward, matching screen y.
func (m Model) screenXYMicro(p orb.Point, w, h int) (int, int, bool) {
	if !m.hasData {
		return 0, 0, false
	}
	nx := (p[0] - m.bounds.Min[0]) / (m.bounds.Max[0] - m.bounds.Min[0])
	ny := (p[1] - m.bounds.Min[1]) / (m.bounds.Max[1] - m.bounds.Min[1])
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	wMic := w * 2
	hMic := h * 4
	sx := int(zx*float64(wMic-1)) + m.offsetX*2
	sy := int(zy*float64(hMic-1)) + m.offsetY*4
	return sx, sy, true
}

// screenXY maps a projected point to screen cell coordinates considering
// zoom and pan.
func (m Model) screenXY(p orb.Point, w, h int) (int, int, bool) {
	sx, sy, ok := m.screenXYMicro(p, w, h)
	if !ok {
		return 0, 0, false
	}
	return sx / 2, sy / 4, true
}

// cellToProjected converts a map cell coordinate back to a projected
// point using the viewport box, zoom, and pan. This is the inverse of
// screenXY and is what turns mouse events into query coordinates.
func (m Model) cellToProjected(cx, cy, w, h int) (orb.Point, bool) {
	if !m.hasData || w <= 1 || h <= 1 {
		return orb.Point{}, false
	}
	zx := float64(cx-m.offsetX) / float64(w-1)
	zy := float64(cy-m.offsetY) / float64(h-1)
	nx := 0.5 + (zx-0.5)/m.zoom
	ny := 0.5 + (zy-0.5)/m.zoom
	return orb.Point{
		m.bounds.Min[0] + nx*(m.bounds.Max[0]-m.bounds.Min[0]),
		m.bounds.Min[1] + ny*(m.bounds.Max[1]-m.bounds.Min[1]),
	}, true
}

// pickRadiusSq bounds how far (in micro pixels, squared) a click may land
// from a feature and still count as hitting it.
const pickRadiusSq = 36

// pickAt resolves a map cell to the nearest rendered feature id within
// the pick radius.
func (m Model) pickAt(cx, cy, w, h int) (string, bool) {
	hxMic := cx*2 + 1
	hyMic := cy*4 + 2
	best := pickRadiusSq + 1
	var bestID string
	m.eachProjected(func(f *store.Feature, px orb.Point) {
		mx, my, ok := m.screenXYMicro(px, w, h)
		if !ok {
			return
		}
		dx := mx - hxMic
		dy := my - hyMic
		d := dx*dx + dy*dy
		if d < best {
			best = d
			bestID = f.ID
		}
	})
	return bestID, best <= pickRadiusSq
}

func (m Model) renderAsciiMap(w, h int) string {
	// Plain background (no grid)
	lines := make([]string, h)
	for y := 0; y < h; y++ {
		lines[y] = strings.Repeat(" ", w)
	}
	// High-resolution braille buffer for points and region outlines
	br := newBrailleBuf(w, h)

	// Unselected features as braille dots; selected ids get markers later
	type cell struct{ x, y int }
	markers := make(map[cell]string)
	m.eachProjected(func(f *store.Feature, px orb.Point) {
		mx, my, ok := m.screenXYMicro(px, w, h)
		if !ok {
			return
		}
		if st, sel := m.styler.styleOf(f.ID); sel {
			markers[cell{x: mx / 2, y: my / 4}] = markerFor(st)
			return
		}
		br.setPixel(mx, my)
	})

	// Last drawn region, until a click clears it
	if m.shape.active {
		ax, ay, ok1 := m.screenXYMicro(m.shape.a, w, h)
		bx, by, ok2 := m.screenXYMicro(m.shape.b, w, h)
		if ok1 && ok2 {
			br.drawRectMicro(ax, ay, bx, by)
		}
	}
	// Live rubber band while dragging
	if m.dragging && m.dragMoved {
		br.drawRectMicro(m.dragStartX*2, m.dragStartY*4, m.dragX*2+1, m.dragY*4+2)
	}

	// Composite braille overlay onto base lines
	braLines := br.toLines()
	for y := 0; y < h && y < len(braLines); y++ {
		base := []rune(lines[y])
		over := []rune(braLines[y])
		for x := 0; x < len(base) && x < len(over); x++ {
			if over[x] != ' ' {
				base[x] = over[x]
			}
		}
		lines[y] = string(base)
	}

	// Selected markers last so highlights win over dots and outlines.
	// Splice right-to-left per row: the inserted ANSI sequences shift
	// rune indices, so only positions left of a splice stay valid.
	perRow := make(map[int][]int)
	for c := range markers {
		if c.y >= 0 && c.y < h && c.x >= 0 && c.x < w {
			perRow[c.y] = append(perRow[c.y], c.x)
		}
	}
	for y, xs := range perRow {
		sort.Sort(sort.Reverse(sort.IntSlice(xs)))
		for _, x := range xs {
			r := []rune(lines[y])
			lines[y] = string(r[:x]) + markers[cell{x: x, y: y}] + string(r[x+1:])
		}
	}
	return strings.Join(lines, "\n")
}
