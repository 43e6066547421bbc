package tui

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"gopick/internal/selection"
	"gopick/internal/tiler"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext == ".geojson" || ext == ".json" || ext == ".csv" || ext == ".kml" || ext == ".wkt" {
			items = append(items, fileItem{title: name, desc: ext, path: filepath.Join(m.cwd, name)})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

// loadPath runs the ingestion pipeline: load point sources, cut them into
// tiles, and swap them into the store. The selection is cleared because
// the previous selection's ids no longer resolve.
func (m *Model) loadPath(p string) {
	sources, err := tiler.Load(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		return
	}
	m.selPath = p
	m.ingest(sources, filepath.Base(p))
	m.status = fmt.Sprintf("loaded: %s  tiles=%d features=%d (z%d)",
		filepath.Base(p), m.st.Len(), m.st.Count(), m.tileZoom)
}

// loadPasted routes pasted WKT through the same pipeline with a synthetic
// source name.
func (m *Model) loadPasted(sources []tiler.Source) {
	m.selPath = ""
	m.ingest(sources, "<pasted>")
	m.status = fmt.Sprintf("pasted: tiles=%d features=%d (z%d)", m.st.Len(), m.st.Count(), m.tileZoom)
}

func (m *Model) ingest(sources []tiler.Source, sourcefile string) {
	m.layer.ClearSelected()
	m.shape.active = false
	m.st.Clear()
	for _, t := range tiler.Cut(sources, m.tileZoom, sourcefile) {
		m.st.Put(t)
	}
	m.recalcBounds()
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0
	if m.showAttrs {
		m.refreshAttrsFromSelection()
	}
}

// recalcBounds refreshes the projected viewport box. Degenerate boxes
// (single feature, or all features on one line) are padded so the screen
// mapping keeps a nonzero extent on both axes.
func (m *Model) recalcBounds() {
	b, ok := m.st.Bounds()
	if !ok {
		m.hasData = false
		return
	}
	const pad = 1.0 // global pixels
	if b.Max[0]-b.Min[0] <= 0 {
		b.Min[0] -= pad
		b.Max[0] += pad
	}
	if b.Max[1]-b.Min[1] <= 0 {
		b.Min[1] -= pad
		b.Max[1] += pad
	}
	m.bounds = b
	m.hasData = true
}

// deliverArtifact is the layer's export delivery hook: it decodes the
// data-URI payload and writes it into the working directory.
func deliverArtifact(a selection.Artifact) {
	text, err := a.Text()
	if err != nil {
		log.Printf("export: decode artifact: %v", err)
		return
	}
	if err := os.WriteFile("selection.csv", []byte(text), 0o644); err != nil {
		log.Printf("export: write selection.csv: %v", err)
	}
}
