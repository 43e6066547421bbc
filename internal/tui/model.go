package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb"

	"gopick/internal/geom"
	"gopick/internal/selection"
	"gopick/internal/store"
)

// Model is the bubbletea host adapter around the selection engine. The
// engine pieces (store, layer, styler) are held by pointer so mutations
// survive the value-copy Update cycle; event handling is strictly
// sequential, so the engine needs no locking.
type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Selection engine
	st       *store.Store
	layer    *selection.Layer
	styler   *styler
	shape    *shapeOverlay
	merc     geom.WebMercator
	tileZoom int

	// projected bounding box of loaded features
	bounds  orb.Bound
	hasData bool

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// drag state (map-cell coordinates)
	dragging   bool
	dragMoved  bool
	dragStartX int
	dragStartY int
	dragX      int
	dragY      int

	// hover state
	hovering    bool
	hoverCellX  int
	hoverCellY  int
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64

	// attributes table (current selection)
	showAttrs bool
	tbl       table.Model
}

// shapeOverlay is the last drawn region, kept on screen until the next
// single-feature click clears it. Pointer-held for the same reason as
// the styler.
type shapeOverlay struct {
	active bool
	a      orb.Point // projected corners, unordered
	b      orb.Point
}

func New(tileZoom int) Model {
	m := Model{
		showSidebar: false,
		helpVisible: true,
		zoom:        1.0,
		status:      "gopick ready",
		tileZoom:    tileZoom,
	}
	m.cwd, _ = os.Getwd()
	m.st = store.New()
	m.styler = newStyler()
	m.shape = &shapeOverlay{}
	m.layer = selection.NewLayer(m.st, m.styler)
	shape := m.shape
	m.layer.OnShapeClear = func() { shape.active = false }
	m.layer.Deliver = deliverArtifact
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here (POINT or MULTIPOINT). Press Enter to load; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// attributes table setup (fixed selection-record columns)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath preloads a file's data at launch.
func NewWithPath(path string, tileZoom int) Model {
	m := New(tileZoom)
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return nil }
