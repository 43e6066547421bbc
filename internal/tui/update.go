package tui

import (
	"fmt"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"gopick/internal/geom"
	"gopick/internal/tiler"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(28-2, m.height-1-2) // provisional; will be refined in View
		}
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			switch msg.String() {
			case "esc":
				m.pasteMode = false
				m.ta.Blur()
				return m, nil
			case "enter":
				w := strings.TrimSpace(m.ta.Value())
				if w == "" {
					m.status = "paste: empty"
					return m, nil
				}
				sources, err := tiler.ParseWKT(w)
				if err != nil {
					m.status = "wkt error: " + err.Error()
					return m, nil
				}
				m.loadPasted(sources)
				m.pasteMode = false
				m.ta.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.ta, cmd = m.ta.Update(msg)
			return m, cmd
		}
		if m.showAttrs {
			switch msg.String() {
			case "a", "esc":
				m.showAttrs = false
				return m, nil
			case "q", "ctrl+c":
				return m, tea.Quit
			}
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "+", "=":
			if m.zoom < 64 {
				m.zoom *= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "-", "_":
			if m.zoom > 0.05 {
				m.zoom /= 1.2
				m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
			}
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				m.refreshDir()
				m.l.SetSize(28-2, m.height-1-2)
			}
		case "p":
			m.pasteMode = !m.pasteMode
			if m.pasteMode {
				m.ta.SetValue("")
				m.status = "paste mode"
				m.ta.Focus()
			} else {
				m.status = "view mode"
				m.ta.Blur()
			}
		case "h":
			m.helpVisible = !m.helpVisible
		case "a":
			m.showAttrs = !m.showAttrs
			if m.showAttrs {
				m.refreshAttrsFromSelection()
			}
		case "c":
			m.layer.ClearSelected()
			m.shape.active = false
			m.status = "selection cleared"
		case "e":
			if m.layer.ExportSelectedCSV() {
				m.status = fmt.Sprintf("exported %d features to selection.csv", len(m.layer.Records()))
			} else {
				m.status = "nothing exported"
			}
		case "enter":
			if m.showSidebar {
				if it, ok := m.l.SelectedItem().(fileItem); ok {
					m.loadPath(it.path)
				}
			}
		case "up":
			m.offsetY -= 1
		case "down":
			m.offsetY += 1
		case "left":
			m.offsetX -= 2
		case "right":
			m.offsetX += 2
		}
	case tea.MouseMsg:
		m = m.handleMouse(msg)
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleMouse turns terminal mouse events into selection events: a click
// on a feature selects it (or toggles it off), a click on empty space
// clears, and a press-drag-release sweep selects everything inside the
// drawn region.
func (m Model) handleMouse(msg tea.MouseMsg) Model {
	// compute map origin and size (must match View layout)
	sidebarWidth := 0
	if m.showSidebar {
		sidebarWidth = 28
	}
	headerHeight := 1
	footerHeight := 2
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 4 {
		contentHeight = 4
	}
	contentWidth := max(10, m.width)

	if m.showSidebar {
		m.l.SetSize(28-2, contentHeight-2)
	}

	mapWidth := contentWidth - sidebarWidth - 1
	if mapWidth < 10 {
		mapWidth = 10
	}
	mapHeight := contentHeight
	mapOriginX := sidebarWidth
	if m.showSidebar {
		mapOriginX++
	}
	mapOriginY := headerHeight

	cx := msg.X - mapOriginX
	cy := msg.Y - mapOriginY
	inMap := cx >= 0 && cx < mapWidth && cy >= 0 && cy < mapHeight

	// hover footer coordinates
	if inMap {
		m.hovering = true
		m.hoverCellX = cx
		m.hoverCellY = cy
		if p, ok := m.cellToProjected(cx, cy, mapWidth, mapHeight); ok {
			geo := m.merc.Unproject(p, m.tileZoom)
			m.hoverHasGeo = true
			m.hoverLon = geo[0]
			m.hoverLat = geo[1]
		} else {
			m.hoverHasGeo = false
		}
	} else {
		m.hovering = false
		m.hoverHasGeo = false
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && inMap {
			m.dragging = true
			m.dragMoved = false
			m.dragStartX, m.dragStartY = cx, cy
			m.dragX, m.dragY = cx, cy
		}
	case tea.MouseActionMotion:
		if m.dragging && inMap {
			m.dragX, m.dragY = cx, cy
			if cx != m.dragStartX || cy != m.dragStartY {
				m.dragMoved = true
			}
		}
	case tea.MouseActionRelease:
		if !m.dragging {
			break
		}
		m.dragging = false
		if m.dragMoved {
			m = m.finishRegion(mapWidth, mapHeight)
		} else if inMap {
			m = m.finishClick(cx, cy, mapWidth, mapHeight)
		}
	}
	return m
}

// finishClick resolves a plain click: nearest feature within pick range
// selects (or toggles off); empty space clears.
func (m Model) finishClick(cx, cy, w, h int) Model {
	if id, ok := m.pickAt(cx, cy, w, h); ok {
		m.layer.SelectFeature(id)
		if m.layer.Has(id) {
			m.status = "selected " + id
		} else {
			m.status = "deselected " + id
		}
	} else {
		m.layer.ClearSelected()
		m.shape.active = false
		m.status = "nothing selected"
	}
	if m.showAttrs {
		m.refreshAttrsFromSelection()
	}
	return m
}

// finishRegion resolves a completed drag: both corners map back into
// projected space, in whatever order the drag produced them, and the
// region query replaces the selection.
func (m Model) finishRegion(w, h int) Model {
	a, ok1 := m.cellToProjected(m.dragStartX, m.dragStartY, w, h)
	b, ok2 := m.cellToProjected(m.dragX, m.dragY, w, h)
	if !ok1 || !ok2 {
		m.status = "no data loaded"
		return m
	}
	ids := m.layer.SelectWithin(geom.NewRegion(a, b))
	m.shape.active = true
	m.shape.a = a
	m.shape.b = b
	if len(ids) == 0 {
		m.status = "nothing selected"
	} else {
		m.status = fmt.Sprintf("selected %d features", len(ids))
	}
	if m.showAttrs {
		m.refreshAttrsFromSelection()
	}
	return m
}
