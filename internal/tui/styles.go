package tui

import (
	"github.com/charmbracelet/lipgloss"

	"gopick/internal/selection"
)

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	borderCol = lipgloss.Color("#243141")

	appStyle   = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)
)

// markerFor renders the cell glyph for a selected feature from its
// assigned style spec. Color names map onto lipgloss colors directly.
func markerFor(st selection.Style) string {
	marker := "●"
	if !st.Fill {
		marker = "○"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(st.FillColor)).Render(marker)
}

// styler implements selection.StyleApplier for the terminal renderer: it
// records which style each selected id carries, and the render pass draws
// those ids as colored markers instead of braille dots.
type styler struct {
	styles map[string]selection.Style
}

func newStyler() *styler {
	return &styler{styles: make(map[string]selection.Style)}
}

func (s *styler) Apply(st selection.Style, id string) { s.styles[id] = st }

func (s *styler) Reset(id string) { delete(s.styles, id) }

func (s *styler) styleOf(id string) (selection.Style, bool) {
	st, ok := s.styles[id]
	return st, ok
}
