package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jzhdev/vcanvas/pkg/components/canvas"
	"github.com/jzhdev/vcanvas/pkg/surface"
)

// Color palette
var (
	surfaceColor = lipgloss.Color("#f8fafc")
	strokeColor  = lipgloss.Color("#0f172a")
	handleColor  = lipgloss.Color("#64748b")
	activeColor  = lipgloss.Color("#3b82f6")
	mutedColor   = lipgloss.Color("#94a3b8")
)

var (
	surfaceStyle = lipgloss.NewStyle().
			Background(surfaceColor).
			Foreground(strokeColor)

	handleStyle = lipgloss.NewStyle().
			Foreground(handleColor)

	activeHandleStyle = lipgloss.NewStyle().
				Foreground(activeColor).
				Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)
)

const (
	blankCell  = ' '
	strokeCell = '•'
)

var handleGlyphs = map[surface.Handle]string{
	surface.Right:       "┃",
	surface.Bottom:      "━",
	surface.BottomRight: "┛",
}

// View renders the surface, its handles and a status line
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	st := m.ctrl.State()
	cols, rows := m.cells()
	grid := m.rasterize(st, cols, rows)

	// Crop to the terminal, keeping room for the handle column
	visibleCols, visibleRows := cols, rows
	if m.width > 1 {
		visibleCols = min(cols, m.width-1)
	}
	if m.height > 4 {
		visibleRows = min(rows, m.height-4)
	}

	var b strings.Builder
	for r := 0; r < visibleRows; r++ {
		b.WriteString(surfaceStyle.Render(string(grid[r][:visibleCols])))
		if visibleCols == cols {
			b.WriteString(m.handleCell(st, surface.Right, handleGlyphs[surface.Right]))
		}
		b.WriteByte('\n')
	}
	if visibleRows == rows {
		b.WriteString(m.handleCell(st, surface.Bottom, strings.Repeat(handleGlyphs[surface.Bottom], visibleCols)))
		if visibleCols == cols {
			b.WriteString(m.handleCell(st, surface.BottomRight, handleGlyphs[surface.BottomRight]))
		}
		b.WriteByte('\n')
	}

	b.WriteString(statusStyle.Render(statusLine(st)))
	b.WriteByte('\n')
	b.WriteString(m.help.View(DefaultKeyMap))
	return b.String()
}

func (m Model) handleCell(st surface.State, h surface.Handle, glyph string) string {
	if !st.Handles.Has(h) {
		return strings.Repeat(" ", lipgloss.Width(glyph))
	}
	if st.Active == h {
		return activeHandleStyle.Render(glyph)
	}
	return handleStyle.Render(glyph)
}

func statusLine(st surface.State) string {
	s := fmt.Sprintf("%g × %g", st.Dimension.Width, st.Dimension.Height)
	if st.Zoomable {
		s += fmt.Sprintf("  zoom %.2f  viewBox %s", st.Zoom, st.Viewport.ViewBox())
	}
	if st.Resizing() {
		s += "  resizing " + st.Active.String()
	}
	return s
}

// rasterize plots the strokes onto a cols×rows grid. Stroke coordinates are
// in viewport space, so zooming out shows more of them.
func (m Model) rasterize(st surface.State, cols, rows int) [][]rune {
	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(string(blankCell), cols))
	}

	scaleX, scaleY := 1.0, 1.0
	if st.Viewport.Width > 0 && st.Viewport.Height > 0 {
		scaleX = st.Dimension.Width / st.Viewport.Width
		scaleY = st.Dimension.Height / st.Viewport.Height
	}
	plot := func(x, y float64) {
		col := int(math.Floor((x - st.Viewport.X) * scaleX / m.cellWidth))
		row := int(math.Floor((y - st.Viewport.Y) * scaleY / m.cellHeight))
		if col >= 0 && col < cols && row >= 0 && row < rows {
			grid[row][col] = strokeCell
		}
	}

	for _, s := range m.strokes {
		dx := (s.X2 - s.X1) * scaleX / m.cellWidth
		dy := (s.Y2 - s.Y1) * scaleY / m.cellHeight
		steps := int(math.Ceil(2 * math.Max(math.Abs(dx), math.Abs(dy))))
		if steps == 0 {
			plot(s.X1, s.Y1)
			continue
		}
		for i := 0; i <= steps; i++ {
			t := float64(i) / float64(steps)
			plot(s.X1+t*(s.X2-s.X1), s.Y1+t*(s.Y2-s.Y1))
		}
	}
	return grid
}

// Strokes returns the strokes drawn on the surface
func (m Model) Strokes() []canvas.Stroke { return m.strokes }
