// Package ui drives a surface from the terminal. The surface is drawn from
// the top-left cell; the column right of it, the row below it and their
// corner are the resize handles. Mouse input is translated from cells to
// surface pixels.
package ui

import (
	"math"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jzhdev/vcanvas/pkg/components/canvas"
	"github.com/jzhdev/vcanvas/pkg/surface"
)

// Model represents the TUI application state
type Model struct {
	ctrl *surface.Controller
	bus  *surface.Bus

	// Pixels per terminal cell
	cellWidth  float64
	cellHeight float64

	// Window dimensions
	width  int
	height int

	strokes  []canvas.Stroke
	help     help.Model
	showHelp bool
	quitting bool
}

// NewModel creates a model around a fresh controller for cfg
func NewModel(cfg surface.Config, cellWidth, cellHeight float64, strokes ...canvas.Stroke) Model {
	if cellWidth <= 0 {
		cellWidth = 10
	}
	if cellHeight <= 0 {
		cellHeight = 20
	}
	bus := surface.NewBus()
	ctrl := surface.New(cfg)
	ctrl.Mount(bus)
	return Model{
		ctrl:       ctrl,
		bus:        bus,
		cellWidth:  cellWidth,
		cellHeight: cellHeight,
		strokes:    strokes,
		help:       help.New(),
	}
}

// State returns the surface state being drawn
func (m Model) State() surface.State { return m.ctrl.State() }

// Close detaches the controller from the pointer bus
func (m Model) Close() { m.ctrl.Unmount() }

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DefaultKeyMap.Quit):
			m.quitting = true
			m.ctrl.Unmount()
			return m, tea.Quit
		case key.Matches(msg, DefaultKeyMap.Help):
			m.showHelp = !m.showHelp
			m.help.ShowAll = m.showHelp
		case key.Matches(msg, DefaultKeyMap.ZoomIn):
			m.ctrl.Wheel(1)
		case key.Matches(msg, DefaultKeyMap.ZoomOut):
			m.ctrl.Wheel(-1)
		case key.Matches(msg, DefaultKeyMap.ResetZoom):
			m.ctrl.ResetZoom()
		}
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	}
	return m, nil
}

// handleMouse maps terminal mouse input onto the surface: a press on a
// handle cell starts a drag, motion and release go through the pointer bus
// the way window events do in a browser.
func (m Model) handleMouse(msg tea.MouseMsg) {
	p := m.pixel(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			if h := m.handleAt(msg.X, msg.Y); h != surface.None {
				m.ctrl.BeginResize(h, p)
			}
		case tea.MouseButtonWheelUp:
			m.ctrl.Wheel(-1)
		case tea.MouseButtonWheelDown:
			m.ctrl.Wheel(1)
		}
	case tea.MouseActionMotion:
		m.bus.Move(p.X, p.Y)
	case tea.MouseActionRelease:
		m.bus.Up(p.X, p.Y)
	}
}

func (m Model) pixel(col, row int) surface.Coordinate {
	return surface.Coordinate{X: float64(col) * m.cellWidth, Y: float64(row) * m.cellHeight}
}

// cells returns the surface size in terminal cells
func (m Model) cells() (cols, rows int) {
	d := m.ctrl.Dimension()
	cols = int(math.Round(d.Width / m.cellWidth))
	rows = int(math.Round(d.Height / m.cellHeight))
	return max(cols, 1), max(rows, 1)
}

// handleAt hit-tests the handle cells around the surface
func (m Model) handleAt(col, row int) surface.Handle {
	cols, rows := m.cells()
	handles := m.ctrl.State().Handles
	var h surface.Handle
	switch {
	case col == cols && row == rows:
		h = surface.BottomRight
	case col == cols && row >= 0 && row < rows:
		h = surface.Right
	case row == rows && col >= 0 && col < cols:
		h = surface.Bottom
	}
	if !handles.Has(h) {
		return surface.None
	}
	return h
}
