package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jzhdev/vcanvas/pkg/components/canvas"
	"github.com/jzhdev/vcanvas/pkg/surface"
)

func newTestModel(cfg surface.Config) Model {
	m := NewModel(cfg, 10, 20, canvas.SampleStroke)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 60})
	return next.(Model)
}

func mouse(m Model, x, y int, action tea.MouseAction, button tea.MouseButton) Model {
	next, _ := m.Update(tea.MouseMsg{X: x, Y: y, Action: action, Button: button})
	return next.(Model)
}

func TestModel_DragCorner(t *testing.T) {
	m := newTestModel(surface.Config{Width: 500, Height: 500, Resizable: true})

	// 500x500 at 10x20 px per cell puts the corner handle at (50, 25)
	m = mouse(m, 50, 25, tea.MouseActionPress, tea.MouseButtonLeft)
	if got := m.State().Active; got != surface.BottomRight {
		t.Fatalf("Active = %v, want BottomRight", got)
	}

	m = mouse(m, 55, 27, tea.MouseActionMotion, tea.MouseButtonNone)
	if d := m.State().Dimension; d.Width != 550 || d.Height != 540 {
		t.Errorf("after motion = %+v, want 550x540", d)
	}

	m = mouse(m, 55, 27, tea.MouseActionRelease, tea.MouseButtonLeft)
	if m.State().Resizing() {
		t.Error("still resizing after release")
	}

	m = mouse(m, 70, 40, tea.MouseActionMotion, tea.MouseButtonNone)
	if d := m.State().Dimension; d.Width != 550 {
		t.Errorf("motion after release resized to %+v", d)
	}
}

func TestModel_HandleHitTest(t *testing.T) {
	tests := []struct {
		name   string
		cfg    surface.Config
		x, y   int
		expect surface.Handle
	}{
		{"right edge", surface.Config{Width: 200, Height: 200, Resizable: true}, 20, 3, surface.Right},
		{"bottom edge", surface.Config{Width: 200, Height: 200, Resizable: true}, 4, 10, surface.Bottom},
		{"inside surface", surface.Config{Width: 200, Height: 200, Resizable: true}, 4, 4, surface.None},
		{"corner hidden", surface.Config{Width: 200, Height: 200, HorizontallyResizable: true}, 20, 10, surface.None},
		{"right only", surface.Config{Width: 200, Height: 200, HorizontallyResizable: true}, 20, 0, surface.Right},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(tt.cfg)
			m = mouse(m, tt.x, tt.y, tea.MouseActionPress, tea.MouseButtonLeft)
			if got := m.State().Active; got != tt.expect {
				t.Errorf("Active = %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestModel_WheelAndKeys(t *testing.T) {
	m := newTestModel(surface.Config{Width: 200, Height: 200, Zoomable: true})

	m = mouse(m, 1, 1, tea.MouseActionPress, tea.MouseButtonWheelDown)
	if z := m.State().Zoom; z != 1.01 {
		t.Errorf("zoom after wheel down = %v, want 1.01", z)
	}
	m = mouse(m, 1, 1, tea.MouseActionPress, tea.MouseButtonWheelUp)
	m = mouse(m, 1, 1, tea.MouseActionPress, tea.MouseButtonWheelUp)
	if z := m.State().Zoom; z != 0.99 {
		t.Errorf("zoom after wheel up = %v, want 0.99", z)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'0'}})
	m = next.(Model)
	if z := m.State().Zoom; z != 1 {
		t.Errorf("zoom after reset = %v, want 1", z)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'+'}})
	m = next.(Model)
	if z := m.State().Zoom; z != 1.01 {
		t.Errorf("zoom after + = %v, want 1.01", z)
	}
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(surface.Config{Width: 200, Height: 200, Resizable: true})
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg")
	}
	if m.bus.Len() != 0 {
		t.Errorf("controller still subscribed after quit")
	}
	if v := next.(Model).View(); v != "" {
		t.Errorf("View after quit = %q", v)
	}
}

func TestModel_View(t *testing.T) {
	m := newTestModel(surface.Config{Width: 300, Height: 200, Resizable: true, Zoomable: true})
	view := m.View()

	for _, want := range []string{"300 × 200", "zoom 1.00", "viewBox 0 0 300 200", string(strokeCell), "┛"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	m = mouse(m, 30, 10, tea.MouseActionPress, tea.MouseButtonLeft)
	if !strings.Contains(m.View(), "resizing br") {
		t.Error("status does not show the active handle")
	}
}

func TestRasterize_ZoomShowsMore(t *testing.T) {
	m := NewModel(surface.Config{Width: 100, Height: 100, Zoomable: true}, 10, 10,
		canvas.Stroke{X1: 140, Y1: 5, X2: 140, Y2: 5})

	count := func() int {
		n := 0
		for _, row := range m.rasterize(m.State(), 10, 10) {
			n += strings.Count(string(row), string(strokeCell))
		}
		return n
	}
	if count() != 0 {
		t.Fatal("point outside the viewport was plotted")
	}
	for i := 0; i < 60; i++ {
		m.ctrl.Wheel(1)
	}
	if m.State().Zoom != 1.5 {
		t.Fatalf("zoom = %v", m.State().Zoom)
	}
	if count() != 1 {
		t.Error("point inside the zoomed viewport was not plotted")
	}
}
