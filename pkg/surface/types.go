package surface

import (
	"fmt"
	"math"
)

// Default size constraints applied when a bound is left unset.
const (
	DefaultMinWidth  = 100.0
	DefaultMinHeight = 100.0
	DefaultMaxWidth  = 900.0
	DefaultMaxHeight = 900.0
)

// Zoom bounds and step size for wheel input.
const (
	MinZoom     = 0.01
	MaxZoom     = 1.5
	ZoomStep    = 0.01
	DefaultZoom = 1.0
)

// Dimension is the rendered size of the surface in pixels
type Dimension struct {
	Width  float64
	Height float64
}

// Coordinate is a pointer position in client space
type Coordinate struct {
	X float64
	Y float64
}

// Finite reports whether both components are real numbers
func (p Coordinate) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Handle identifies which edge(s) a drag affects
type Handle uint8

const (
	None Handle = iota
	Right
	Bottom
	BottomRight
)

// String returns the short handle name used in markup and on the wire
func (h Handle) String() string {
	switch h {
	case Right:
		return "r"
	case Bottom:
		return "b"
	case BottomRight:
		return "br"
	default:
		return ""
	}
}

// ParseHandle is the inverse of Handle.String. Unknown names map to None.
func ParseHandle(s string) Handle {
	switch s {
	case "r":
		return Right
	case "b":
		return Bottom
	case "br":
		return BottomRight
	default:
		return None
	}
}

// Constraints bound the surface size
type Constraints struct {
	MinWidth  float64
	MinHeight float64
	MaxWidth  float64
	MaxHeight float64
}

// Clamp forces d into the bounds
func (c Constraints) Clamp(d Dimension) Dimension {
	return Dimension{
		Width:  clamp(d.Width, c.MinWidth, c.MaxWidth),
		Height: clamp(d.Height, c.MinHeight, c.MaxHeight),
	}
}

// Viewport is the visible window into the drawing surface
type Viewport struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// ViewBox formats the viewport as an SVG viewBox value
func (v Viewport) ViewBox() string {
	return fmt.Sprintf("%g %g %g %g", v.X, v.Y, v.Width, v.Height)
}

// Session is the drag state between pointer-down and pointer-up
type Session struct {
	Handle           Handle
	DimensionAtStart Dimension
	PointerAtStart   Coordinate
}

// Config configures a Controller. Only Width and Height are required.
type Config struct {
	Width  float64
	Height float64

	// Resizable enables both axes and takes priority over the per-axis flags.
	Resizable             bool
	HorizontallyResizable bool
	VerticallyResizable   bool

	// Zero means default.
	MinWidth  float64
	MinHeight float64
	MaxWidth  float64
	MaxHeight float64

	Zoomable bool
	Zoom     float64 // initial zoom factor, default 1.0
}

// Constraints resolves the configured bounds, filling in defaults.
// A maximum below its minimum is raised to the minimum.
func (c Config) Constraints() Constraints {
	cons := Constraints{
		MinWidth:  orDefault(c.MinWidth, DefaultMinWidth),
		MinHeight: orDefault(c.MinHeight, DefaultMinHeight),
		MaxWidth:  orDefault(c.MaxWidth, DefaultMaxWidth),
		MaxHeight: orDefault(c.MaxHeight, DefaultMaxHeight),
	}
	if cons.MaxWidth < cons.MinWidth {
		cons.MaxWidth = cons.MinWidth
	}
	if cons.MaxHeight < cons.MinHeight {
		cons.MaxHeight = cons.MinHeight
	}
	return cons
}

// Handles reports which resize affordances are available
func (c Config) Handles() HandleSet {
	return HandleSet{
		Right:       c.Resizable || c.HorizontallyResizable,
		Bottom:      c.Resizable || c.VerticallyResizable,
		BottomRight: c.Resizable,
	}
}

// InitialZoom returns the configured starting zoom, clamped to the zoom range
func (c Config) InitialZoom() float64 {
	return clamp(orDefault(c.Zoom, DefaultZoom), MinZoom, MaxZoom)
}

// HandleSet records handle visibility
type HandleSet struct {
	Right       bool
	Bottom      bool
	BottomRight bool
}

// Has reports whether h is enabled
func (s HandleSet) Has(h Handle) bool {
	switch h {
	case Right:
		return s.Right
	case Bottom:
		return s.Bottom
	case BottomRight:
		return s.BottomRight
	default:
		return false
	}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return min(max(v, lo), hi)
}

func orDefault(v, def float64) float64 {
	if v != 0 {
		return v
	}
	return def
}
