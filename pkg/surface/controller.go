// Package surface implements the interaction model of a resizable drawing
// surface: edge and corner drag handles clamped to size constraints, and an
// optional wheel-driven zoom that scales the visible viewport.
//
// A Controller is not safe for concurrent use. Hosts dispatch pointer and
// wheel input from a single event loop.
package surface

import (
	"math"

	"github.com/jzhdev/vcanvas/pkg/reactive"
)

// zoomScale is the number of zoom steps per unit of zoom.
const zoomScale = 1 / ZoomStep

// State is the snapshot a presentation layer renders from
type State struct {
	Dimension   Dimension
	Viewport    Viewport
	Zoom        float64
	Zoomable    bool
	Active      Handle
	Handles     HandleSet
	Constraints Constraints
}

// Resizing reports whether a handle is currently held
func (s State) Resizing() bool { return s.Active != None }

// Controller owns the surface dimension, the active resize session and the
// zoom state.
type Controller struct {
	cfg     Config
	cons    Constraints
	handles HandleSet

	dim     Dimension
	zoom    float64
	session *Session

	state *reactive.State[State]

	source      PointerSource
	unsubscribe func()
}

// New creates a controller. Initial dimensions outside the constraints are clamped.
func New(cfg Config) *Controller {
	c := &Controller{}
	c.apply(cfg)
	c.state = reactive.NewState(c.snapshot())
	return c
}

func (c *Controller) apply(cfg Config) {
	c.cfg = cfg
	c.cons = cfg.Constraints()
	c.handles = cfg.Handles()
	c.dim = c.cons.Clamp(Dimension{Width: cfg.Width, Height: cfg.Height})
	c.zoom = cfg.InitialZoom()
	c.session = nil
}

// Config returns the configuration the controller was built or last reconfigured with
func (c *Controller) Config() Config { return c.cfg }

// State returns the current snapshot
func (c *Controller) State() State { return c.state.Get() }

// Dimension returns the current size
func (c *Controller) Dimension() Dimension { return c.dim }

// Zoom returns the current zoom factor
func (c *Controller) Zoom() float64 { return c.zoom }

// Session returns the active resize session, or nil when idle
func (c *Controller) Session() *Session {
	if c.session == nil {
		return nil
	}
	s := *c.session
	return &s
}

// Watch registers fn to run with the new snapshot after every change
func (c *Controller) Watch(fn func(State)) (cancel func()) {
	return c.state.Watch(fn)
}

// BeginResize starts a drag session on handle h at pointer p.
// Handles that the configuration does not expose are ignored, and so is a
// non-finite start position.
func (c *Controller) BeginResize(h Handle, p Coordinate) {
	if !c.handles.Has(h) || !p.Finite() {
		return
	}
	c.session = &Session{
		Handle:           h,
		DimensionAtStart: c.dim,
		PointerAtStart:   p,
	}
	c.publish()
}

// PointerMove resizes the surface relative to the session start. It is a
// no-op when no session is active or p is not finite.
func (c *Controller) PointerMove(p Coordinate) {
	s := c.session
	if s == nil || !p.Finite() {
		return
	}
	dx := p.X - s.PointerAtStart.X
	dy := p.Y - s.PointerAtStart.Y
	candidate := c.cons.Clamp(Dimension{
		Width:  s.DimensionAtStart.Width + dx,
		Height: s.DimensionAtStart.Height + dy,
	})

	next := candidate
	if s.Handle == Bottom {
		next.Width = c.dim.Width
	}
	if s.Handle == Right {
		next.Height = c.dim.Height
	}
	if next == c.dim {
		return
	}
	c.dim = next
	c.publish()
}

// EndResize discards the active session. Safe to call when idle.
func (c *Controller) EndResize() {
	if c.session == nil {
		return
	}
	c.session = nil
	c.publish()
}

// Wheel steps the zoom factor by ZoomStep: a positive deltaY increases it,
// anything else decreases it. Ignored unless the controller is zoomable.
func (c *Controller) Wheel(deltaY float64) {
	if !c.cfg.Zoomable {
		return
	}
	step := -ZoomStep
	if deltaY > 0 {
		step = ZoomStep
	}
	c.setZoom(c.zoom + step)
}

// ResetZoom restores the configured initial zoom factor
func (c *Controller) ResetZoom() {
	if !c.cfg.Zoomable {
		return
	}
	c.setZoom(c.cfg.InitialZoom())
}

func (c *Controller) setZoom(z float64) {
	// Quantize to the step so repeated wheel input does not drift.
	z = clamp(math.Round(z*zoomScale)/zoomScale, MinZoom, MaxZoom)
	if z == c.zoom {
		return
	}
	c.zoom = z
	c.publish()
}

// Mount subscribes to the global pointer stream. A previous subscription is
// removed first, so mounting twice never double-registers.
func (c *Controller) Mount(src PointerSource) {
	c.Unmount()
	if src == nil {
		return
	}
	c.source = src
	c.unsubscribe = src.Subscribe(c.handlePointer)
}

// Unmount removes the pointer subscription and ends any active session
func (c *Controller) Unmount() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	c.source = nil
	c.EndResize()
}

// Mounted reports whether a pointer source is attached
func (c *Controller) Mounted() bool { return c.unsubscribe != nil }

// Reconfigure replaces the configuration. When the base size is unchanged the
// current (possibly user-resized) dimension is kept, clamped into the new
// bounds. The zoom factor returns to its initial value, any drag is dropped
// and the pointer subscription is re-registered.
func (c *Controller) Reconfigure(cfg Config) {
	src := c.source
	c.Unmount()

	prev, cur := c.cfg, c.dim
	c.apply(cfg)
	if cfg.Width == prev.Width && cfg.Height == prev.Height {
		c.dim = c.cons.Clamp(cur)
	}
	if src != nil {
		c.Mount(src)
	}
	c.publish()
}

func (c *Controller) handlePointer(ev PointerEvent) {
	switch ev.Kind {
	case PointerMove:
		c.PointerMove(ev.Position)
	case PointerUp:
		c.EndResize()
	}
}

func (c *Controller) snapshot() State {
	st := State{
		Dimension:   c.dim,
		Zoom:        c.zoom,
		Zoomable:    c.cfg.Zoomable,
		Handles:     c.handles,
		Constraints: c.cons,
		Viewport:    Viewport{Width: c.dim.Width, Height: c.dim.Height},
	}
	if c.cfg.Zoomable {
		st.Viewport.Width = c.dim.Width * c.zoom
		st.Viewport.Height = c.dim.Height * c.zoom
	}
	if c.session != nil {
		st.Active = c.session.Handle
	}
	return st
}

func (c *Controller) publish() {
	if c.state == nil {
		return
	}
	c.state.Set(c.snapshot())
}
