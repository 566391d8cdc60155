// Package canvas renders a resizable drawing surface: an <svg> sized from a
// surface.State plus edge and corner drag handles.
package canvas

import (
	"github.com/jzhdev/vcanvas/pkg/builder"
	"github.com/jzhdev/vcanvas/pkg/styling"
	"github.com/jzhdev/vcanvas/pkg/surface"
	"github.com/jzhdev/vcanvas/pkg/vdom"
)

func init() {
	styling.Register("canvas", Stylesheet())
}

// HandleInset shortens the edge handles so they do not overlap the corner handle
const HandleInset = 5.0

// Class names used in markup and Stylesheet
const (
	ContainerClass = "vcanvas-container"
	SurfaceClass   = "vcanvas"
	ResizerClass   = "resizer"
)

// Stroke is a straight line drawn on the surface
type Stroke struct {
	X1, Y1, X2, Y2 float64
	Color          string
}

// SampleStroke is the demo line shown on the example page
var SampleStroke = Stroke{X1: 6, Y1: 66, X2: 233, Y2: 250, Color: "black"}

// Node renders the stroke as an svg line
func (s Stroke) Node() *vdom.VNode {
	color := s.Color
	if color == "" {
		color = "black"
	}
	return builder.Line().Points(s.X1, s.Y1, s.X2, s.Y2).Stroke(color).Build()
}

// HandleBox is the position of one handle relative to the container.
// Zero Width/Height fall back to the stylesheet's thickness.
type HandleBox struct {
	Handle surface.Handle
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// CSS returns the inline style positioning the handle
func (b HandleBox) CSS() string {
	switch b.Handle {
	case surface.Right:
		return "left:" + builder.Px(b.Left) + ";height:" + builder.Px(b.Height)
	case surface.Bottom:
		return "top:" + builder.Px(b.Top) + ";width:" + builder.Px(b.Width)
	default:
		return "top:" + builder.Px(b.Top) + ";left:" + builder.Px(b.Left)
	}
}

// HandleGeometry lists the visible handles for st in right, bottom, corner order
func HandleGeometry(st surface.State) []HandleBox {
	w, h := st.Dimension.Width, st.Dimension.Height
	var boxes []HandleBox
	if st.Handles.Right {
		boxes = append(boxes, HandleBox{Handle: surface.Right, Left: w, Height: h - HandleInset})
	}
	if st.Handles.Bottom {
		boxes = append(boxes, HandleBox{Handle: surface.Bottom, Top: h, Width: w - HandleInset})
	}
	if st.Handles.BottomRight {
		boxes = append(boxes, HandleBox{Handle: surface.BottomRight, Left: w, Top: h})
	}
	return boxes
}

// Render is Canvas for the controller's current state
func Render(c *surface.Controller, content ...*vdom.VNode) *vdom.VNode {
	return Canvas(c.State(), content...)
}

// Canvas builds the container, the surface and its handles
func Canvas(st surface.State, content ...*vdom.VNode) *vdom.VNode {
	kids := []*vdom.VNode{Surface(st, content...)}
	for _, box := range HandleGeometry(st) {
		kids = append(kids, Handle(box, st.Active == box.Handle))
	}
	return builder.Div().Class(ContainerClass).Children(kids...).Build()
}

// Surface builds the <svg> element. Zoomable states carry a viewBox.
func Surface(st surface.State, content ...*vdom.VNode) *vdom.VNode {
	svg := builder.Svg().
		Class(SurfaceClass).
		Attr("xmlns", "http://www.w3.org/2000/svg").
		Width(builder.Num(st.Dimension.Width)).
		Height(builder.Num(st.Dimension.Height))
	if st.Zoomable {
		svg.ViewBox(st.Viewport.ViewBox()).Data("zoom", builder.Num(st.Zoom))
	}
	return svg.Children(content...).Build()
}

// Handle builds one drag affordance
func Handle(box HandleBox, active bool) *vdom.VNode {
	class := ResizerClass + " " + ResizerClass + "-" + box.Handle.String()
	if active {
		class += " active"
	}
	return builder.Div().
		Key(box.Handle.String()).
		Class(class).
		Data("handle", box.Handle.String()).
		Style(box.CSS()).
		Build()
}

// Stylesheet returns the CSS the markup relies on
func Stylesheet() string {
	return `.vcanvas-container { position: relative; display: inline-block; }
.vcanvas { display: block; border: 1px solid #888; background: #fff; user-select: none; }
.resizer { position: absolute; background: transparent; }
.resizer.active, .resizer:hover { background: rgba(30, 120, 255, 0.35); }
.resizer-r { top: 0; width: 5px; cursor: ew-resize; }
.resizer-b { left: 0; height: 5px; cursor: ns-resize; }
.resizer-br { width: 5px; height: 5px; cursor: nwse-resize; }
`
}
