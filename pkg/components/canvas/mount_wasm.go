//go:build js && wasm

package canvas

import (
	"fmt"
	"syscall/js"

	"github.com/jzhdev/vcanvas/pkg/debug"
	"github.com/jzhdev/vcanvas/pkg/renderer/dom"
	"github.com/jzhdev/vcanvas/pkg/renderer/html"
	"github.com/jzhdev/vcanvas/pkg/surface"
	"github.com/jzhdev/vcanvas/pkg/vdom"
)

// WindowSource is a surface.PointerSource backed by window-level mousemove
// and mouseup listeners, so a drag keeps tracking outside the surface.
type WindowSource struct {
	window js.Value
}

// globalWindow is the event target NewWindowSource listens on
var globalWindow = func() js.Value { return js.Global().Get("window") }

// NewWindowSource returns a source for the global window
func NewWindowSource() *WindowSource {
	return &WindowSource{window: globalWindow()}
}

// Subscribe implements surface.PointerSource
func (w *WindowSource) Subscribe(fn func(surface.PointerEvent)) func() {
	move := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) > 0 {
			fn(surface.PointerEvent{Kind: surface.PointerMove, Position: clientPos(args[0])})
		}
		return nil
	})
	up := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) > 0 {
			fn(surface.PointerEvent{Kind: surface.PointerUp, Position: clientPos(args[0])})
		}
		return nil
	})
	w.window.Call("addEventListener", "mousemove", move)
	w.window.Call("addEventListener", "mouseup", up)

	released := false
	return func() {
		if released {
			return
		}
		released = true
		w.window.Call("removeEventListener", "mousemove", move)
		w.window.Call("removeEventListener", "mouseup", up)
		move.Release()
		up.Release()
	}
}

func clientPos(ev js.Value) surface.Coordinate {
	return surface.Coordinate{X: ev.Get("clientX").Float(), Y: ev.Get("clientY").Float()}
}

// Mounted is a canvas attached to a DOM element
type Mounted struct {
	ctrl      *surface.Controller
	content   []*vdom.VNode
	tree      *vdom.VNode
	applier   *dom.DOMApplier
	listeners []listener
	cancel    func()
}

type listener struct {
	target js.Value
	event  string
	fn     js.Func
}

// Mount renders the canvas into el and wires handles, wheel zoom and the
// window pointer source. State changes are applied as vdom patches. Call
// Release on teardown.
func Mount(el js.Value, ctrl *surface.Controller, content ...*vdom.VNode) (*Mounted, error) {
	tree := Render(ctrl, content...)
	markup, err := html.RenderToString(tree)
	if err != nil {
		return nil, err
	}
	el.Set("innerHTML", markup)
	container := el.Get("firstElementChild")
	if !container.Truthy() {
		return nil, fmt.Errorf("canvas markup did not produce an element")
	}

	m := &Mounted{
		ctrl:    ctrl,
		content: content,
		tree:    tree,
		applier: dom.NewDOMApplier(container),
	}

	// Delegated so handles added by a reconfigure are live too
	m.listen(container, "mousedown", func(ev js.Value) {
		target := ev.Get("target")
		if !target.Truthy() || target.Get("closest").IsUndefined() {
			return
		}
		node := target.Call("closest", "[data-handle]")
		if !node.Truthy() {
			return
		}
		ev.Call("preventDefault")
		ctrl.BeginResize(surface.ParseHandle(node.Get("dataset").Get("handle").String()), clientPos(ev))
	})

	if svg := container.Call("querySelector", "svg"); svg.Truthy() {
		m.listen(svg, "wheel", func(ev js.Value) {
			if ctrl.State().Zoomable {
				ev.Call("preventDefault")
			}
			ctrl.Wheel(ev.Get("deltaY").Float())
		})
	}

	ctrl.Mount(NewWindowSource())
	m.cancel = ctrl.Watch(m.patch)
	debug.Logf("[canvas] mounted with %d handles", len(HandleGeometry(ctrl.State())))
	return m, nil
}

func (m *Mounted) listen(target js.Value, event string, fn func(js.Value)) {
	jsFn := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) > 0 {
			fn(args[0])
		}
		return nil
	})
	opts := js.Global().Get("Object").New()
	opts.Set("passive", false)
	target.Call("addEventListener", event, jsFn, opts)
	m.listeners = append(m.listeners, listener{target: target, event: event, fn: jsFn})
}

// patch re-renders for st and applies the difference
func (m *Mounted) patch(st surface.State) {
	next := Canvas(st, m.content...)
	patches := vdom.Diff(m.tree, next)
	if err := m.applier.Apply(patches); err != nil {
		debug.Logf("[canvas] patch failed: %v", err)
	}
	m.tree = next
}

// Release removes every listener and detaches the controller
func (m *Mounted) Release() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.ctrl.Unmount()
	for _, l := range m.listeners {
		l.target.Call("removeEventListener", l.event, l.fn)
		l.fn.Release()
	}
	m.listeners = nil
	debug.Logf("[canvas] released")
}
