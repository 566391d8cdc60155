// Package html renders vdom trees to HTML for server-side rendering.
package html

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/jzhdev/vcanvas/pkg/vdom"
)

// voidElements are HTML elements that cannot have children
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// booleanAttributes are HTML attributes that are boolean flags
var booleanAttributes = map[string]bool{
	"checked":   true,
	"disabled":  true,
	"readonly":  true,
	"required":  true,
	"selected":  true,
	"defer":     true,
	"async":     true,
	"multiple":  true,
	"autofocus": true,
}

// Renderer writes VNodes as HTML. Attributes are emitted in sorted order so
// output is stable.
type Renderer struct {
	w   io.Writer
	err error
}

// NewRenderer creates a renderer writing to w
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// Render writes node and returns the first write error
func (r *Renderer) Render(node *vdom.VNode) error {
	if node == nil {
		return nil
	}
	r.renderNode(node, false)
	return r.err
}

// RenderPage writes an HTML5 doctype followed by node
func (r *Renderer) RenderPage(node *vdom.VNode) error {
	r.write("<!DOCTYPE html>")
	return r.Render(node)
}

// write helper that tracks errors
func (r *Renderer) write(s string) {
	if r.err != nil {
		return
	}
	_, r.err = io.WriteString(r.w, s)
}

// renderNode renders a single VNode. raw disables escaping for script/style bodies.
func (r *Renderer) renderNode(node *vdom.VNode, raw bool) {
	if node == nil || r.err != nil {
		return
	}

	switch node.Kind {
	case vdom.KindText:
		if raw {
			r.write(node.Text)
		} else {
			r.write(html.EscapeString(node.Text))
		}

	case vdom.KindElement:
		r.renderElement(node)

	case vdom.KindFragment:
		for i := range node.Kids {
			r.renderNode(&node.Kids[i], raw)
		}
	}
}

func (r *Renderer) renderElement(node *vdom.VNode) {
	r.write("<")
	r.write(node.Tag)

	for _, key := range node.Props.Keys() {
		value := node.Props[key]
		// Handlers and refs only exist on the client
		if key == "key" || key == "ref" || vdom.IsEventProp(key) {
			continue
		}

		if booleanAttributes[key] {
			if v, ok := value.(bool); ok && v {
				r.write(" ")
				r.write(key)
			}
			continue
		}

		valueStr := fmt.Sprintf("%v", value)

		// Security: prevent javascript: URLs in href/src attributes
		if (key == "href" || key == "src") && strings.HasPrefix(strings.ToLower(valueStr), "javascript:") {
			valueStr = "#"
		}

		r.write(" ")
		r.write(key)
		r.write(`="`)
		r.write(html.EscapeString(valueStr))
		r.write(`"`)
	}

	r.write(">")

	if voidElements[node.Tag] {
		return
	}

	// Script and style bodies are raw text
	raw := node.Tag == "script" || node.Tag == "style"
	for i := range node.Kids {
		r.renderNode(&node.Kids[i], raw)
	}

	r.write("</")
	r.write(node.Tag)
	r.write(">")
}

// RenderToString is a convenience function to render a VNode to a string
func RenderToString(node *vdom.VNode) (string, error) {
	var buf strings.Builder
	if err := NewRenderer(&buf).Render(node); err != nil {
		return "", err
	}
	return buf.String(), nil
}
