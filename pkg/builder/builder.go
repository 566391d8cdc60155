// Package builder provides a fluent API for building vdom trees.
package builder

import (
	"strconv"

	"github.com/jzhdev/vcanvas/pkg/vdom"
)

// ElementBuilder accumulates props and children for one element
type ElementBuilder struct {
	tag      string
	props    vdom.Props
	children []*vdom.VNode
}

// Element starts a builder for an arbitrary tag
func Element(tag string) *ElementBuilder {
	return &ElementBuilder{tag: tag, props: vdom.Props{}}
}

func Html() *ElementBuilder     { return Element("html") }
func Head() *ElementBuilder     { return Element("head") }
func Body() *ElementBuilder     { return Element("body") }
func Meta() *ElementBuilder     { return Element("meta") }
func Title() *ElementBuilder    { return Element("title") }
func Script() *ElementBuilder   { return Element("script") }
func StyleTag() *ElementBuilder { return Element("style") }
func Div() *ElementBuilder      { return Element("div") }
func H1() *ElementBuilder       { return Element("h1") }
func Svg() *ElementBuilder      { return Element("svg") }
func Line() *ElementBuilder     { return Element("line") }

// Text appends a text child
func (b *ElementBuilder) Text(s string) *ElementBuilder {
	b.children = append(b.children, vdom.NewText(s))
	return b
}

// Children appends child nodes; nil children are skipped
func (b *ElementBuilder) Children(kids ...*vdom.VNode) *ElementBuilder {
	b.children = append(b.children, kids...)
	return b
}

// Key sets the reconciliation key
func (b *ElementBuilder) Key(key string) *ElementBuilder {
	b.props["key"] = key
	return b
}

// Build finalizes the element
func (b *ElementBuilder) Build() *vdom.VNode {
	n := vdom.NewElement(b.tag, b.props, b.children...)
	n.Key = n.Prop("key")
	return n
}

// Px formats a pixel length for style values
func Px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// Num formats a number for attribute values
func Num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
