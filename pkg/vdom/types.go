// Package vdom defines the virtual node tree components build and renderers
// consume.
package vdom

import "sort"

// VKind represents the type of virtual node
type VKind uint8

const (
	// KindElement represents a DOM element node
	KindElement VKind = iota
	// KindText represents a text node
	KindText
	// KindFragment represents a fragment (multiple children without parent)
	KindFragment
)

// VNodeFlags are bitwise hints about a node
type VNodeFlags uint8

const (
	// FlagHasKey indicates this node has a key for list reconciliation
	FlagHasKey VNodeFlags = 1 << iota
	// FlagHasRef indicates this node has a ref callback
	FlagHasRef
	// FlagHasEvents indicates this node has event listeners
	FlagHasEvents
)

// Props represents the properties/attributes of a VNode
type Props map[string]any

// Keys returns the prop names in sorted order
func (p Props) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// VNode represents a virtual DOM node. Treat it as immutable once built.
type VNode struct {
	Kind  VKind
	Tag   string
	Props Props
	Kids  []VNode
	Key   string
	Flags VNodeFlags
	Text  string
}

// IsEventProp reports whether a prop name is an event handler (onclick, onwheel, ...)
func IsEventProp(name string) bool {
	return len(name) > 2 && name[0] == 'o' && name[1] == 'n'
}

// NewElement creates a new element VNode
func NewElement(tag string, props Props, children ...*VNode) *VNode {
	flags := VNodeFlags(0)
	for k := range props {
		if IsEventProp(k) {
			flags |= FlagHasEvents
		}
	}
	if _, ok := props["key"]; ok {
		flags |= FlagHasKey
	}
	if _, ok := props["ref"]; ok {
		flags |= FlagHasRef
	}

	return &VNode{
		Kind:  KindElement,
		Tag:   tag,
		Props: props,
		Kids:  collect(children),
		Flags: flags,
	}
}

// NewText creates a new text VNode
func NewText(text string) *VNode {
	return &VNode{Kind: KindText, Text: text}
}

// NewFragment creates a new fragment VNode
func NewFragment(children ...*VNode) *VNode {
	return &VNode{Kind: KindFragment, Kids: collect(children)}
}

func collect(children []*VNode) []VNode {
	kids := make([]VNode, 0, len(children))
	for _, child := range children {
		if child != nil {
			kids = append(kids, *child)
		}
	}
	return kids
}

// HasFlag returns true if the specified flag is set
func (v VNode) HasFlag(flag VNodeFlags) bool {
	return v.Flags&flag != 0
}

// Prop returns a prop value as a string, or "" when absent or not a string
func (v VNode) Prop(name string) string {
	s, _ := v.Props[name].(string)
	return s
}

// Find returns the first node in depth-first order for which match is true
func (v *VNode) Find(match func(*VNode) bool) *VNode {
	if match(v) {
		return v
	}
	for i := range v.Kids {
		if n := v.Kids[i].Find(match); n != nil {
			return n
		}
	}
	return nil
}

// FindAll returns every node for which match is true, in depth-first order
func (v *VNode) FindAll(match func(*VNode) bool) []*VNode {
	var out []*VNode
	var walk func(n *VNode)
	walk = func(n *VNode) {
		if match(n) {
			out = append(out, n)
		}
		for i := range n.Kids {
			walk(&n.Kids[i])
		}
	}
	walk(v)
	return out
}
