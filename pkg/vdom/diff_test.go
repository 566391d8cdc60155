package vdom

import (
	"reflect"
	"testing"
)

func el(tag string, props Props, kids ...*VNode) *VNode {
	n := NewElement(tag, props, kids...)
	if k, ok := props["key"].(string); ok {
		n.Key = k
	}
	return n
}

func TestDiff_Nodes(t *testing.T) {
	tests := []struct {
		name     string
		prev     *VNode
		next     *VNode
		expected []string
	}{
		{
			name:     "both nil",
			expected: []string{},
		},
		{
			name:     "text content change",
			prev:     NewText("Hello"),
			next:     NewText("World"),
			expected: []string{`ReplaceText([], text="World")`},
		},
		{
			name:     "text content unchanged",
			prev:     NewText("Same"),
			next:     NewText("Same"),
			expected: []string{},
		},
		{
			name:     "different tags",
			prev:     el("div", nil),
			next:     el("span", nil),
			expected: []string{"RemoveNode([])", "InsertNode([])"},
		},
		{
			name:     "add attribute",
			prev:     el("div", nil),
			next:     el("div", Props{"class": "active"}),
			expected: []string{`SetAttribute([], key="class", value="active")`},
		},
		{
			name:     "remove attribute",
			prev:     el("div", Props{"class": "active"}),
			next:     el("div", nil),
			expected: []string{`RemoveAttribute([], key="class")`},
		},
		{
			name: "changed attributes in sorted order",
			prev: el("svg", Props{"width": "500", "height": "500"}),
			next: el("svg", Props{"width": "550", "height": "530"}),
			expected: []string{
				`SetAttribute([], key="height", value="530")`,
				`SetAttribute([], key="width", value="550")`,
			},
		},
		{
			name:     "false boolean removes",
			prev:     el("input", Props{"disabled": true}),
			next:     el("input", Props{"disabled": false}),
			expected: []string{`RemoveAttribute([], key="disabled")`},
		},
		{
			name:     "handlers and keys ignored",
			prev:     el("div", Props{"key": "a", "onmousedown": func() {}}),
			next:     el("div", Props{"key": "a", "onmousedown": func() {}}),
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := patchStrings(Diff(tt.prev, tt.next))
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Diff() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDiff_Children(t *testing.T) {
	handle := func(name, style string) *VNode {
		return el("div", Props{"key": name, "style": style})
	}
	svg := func(w string) *VNode { return el("svg", Props{"width": w}) }

	tests := []struct {
		name     string
		prev     *VNode
		next     *VNode
		expected []string
	}{
		{
			name: "nested attribute",
			prev: el("div", nil, svg("500"), handle("r", "left:500px")),
			next: el("div", nil, svg("550"), handle("r", "left:550px")),
			expected: []string{
				`SetAttribute([0], key="width", value="550")`,
				`SetAttribute([1], key="style", value="left:550px")`,
			},
		},
		{
			name: "keyed child removed",
			prev: el("div", nil, svg("500"), handle("r", "x"), handle("b", "y"), handle("br", "z")),
			next: el("div", nil, svg("500"), handle("b", "y")),
			expected: []string{
				"RemoveNode([3])",
				"RemoveNode([1])",
			},
		},
		{
			name: "keyed child added in the middle",
			prev: el("div", nil, svg("500"), handle("br", "z")),
			next: el("div", nil, svg("500"), handle("b", "y"), handle("br", "z")),
			expected: []string{
				"InsertNode([1])",
			},
		},
		{
			name: "keyed children swapped",
			prev: el("ul", nil, handle("a", "1"), handle("b", "2")),
			next: el("ul", nil, handle("b", "2"), handle("a", "1")),
			expected: []string{
				"RemoveNode([0])",
				"InsertNode([1])",
			},
		},
		{
			name: "unkeyed extra children",
			prev: el("g", nil, NewText("a"), NewText("b"), NewText("c")),
			next: el("g", nil, NewText("a")),
			expected: []string{
				"RemoveNode([2])",
				"RemoveNode([1])",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := patchStrings(Diff(tt.prev, tt.next))
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Diff() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDiff_InsertCarriesNode(t *testing.T) {
	added := el("div", Props{"key": "b"})
	patches := Diff(el("div", nil), el("div", nil, added))
	if len(patches) != 1 || patches[0].Op != OpInsertNode {
		t.Fatalf("patches = %v", patches)
	}
	if patches[0].Node == nil || patches[0].Node.Key != "b" {
		t.Errorf("insert node = %+v", patches[0].Node)
	}
}

func patchStrings(patches []Patch) []string {
	out := make([]string, 0, len(patches))
	for _, p := range patches {
		out = append(out, p.String())
	}
	return out
}
