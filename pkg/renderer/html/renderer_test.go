package html

import (
	"errors"
	"strings"
	"testing"

	"github.com/jzhdev/vcanvas/pkg/vdom"
)

func TestRenderer_TextNodes(t *testing.T) {
	tests := []struct {
		name     string
		node     *vdom.VNode
		expected string
	}{
		{
			name:     "simple text",
			node:     vdom.NewText("Hello World"),
			expected: "Hello World",
		},
		{
			name:     "text with HTML entities",
			node:     vdom.NewText("<script>alert('xss')</script>"),
			expected: "&lt;script&gt;alert(&#39;xss&#39;)&lt;/script&gt;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := RenderToString(tt.node)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("RenderToString() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestRenderer_Elements(t *testing.T) {
	tests := []struct {
		name     string
		node     *vdom.VNode
		expected string
	}{
		{
			name:     "empty div",
			node:     vdom.NewElement("div", nil),
			expected: "<div></div>",
		},
		{
			name: "attributes sorted",
			node: vdom.NewElement("div", vdom.Props{
				"style":       "left:10px",
				"class":       "resizer resizer-r",
				"data-handle": "r",
			}),
			expected: `<div class="resizer resizer-r" data-handle="r" style="left:10px"></div>`,
		},
		{
			name: "svg with line",
			node: vdom.NewElement("svg", vdom.Props{"width": "500", "height": "400", "viewBox": "0 0 505 404"},
				vdom.NewElement("line", vdom.Props{"x1": "6", "y1": "66", "x2": "233", "y2": "250", "stroke": "black"}),
			),
			expected: `<svg height="400" viewBox="0 0 505 404" width="500"><line stroke="black" x1="6" x2="233" y1="66" y2="250"></line></svg>`,
		},
		{
			name:     "void element",
			node:     vdom.NewElement("meta", vdom.Props{"charset": "utf-8"}),
			expected: `<meta charset="utf-8">`,
		},
		{
			name: "boolean attributes",
			node: vdom.NewElement("input", vdom.Props{
				"type":     "checkbox",
				"checked":  true,
				"disabled": false,
			}),
			expected: `<input checked type="checkbox">`,
		},
		{
			name: "handlers and refs dropped",
			node: vdom.NewElement("svg", vdom.Props{
				"onwheel": func(float64) {},
				"ref":     func(vdom.ElementRef) {},
				"class":   "surface",
			}),
			expected: `<svg class="surface"></svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := RenderToString(tt.node)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("RenderToString() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestRenderer_RawTextElements(t *testing.T) {
	node := vdom.NewFragment(
		vdom.NewElement("style", nil, vdom.NewText(".a > .b { left: 0 }")),
		vdom.NewElement("script", nil, vdom.NewText("if (a < b && c) {}")),
	)
	result, err := RenderToString(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "<style>.a > .b { left: 0 }</style><script>if (a < b && c) {}</script>"
	if result != want {
		t.Errorf("RenderToString() = %q, want %q", result, want)
	}
}

func TestRenderer_XSSPrevention(t *testing.T) {
	tests := []struct {
		name    string
		node    *vdom.VNode
		notWant string
	}{
		{
			name:    "script in attribute",
			node:    vdom.NewElement("div", vdom.Props{"title": `<script>alert('xss')</script>`}),
			notWant: "<script>",
		},
		{
			name:    "javascript URL",
			node:    vdom.NewElement("a", vdom.Props{"href": "javascript:alert('xss')"}, vdom.NewText("Link")),
			notWant: "javascript:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := RenderToString(tt.node)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if strings.Contains(result, tt.notWant) {
				t.Errorf("Result should not contain %q, got: %q", tt.notWant, result)
			}
		})
	}
}

func TestRenderer_RenderPage(t *testing.T) {
	var buf strings.Builder
	page := vdom.NewElement("html", nil, vdom.NewElement("body", nil, vdom.NewText("hi")))
	if err := NewRenderer(&buf).RenderPage(page); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := buf.String(); got != "<!DOCTYPE html><html><body>hi</body></html>" {
		t.Errorf("RenderPage() = %q", got)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestRenderer_WriteError(t *testing.T) {
	err := NewRenderer(failingWriter{}).Render(vdom.NewElement("div", nil, vdom.NewText("x")))
	if err == nil {
		t.Fatal("expected write error")
	}
}
