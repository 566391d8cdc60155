//go:build js && wasm

// Package dom applies vdom patches to the browser DOM.
package dom

import (
	"fmt"
	"syscall/js"

	"github.com/jzhdev/vcanvas/pkg/vdom"
)

const svgNS = "http://www.w3.org/2000/svg"

// DOMApplier applies patches to the subtree rooted at one element, which
// corresponds to the root VNode passed to vdom.Diff.
type DOMApplier struct {
	document js.Value
	root     js.Value
}

// NewDOMApplier creates an applier for root
func NewDOMApplier(root js.Value) *DOMApplier {
	return &DOMApplier{
		document: js.Global().Get("document"),
		root:     root,
	}
}

// Root returns the element patches are applied under
func (a *DOMApplier) Root() js.Value { return a.root }

// Apply applies patches in order
func (a *DOMApplier) Apply(patches []vdom.Patch) error {
	for _, patch := range patches {
		if err := a.applyPatch(patch); err != nil {
			return fmt.Errorf("failed to apply patch %v: %w", patch, err)
		}
	}
	return nil
}

func (a *DOMApplier) applyPatch(patch vdom.Patch) error {
	switch patch.Op {
	case vdom.OpReplaceText:
		node, err := a.resolve(patch.Path)
		if err != nil {
			return err
		}
		node.Set("textContent", patch.Value)
	case vdom.OpSetAttribute:
		node, err := a.resolve(patch.Path)
		if err != nil {
			return err
		}
		setAttribute(node, patch.Key, patch.Value)
	case vdom.OpRemoveAttribute:
		node, err := a.resolve(patch.Path)
		if err != nil {
			return err
		}
		removeAttribute(node, patch.Key)
	case vdom.OpRemoveNode:
		return a.removeNode(patch.Path)
	case vdom.OpInsertNode:
		return a.insertNode(patch)
	default:
		return fmt.Errorf("unknown patch operation: %v", patch.Op)
	}
	return nil
}

// resolve walks childNodes from the root
func (a *DOMApplier) resolve(path []int) (js.Value, error) {
	node := a.root
	for depth, i := range path {
		kids := node.Get("childNodes")
		if i < 0 || i >= kids.Get("length").Int() {
			return js.Undefined(), fmt.Errorf("no child %d at depth %d", i, depth)
		}
		node = kids.Index(i)
	}
	return node, nil
}

func setAttribute(node js.Value, key, value string) {
	switch key {
	case "checked", "selected", "disabled", "readonly", "required":
		node.Set(key, true)
	case "value":
		tag := node.Get("tagName").String()
		if tag == "INPUT" || tag == "TEXTAREA" || tag == "SELECT" {
			node.Set("value", value)
			return
		}
		node.Call("setAttribute", key, value)
	default:
		// className is read-only on svg elements, so class goes through setAttribute too
		node.Call("setAttribute", key, value)
	}
}

func removeAttribute(node js.Value, key string) {
	switch key {
	case "checked", "selected", "disabled", "readonly", "required":
		node.Set(key, false)
	}
	node.Call("removeAttribute", key)
}

func (a *DOMApplier) removeNode(path []int) error {
	if len(path) == 0 {
		return fmt.Errorf("cannot remove the root")
	}
	node, err := a.resolve(path)
	if err != nil {
		return err
	}
	parent := node.Get("parentNode")
	if !parent.IsNull() && !parent.IsUndefined() {
		parent.Call("removeChild", node)
	}
	return nil
}

func (a *DOMApplier) insertNode(patch vdom.Patch) error {
	if patch.Node == nil {
		return fmt.Errorf("insert patch missing node")
	}
	if len(patch.Path) == 0 {
		return fmt.Errorf("cannot replace the root")
	}
	parent, err := a.resolve(patch.Path[:len(patch.Path)-1])
	if err != nil {
		return err
	}
	inSVG := parent.Get("namespaceURI").String() == svgNS && parent.Get("tagName").String() != "foreignObject"
	node := a.createDOMTree(patch.Node, inSVG)
	if node.IsUndefined() {
		return nil
	}

	kids := parent.Get("childNodes")
	if i := patch.Path[len(patch.Path)-1]; i < kids.Get("length").Int() {
		parent.Call("insertBefore", node, kids.Index(i))
	} else {
		parent.Call("appendChild", node)
	}
	return nil
}

// createDOMTree creates a DOM tree from a VNode tree. Elements inside an
// <svg> are created in the svg namespace.
func (a *DOMApplier) createDOMTree(vnode *vdom.VNode, inSVG bool) js.Value {
	switch vnode.Kind {
	case vdom.KindText:
		return a.document.Call("createTextNode", vnode.Text)

	case vdom.KindElement:
		inSVG = inSVG || vnode.Tag == "svg"
		var elem js.Value
		if inSVG {
			elem = a.document.Call("createElementNS", svgNS, vnode.Tag)
		} else {
			elem = a.document.Call("createElement", vnode.Tag)
		}
		for _, key := range vnode.Props.Keys() {
			if key == "key" || key == "ref" || vdom.IsEventProp(key) {
				continue
			}
			value := vnode.Props[key]
			if b, ok := value.(bool); ok {
				if b {
					setAttribute(elem, key, "")
				}
				continue
			}
			setAttribute(elem, key, fmt.Sprintf("%v", value))
		}
		if ref, ok := vnode.Props["ref"].(func(vdom.ElementRef)); ok {
			ref(elem)
		}
		for i := range vnode.Kids {
			if child := a.createDOMTree(&vnode.Kids[i], inSVG); !child.IsUndefined() {
				elem.Call("appendChild", child)
			}
		}
		return elem

	case vdom.KindFragment:
		frag := a.document.Call("createDocumentFragment")
		for i := range vnode.Kids {
			if child := a.createDOMTree(&vnode.Kids[i], inSVG); !child.IsUndefined() {
				frag.Call("appendChild", child)
			}
		}
		return frag

	default:
		return js.Undefined()
	}
}
