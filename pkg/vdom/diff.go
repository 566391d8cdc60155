package vdom

import (
	"fmt"
)

// PatchOp represents the type of patch operation
type PatchOp uint8

const (
	// OpReplaceText replaces text node content
	OpReplaceText PatchOp = 0x01
	// OpSetAttribute sets or replaces an attribute
	OpSetAttribute PatchOp = 0x02
	// OpRemoveNode removes a node
	OpRemoveNode PatchOp = 0x03
	// OpInsertNode inserts a new node
	OpInsertNode PatchOp = 0x04
	// OpRemoveAttribute removes an attribute
	OpRemoveAttribute PatchOp = 0x06
)

// Patch represents a single DOM mutation. Path is the list of child indices
// from the root to the target node as the DOM stands when the patch is
// applied; patches must be applied in order. For OpInsertNode the last index
// is the insertion position under the parent.
type Patch struct {
	Op    PatchOp
	Path  []int
	Key   string // Attribute key for set/remove attribute
	Value string // Text content or attribute value
	Node  *VNode // For insert operations
}

// String returns a human-readable representation of the patch
func (p Patch) String() string {
	switch p.Op {
	case OpReplaceText:
		return fmt.Sprintf("ReplaceText(%v, text=%q)", p.Path, p.Value)
	case OpSetAttribute:
		return fmt.Sprintf("SetAttribute(%v, key=%q, value=%q)", p.Path, p.Key, p.Value)
	case OpRemoveAttribute:
		return fmt.Sprintf("RemoveAttribute(%v, key=%q)", p.Path, p.Key)
	case OpRemoveNode:
		return fmt.Sprintf("RemoveNode(%v)", p.Path)
	case OpInsertNode:
		return fmt.Sprintf("InsertNode(%v)", p.Path)
	default:
		return fmt.Sprintf("Unknown(op=%d)", p.Op)
	}
}

// Diff computes the patches needed to transform prev into next. Paths count
// fragment nodes like elements, so trees handed to a DOM applier should not
// nest fragments.
func Diff(prev, next *VNode) []Patch {
	patches := make([]Patch, 0, 8)
	diffNode(&patches, prev, next, nil)
	return patches
}

func childPath(parent []int, i int) []int {
	path := make([]int, len(parent)+1)
	copy(path, parent)
	path[len(parent)] = i
	return path
}

// diffNode recursively diffs two nodes at path
func diffNode(patches *[]Patch, prev, next *VNode, path []int) {
	switch {
	case prev == nil && next == nil:
		return
	case next == nil:
		*patches = append(*patches, Patch{Op: OpRemoveNode, Path: path})
		return
	case prev == nil:
		*patches = append(*patches, Patch{Op: OpInsertNode, Path: path, Node: next})
		return
	}

	// Different node types - replace
	if prev.Kind != next.Kind || (prev.Kind == KindElement && prev.Tag != next.Tag) {
		*patches = append(*patches,
			Patch{Op: OpRemoveNode, Path: path},
			Patch{Op: OpInsertNode, Path: path, Node: next},
		)
		return
	}

	switch prev.Kind {
	case KindText:
		if prev.Text != next.Text {
			*patches = append(*patches, Patch{Op: OpReplaceText, Path: path, Value: next.Text})
		}
	case KindElement:
		diffProps(patches, path, prev.Props, next.Props)
		diffChildren(patches, path, prev.Kids, next.Kids)
	case KindFragment:
		diffChildren(patches, path, prev.Kids, next.Kids)
	}
}

func skipProp(key string) bool {
	return key == "key" || key == "ref" || IsEventProp(key)
}

// attrValue reports how a prop is written as an attribute. false removes it.
func attrValue(v any) (string, bool) {
	if b, ok := v.(bool); ok {
		return "", b
	}
	return fmt.Sprintf("%v", v), true
}

// diffProps diffs attributes. Handlers are bound outside the tree and are
// not diffed.
func diffProps(patches *[]Patch, path []int, prevProps, nextProps Props) {
	for _, key := range prevProps.Keys() {
		if skipProp(key) {
			continue
		}
		if _, ok := attrValue(prevProps[key]); !ok {
			continue
		}
		nextVal, exists := nextProps[key]
		if !exists {
			*patches = append(*patches, Patch{Op: OpRemoveAttribute, Path: path, Key: key})
			continue
		}
		if _, ok := attrValue(nextVal); !ok {
			*patches = append(*patches, Patch{Op: OpRemoveAttribute, Path: path, Key: key})
		}
	}

	for _, key := range nextProps.Keys() {
		if skipProp(key) {
			continue
		}
		next, ok := attrValue(nextProps[key])
		if !ok {
			continue
		}
		if prevVal, exists := prevProps[key]; exists {
			if prev, wasSet := attrValue(prevVal); wasSet && prev == next {
				continue
			}
		}
		*patches = append(*patches, Patch{Op: OpSetAttribute, Path: path, Key: key, Value: next})
	}
}

// diffChildren reconciles child lists. Children are matched in order by key
// (unkeyed children match the next unkeyed one); a keyed child that moved
// before an earlier match is removed and re-inserted.
func diffChildren(patches *[]Patch, parent []int, prevKids, nextKids []VNode) {
	if len(prevKids) == 0 && len(nextKids) == 0 {
		return
	}

	match := make([]int, len(nextKids))
	matched := make([]bool, len(prevKids))
	last := -1
	for i := range nextKids {
		match[i] = -1
		for p := last + 1; p < len(prevKids); p++ {
			if prevKids[p].Key == nextKids[i].Key {
				match[i] = p
				matched[p] = true
				last = p
				break
			}
		}
	}

	// Remove from the end so earlier paths stay valid
	for p := len(prevKids) - 1; p >= 0; p-- {
		if !matched[p] {
			diffNode(patches, &prevKids[p], nil, childPath(parent, p))
		}
	}

	// Surviving children are now in next order, so index i is stable
	for i := range nextKids {
		path := childPath(parent, i)
		if p := match[i]; p >= 0 {
			diffNode(patches, &prevKids[p], &nextKids[i], path)
		} else {
			diffNode(patches, nil, &nextKids[i], path)
		}
	}
}
