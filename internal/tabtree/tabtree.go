// Package tabtree resolves a document snapshot's nested tabs into a
// flat, index-addressed tree and locates target tabs by id or title.
package tabtree

import (
	"strings"

	"github.com/dgallion1/docstab/internal/gdocs"
)

// Node is one tab in the arena. Parent/child relationships are arena
// indices; NoParent marks roots.
type Node struct {
	ID       string
	Title    string
	Index    int // sibling position from the snapshot
	Depth    int
	ParentID string

	Parent   int
	Children []int

	Body          *gdocs.Body
	Lists         map[string]gdocs.List
	InlineObjects map[string]gdocs.InlineObject
}

const NoParent = -1

// Tree is the resolved tab hierarchy of a single document snapshot.
// Nodes are stored in depth-first pre-order, so arena order is
// traversal order. A Tree is built once per operation and never
// mutated afterwards.
type Tree struct {
	nodes   []Node
	byID    map[string]int
	byTitle map[string][]int
}

// Ref selects a target tab: either a stable identifier (exact match)
// or a human title (case-insensitive match). At most one should be
// set; ID wins when both are.
type Ref struct {
	ID    string
	Title string
}

func (r Ref) IsZero() bool {
	return r.ID == "" && r.Title == ""
}

// Build constructs the tree from a snapshot. Documents predating tabs
// expose a bare body; those get a single synthetic root with an empty
// tab id so downstream requests stay unscoped.
func Build(doc *gdocs.Document) *Tree {
	t := &Tree{
		byID:    make(map[string]int),
		byTitle: make(map[string][]int),
	}

	if len(doc.Tabs) == 0 {
		t.addNode(Node{
			Title:  doc.Title,
			Parent: NoParent,
			Body:   doc.Body,
		})
		return t
	}

	// Iterative depth-first descent; children pushed in reverse so
	// sibling order from the snapshot is preserved.
	type frame struct {
		tab    *gdocs.Tab
		parent int
		depth  int
	}
	stack := make([]frame, 0, len(doc.Tabs))
	for i := len(doc.Tabs) - 1; i >= 0; i-- {
		stack = append(stack, frame{tab: doc.Tabs[i], parent: NoParent, depth: 0})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		props := f.tab.TabProperties
		node := Node{
			ID:       props.TabID,
			Title:    props.Title,
			Index:    props.Index,
			Depth:    f.depth,
			ParentID: props.ParentTabID,
			Parent:   f.parent,
		}
		if f.tab.DocumentTab != nil {
			node.Body = f.tab.DocumentTab.Body
			node.Lists = f.tab.DocumentTab.Lists
			node.InlineObjects = f.tab.DocumentTab.InlineObjects
		}
		idx := t.addNode(node)
		if f.parent != NoParent {
			t.nodes[f.parent].Children = append(t.nodes[f.parent].Children, idx)
		}

		for i := len(f.tab.ChildTabs) - 1; i >= 0; i-- {
			stack = append(stack, frame{tab: f.tab.ChildTabs[i], parent: idx, depth: f.depth + 1})
		}
	}

	return t
}

func (t *Tree) addNode(n Node) int {
	idx := len(t.nodes)
	t.nodes = append(t.nodes, n)
	t.byID[n.ID] = idx
	key := strings.ToLower(n.Title)
	t.byTitle[key] = append(t.byTitle[key], idx)
	return idx
}

// Len is the total number of tabs.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Flatten returns all tabs in depth-first pre-order. The returned
// pointers address the arena directly and stay valid for the life of
// the tree.
func (t *Tree) Flatten() []*Node {
	out := make([]*Node, len(t.nodes))
	for i := range t.nodes {
		out[i] = &t.nodes[i]
	}
	return out
}

// Roots returns the root tabs in sibling order.
func (t *Tree) Roots() []*Node {
	var out []*Node
	for i := range t.nodes {
		if t.nodes[i].Parent == NoParent {
			out = append(out, &t.nodes[i])
		}
	}
	return out
}

// Resolve locates exactly one tab for the reference. A zero reference
// resolves to the sole root tab, or fails when the document has more
// than one root. Title matches are case-insensitive and never silently
// pick the first of several collisions.
func (t *Tree) Resolve(ref Ref) (*Node, error) {
	switch {
	case ref.ID != "":
		idx, ok := t.byID[ref.ID]
		if !ok {
			return nil, &TabNotFoundError{Ref: ref.ID}
		}
		return &t.nodes[idx], nil

	case ref.Title != "":
		matches := t.byTitle[strings.ToLower(ref.Title)]
		switch len(matches) {
		case 0:
			return nil, &TabNotFoundError{Ref: ref.Title}
		case 1:
			return &t.nodes[matches[0]], nil
		default:
			ids := make([]string, len(matches))
			for i, idx := range matches {
				ids[i] = t.nodes[idx].ID
			}
			return nil, &AmbiguousTitleError{Title: ref.Title, TabIDs: ids}
		}

	default:
		roots := t.Roots()
		if len(roots) != 1 {
			return nil, &AmbiguousTargetError{Roots: len(roots)}
		}
		return roots[0], nil
	}
}
