package tree

import (
	"slices"

	"github.com/vanderheijden86/condtree/pkg/model"
)

// detach rebuilds g without the node carrying id, recursing into subgroups.
// An interior group left with a single child is collapsed into that child by
// its parent. g itself is never collapsed here — root-level collapse policy
// belongs to collapseRoot. Returns the rebuilt group, the removed node, and
// whether anything changed; untouched subtrees are shared, not copied.
func detach[T any](g *model.Group[T], id string) (*model.Group[T], model.Node[T], bool) {
	for i, child := range g.Children {
		if child.NodeID() == id {
			children := make([]model.Node[T], 0, len(g.Children)-1)
			children = append(children, g.Children[:i]...)
			children = append(children, g.Children[i+1:]...)
			return &model.Group[T]{ID: g.ID, Operator: g.Operator, Children: children}, child, true
		}
		sub, ok := child.(*model.Group[T])
		if !ok {
			continue
		}
		rebuilt, removed, changed := detach(sub, id)
		if !changed {
			continue
		}
		children := slices.Clone(g.Children)
		if len(rebuilt.Children) == 1 {
			// Collapse rule: a singleton group dissolves into its last child.
			children[i] = rebuilt.Children[0]
		} else {
			children[i] = rebuilt
		}
		return &model.Group[T]{ID: g.ID, Operator: g.Operator, Children: children}, removed, true
	}
	return g, nil, false
}

// collapseRoot applies the root flavor of the collapse rule: a root left
// with a single group child hands the root role to that child. A root left
// with a single leaf child keeps its wrapper group, so the root invariant
// (the root is always a Group) holds even for a one-condition tree.
func collapseRoot[T any](root *model.Group[T]) *model.Group[T] {
	if len(root.Children) == 1 {
		if g, ok := root.Children[0].(*model.Group[T]); ok {
			return g
		}
	}
	return root
}

// rewriteNode finds the node carrying id and substitutes fn(node) for it,
// rebuilding the path from n down to the replacement and sharing every
// untouched subtree. fn returning nil rejects the rewrite. The bool result
// reports whether a substitution actually happened.
func rewriteNode[T any](n model.Node[T], id string, fn func(model.Node[T]) model.Node[T]) (model.Node[T], bool) {
	if n.NodeID() == id {
		out := fn(n)
		if out == nil {
			return n, false
		}
		return out, true
	}
	g, ok := n.(*model.Group[T])
	if !ok {
		return n, false
	}
	for i, child := range g.Children {
		out, changed := rewriteNode[T](child, id, fn)
		if !changed {
			continue
		}
		children := slices.Clone(g.Children)
		children[i] = out
		return &model.Group[T]{ID: g.ID, Operator: g.Operator, Children: children}, true
	}
	return n, false
}

// spliceSibling inserts src immediately before or after the child carrying
// targetID, rebuilding the path from n. Fails (false) when targetID has no
// parent under n, i.e. when the target is n itself.
func spliceSibling[T any](n model.Node[T], targetID string, src model.Node[T], after bool) (model.Node[T], bool) {
	g, ok := n.(*model.Group[T])
	if !ok {
		return n, false
	}
	for i, child := range g.Children {
		if child.NodeID() != targetID {
			continue
		}
		at := i
		if after {
			at = i + 1
		}
		children := make([]model.Node[T], 0, len(g.Children)+1)
		children = append(children, g.Children[:at]...)
		children = append(children, src)
		children = append(children, g.Children[at:]...)
		return &model.Group[T]{ID: g.ID, Operator: g.Operator, Children: children}, true
	}
	for i, child := range g.Children {
		out, changed := spliceSibling[T](child, targetID, src, after)
		if !changed {
			continue
		}
		children := slices.Clone(g.Children)
		children[i] = out
		return &model.Group[T]{ID: g.ID, Operator: g.Operator, Children: children}, true
	}
	return n, false
}

// locate finds the node carrying id and reports its parent group and index
// within that parent. The root locates with a nil parent and index -1.
func locate[T any](root *model.Group[T], id string) (parent *model.Group[T], index int, node model.Node[T], ok bool) {
	if root == nil {
		return nil, -1, nil, false
	}
	if root.ID == id {
		return nil, -1, root, true
	}
	var walk func(g *model.Group[T]) bool
	walk = func(g *model.Group[T]) bool {
		for i, child := range g.Children {
			if child.NodeID() == id {
				parent, index, node = g, i, child
				return true
			}
			if sub, isGroup := child.(*model.Group[T]); isGroup && walk(sub) {
				return true
			}
		}
		return false
	}
	if walk(root) {
		return parent, index, node, true
	}
	return nil, -1, nil, false
}
