// Package tree is the pure mutation engine for condition trees. Every
// operation takes a root Group and returns a new root; the input is never
// edited in place. Returning the identical root pointer signals that the
// operation was a no-op, and callers are expected to use that pointer
// comparison to skip redundant change notifications.
//
// Every failure mode — unknown id, wrong node kind, cycle-inducing move,
// structurally pointless reorder — degrades to a silent no-op. That keeps
// the engine safe to drive from an interaction layer working off possibly
// stale drop metadata: a rejected gesture simply has no visible effect.
package tree

import (
	"slices"

	"github.com/vanderheijden86/condtree/pkg/model"
)

// Position says where a moved node lands relative to its target: as the
// sibling immediately before or after it, or appended into it (groups only).
type Position string

const (
	Before Position = "before"
	After  Position = "after"
	Into   Position = "into"
)

// Valid reports whether p is one of the three drop positions.
func (p Position) Valid() bool {
	return p == Before || p == After || p == Into
}

// Find returns the node carrying id, searching depth-first from the root.
// The returned node is a reference into the live tree and must be treated
// as read-only.
func Find[T any](root *model.Group[T], id string) (model.Node[T], bool) {
	if root == nil {
		return nil, false
	}
	var found model.Node[T]
	model.Walk[T](root, func(n model.Node[T]) bool {
		if n.NodeID() == id {
			found = n
			return false
		}
		return true
	})
	return found, found != nil
}

// InsertCondition appends a freshly minted leaf, built by factory, to the
// end of the identified group's children. No-op when groupID does not
// resolve to a Group or the factory yields nothing.
func InsertCondition[T any](root *model.Group[T], groupID string, factory func() *model.Condition[T]) *model.Group[T] {
	if root == nil || factory == nil {
		return root
	}
	out, ok := rewriteNode[T](root, groupID, func(n model.Node[T]) model.Node[T] {
		g, isGroup := n.(*model.Group[T])
		if !isGroup {
			return nil
		}
		leaf := factory()
		if leaf == nil {
			return nil
		}
		children := append(slices.Clone(g.Children), model.Node[T](leaf))
		return &model.Group[T]{ID: g.ID, Operator: g.Operator, Children: children}
	})
	if !ok {
		return root
	}
	return out.(*model.Group[T])
}

// Delete removes the node carrying id from its parent, applying the
// collapse rule: an interior group left with a single child dissolves,
// promoting that child into its former position. When the root itself drops
// to a single child, a child group becomes the new root; a lone leaf stays
// wrapped in the root group so the root is always a Group. Unknown ids and
// the root's own id are no-ops.
func Delete[T any](root *model.Group[T], id string) *model.Group[T] {
	if root == nil || id == root.ID {
		return root
	}
	rebuilt, _, changed := detach(root, id)
	if !changed {
		return root
	}
	return collapseRoot(rebuilt)
}

// Move detaches the source node (collapse rule applied) and reinserts it
// relative to the target. Rejected as a no-op when either id is unknown,
// the target is the source or lies inside the source's subtree (a group
// moved into its own descendant would create a cycle), the position is
// Into but the target is not a Group, or the move would not change the
// tree's shape.
func Move[T any](root *model.Group[T], sourceID, targetID string, pos Position) *model.Group[T] {
	if root == nil || sourceID == targetID || !pos.Valid() {
		return root
	}
	source, ok := Find(root, sourceID)
	if !ok {
		return root
	}
	if model.Contains[T](source, targetID) {
		return root
	}
	srcParent, srcIdx, _, ok := locate(root, sourceID)
	if !ok || srcParent == nil {
		// Source is the root itself; the root cannot be repositioned.
		return root
	}
	tgtParent, tgtIdx, target, ok := locate(root, targetID)
	if !ok {
		return root
	}

	switch pos {
	case Before:
		if srcParent == tgtParent && srcIdx == tgtIdx-1 {
			return root
		}
	case After:
		if srcParent == tgtParent && srcIdx == tgtIdx+1 {
			return root
		}
	case Into:
		tg, isGroup := target.(*model.Group[T])
		if !isGroup {
			return root
		}
		if srcParent == tg && srcIdx == len(tg.Children)-1 {
			// Already the last child of the target group.
			return root
		}
	}

	rebuilt, detached, changed := detach(root, sourceID)
	if !changed {
		return root
	}

	var out model.Node[T]
	if pos == Into {
		out, ok = rewriteNode[T](rebuilt, targetID, func(n model.Node[T]) model.Node[T] {
			g, isGroup := n.(*model.Group[T])
			if !isGroup {
				return nil
			}
			children := append(slices.Clone(g.Children), detached)
			return &model.Group[T]{ID: g.ID, Operator: g.Operator, Children: children}
		})
	} else {
		out, ok = spliceSibling[T](rebuilt, targetID, detached, pos == After)
	}
	if !ok {
		// The target has no parent in the post-detach tree (it was promoted
		// to the root by a collapse); there is nowhere to put the source.
		return root
	}
	return collapseRoot(out.(*model.Group[T]))
}

// GroupPair replaces node A with a new group, fresh id and the given
// operator, whose children are [A, B] in that order; B is detached from its
// old position first, collapse rule applied. This is the only way a new
// Group is born after initial tree construction. No-op when either id is
// unknown, the ids are equal, A lies inside B's subtree (detaching B would
// take A with it), or detaching B collapses A's own group away. When A is
// the root and detaching B leaves it a singleton, the root dissolves into
// its remaining child before pairing; the pair becomes the new root.
func GroupPair[T any](root *model.Group[T], aID, bID string, op model.Operator) *model.Group[T] {
	if root == nil || aID == bID || !op.Valid() {
		return root
	}
	if _, ok := Find(root, aID); !ok {
		return root
	}
	b, ok := Find(root, bID)
	if !ok {
		return root
	}
	if model.Contains[T](b, aID) {
		return root
	}

	rebuilt, detached, changed := detach(root, bID)
	if !changed {
		return root
	}
	out, ok := rewriteNode[T](rebuilt, aID, func(n model.Node[T]) model.Node[T] {
		// A can be the root itself, and B one of its children. The pair
		// group demotes the root to an interior node, so the collapse
		// rule applies to it like any other group: a post-detach
		// singleton dissolves into its last child, and an emptied root
		// has nothing left to pair.
		if g, isGroup := n.(*model.Group[T]); isGroup && len(g.Children) < 2 {
			if len(g.Children) == 0 {
				return nil
			}
			n = g.Children[0]
		}
		return &model.Group[T]{
			ID:       model.NewID(),
			Operator: op,
			Children: []model.Node[T]{n, detached},
		}
	})
	if !ok {
		return root
	}
	return collapseRoot(out.(*model.Group[T]))
}

// ToggleOperator flips the identified group between AND and OR. No-op if
// the id does not resolve to a Group.
func ToggleOperator[T any](root *model.Group[T], groupID string) *model.Group[T] {
	if root == nil {
		return root
	}
	out, ok := rewriteNode[T](root, groupID, func(n model.Node[T]) model.Node[T] {
		g, isGroup := n.(*model.Group[T])
		if !isGroup {
			return nil
		}
		return &model.Group[T]{ID: g.ID, Operator: g.Operator.Toggle(), Children: g.Children}
	})
	if !ok {
		return root
	}
	return out.(*model.Group[T])
}
