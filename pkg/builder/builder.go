// Package builder is the composition layer between a rendering surface and
// the condition tree engine. It bundles the current root, the caller's
// change notification, the caller's leaf factory and a drag controller, and
// exposes the callback set a node renderer needs: delete, toggle operator,
// add condition, move, and drag lifecycle hooks.
//
// The builder owns no semantics of its own. Every callback runs one pure
// engine operation and propagates the result through onChange only when the
// returned root differs by pointer from the current one.
package builder

import (
	"github.com/vanderheijden86/condtree/pkg/dnd"
	"github.com/vanderheijden86/condtree/pkg/model"
	"github.com/vanderheijden86/condtree/pkg/tree"
)

// LeafFactory mints a fresh Condition with a tree-wide-unique id and a
// caller-chosen default payload. The engine never validates the payload;
// id uniqueness is the factory's contract to keep.
type LeafFactory[T any] func() *model.Condition[T]

// OnChange receives every root produced by a structural edit.
type OnChange[T any] func(root *model.Group[T])

// Builder wires a condition tree value to the engine for one editing
// surface. Not safe for concurrent use; it mirrors a single interactive
// session.
type Builder[T any] struct {
	root     *model.Group[T]
	factory  LeafFactory[T]
	onChange OnChange[T]
	drag     *dnd.Controller[T]
	groupOp  model.Operator
}

// New returns a builder for the given root. onChange may be nil when the
// caller only polls Root.
func New[T any](root *model.Group[T], factory LeafFactory[T], onChange OnChange[T]) *Builder[T] {
	return &Builder[T]{
		root:     root,
		factory:  factory,
		onChange: onChange,
		drag:     dnd.NewController[T](),
		groupOp:  model.OpAnd,
	}
}

// SetGroupOperator sets the connective used when a leaf lands on another
// leaf, for both MoveNode and drop gestures. Invalid operators are ignored;
// the default is AND.
func (b *Builder[T]) SetGroupOperator(op model.Operator) {
	if !op.Valid() {
		return
	}
	b.groupOp = op
	b.drag.SetGroupOperator(op)
}

// Root returns the current tree value.
func (b *Builder[T]) Root() *model.Group[T] {
	return b.root
}

// SetRoot replaces the tree value from outside (the owning caller pushing a
// new value back in). No onChange fires; the caller already knows.
func (b *Builder[T]) SetRoot(root *model.Group[T]) {
	b.root = root
}

// apply adopts next as the current root when it differs by pointer from the
// current one, firing onChange. Reports whether anything changed.
func (b *Builder[T]) apply(next *model.Group[T]) bool {
	if next == b.root {
		return false
	}
	b.root = next
	if b.onChange != nil {
		b.onChange(next)
	}
	return true
}

// DeleteNode removes the identified node, collapse rule applied.
func (b *Builder[T]) DeleteNode(id string) bool {
	return b.apply(tree.Delete(b.root, id))
}

// ToggleGroupOperator flips the identified group between AND and OR.
func (b *Builder[T]) ToggleGroupOperator(groupID string) bool {
	return b.apply(tree.ToggleOperator(b.root, groupID))
}

// AddConditionToGroup appends a fresh leaf from the caller's factory to the
// identified group.
func (b *Builder[T]) AddConditionToGroup(groupID string) bool {
	return b.apply(tree.InsertCondition(b.root, groupID, b.factory))
}

// MoveNode repositions sourceID relative to targetID. An Into move whose
// target resolves to a leaf groups the two under a fresh group instead,
// using the configured connective and mirroring the drop controller's
// resolution of leaf-onto-leaf gestures.
func (b *Builder[T]) MoveNode(sourceID, targetID string, pos tree.Position) bool {
	if pos == tree.Into {
		if target, ok := tree.Find(b.root, targetID); ok {
			if _, isGroup := target.(*model.Group[T]); !isGroup {
				return b.apply(tree.GroupPair(b.root, sourceID, targetID, b.groupOp))
			}
		}
	}
	return b.apply(tree.Move(b.root, sourceID, targetID, pos))
}

// StartDrag begins a drag gesture for the identified node.
func (b *Builder[T]) StartDrag(id string) {
	b.drag.Start(id)
}

// CancelDrag abandons the in-flight gesture without mutating the tree.
func (b *Builder[T]) CancelDrag() {
	b.drag.Cancel()
}

// DropOn ends the in-flight gesture against the given drop metadata.
// A nil meta is a drop outside any target.
func (b *Builder[T]) DropOn(meta *dnd.DropMeta) bool {
	return b.apply(b.drag.Drop(b.root, meta))
}

// Dragging reports whether a gesture is in flight.
func (b *Builder[T]) Dragging() bool {
	return b.drag.Dragging()
}

// IsDraggingID reports whether the identified node is being dragged; the
// rendering layer uses this for highlighting.
func (b *Builder[T]) IsDraggingID(id string) bool {
	return b.drag.IsActive(id)
}
