// Package dnd turns drag-and-drop gestures into condition tree edits. It is
// deliberately decoupled from any particular input library: the rendering
// layer tags every drop target with a DropMeta (target id, drop position,
// target kind) and, at drop time, hands the active metadata to the
// controller, which resolves it into a single pure engine call.
//
// The controller is a two-state machine: Idle, and Dragging while exactly
// one gesture is in flight. Drop and Cancel both return it to Idle.
package dnd

import (
	"github.com/vanderheijden86/condtree/pkg/debug"
	"github.com/vanderheijden86/condtree/pkg/model"
	"github.com/vanderheijden86/condtree/pkg/tree"
)

// Kind tags what sort of node a drop target was rendered for. It travels
// with the rendered output, so it can be stale by the time a drop lands;
// the controller re-validates against the live tree before mutating.
type Kind string

const (
	KindGroup     Kind = "group"
	KindCondition Kind = "condition"
)

// DropMeta is the metadata triple the rendering layer attaches to every
// potential drop target.
type DropMeta struct {
	TargetID string        `json:"target_id"`
	Position tree.Position `json:"position"`
	Kind     Kind          `json:"kind"`
}

// Controller tracks at most one in-flight drag gesture. A new gesture may
// only start after the previous one has been dropped or cancelled.
type Controller[T any] struct {
	activeID string
	groupOp  model.Operator
}

// NewController returns an idle controller. Leaf-onto-leaf drops group under
// AND until SetGroupOperator says otherwise.
func NewController[T any]() *Controller[T] {
	return &Controller[T]{groupOp: model.OpAnd}
}

// SetGroupOperator sets the connective for the group born when one condition
// is dropped onto another. Invalid operators are ignored.
func (c *Controller[T]) SetGroupOperator(op model.Operator) {
	if op.Valid() {
		c.groupOp = op
	}
}

// Start records the dragged node's id and enters the Dragging state.
func (c *Controller[T]) Start(id string) {
	debug.Log("dnd: drag start %s", id)
	c.activeID = id
}

// Cancel abandons the in-flight gesture, if any, and returns to Idle.
func (c *Controller[T]) Cancel() {
	if c.activeID != "" {
		debug.Log("dnd: drag cancel %s", c.activeID)
	}
	c.activeID = ""
}

// Dragging reports whether a gesture is in flight.
func (c *Controller[T]) Dragging() bool {
	return c.activeID != ""
}

// ActiveID returns the id of the node being dragged, or "" when idle. The
// rendering layer uses it to highlight the node under the pointer.
func (c *Controller[T]) ActiveID() string {
	return c.activeID
}

// IsActive reports whether the given node is the one being dragged.
func (c *Controller[T]) IsActive(id string) bool {
	return c.activeID != "" && c.activeID == id
}

// Drop ends the in-flight gesture and resolves meta into a tree edit,
// returning the new root. The controller is back in Idle when Drop returns,
// whatever the outcome. A nil meta is a drop with no target: no mutation.
//
// An Into drop onto a group moves the source to the end of that group's
// children, after re-checking against the live tree that the target really
// is a group (the rendered metadata may be stale). An Into drop onto a
// condition is not an error: dropping one leaf onto another groups the two
// under a fresh group with the configured connective, AND by default.
// Before/After drops reposition the source as the
// target's sibling. Every unresolvable drop returns the root unchanged.
func (c *Controller[T]) Drop(root *model.Group[T], meta *DropMeta) *model.Group[T] {
	source := c.activeID
	c.activeID = ""
	if source == "" || meta == nil || root == nil {
		return root
	}
	debug.Log("dnd: drop %s %s %s (kind %s)", source, meta.Position, meta.TargetID, meta.Kind)

	switch meta.Position {
	case tree.Into:
		if meta.Kind == KindCondition {
			return tree.GroupPair(root, source, meta.TargetID, c.groupOp)
		}
		if meta.Kind != KindGroup {
			return root
		}
		target, ok := tree.Find(root, meta.TargetID)
		if !ok {
			return root
		}
		if _, isGroup := target.(*model.Group[T]); !isGroup {
			return root
		}
		return tree.Move(root, source, meta.TargetID, tree.Into)
	case tree.Before, tree.After:
		return tree.Move(root, source, meta.TargetID, meta.Position)
	default:
		return root
	}
}
