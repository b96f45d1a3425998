// Package model defines the condition tree's node types: a tree is a Group
// of AND/OR-connected children, where each child is either another Group or
// a Condition leaf carrying an opaque, caller-defined payload.
//
// The union is sealed: Node is implemented only by *Condition and *Group, so
// consumers can switch over the two variants exhaustively. Nodes are treated
// as immutable by convention — the mutation engine in pkg/tree never edits a
// node in place, it rebuilds the path from the root to every touched node.
package model

import "github.com/google/uuid"

// Operator is the boolean connective of a Group.
type Operator string

const (
	OpAnd Operator = "AND"
	OpOr  Operator = "OR"
)

// Valid reports whether the operator is one of the two known connectives.
func (o Operator) Valid() bool {
	return o == OpAnd || o == OpOr
}

// Toggle returns the other connective. Unknown operators map to AND.
func (o Operator) Toggle() Operator {
	if o == OpAnd {
		return OpOr
	}
	return OpAnd
}

// Node is one vertex of a condition tree: either a *Condition leaf or a
// *Group. The marker method seals the union to this package.
type Node[T any] interface {
	// NodeID returns the node's tree-wide-unique id.
	NodeID() string

	node()
}

// Condition is a leaf node holding an opaque payload. The engine never
// inspects Data; rendering and semantics belong entirely to the caller.
type Condition[T any] struct {
	ID   string
	Data T
}

// Group is an interior node: a boolean connective over an ordered list of
// children. Engine operations keep every interior Group at two or more
// children (the collapse rule); only the root may degenerate below that.
type Group[T any] struct {
	ID       string
	Operator Operator
	Children []Node[T]
}

func (c *Condition[T]) NodeID() string { return c.ID }
func (c *Condition[T]) node()          {}

func (g *Group[T]) NodeID() string { return g.ID }
func (g *Group[T]) node()          {}

// NewID mints a fresh node id. Ids minted here and ids minted by caller
// leaf factories share one requirement: uniqueness across the whole tree.
func NewID() string {
	return uuid.NewString()
}

// NewCondition builds a leaf with a fresh id and the given payload.
func NewCondition[T any](data T) *Condition[T] {
	return &Condition[T]{ID: NewID(), Data: data}
}

// NewGroup builds a group with a fresh id over the given children.
func NewGroup[T any](op Operator, children ...Node[T]) *Group[T] {
	return &Group[T]{ID: NewID(), Operator: op, Children: children}
}
