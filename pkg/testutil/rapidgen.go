package testutil

import (
	"fmt"

	"pgregory.net/rapid"

	"github.com/vanderheijden86/condtree/pkg/model"
)

// Tree generation bounds. Depth 3 with up to 4 children per group is deep
// enough to hit every collapse and cycle-guard path without slowing rapid
// down.
const (
	maxDepth    = 3
	maxChildren = 4
)

// DrawTree draws a random structurally valid condition tree: sequential ids
// n1, n2, ..., every interior group with 2 to 4 children, random operators.
func DrawTree(t *rapid.T) *model.Group[string] {
	serial := 0
	nextID := func() string {
		serial++
		return fmt.Sprintf("n%d", serial)
	}

	var draw func(depth int) model.Node[string]
	draw = func(depth int) model.Node[string] {
		if depth >= maxDepth || rapid.Bool().Draw(t, "leaf") {
			id := nextID()
			return &model.Condition[string]{ID: id, Data: "cond-" + id}
		}
		count := rapid.IntRange(2, maxChildren).Draw(t, "children")
		children := make([]model.Node[string], count)
		for i := range children {
			children[i] = draw(depth + 1)
		}
		return &model.Group[string]{ID: nextID(), Operator: drawOperator(t), Children: children}
	}

	count := rapid.IntRange(2, maxChildren).Draw(t, "rootChildren")
	children := make([]model.Node[string], count)
	for i := range children {
		children[i] = draw(1)
	}
	return &model.Group[string]{ID: nextID(), Operator: drawOperator(t), Children: children}
}

func drawOperator(t *rapid.T) model.Operator {
	if rapid.Bool().Draw(t, "or") {
		return model.OpOr
	}
	return model.OpAnd
}

// DrawNodeID draws the id of a random node in the tree, the root included.
func DrawNodeID(t *rapid.T, root *model.Group[string]) string {
	return rapid.SampledFrom(AllIDs(root)).Draw(t, "nodeID")
}

// AllIDs returns every node id in the tree in depth-first order.
func AllIDs[T any](root *model.Group[T]) []string {
	var ids []string
	model.Walk[T](root, func(n model.Node[T]) bool {
		ids = append(ids, n.NodeID())
		return true
	})
	return ids
}
