// Package testutil provides condition tree fixtures, invariant checks, and
// random tree generators for tests. Check functions return errors so they
// can back both standard tests and rapid property tests; Assert wrappers
// adapt them to testing.TB.
package testutil

import (
	"fmt"
	"testing"

	"github.com/vanderheijden86/condtree/pkg/model"
)

// Leaf builds a string-payload condition leaf for literal test trees.
func Leaf(id, data string) *model.Condition[string] {
	return &model.Condition[string]{ID: id, Data: data}
}

// GroupNode builds a group for literal test trees.
func GroupNode(id string, op model.Operator, children ...model.Node[string]) *model.Group[string] {
	return &model.Group[string]{ID: id, Operator: op, Children: children}
}

// ThreeLeaves returns the canonical small fixture:
// Group(AND, [Leaf(1), Leaf(2), Leaf(3)]) with root id "root".
func ThreeLeaves() *model.Group[string] {
	return GroupNode("root", model.OpAnd,
		Leaf("1", "first"),
		Leaf("2", "second"),
		Leaf("3", "third"),
	)
}

// CheckUniqueIDs verifies that no id appears twice in the tree.
func CheckUniqueIDs[T any](root *model.Group[T]) error {
	seen := make(map[string]bool)
	var dup string
	model.Walk[T](root, func(n model.Node[T]) bool {
		id := n.NodeID()
		if seen[id] {
			dup = id
			return false
		}
		seen[id] = true
		return true
	})
	if dup != "" {
		return fmt.Errorf("duplicate node id %q", dup)
	}
	return nil
}

// CheckGroupArity verifies that every interior group has at least two
// children. The root is exempt: it may degenerate to one (or zero) children
// so the tree can always keep a Group at the top.
func CheckGroupArity[T any](root *model.Group[T]) error {
	var bad string
	var got int
	model.Walk[T](root, func(n model.Node[T]) bool {
		g, ok := n.(*model.Group[T])
		if !ok || g == root {
			return true
		}
		if len(g.Children) < 2 {
			bad, got = g.ID, len(g.Children)
			return false
		}
		return true
	})
	if bad != "" {
		return fmt.Errorf("group %q has %d children, want >= 2", bad, got)
	}
	return nil
}

// CheckInvariants runs every structural invariant check.
func CheckInvariants[T any](root *model.Group[T]) error {
	if err := CheckUniqueIDs(root); err != nil {
		return err
	}
	return CheckGroupArity(root)
}

// AssertInvariants fails the test when the tree violates a structural
// invariant.
func AssertInvariants[T any](t testing.TB, root *model.Group[T]) {
	t.Helper()
	if err := CheckInvariants(root); err != nil {
		t.Errorf("tree invariant violated: %v", err)
	}
}

// AssertEqualTrees fails the test when the two trees differ structurally.
// String payloads are compared by value.
func AssertEqualTrees(t testing.TB, want, got model.Node[string]) {
	t.Helper()
	if !model.Equal[string](want, got, func(x, y string) bool { return x == y }) {
		t.Errorf("trees differ:\nwant %s\ngot  %s", Sprint[string](want), Sprint[string](got))
	}
}

// Sprint renders a tree as a compact one-line string for failure messages,
// e.g. AND(1, OR(2, 3)).
func Sprint[T any](n model.Node[T]) string {
	switch node := n.(type) {
	case *model.Condition[T]:
		return node.ID
	case *model.Group[T]:
		out := string(node.Operator) + "("
		for i, child := range node.Children {
			if i > 0 {
				out += ", "
			}
			out += Sprint[T](child)
		}
		return out + ")"
	default:
		return "<nil>"
	}
}
