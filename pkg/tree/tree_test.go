package tree

import (
	"testing"

	"github.com/vanderheijden86/condtree/pkg/model"
	"github.com/vanderheijden86/condtree/pkg/testutil"
)

func leaf(id string) *model.Condition[string] {
	return testutil.Leaf(id, "cond-"+id)
}

func group(id string, op model.Operator, children ...model.Node[string]) *model.Group[string] {
	return testutil.GroupNode(id, op, children...)
}

func flatThree() *model.Group[string] {
	return group("root", model.OpAnd, leaf("1"), leaf("2"), leaf("3"))
}

// ── Find ──

func TestFind(t *testing.T) {
	root := group("root", model.OpAnd,
		leaf("a"),
		group("g", model.OpOr, leaf("b"), leaf("c")),
	)

	n, ok := Find(root, "b")
	if !ok {
		t.Fatal("expected to find b")
	}
	if n.NodeID() != "b" {
		t.Errorf("found %q, want b", n.NodeID())
	}

	if n, ok := Find(root, "root"); !ok || n.NodeID() != "root" {
		t.Error("expected to find the root by its own id")
	}

	if _, ok := Find(root, "missing"); ok {
		t.Error("expected missing id to not be found")
	}
}

// ── InsertCondition ──

// TestInsertConditionAppends verifies the new leaf lands at the end of the
// target group's children.
func TestInsertConditionAppends(t *testing.T) {
	root := flatThree()
	got := InsertCondition(root, "root", func() *model.Condition[string] {
		return leaf("new")
	})

	if got == root {
		t.Fatal("expected a new root")
	}
	if len(got.Children) != 4 {
		t.Fatalf("root has %d children, want 4", len(got.Children))
	}
	if got.Children[3].NodeID() != "new" {
		t.Errorf("last child is %q, want new", got.Children[3].NodeID())
	}
	testutil.AssertInvariants(t, got)

	// The original tree is untouched.
	if len(root.Children) != 3 {
		t.Error("insert mutated the input tree")
	}
}

func TestInsertConditionIntoNestedGroup(t *testing.T) {
	root := group("root", model.OpAnd,
		leaf("a"),
		group("g", model.OpOr, leaf("b"), leaf("c")),
	)
	got := InsertCondition(root, "g", func() *model.Condition[string] {
		return leaf("new")
	})

	if got == root {
		t.Fatal("expected a new root")
	}
	inner := got.Children[1].(*model.Group[string])
	if len(inner.Children) != 3 || inner.Children[2].NodeID() != "new" {
		t.Errorf("inner group children = %s, want b, c, new", testutil.Sprint[string](inner))
	}
	// The untouched sibling subtree is shared, not copied.
	if got.Children[0] != root.Children[0] {
		t.Error("untouched leaf was copied instead of shared")
	}
}

// TestInsertConditionNoOps verifies unknown ids and leaf targets return the
// same root pointer.
func TestInsertConditionNoOps(t *testing.T) {
	root := flatThree()
	factory := func() *model.Condition[string] { return leaf("new") }

	if got := InsertCondition(root, "missing", factory); got != root {
		t.Error("unknown group id should be a no-op")
	}
	if got := InsertCondition(root, "1", factory); got != root {
		t.Error("inserting into a leaf should be a no-op")
	}
	if got := InsertCondition(root, "root", nil); got != root {
		t.Error("nil factory should be a no-op")
	}
}

// ── Delete ──

func TestDeleteLeaf(t *testing.T) {
	root := flatThree()
	got := Delete(root, "2")

	if got == root {
		t.Fatal("expected a new root")
	}
	testutil.AssertEqualTrees(t,
		group("root", model.OpAnd, leaf("1"), leaf("3")),
		got,
	)
	testutil.AssertInvariants(t, got)
}

// TestDeleteCollapsesGroup verifies the collapse rule: removing one of a
// two-child group's children dissolves the group, promoting the survivor.
func TestDeleteCollapsesGroup(t *testing.T) {
	root := group("root", model.OpAnd,
		leaf("a"),
		group("g", model.OpOr, leaf("x"), leaf("y")),
	)
	got := Delete(root, "x")

	testutil.AssertEqualTrees(t,
		group("root", model.OpAnd, leaf("a"), leaf("y")),
		got,
	)
	if _, ok := Find(got, "g"); ok {
		t.Error("singleton group g should have dissolved")
	}
}

// TestDeleteCollapsesNestedGroupSurvivorGroup verifies the promoted
// survivor keeps its own kind: a group child replaces its dissolved parent
// as a group.
func TestDeleteCollapsesNestedGroupSurvivorGroup(t *testing.T) {
	root := group("root", model.OpAnd,
		leaf("a"),
		group("outer", model.OpOr,
			leaf("x"),
			group("inner", model.OpAnd, leaf("p"), leaf("q")),
		),
	)
	got := Delete(root, "x")

	testutil.AssertEqualTrees(t,
		group("root", model.OpAnd,
			leaf("a"),
			group("inner", model.OpAnd, leaf("p"), leaf("q")),
		),
		got,
	)
}

// TestDeleteRootCollapseToGroup verifies the root hands its role to a
// surviving group child.
func TestDeleteRootCollapseToGroup(t *testing.T) {
	root := group("root", model.OpAnd,
		leaf("a"),
		group("g", model.OpOr, leaf("x"), leaf("y")),
	)
	got := Delete(root, "a")

	testutil.AssertEqualTrees(t,
		group("g", model.OpOr, leaf("x"), leaf("y")),
		got,
	)
}

// TestDeleteRootCollapseToLeafKeepsGroupRoot verifies the root stays a
// group even when only a single condition survives.
func TestDeleteRootCollapseToLeafKeepsGroupRoot(t *testing.T) {
	root := group("root", model.OpAnd, leaf("a"), leaf("b"))
	got := Delete(root, "a")

	testutil.AssertEqualTrees(t,
		group("root", model.OpAnd, leaf("b")),
		got,
	)
}

func TestDeleteNoOps(t *testing.T) {
	root := flatThree()
	if got := Delete(root, "missing"); got != root {
		t.Error("unknown id should be a no-op")
	}
	if got := Delete(root, "root"); got != root {
		t.Error("deleting the root itself should be a no-op")
	}
}

// ── Move ──

// TestMoveAfterReorder covers reordering within one group:
// moving leaf 1 after leaf 3 in a flat three-leaf root.
func TestMoveAfterReorder(t *testing.T) {
	root := flatThree()
	got := Move(root, "1", "3", After)

	testutil.AssertEqualTrees(t,
		group("root", model.OpAnd, leaf("2"), leaf("3"), leaf("1")),
		got,
	)
}

func TestMoveBeforeReorder(t *testing.T) {
	root := flatThree()
	got := Move(root, "3", "1", Before)

	testutil.AssertEqualTrees(t,
		group("root", model.OpAnd, leaf("3"), leaf("1"), leaf("2")),
		got,
	)
}

func TestMoveIntoGroupAppends(t *testing.T) {
	root := group("root", model.OpAnd,
		leaf("a"),
		leaf("b"),
		group("g", model.OpOr, leaf("x"), leaf("y")),
	)
	got := Move(root, "a", "g", Into)

	testutil.AssertEqualTrees(t,
		group("root", model.OpAnd,
			leaf("b"),
			group("g", model.OpOr, leaf("x"), leaf("y"), leaf("a")),
		),
		got,
	)
	testutil.AssertInvariants(t, got)
}

// TestMoveDetachCollapsesOldParent verifies the collapse rule fires on the
// source's old group during a move.
func TestMoveDetachCollapsesOldParent(t *testing.T) {
	root := group("root", model.OpAnd,
		leaf("a"),
		group("g", model.OpOr, leaf("x"), leaf("y")),
	)
	got := Move(root, "x", "a", Before)

	testutil.AssertEqualTrees(t,
		group("root", model.OpAnd, leaf("x"), leaf("a"), leaf("y")),
		got,
	)
	if _, ok := Find(got, "g"); ok {
		t.Error("source's old group should have dissolved")
	}
}

// TestMoveCycleGuard verifies a group can never move into its own subtree.
func TestMoveCycleGuard(t *testing.T) {
	root := group("root", model.OpAnd,
		leaf("a"),
		group("g", model.OpOr,
			leaf("x"),
			group("inner", model.OpAnd, leaf("p"), leaf("q")),
		),
	)

	if got := Move(root, "g", "inner", Into); got != root {
		t.Error("moving a group into its own descendant should be a no-op")
	}
	if got := Move(root, "g", "p", After); got != root {
		t.Error("moving a group beside its own descendant should be a no-op")
	}
	if got := Move(root, "g", "g", Before); got != root {
		t.Error("moving a node relative to itself should be a no-op")
	}
}

// TestMoveStructuralNoOps verifies moves that would not change the tree
// return the same root pointer.
func TestMoveStructuralNoOps(t *testing.T) {
	root := group("root", model.OpAnd,
		leaf("a"),
		leaf("b"),
		group("g", model.OpOr, leaf("x"), leaf("y")),
	)

	if got := Move(root, "a", "b", Before); got != root {
		t.Error("a is already immediately before b")
	}
	if got := Move(root, "b", "a", After); got != root {
		t.Error("b is already immediately after a")
	}
	if got := Move(root, "y", "g", Into); got != root {
		t.Error("y is already the last child of g")
	}
}

func TestMoveNoOps(t *testing.T) {
	root := flatThree()

	if got := Move(root, "missing", "1", After); got != root {
		t.Error("unknown source should be a no-op")
	}
	if got := Move(root, "1", "missing", After); got != root {
		t.Error("unknown target should be a no-op")
	}
	if got := Move(root, "root", "1", Before); got != root {
		t.Error("the root cannot be repositioned")
	}
	if got := Move(root, "1", "root", Before); got != root {
		t.Error("nothing can be a sibling of the root")
	}
	if got := Move(root, "1", "2", Position("inside")); got != root {
		t.Error("unknown position should be a no-op")
	}
	if got := Move(root, "1", "2", Into); got != root {
		t.Error("into a leaf should be a no-op at the engine level")
	}
}

// TestMoveRootCollapseAfterInsert verifies the post-move root collapse:
// moving the root's only other child into its sibling group hands the root
// role to that group.
func TestMoveRootCollapseAfterInsert(t *testing.T) {
	root := group("root", model.OpAnd,
		leaf("a"),
		group("g", model.OpOr, leaf("x"), leaf("y")),
	)
	got := Move(root, "a", "g", Into)

	testutil.AssertEqualTrees(t,
		group("g", model.OpOr, leaf("x"), leaf("y"), leaf("a")),
		got,
	)
}

// ── GroupPair ──

// TestGroupPairSiblings covers the flat-siblings case:
// grouping leaves 2 and 3 under a fresh OR group.
func TestGroupPairSiblings(t *testing.T) {
	root := flatThree()
	before := model.Count[string](root)
	got := GroupPair(root, "2", "3", model.OpOr)

	if got == root {
		t.Fatal("expected a new root")
	}
	if model.Count[string](got) != before+1 {
		t.Errorf("node count = %d, want %d (exactly one new node)", model.Count[string](got), before+1)
	}

	if len(got.Children) != 2 {
		t.Fatalf("root has %d children, want 2", len(got.Children))
	}
	if got.Children[0].NodeID() != "1" {
		t.Errorf("first root child = %q, want 1", got.Children[0].NodeID())
	}
	pair, ok := got.Children[1].(*model.Group[string])
	if !ok {
		t.Fatalf("former position of 2 holds %s, want a group", testutil.Sprint[string](got.Children[1]))
	}
	if pair.Operator != model.OpOr {
		t.Errorf("new group operator = %q, want OR", pair.Operator)
	}
	if len(pair.Children) != 2 || pair.Children[0].NodeID() != "2" || pair.Children[1].NodeID() != "3" {
		t.Errorf("new group children = %s, want [2, 3]", testutil.Sprint[string](pair))
	}
	if pair.ID == "root" || pair.ID == "2" || pair.ID == "3" {
		t.Errorf("new group reused an existing id %q", pair.ID)
	}
	testutil.AssertInvariants(t, got)
}

// TestGroupPairAcrossGroups verifies B detaches from a nested position,
// collapse applied, before joining A.
func TestGroupPairAcrossGroups(t *testing.T) {
	root := group("root", model.OpAnd,
		leaf("a"),
		group("g", model.OpOr, leaf("x"), leaf("y")),
	)
	got := GroupPair(root, "a", "x", model.OpAnd)

	if got == root {
		t.Fatal("expected a new root")
	}
	// g collapsed to y; a was replaced by AND(a, x).
	if len(got.Children) != 2 {
		t.Fatalf("root has %d children, want 2: %s", len(got.Children), testutil.Sprint[string](got))
	}
	pair := got.Children[0].(*model.Group[string])
	if pair.Children[0].NodeID() != "a" || pair.Children[1].NodeID() != "x" {
		t.Errorf("pair children = %s, want [a, x]", testutil.Sprint[string](pair))
	}
	if got.Children[1].NodeID() != "y" {
		t.Errorf("second root child = %q, want y (g collapsed)", got.Children[1].NodeID())
	}
	testutil.AssertInvariants(t, got)
}

// TestGroupPairRootCollapse verifies grouping the root's only two children
// promotes the new pair group to the root.
func TestGroupPairRootCollapse(t *testing.T) {
	root := group("root", model.OpAnd, leaf("a"), leaf("b"))
	got := GroupPair(root, "a", "b", model.OpOr)

	if got == root {
		t.Fatal("expected a new root")
	}
	if got.Operator != model.OpOr || len(got.Children) != 2 {
		t.Fatalf("root = %s, want OR(a, b)", testutil.Sprint[string](got))
	}
	if got.Children[0].NodeID() != "a" || got.Children[1].NodeID() != "b" {
		t.Errorf("root children = %s, want [a, b]", testutil.Sprint[string](got))
	}
}

// TestGroupPairRootWithOwnChild verifies grouping the root with one of its
// own children. Detaching the child leaves the root a singleton, which
// dissolves into its survivor before the pair is built, and the pair becomes
// the new root.
func TestGroupPairRootWithOwnChild(t *testing.T) {
	root := group("root", model.OpOr, leaf("a"), leaf("b"))
	before := model.Count[string](root)
	got := GroupPair(root, "root", "a", model.OpAnd)

	if got == root {
		t.Fatal("expected a new root")
	}
	if got.Operator != model.OpAnd || len(got.Children) != 2 {
		t.Fatalf("root = %s, want AND(b, a)", testutil.Sprint[string](got))
	}
	if got.Children[0].NodeID() != "b" || got.Children[1].NodeID() != "a" {
		t.Errorf("root children = %s, want [b, a]", testutil.Sprint[string](got))
	}
	if model.Count[string](got) != before {
		t.Errorf("node count = %d, want %d (old root dissolved, one group born)",
			model.Count[string](got), before)
	}
	testutil.AssertInvariants(t, got)
}

// TestGroupPairRootKeepsWrapper verifies the old root stays intact as the
// pair's first child when it still has two children after the detach.
func TestGroupPairRootKeepsWrapper(t *testing.T) {
	root := flatThree()
	got := GroupPair(root, "root", "3", model.OpOr)

	if got == root {
		t.Fatal("expected a new root")
	}
	if got.Operator != model.OpOr || len(got.Children) != 2 {
		t.Fatalf("root = %s, want OR(root(1, 2), 3)", testutil.Sprint[string](got))
	}
	inner, ok := got.Children[0].(*model.Group[string])
	if !ok || inner.ID != "root" || len(inner.Children) != 2 {
		t.Fatalf("first child = %s, want the old root holding [1, 2]", testutil.Sprint[string](got.Children[0]))
	}
	if got.Children[1].NodeID() != "3" {
		t.Errorf("second child = %q, want 3", got.Children[1].NodeID())
	}
	testutil.AssertInvariants(t, got)
}

func TestGroupPairNoOps(t *testing.T) {
	root := group("root", model.OpAnd,
		leaf("a"),
		group("g", model.OpOr, leaf("x"), leaf("y")),
	)

	if got := GroupPair(root, "a", "a", model.OpAnd); got != root {
		t.Error("grouping a node with itself should be a no-op")
	}
	if got := GroupPair(root, "missing", "a", model.OpAnd); got != root {
		t.Error("unknown A should be a no-op")
	}
	if got := GroupPair(root, "a", "missing", model.OpAnd); got != root {
		t.Error("unknown B should be a no-op")
	}
	if got := GroupPair(root, "x", "g", model.OpAnd); got != root {
		t.Error("A inside B's subtree should be a no-op")
	}
	if got := GroupPair(root, "a", "x", model.Operator("XOR")); got != root {
		t.Error("unknown operator should be a no-op")
	}
	// Detaching x collapses g away, so g can no longer anchor the pair.
	if got := GroupPair(root, "g", "x", model.OpAnd); got != root {
		t.Error("grouping a group with its own sole-sibling child should be a no-op")
	}
	// A root emptied by the detach has nothing left to pair with.
	solo := group("solo", model.OpAnd, leaf("only"))
	if got := GroupPair(solo, "solo", "only", model.OpAnd); got != solo {
		t.Error("grouping a root with its only child should be a no-op")
	}
}

// ── ToggleOperator ──

func TestToggleOperator(t *testing.T) {
	root := group("root", model.OpAnd,
		leaf("a"),
		group("g", model.OpOr, leaf("x"), leaf("y")),
	)

	got := ToggleOperator(root, "g")
	if got == root {
		t.Fatal("expected a new root")
	}
	if op := got.Children[1].(*model.Group[string]).Operator; op != model.OpAnd {
		t.Errorf("toggled operator = %q, want AND", op)
	}
	// The input tree is untouched.
	if root.Children[1].(*model.Group[string]).Operator != model.OpOr {
		t.Error("toggle mutated the input tree")
	}

	// Involution: toggling twice restores the original structure.
	twice := ToggleOperator(got, "g")
	testutil.AssertEqualTrees(t, root, twice)
}

func TestToggleOperatorRoot(t *testing.T) {
	root := flatThree()
	got := ToggleOperator(root, "root")
	if got.Operator != model.OpOr {
		t.Errorf("root operator = %q, want OR", got.Operator)
	}
}

func TestToggleOperatorNoOps(t *testing.T) {
	root := flatThree()
	if got := ToggleOperator(root, "missing"); got != root {
		t.Error("unknown id should be a no-op")
	}
	if got := ToggleOperator(root, "1"); got != root {
		t.Error("toggling a leaf should be a no-op")
	}
}

// ── End-to-end edit sequence ──

// TestEditSequence runs the full concrete scenario: reorder, group, then a
// delete that collapses the new group.
func TestEditSequence(t *testing.T) {
	root := flatThree()

	step1 := Move(root, "1", "3", After)
	testutil.AssertEqualTrees(t,
		group("root", model.OpAnd, leaf("2"), leaf("3"), leaf("1")),
		step1,
	)

	step2 := GroupPair(step1, "2", "3", model.OpOr)
	if len(step2.Children) != 2 {
		t.Fatalf("after grouping, root has %d children, want 2", len(step2.Children))
	}
	pair := step2.Children[0].(*model.Group[string])
	if pair.Operator != model.OpOr || pair.Children[0].NodeID() != "2" || pair.Children[1].NodeID() != "3" {
		t.Fatalf("pair = %s, want OR(2, 3)", testutil.Sprint[string](pair))
	}
	if step2.Children[1].NodeID() != "1" {
		t.Fatalf("root's second child = %q, want 1", step2.Children[1].NodeID())
	}

	step3 := Delete(step2, "2")
	testutil.AssertEqualTrees(t,
		group("root", model.OpAnd, leaf("3"), leaf("1")),
		step3,
	)
	testutil.AssertInvariants(t, step3)
}
