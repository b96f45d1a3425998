package testutil

import (
	"testing"

	"github.com/vanderheijden86/condtree/pkg/model"
)

func TestCheckUniqueIDsFlagsDuplicates(t *testing.T) {
	root := GroupNode("root", model.OpAnd,
		Leaf("a", "x"),
		GroupNode("g", model.OpOr, Leaf("a", "y"), Leaf("b", "z")),
	)
	if err := CheckUniqueIDs(root); err == nil {
		t.Error("expected duplicate id error")
	}
}

func TestCheckGroupArityFlagsSingletons(t *testing.T) {
	root := GroupNode("root", model.OpAnd,
		Leaf("a", "x"),
		GroupNode("g", model.OpOr, Leaf("b", "y")),
	)
	if err := CheckGroupArity(root); err == nil {
		t.Error("expected arity error for interior singleton group")
	}

	// The root itself is exempt.
	lone := GroupNode("root", model.OpAnd, Leaf("a", "x"))
	if err := CheckGroupArity(lone); err != nil {
		t.Errorf("root with one child flagged: %v", err)
	}
}

func TestSprint(t *testing.T) {
	root := GroupNode("root", model.OpAnd,
		Leaf("1", "x"),
		GroupNode("g", model.OpOr, Leaf("2", "y"), Leaf("3", "z")),
	)
	if got := Sprint[string](root); got != "AND(1, OR(2, 3))" {
		t.Errorf("Sprint = %q", got)
	}
}
