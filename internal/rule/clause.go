// Package rule defines the demo leaf payload for the condtree binary: a
// minimal field/op/value comparison. The engine never sees this shape —
// it exists so the demo has something concrete to render and edit.
package rule

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/vanderheijden86/condtree/pkg/model"
)

// Clause is one field comparison, e.g. user.role == "admin".
type Clause struct {
	Field string `json:"field"`
	Op    string `json:"op"`
	Value string `json:"value"`
}

// Ops are the comparison operators the edit form offers.
var Ops = []string{"==", "!=", ">", ">=", "<", "<=", "contains", "in"}

// Default returns the payload a freshly inserted condition starts with.
func Default() Clause {
	return Clause{Field: "field", Op: "==", Value: ""}
}

// String renders the clause for a tree row.
func (c Clause) String() string {
	return fmt.Sprintf("%s %s %q", c.Field, c.Op, c.Value)
}

// NewLeaf is the leaf factory for the demo: a fresh uuid id and a default
// clause.
func NewLeaf() *model.Condition[Clause] {
	return model.NewCondition(Default())
}

// EditForm builds a form that edits the clause in place.
func EditForm(c *Clause) *huh.Form {
	ops := make([]huh.Option[string], len(Ops))
	for i, op := range Ops {
		ops[i] = huh.NewOption(op, op)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Field").
				Value(&c.Field),
			huh.NewSelect[string]().
				Title("Operator").
				Options(ops...).
				Value(&c.Op),
			huh.NewInput().
				Title("Value").
				Value(&c.Value),
		),
	).WithTheme(huh.ThemeDracula())
}
