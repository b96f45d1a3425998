// Package ui is a terminal rendering surface for condition trees. It is the
// repo's reference consumer of the engine: it renders the tree as branch-
// prefixed rows, and maps a keyboard grab-and-place gesture onto the same
// drop metadata contract a pointer-based renderer would attach to its drop
// targets.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/condtree/pkg/builder"
	"github.com/vanderheijden86/condtree/pkg/dnd"
	"github.com/vanderheijden86/condtree/pkg/model"
	"github.com/vanderheijden86/condtree/pkg/tree"
)

// LeafRenderer renders a condition's payload to one line of text. The
// editor never looks inside the payload; presentation belongs to the
// caller.
type LeafRenderer[T any] func(*model.Condition[T]) string

// row is one visible line: a node plus the branch prefix leading to it.
type row[T any] struct {
	node   model.Node[T]
	parent *model.Group[T] // nil for the root row
	depth  int
	prefix string // unstyled branch glyphs
}

// Editor is an embeddable bubbletea component for editing one condition
// tree. Structural edits go through the builder; the cursor and scroll
// offset are the only view state.
type Editor[T any] struct {
	builder    *builder.Builder[T]
	renderLeaf LeafRenderer[T]
	theme      Theme
	keys       KeyMap

	rows    []row[T]
	cursor  int
	offset  int // first visible row
	width   int
	height  int
	status  string
	showIDs bool
}

// NewEditor wires an editor to a builder and a leaf renderer.
func NewEditor[T any](b *builder.Builder[T], renderLeaf LeafRenderer[T], theme Theme) *Editor[T] {
	e := &Editor[T]{
		builder:    b,
		renderLeaf: renderLeaf,
		theme:      theme,
		keys:       DefaultKeyMap(),
	}
	e.Refresh()
	return e
}

// Builder exposes the underlying builder, e.g. for payload-level edits the
// engine does not own.
func (e *Editor[T]) Builder() *builder.Builder[T] {
	return e.builder
}

// SetSize updates the available dimensions.
func (e *Editor[T]) SetSize(width, height int) {
	e.width = width
	e.height = height
	e.ensureCursorVisible()
}

// SetKeyMap replaces the key bindings.
func (e *Editor[T]) SetKeyMap(keys KeyMap) {
	e.keys = keys
}

// SetShowIDs toggles rendering node ids next to rows.
func (e *Editor[T]) SetShowIDs(show bool) {
	e.showIDs = show
}

// Status returns the transient status message from the last action.
func (e *Editor[T]) Status() string {
	return e.status
}

// SelectedNode returns the node under the cursor, or nil for an empty tree.
func (e *Editor[T]) SelectedNode() model.Node[T] {
	if e.cursor >= 0 && e.cursor < len(e.rows) {
		return e.rows[e.cursor].node
	}
	return nil
}

// SelectByID moves the cursor to the row holding the given node, if it is
// still in the tree.
func (e *Editor[T]) SelectByID(id string) {
	for i, r := range e.rows {
		if r.node.NodeID() == id {
			e.cursor = i
			e.ensureCursorVisible()
			return
		}
	}
}

// Refresh rebuilds the visible rows from the builder's current root. Call
// it after any edit made outside Update (payload edits, SetRoot).
func (e *Editor[T]) Refresh() {
	selected := ""
	if n := e.SelectedNode(); n != nil {
		selected = n.NodeID()
	}
	e.rows = flatten(e.builder.Root())
	if e.cursor >= len(e.rows) {
		e.cursor = len(e.rows) - 1
	}
	if e.cursor < 0 {
		e.cursor = 0
	}
	if selected != "" {
		e.SelectByID(selected)
	}
	e.ensureCursorVisible()
}

// flatten projects the tree into the visible row list, pre-computing the
// branch prefix for each row.
func flatten[T any](root *model.Group[T]) []row[T] {
	if root == nil {
		return nil
	}
	rows := []row[T]{{node: root}}
	var walk func(g *model.Group[T], prefix string, depth int)
	walk = func(g *model.Group[T], prefix string, depth int) {
		for i, child := range g.Children {
			branch, cont := "├── ", "│   "
			if i == len(g.Children)-1 {
				branch, cont = "└── ", "    "
			}
			rows = append(rows, row[T]{node: child, parent: g, depth: depth, prefix: prefix + branch})
			if sub, ok := child.(*model.Group[T]); ok {
				walk(sub, prefix+cont, depth+1)
			}
		}
	}
	walk(root, "", 1)
	return rows
}

// Update handles one message. Designed for embedding: the owning model
// routes messages here while the editor has focus.
func (e *Editor[T]) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	e.status = ""

	switch {
	case key.Matches(keyMsg, e.keys.Up):
		if e.cursor > 0 {
			e.cursor--
			e.ensureCursorVisible()
		}
	case key.Matches(keyMsg, e.keys.Down):
		if e.cursor < len(e.rows)-1 {
			e.cursor++
			e.ensureCursorVisible()
		}
	case key.Matches(keyMsg, e.keys.Grab):
		e.grab()
	case key.Matches(keyMsg, e.keys.Cancel):
		if e.builder.Dragging() {
			e.builder.CancelDrag()
			e.status = "grab cancelled"
		}
	case key.Matches(keyMsg, e.keys.DropBefore):
		e.drop(tree.Before)
	case key.Matches(keyMsg, e.keys.DropAfter):
		e.drop(tree.After)
	case key.Matches(keyMsg, e.keys.DropInto):
		e.drop(tree.Into)
	case key.Matches(keyMsg, e.keys.Delete):
		e.deleteSelected()
	case key.Matches(keyMsg, e.keys.Toggle):
		e.toggleSelected()
	case key.Matches(keyMsg, e.keys.Add):
		e.addToSelected()
	}
	return nil
}

func (e *Editor[T]) grab() {
	n := e.SelectedNode()
	if n == nil {
		return
	}
	if e.builder.IsDraggingID(n.NodeID()) {
		e.builder.CancelDrag()
		e.status = "grab cancelled"
		return
	}
	if n.NodeID() == e.builder.Root().ID {
		e.status = "cannot grab the root"
		return
	}
	e.builder.StartDrag(n.NodeID())
	e.status = "grabbed — move to a target, then b/a/i to place"
}

// drop places the grabbed node relative to the cursor row, going through
// the same DropMeta triple a pointer-based drop target would carry.
func (e *Editor[T]) drop(pos tree.Position) {
	if !e.builder.Dragging() {
		return
	}
	target := e.SelectedNode()
	if target == nil {
		return
	}
	kind := dnd.KindCondition
	if _, ok := target.(*model.Group[T]); ok {
		kind = dnd.KindGroup
	}
	meta := &dnd.DropMeta{TargetID: target.NodeID(), Position: pos, Kind: kind}
	if e.builder.DropOn(meta) {
		e.Refresh()
		e.status = "moved"
		return
	}
	e.status = "drop had no effect"
}

func (e *Editor[T]) deleteSelected() {
	n := e.SelectedNode()
	if n == nil {
		return
	}
	if e.builder.DeleteNode(n.NodeID()) {
		e.Refresh()
		e.status = "deleted"
		return
	}
	e.status = "delete had no effect"
}

func (e *Editor[T]) toggleSelected() {
	n := e.SelectedNode()
	if n == nil {
		return
	}
	// Toggling a leaf row toggles its parent group; that is what the
	// gesture means visually.
	id := n.NodeID()
	if _, ok := n.(*model.Group[T]); !ok {
		if e.rows[e.cursor].parent == nil {
			return
		}
		id = e.rows[e.cursor].parent.ID
	}
	if e.builder.ToggleGroupOperator(id) {
		e.Refresh()
		e.status = "operator toggled"
	}
}

func (e *Editor[T]) addToSelected() {
	n := e.SelectedNode()
	if n == nil {
		return
	}
	// Adding on a leaf row appends to its parent group.
	id := n.NodeID()
	if _, ok := n.(*model.Group[T]); !ok {
		if e.rows[e.cursor].parent == nil {
			return
		}
		id = e.rows[e.cursor].parent.ID
	}
	if e.builder.AddConditionToGroup(id) {
		e.Refresh()
		e.status = "condition added"
		return
	}
	e.status = "add had no effect"
}

// visibleRange returns the window of rows to render.
func (e *Editor[T]) visibleRange() (int, int) {
	max := e.maxVisible()
	start := e.offset
	if start > len(e.rows) {
		start = len(e.rows)
	}
	end := start + max
	if end > len(e.rows) {
		end = len(e.rows)
	}
	return start, end
}

// maxVisible is the row budget after the header and status lines.
func (e *Editor[T]) maxVisible() int {
	if e.height <= 0 {
		return len(e.rows)
	}
	max := e.height - 2
	if max < 1 {
		max = 1
	}
	return max
}

func (e *Editor[T]) ensureCursorVisible() {
	max := e.maxVisible()
	if e.cursor < e.offset {
		e.offset = e.cursor
	}
	if e.cursor >= e.offset+max {
		e.offset = e.cursor - max + 1
	}
	if e.offset < 0 {
		e.offset = 0
	}
}

// View renders the header, the visible window of rows, and a status line.
func (e *Editor[T]) View() string {
	width := e.width
	if width <= 0 {
		width = 80
	}

	var sb strings.Builder
	sb.WriteString(e.theme.Header.Width(width).Render("  CONDITION TREE"))
	sb.WriteString("\n")

	start, end := e.visibleRange()
	for i := start; i < end; i++ {
		sb.WriteString(e.renderRow(e.rows[i], i == e.cursor, width))
		sb.WriteString("\n")
	}

	status := e.status
	if e.builder.Dragging() {
		if status != "" {
			status += "  ·  "
		}
		status += "dragging " + shortID(e.activeID())
	}
	sb.WriteString(e.theme.Status.Render(" " + status))
	return sb.String()
}

// shortID truncates long (uuid-shaped) ids for the status line.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (e *Editor[T]) activeID() string {
	for _, r := range e.rows {
		if e.builder.IsDraggingID(r.node.NodeID()) {
			return r.node.NodeID()
		}
	}
	return ""
}

// renderRow renders one line: branch prefix, operator badge or leaf text,
// plus drag/selection decoration.
func (e *Editor[T]) renderRow(r row[T], selected bool, width int) string {
	var sb strings.Builder
	sb.WriteString(e.theme.MutedText.Render(r.prefix))

	switch node := r.node.(type) {
	case *model.Group[T]:
		badge := e.theme.AndBadge
		if node.Operator == model.OpOr {
			badge = e.theme.OrBadge
		}
		sb.WriteString(badge.Render(string(node.Operator)))
		sb.WriteString(e.theme.MutedText.Render(fmt.Sprintf(" (%d)", len(node.Children))))
	case *model.Condition[T]:
		text := e.renderLeaf(node)
		budget := width - runewidth.StringWidth(r.prefix) - 4
		if budget > 4 {
			text = runewidth.Truncate(text, budget, "…")
		}
		if selected {
			sb.WriteString(e.theme.Selected.Render(text))
		} else {
			sb.WriteString(text)
		}
	}

	if e.showIDs {
		sb.WriteString(e.theme.MutedText.Render(" [" + shortID(r.node.NodeID()) + "]"))
	}

	if e.builder.IsDraggingID(r.node.NodeID()) {
		sb.WriteString(e.theme.Dragging.Render("  ◆"))
	}

	line := sb.String()
	if selected {
		return e.theme.Selected.Render("▸ ") + line
	}
	return "  " + line
}
