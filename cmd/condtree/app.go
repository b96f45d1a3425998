package main

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/condtree/internal/history"
	"github.com/vanderheijden86/condtree/internal/rule"
	"github.com/vanderheijden86/condtree/pkg/builder"
	"github.com/vanderheijden86/condtree/pkg/codec"
	"github.com/vanderheijden86/condtree/pkg/config"
	"github.com/vanderheijden86/condtree/pkg/model"
	"github.com/vanderheijden86/condtree/pkg/ui"
	"github.com/vanderheijden86/condtree/pkg/watcher"
)

// fileChangedMsg reports an outside edit to the session file.
type fileChangedMsg struct{}

// changeTracker survives the value copies bubbletea makes of the app model,
// so the builder's onChange can mark unsaved edits. justSaved suppresses the
// watcher event our own save produces.
type changeTracker struct {
	dirty     bool
	justSaved bool
}

// app is the top-level bubbletea model: the tree editor plus the overlays
// the engine does not own (payload edit form, usage guide).
type app struct {
	editor  *ui.Editor[rule.Clause]
	tracker *changeTracker
	cfg     config.Config
	file    string
	hist    *history.Store
	watch   *watcher.Watcher

	// Payload edit overlay. The engine treats payloads as opaque, so the
	// edit applies caller-side: clone the root, patch the leaf, push the
	// new value back in.
	form    *huh.Form
	editing *rule.Clause
	editID  string

	guide         string // rendered guide, "" when hidden
	status        string
	pendingDelete string // group id awaiting delete confirmation
	width         int
	height        int
}

func newApp(root *model.Group[rule.Clause], cfg config.Config, file string, hist *history.Store, watch *watcher.Watcher) app {
	tracker := &changeTracker{}
	b := builder.New(root, rule.NewLeaf, func(*model.Group[rule.Clause]) {
		tracker.dirty = true
	})
	b.SetGroupOperator(cfg.Editor.DefaultOperator)
	renderer := lipgloss.DefaultRenderer()
	switch cfg.UI.Theme {
	case "dark":
		renderer.SetHasDarkBackground(true)
	case "light":
		renderer.SetHasDarkBackground(false)
	}
	editor := ui.NewEditor(b, func(c *model.Condition[rule.Clause]) string {
		return c.Data.String()
	}, ui.DefaultTheme(renderer))
	editor.SetShowIDs(cfg.UI.ShowIDs)
	return app{
		editor:  editor,
		tracker: tracker,
		cfg:     cfg,
		file:    file,
		hist:    hist,
		watch:   watch,
	}
}

func (m app) Init() tea.Cmd {
	return m.waitForFileChange()
}

// waitForFileChange blocks on the watcher's change channel as a tea.Cmd.
func (m app) waitForFileChange() tea.Cmd {
	if m.watch == nil {
		return nil
	}
	return func() tea.Msg {
		<-m.watch.Changed()
		return fileChangedMsg{}
	}
}

func (m app) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case fileChangedMsg:
		if m.tracker.justSaved {
			m.tracker.justSaved = false
			return m, m.waitForFileChange()
		}
		m.status = "file changed on disk — r to reload"
		return m, m.waitForFileChange()

	case tea.KeyMsg:
		if m.form != nil {
			return m.updateForm(msg)
		}
		if m.guide != "" {
			m.guide = ""
			return m, nil
		}
		m.status = ""
		if key := msg.String(); key != "d" && key != "delete" {
			m.pendingDelete = ""
		}

		switch msg.String() {
		case "d", "delete":
			// Deleting a group takes its whole subtree with it; ask first
			// when configured to.
			if g, ok := m.editor.SelectedNode().(*model.Group[rule.Clause]); ok &&
				m.cfg.UI.ConfirmDelete && m.pendingDelete != g.ID {
				m.pendingDelete = g.ID
				m.status = fmt.Sprintf("delete group and its %d children? d again to confirm", len(g.Children))
				return m, nil
			}
			m.pendingDelete = ""
			return m, m.editor.Update(msg)
		case "q", "ctrl+c":
			return m, tea.Quit
		case "?":
			out, err := renderGuide()
			if err != nil {
				m.status = fmt.Sprintf("guide: %v", err)
				return m, nil
			}
			m.guide = out
			return m, nil
		case "enter":
			return m.openEditForm()
		case "y":
			m.yank()
			return m, nil
		case "s":
			m.save()
			return m, nil
		case "r":
			m.reload()
			return m, nil
		}
		return m, m.editor.Update(msg)
	}

	if m.form != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

// openEditForm starts the payload form for the selected condition.
func (m app) openEditForm() (tea.Model, tea.Cmd) {
	leaf, ok := m.editor.SelectedNode().(*model.Condition[rule.Clause])
	if !ok {
		m.status = "select a condition to edit"
		return m, nil
	}
	clause := leaf.Data
	m.editing = &clause
	m.editID = leaf.ID
	m.form = rule.EditForm(m.editing)
	return m, m.form.Init()
}

func (m app) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateCompleted:
		m.applyEdit()
		m.form = nil
		m.editing = nil
	case huh.StateAborted:
		m.form = nil
		m.editing = nil
	}
	return m, cmd
}

// applyEdit patches the edited leaf's payload into a fresh root and pushes
// it back into the builder.
func (m *app) applyEdit() {
	b := m.editor.Builder()
	clone, ok := model.Clone[rule.Clause](b.Root()).(*model.Group[rule.Clause])
	if !ok {
		return
	}
	patched := false
	model.Walk[rule.Clause](clone, func(n model.Node[rule.Clause]) bool {
		if leaf, isLeaf := n.(*model.Condition[rule.Clause]); isLeaf && leaf.ID == m.editID {
			leaf.Data = *m.editing
			patched = true
			return false
		}
		return true
	})
	if !patched {
		return
	}
	b.SetRoot(clone)
	m.tracker.dirty = true
	m.editor.Refresh()
	m.status = "condition updated"
}

// yank copies the tree as indented JSON to the system clipboard.
func (m *app) yank() {
	data, err := codec.MarshalIndent(m.editor.Builder().Root())
	if err != nil {
		m.status = fmt.Sprintf("yank: %v", err)
		return
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		m.status = fmt.Sprintf("yank: %v", err)
		return
	}
	m.status = "tree copied to clipboard"
}

// save writes the tree back to the session file.
func (m *app) save() {
	if m.file == "" {
		m.status = "no file — start with -file to save"
		return
	}
	data, err := codec.MarshalIndent(m.editor.Builder().Root())
	if err != nil {
		m.status = fmt.Sprintf("save: %v", err)
		return
	}
	m.tracker.justSaved = true
	if err := os.WriteFile(m.file, append(data, '\n'), 0o644); err != nil {
		m.tracker.justSaved = false
		m.status = fmt.Sprintf("save: %v", err)
		return
	}
	m.tracker.dirty = false
	m.status = "saved " + m.file
	m.snapshot(data)
}

// snapshot appends the saved tree to the history store, pruned to the
// retention limit.
func (m *app) snapshot(data []byte) {
	if m.hist == nil {
		return
	}
	count := model.Count[rule.Clause](m.editor.Builder().Root())
	if _, err := m.hist.Save(data, count); err != nil {
		m.status = fmt.Sprintf("snapshot: %v", err)
		return
	}
	if err := m.hist.Prune(history.DefaultKeep); err != nil {
		m.status = fmt.Sprintf("snapshot: %v", err)
	}
}

// reload replaces the in-memory tree with the file's current contents,
// discarding unsaved edits.
func (m *app) reload() {
	if m.file == "" {
		m.status = "no file to reload"
		return
	}
	data, err := os.ReadFile(m.file)
	if err != nil {
		m.status = fmt.Sprintf("reload: %v", err)
		return
	}
	root, err := codec.Unmarshal[rule.Clause](data)
	if err != nil {
		m.status = fmt.Sprintf("reload: %v", err)
		return
	}
	m.editor.Builder().SetRoot(root)
	m.editor.Refresh()
	m.tracker.dirty = false
	m.status = "reloaded " + m.file
}

func (m app) View() string {
	if m.form != nil {
		return m.form.View()
	}
	if m.guide != "" {
		return m.guide
	}

	footer := " q quit · space grab · b/a/i place · d delete · t toggle · n add · enter edit · y yank · s save · r reload · ? guide"
	if m.tracker.dirty {
		footer = " [+]" + footer
	}
	if m.status != "" {
		footer = " " + m.status + " ·" + footer
	}

	muted := lipgloss.DefaultRenderer().NewStyle().Faint(true)
	return m.editor.View() + "\n" + muted.Render(footer)
}
