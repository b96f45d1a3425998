package main

import "github.com/charmbracelet/glamour"

const guideMarkdown = `# condtree

An interactive editor for boolean condition trees. Conditions are grouped
under AND/OR nodes; groups nest freely, and every structural edit keeps the
tree valid (no group is ever left with a single child).

## Moving nodes

Grab a node with **space**, move the cursor to a target row, then place it:

| Key | Effect |
|-----|--------|
| b   | drop **before** the target |
| a   | drop **after** the target |
| i   | drop **into** a group, or **onto** a condition |
| esc | cancel the grab |

Dropping a condition onto another condition creates a fresh AND group
holding both. Moving a group into its own subtree is rejected silently.

## Editing

| Key   | Effect |
|-------|--------|
| t     | toggle a group between AND and OR |
| n     | add a new condition to the group under the cursor |
| d     | delete the node under the cursor |
| enter | edit the selected condition's field, operator, and value |

Deleting the second-to-last child of a group dissolves the group; its last
child takes its place.

## Session

| Key | Effect |
|-----|--------|
| y   | copy the tree to the clipboard as JSON |
| s   | save the tree back to the -file path |
| r   | reload the tree from the -file path |
| q   | quit |

Every save also appends a snapshot to ` + "`<file>.history`" + `. List them
with ` + "`condtree -file tree.json -snapshots`" + ` and start from one with
` + "`-restore <id>`" + `. When another process rewrites the file, the editor
notices and offers to reload.
`

// renderGuide renders the usage guide for the current terminal.
func renderGuide() (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", err
	}
	return r.Render(guideMarkdown)
}
