package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme collects the colors and pre-computed styles the editor renders
// with. Styles are built once at startup instead of per-frame.
type Theme struct {
	Renderer *lipgloss.Renderer

	// Colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor

	// Styles
	Selected  lipgloss.Style // cursor row
	Header    lipgloss.Style // column header bar
	AndBadge  lipgloss.Style // AND operator badge
	OrBadge   lipgloss.Style // OR operator badge
	Dragging  lipgloss.Style // node currently being dragged
	MutedText lipgloss.Style // ids, branch glyphs, counts
	Status    lipgloss.Style // status line
}

// DefaultTheme returns the standard Dracula-inspired theme (adaptive).
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer:  r,
		Primary:   lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#BD93F9"},
		Secondary: lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"},
		Highlight: lipgloss.AdaptiveColor{Light: "#7A5600", Dark: "#F1FA8C"},
		Muted:     lipgloss.AdaptiveColor{Light: "#999999", Dark: "#6272A4"},
	}

	t.Selected = r.NewStyle().
		Foreground(t.Primary).
		Bold(true)
	t.Header = r.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Bold(true)
	t.AndBadge = r.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#0B6E4F", Dark: "#50FA7B"}).
		Bold(true)
	t.OrBadge = r.NewStyle().
		Foreground(t.Secondary).
		Bold(true)
	t.Dragging = r.NewStyle().
		Foreground(t.Highlight).
		Bold(true)
	t.MutedText = r.NewStyle().
		Foreground(t.Muted)
	t.Status = r.NewStyle().
		Foreground(t.Muted).
		Italic(true)

	return t
}
