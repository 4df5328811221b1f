// Package treeview renders the scrolling listing of a directory's subtree.
package treeview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/zjrosen/webwalker/internal/dirtree"
	"github.com/zjrosen/webwalker/internal/ui/styles"
)

// Row is one directory in the listing. Depth is relative to the listed
// directory, so its direct children have depth 0.
type Row struct {
	Name     string
	Depth    int
	Children int
}

// Model is a cursor over the rows of a subtree.
type Model struct {
	items      []Row
	showCounts bool
	cursor     int
	scrollTop int
	width     int
	height    int
}

// New returns an empty listing.
func New() Model {
	return Model{}
}

// SetItems replaces the listing. The cursor stays on the same name when it
// is still present.
func (m *Model) SetItems(items []Row) {
	prev := m.Selected()
	m.items = items
	m.cursor = 0
	for i, row := range items {
		if row.Name == prev {
			m.cursor = i
			break
		}
	}
	m.ensureCursorVisible()
}

// ShowCounts toggles the "(n)" subdirectory count after each name.
func (m *Model) ShowCounts(show bool) {
	m.showCounts = show
}

// SetSize sets the area available to View.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.ensureCursorVisible()
}

// Len returns the number of names listed.
func (m Model) Len() int {
	return len(m.items)
}

// Cursor returns the selected index.
func (m Model) Cursor() int {
	return m.cursor
}

// Selected returns the name under the cursor, or "".
func (m Model) Selected() string {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return ""
	}
	return m.items[m.cursor].Name
}

// MoveCursor moves the cursor by delta, clamped to the listing.
func (m *Model) MoveCursor(delta int) {
	m.cursor = max(min(m.cursor+delta, len(m.items)-1), 0)
	m.ensureCursorVisible()
}

// visibleRows is the number of names drawn. Two rows are kept for the scroll
// indicators once the listing overflows.
func (m Model) visibleRows() int {
	if m.height <= 0 || len(m.items) <= m.height {
		return max(len(m.items), 1)
	}
	return max(m.height-2, 1)
}

func (m *Model) ensureCursorVisible() {
	rows := m.visibleRows()
	if m.cursor >= m.scrollTop+rows {
		m.scrollTop = m.cursor - rows + 1
	}
	if m.cursor < m.scrollTop {
		m.scrollTop = m.cursor
	}
	m.scrollTop = max(min(m.scrollTop, len(m.items)-rows), 0)
}

// View renders the visible part of the listing.
func (m Model) View() string {
	if len(m.items) == 0 {
		return styles.MutedStyle.Render(dirtree.NoSubdirectoriesMarker)
	}

	rows := m.visibleRows()
	end := min(m.scrollTop+rows, len(m.items))

	var sb strings.Builder
	if m.scrollTop > 0 {
		sb.WriteString(styles.MutedStyle.Render(fmt.Sprintf("  ↑ %d more above", m.scrollTop)))
		sb.WriteString("\n")
	}
	for i := m.scrollTop; i < end; i++ {
		sb.WriteString(m.renderItem(i))
		if i < end-1 {
			sb.WriteString("\n")
		}
	}
	if below := len(m.items) - end; below > 0 {
		sb.WriteString("\n")
		sb.WriteString(styles.MutedStyle.Render(fmt.Sprintf("  ↓ %d more below", below)))
	}
	return sb.String()
}

func (m Model) renderItem(i int) string {
	row := m.items[i]
	name := row.Name
	suffix := ""
	if m.showCounts && row.Children > 0 {
		suffix = fmt.Sprintf(" (%d)", row.Children)
	}

	marker := " "
	if i == m.cursor {
		marker = styles.SelectionIndicatorStyle.Render(">")
	}
	prefix := marker + " " + strings.Repeat("  ", row.Depth) + "- "

	if m.width > 0 {
		avail := m.width - lipgloss.Width(prefix) - lipgloss.Width(suffix)
		if avail > 0 {
			name = truncate.StringWithTail(name, uint(avail), "…") //nolint:gosec // avail > 0
		}
	}
	return prefix + styles.DirectoryStyle.Render(name) + styles.MutedStyle.Render(suffix)
}
