package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

const (
	cornerTopLeft     = "╭"
	cornerTopRight    = "╮"
	cornerBottomLeft  = "╰"
	cornerBottomRight = "╯"
	edgeHorizontal    = "─"
	edgeVertical      = "│"
)

// Panel draws content inside a rounded border whose top edge carries title:
//
//	╭─ /admin ──────╮
//	│ content       │
//	╰───────────────╯
//
// width and height include the border. Content is clipped to fit.
func Panel(title, content string, width, height int, focused bool) string {
	var borderColor lipgloss.TerminalColor = BorderDefaultColor
	if focused {
		borderColor = BorderFocusColor
	}
	edge := lipgloss.NewStyle().Foreground(borderColor)

	inner := max(width-2, 1)
	rows := max(height-2, 1)

	lines := strings.Split(content, "\n")

	var b strings.Builder
	b.WriteString(panelTop(title, inner, edge))
	for i := 0; i < rows; i++ {
		var line string
		if i < len(lines) {
			line = ansi.Truncate(lines[i], inner, "")
		}
		if w := lipgloss.Width(line); w < inner {
			line += strings.Repeat(" ", inner-w)
		}
		b.WriteString("\n")
		b.WriteString(edge.Render(edgeVertical) + line + edge.Render(edgeVertical))
	}
	b.WriteString("\n")
	b.WriteString(edge.Render(cornerBottomLeft + strings.Repeat(edgeHorizontal, inner) + cornerBottomRight))
	return b.String()
}

func panelTop(title string, inner int, edge lipgloss.Style) string {
	// "─ " + title + " " needs at least four cells to be worth drawing.
	if title == "" || inner < 4 {
		return edge.Render(cornerTopLeft + strings.Repeat(edgeHorizontal, inner) + cornerTopRight)
	}

	title = truncate.StringWithTail(title, uint(inner-4), "…") //nolint:gosec // inner >= 4
	fill := max(inner-3-lipgloss.Width(title), 0)
	return edge.Render(cornerTopLeft+edgeHorizontal+" ") +
		DirectoryStyle.Render(title) +
		edge.Render(" "+strings.Repeat(edgeHorizontal, fill)+cornerTopRight)
}
