// Package overlay draws one rendered block on top of another without
// clearing the screen underneath.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Anchor selects where the foreground lands.
type Anchor int

const (
	// Center places the foreground in the middle of the viewport.
	Center Anchor = iota
	// Bottom places the foreground horizontally centred, Margin rows above
	// the bottom edge.
	Bottom
)

// Viewport describes the area the background fills.
type Viewport struct {
	Width  int
	Height int
	Anchor Anchor
	Margin int
}

// Place renders fg over bg. Both may contain ANSI styling; the cells of bg
// to the left and right of fg are kept intact.
func Place(vp Viewport, fg, bg string) string {
	rows := strings.Split(bg, "\n")
	for len(rows) < vp.Height {
		rows = append(rows, strings.Repeat(" ", vp.Width))
	}

	fgRows := strings.Split(fg, "\n")
	x, y := origin(vp, lipgloss.Width(fg), len(fgRows))

	for i, fgRow := range fgRows {
		at := y + i
		if at >= len(rows) {
			break
		}
		rows[at] = splice(rows[at], fgRow, x)
	}
	return strings.Join(rows, "\n")
}

// splice replaces the cells of row starting at column x with ins.
func splice(row, ins string, x int) string {
	left := ansi.Truncate(row, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}

	end := x + ansi.StringWidth(ins)
	var right string
	if end < ansi.StringWidth(row) {
		right = ansi.TruncateLeft(row, end, "")
	}
	return left + ins + right
}

func origin(vp Viewport, w, h int) (x, y int) {
	x = (vp.Width - w) / 2
	switch vp.Anchor {
	case Bottom:
		y = vp.Height - h - vp.Margin
	default:
		y = (vp.Height - h) / 2
	}
	return max(x, 0), max(y, 0)
}
