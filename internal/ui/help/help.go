// Package help renders the usage guide shown from the navigator menu.
package help

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

//go:embed guide.md
var guide string

// Guide returns the usage guide as markdown.
func Guide() string {
	return guide
}

// noMargin drops glamour's document margin so the guide lines up with the
// rest of the navigator.
const noMargin = `{"document": {"margin": 0, "block_prefix": "", "block_suffix": ""}}`

// Render returns the guide styled for a terminal of the given width.
// style is a glamour standard style name such as "dark" or "light".
func Render(style string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithStylesFromJSONBytes([]byte(noMargin)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(guide)
	if err != nil {
		return "", fmt.Errorf("rendering guide: %w", err)
	}
	return out, nil
}

// Model is a scrollable view of the rendered guide.
type Model struct {
	style    string
	viewport viewport.Model
	width    int
	err      error
}

// New returns a help view using the given markdown style.
func New(style string) Model {
	if style == "" {
		style = "dark"
	}
	return Model{style: style, viewport: viewport.New(0, 0)}
}

// SetSize resizes the view and re-renders the guide when the width changes.
func (m Model) SetSize(width, height int) Model {
	m.viewport.Height = height
	if width == m.width {
		return m
	}
	m.width = width
	m.viewport.Width = width

	content, err := Render(m.style, max(width-2, 20))
	m.err = err
	if err != nil {
		content = guide
	}
	m.viewport.SetContent(content)
	return m
}

// Err returns the last rendering error. The raw markdown is shown instead.
func (m Model) Err() error {
	return m.err
}

// Update scrolls the guide.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the visible part of the guide.
func (m Model) View() string {
	return m.viewport.View()
}

// ScrollPercent reports how far the guide is scrolled, from 0 to 1.
func (m Model) ScrollPercent() float64 {
	return m.viewport.ScrollPercent()
}
