// Package toaster shows short status notifications at the bottom of the
// navigator.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/webwalker/internal/ui/overlay"
	"github.com/zjrosen/webwalker/internal/ui/styles"
)

// DefaultDuration is how long a toast stays up when shown with Flash.
const DefaultDuration = 3 * time.Second

// Kind selects the icon and border colour of a toast.
type Kind int

const (
	Success Kind = iota
	Error
	Info
	Warn
)

func (k Kind) icon() string {
	switch k {
	case Error:
		return "✗"
	case Info:
		return "i"
	case Warn:
		return "!"
	default:
		return "✓"
	}
}

func (k Kind) color() lipgloss.TerminalColor {
	switch k {
	case Error:
		return styles.ToastBorderErrorColor
	case Info:
		return styles.ToastBorderInfoColor
	case Warn:
		return styles.ToastBorderWarnColor
	default:
		return styles.ToastBorderSuccessColor
	}
}

// Model holds the toast currently on screen, if any.
type Model struct {
	message string
	kind    Kind
	visible bool
	seq     int
}

// New returns an empty toaster.
func New() Model {
	return Model{}
}

// DismissMsg hides the toast it was scheduled for. A newer toast is not
// affected by the dismissal of an older one.
type DismissMsg struct {
	seq int
}

// Flash shows message and schedules its dismissal after d.
func (m Model) Flash(message string, kind Kind, d time.Duration) (Model, tea.Cmd) {
	m.message = message
	m.kind = kind
	m.visible = true
	m.seq++
	seq := m.seq
	return m, tea.Tick(d, func(time.Time) tea.Msg {
		return DismissMsg{seq: seq}
	})
}

// Update handles DismissMsg.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.seq == m.seq {
		m.visible = false
		m.message = ""
	}
	return m
}

// Visible reports whether a toast is showing.
func (m Model) Visible() bool {
	return m.visible
}

// Message returns the text of the visible toast.
func (m Model) Message() string {
	return m.message
}

// View renders the toast box, or "" when hidden.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}
	return lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.kind.color()).
		Render(m.kind.icon() + " " + m.message)
}

// Overlay draws the toast near the bottom of bg.
func (m Model) Overlay(bg string, width, height int) string {
	fg := m.View()
	if fg == "" {
		return bg
	}
	return overlay.Place(overlay.Viewport{
		Width:  width,
		Height: height,
		Anchor: overlay.Bottom,
		Margin: 1,
	}, fg, bg)
}
