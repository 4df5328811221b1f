package toaster

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestNew_Hidden(t *testing.T) {
	m := New()

	assert.False(t, m.Visible())
	assert.Empty(t, m.View())
}

func TestFlash_ShowsAndSchedules(t *testing.T) {
	m, cmd := New().Flash("saved data/outputfile.txt", Success, time.Millisecond)

	require.NotNil(t, cmd)
	assert.True(t, m.Visible())
	assert.Contains(t, ansi.Strip(m.View()), "✓ saved data/outputfile.txt")

	m = m.Update(cmd())
	assert.False(t, m.Visible())
	assert.Empty(t, m.Message())
}

func TestStaleDismissKeepsNewerToast(t *testing.T) {
	m, first := New().Flash("first", Info, time.Millisecond)
	m, _ = m.Flash("second", Error, time.Hour)

	m = m.Update(first())

	assert.True(t, m.Visible())
	assert.Equal(t, "second", m.Message())
	assert.Contains(t, ansi.Strip(m.View()), "✗ second")
}

func TestKindIcons(t *testing.T) {
	tests := []struct {
		kind Kind
		icon string
	}{
		{Success, "✓"},
		{Error, "✗"},
		{Info, "i"},
		{Warn, "!"},
	}
	for _, tt := range tests {
		m, _ := New().Flash("msg", tt.kind, time.Second)
		assert.Contains(t, ansi.Strip(m.View()), tt.icon+" msg")
	}
}

func TestOverlay(t *testing.T) {
	bg := strings.Repeat(strings.Repeat(".", 30)+"\n", 9) + strings.Repeat(".", 30)

	hidden := New()
	assert.Equal(t, bg, hidden.Overlay(bg, 30, 10))

	m, _ := New().Flash("reloaded", Info, time.Second)
	out := ansi.Strip(m.Overlay(bg, 30, 10))
	rows := strings.Split(out, "\n")

	require.Len(t, rows, 10)
	assert.Contains(t, rows[7], "reloaded", "toast sits one row above the bottom border")
	assert.Equal(t, strings.Repeat(".", 30), rows[9])
}
