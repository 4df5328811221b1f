package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestPanel_Structure(t *testing.T) {
	out := Panel("/admin", "- /admin/users", 24, 5, false)
	lines := strings.Split(ansi.Strip(out), "\n")

	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "╭─ /admin "))
	assert.True(t, strings.HasSuffix(lines[0], "╮"))
	assert.True(t, strings.HasPrefix(lines[4], "╰"))
	assert.Contains(t, lines[1], "- /admin/users")
	for i, line := range lines {
		assert.Equal(t, 24, lipgloss.Width(line), "line %d width", i)
	}
}

func TestPanel_LongTitleTruncated(t *testing.T) {
	out := Panel("/a/very/long/directory/name/that/does/not/fit", "", 20, 3, true)
	top := strings.Split(ansi.Strip(out), "\n")[0]

	assert.Equal(t, 20, lipgloss.Width(top))
	assert.Contains(t, top, "…")
}

func TestPanel_ContentClipped(t *testing.T) {
	content := "one\ntwo\nthree\nfour"
	out := Panel("", content, 10, 4, false)
	stripped := ansi.Strip(out)

	assert.Contains(t, stripped, "one")
	assert.Contains(t, stripped, "two")
	assert.NotContains(t, stripped, "three")
}

func TestPanel_NarrowWidth(t *testing.T) {
	out := Panel("title", "x", 4, 3, false)
	top := strings.Split(ansi.Strip(out), "\n")[0]

	assert.Equal(t, "╭──╮", top, "no room for a title")
}
