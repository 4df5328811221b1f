package overlay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func background(w, h int) string {
	rows := make([]string, h)
	for i := range rows {
		rows[i] = strings.Repeat(".", w)
	}
	return strings.Join(rows, "\n")
}

func TestPlace_Center(t *testing.T) {
	out := Place(Viewport{Width: 7, Height: 3}, "XXX", background(7, 3))
	rows := strings.Split(out, "\n")

	require.Len(t, rows, 3)
	assert.Equal(t, ".......", rows[0])
	assert.Equal(t, "..XXX..", rows[1])
	assert.Equal(t, ".......", rows[2])
}

func TestPlace_BottomWithMargin(t *testing.T) {
	out := Place(Viewport{Width: 5, Height: 4, Anchor: Bottom, Margin: 1}, "X", background(5, 4))
	rows := strings.Split(out, "\n")

	assert.Equal(t, "..X..", rows[2])
	assert.Equal(t, ".....", rows[3])
}

func TestPlace_ShortBackgroundIsPadded(t *testing.T) {
	out := Place(Viewport{Width: 3, Height: 3, Anchor: Bottom}, "X", "...")
	rows := strings.Split(out, "\n")

	require.Len(t, rows, 3)
	assert.Equal(t, " X ", rows[2])
}

func TestPlace_OversizedForegroundClampsToOrigin(t *testing.T) {
	out := Place(Viewport{Width: 3, Height: 2}, "XXXXX\nXXXXX\nXXXXX", background(3, 2))
	rows := strings.Split(out, "\n")

	require.Len(t, rows, 2)
	assert.Equal(t, "XXXXX", rows[0])
}

func TestPlace_KeepsStyledBackground(t *testing.T) {
	bg := "\x1b[31mRRRRR\x1b[0m"
	out := Place(Viewport{Width: 5, Height: 1}, "X", bg)

	assert.Contains(t, out, "X")
	assert.Contains(t, out, "\x1b[31m")
}
