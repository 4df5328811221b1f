package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestNavigator_Bindings(t *testing.T) {
	tests := []struct {
		name    string
		binding key.Binding
		msg     tea.KeyMsg
	}{
		{"up arrow", Navigator.Up, tea.KeyMsg{Type: tea.KeyUp}},
		{"vim up", Navigator.Up, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}},
		{"down arrow", Navigator.Down, tea.KeyMsg{Type: tea.KeyDown}},
		{"select", Navigator.Select, tea.KeyMsg{Type: tea.KeyEnter}},
		{"escape", Navigator.Back, tea.KeyMsg{Type: tea.KeyEsc}},
		{"reload", Navigator.Reload, tea.KeyMsg{Type: tea.KeyCtrlR}},
		{"quit", Navigator.Quit, tea.KeyMsg{Type: tea.KeyCtrlC}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.True(t, key.Matches(tt.msg, tt.binding))
		})
	}
}

func TestNavigator_HelpTextComplete(t *testing.T) {
	for _, b := range Navigator.ShortHelp() {
		require.NotEmpty(t, b.Help().Key)
		require.NotEmpty(t, b.Help().Desc)
	}
	require.Len(t, Navigator.FullHelp(), 2)
}
