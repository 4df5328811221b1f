// Package styles contains Lip Gloss style definitions for the navigator.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"}
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"}
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#888888", Dark: "#696969"} // hints, footers

	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#696969"}
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#C79100", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	StatusInfoColor    = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#54A0FF"}

	// Directory names in listings and the banner
	DirectoryColor = lipgloss.AdaptiveColor{Light: "#179299", Dark: "#94E2D5"}

	SelectionIndicatorColor = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}

	// BannerStyle renders "Currently in '<name>': <n> directories exist".
	BannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextPrimaryColor).
			Padding(0, 1)

	DirectoryStyle = lipgloss.NewStyle().Foreground(DirectoryColor)

	// MenuKeyStyle renders the number in front of a menu entry.
	MenuKeyStyle = lipgloss.NewStyle().Bold(true).Foreground(BorderFocusColor)

	MenuItemStyle = lipgloss.NewStyle().Foreground(TextSecondaryColor)

	MenuItemSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	// SelectionIndicatorStyle renders the ">" prefix in lists.
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	MutedStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	PromptStyle = lipgloss.NewStyle().Bold(true).Foreground(StatusInfoColor)

	// AlertErrorStyle is the red alert shown when an action fails.
	AlertErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(StatusErrorColor).
			Padding(0, 1)

	AlertSuccessStyle = lipgloss.NewStyle().
				Foreground(StatusSuccessColor).
				Padding(0, 1)

	WarningStyle = lipgloss.NewStyle().Foreground(StatusWarningColor)

	// ErrorStyle is used for fatal startup errors printed outside the TUI.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true).
			Padding(1, 2)

	// Toast borders
	ToastBorderSuccessColor = StatusSuccessColor
	ToastBorderErrorColor   = StatusErrorColor
	ToastBorderInfoColor    = StatusInfoColor
	ToastBorderWarnColor    = StatusWarningColor
)
