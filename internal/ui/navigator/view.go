package navigator

import (
	"fmt"
	"strings"

	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/webwalker/internal/keys"
	"github.com/zjrosen/webwalker/internal/ui/styles"
)

// Banner is the status line shown above every screen.
func (m Model) Banner() string {
	return fmt.Sprintf("Currently in '%s': %d directories exist", m.Current().Name(), m.sess.Forest().Len())
}

// View renders the current screen.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(styles.BannerStyle.Render(m.Banner()))
	b.WriteString("\n")
	if m.alert.text != "" {
		if m.alert.ok {
			b.WriteString(styles.AlertSuccessStyle.Render("[+] " + m.alert.text))
		} else {
			b.WriteString(styles.AlertErrorStyle.Render("[!] " + m.alert.text))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch m.screen {
	case screenListing:
		b.WriteString(styles.Panel(m.Current().Name(), m.tree.View(), m.width, max(m.height-6, 3), true))
	case screenPrompt:
		b.WriteString(m.promptView())
	case screenHelp:
		b.WriteString(m.help.View())
	default:
		b.WriteString(m.menuView())
	}

	b.WriteString("\n\n")
	b.WriteString(m.footer.View(keys.Navigator))

	return zone.Scan(m.toaster.Overlay(b.String(), m.width, m.height))
}

func (m Model) menuView() string {
	lines := make([]string, len(menu))
	for i, item := range menu {
		indicator := " "
		label := styles.MenuItemStyle.Render(item.label)
		if i == m.cursor {
			indicator = styles.SelectionIndicatorStyle.Render(">")
			label = styles.MenuItemSelectedStyle.Render(item.label)
		}
		line := fmt.Sprintf("%s %s - %s", indicator, styles.MenuKeyStyle.Render(fmt.Sprint(int(item.action))), label)
		lines[i] = zone.Mark(menuZoneID(i), line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) promptView() string {
	var b strings.Builder
	for i, label := range m.prompt.labels {
		b.WriteString(styles.PromptStyle.Render(label + ":"))
		b.WriteString("\n")
		if i < m.prompt.step() {
			b.WriteString("  " + m.prompt.values[i] + "\n")
			continue
		}
		b.WriteString(m.input.View())
		break
	}
	b.WriteString("\n")
	b.WriteString(styles.MutedStyle.Render("enter to confirm, esc to cancel"))
	return b.String()
}
