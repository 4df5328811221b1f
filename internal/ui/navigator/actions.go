package navigator

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/webwalker/internal/cachemanager"
	"github.com/zjrosen/webwalker/internal/dirtree"
	"github.com/zjrosen/webwalker/internal/log"
	"github.com/zjrosen/webwalker/internal/ui/toaster"
	"github.com/zjrosen/webwalker/internal/ui/treeview"
)

// run starts action from the menu.
func (m Model) run(action Action) (tea.Model, tea.Cmd) {
	log.Debug(log.CatUI, "menu action", "action", int(action), "dir", m.Current().Name())
	m.alert = alert{}

	switch action {
	case ActionShow:
		m.screen = screenListing
		m.refreshListing()
		return m, nil
	case ActionPopulate:
		return m.ask(action, "Name of the child directory to populate", "File to populate it from")
	case ActionAdd:
		return m.ask(action, "Name of the new directory")
	case ActionRemove:
		return m.ask(action, "Name of the directory to remove")
	case ActionChange:
		return m.ask(action, "Name of the directory to change to")
	case ActionParent:
		m.goToParent()
		return m, nil
	case ActionSave:
		return m.ask(action, fmt.Sprintf("Output file (empty saves to %s)", m.sess.DefaultOutputFile()))
	case ActionHelp:
		m.screen = screenHelp
		m.help = m.help.SetSize(m.width, max(m.height-4, 3))
		return m, nil
	case ActionQuit:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) ask(action Action, labels ...string) (tea.Model, tea.Cmd) {
	m.prompt = prompt{action: action, labels: labels}
	m.screen = screenPrompt
	m.input.Reset()
	return m, m.input.Focus()
}

// submit records the answer to the current prompt step and finishes the
// action once every step is answered.
func (m Model) submit(value string) (tea.Model, tea.Cmd) {
	p := m.prompt
	if p.action == ActionPopulate && p.step() == 0 {
		if _, ok := m.Current().Child(value); !ok {
			m.fail(fmt.Sprintf("'%s' is not a child of '%s'. Nothing happened.", value, m.Current().Name()))
			return m, nil
		}
	}

	m.prompt.values = append(m.prompt.values, value)
	if m.prompt.step() < len(m.prompt.labels) {
		m.input.Reset()
		return m, nil
	}

	m.screen = screenMenu
	m.input.Blur()
	return m.finish()
}

func (m Model) finish() (tea.Model, tea.Cmd) {
	f := m.sess.Forest()
	values := m.prompt.values

	switch m.prompt.action {
	case ActionPopulate:
		child, _ := m.Current().Child(values[0])
		res, err := m.sess.PopulateFrom(m.ctx, child, values[1])
		if err != nil {
			m.fail(err.Error())
			return m, nil
		}
		m.succeed(fmt.Sprintf("'%s' populated: %d added, %d skipped.", values[0], len(res.Added), res.Skipped))

	case ActionAdd:
		if _, err := f.CreateChild(m.current, values[0]); err != nil {
			m.fail(err.Error())
			return m, nil
		}
		m.succeed(fmt.Sprintf("'%s' has been added to '%s'.", values[0], m.Current().Name()))

	case ActionRemove:
		if err := f.RemoveChild(m.current, values[0]); err != nil {
			m.fail(err.Error())
			return m, nil
		}
		m.succeed(fmt.Sprintf("'%s' has been removed from '%s'.", values[0], m.Current().Name()))

	case ActionChange:
		m.changeDirectory(values[0])

	case ActionSave:
		res, err := m.sess.Save(m.ctx, values[0], "")
		if err != nil {
			m.fail(err.Error())
			var cmd tea.Cmd
			m.toaster, cmd = m.toaster.Flash("Save failed", toaster.Error, toaster.DefaultDuration)
			return m, cmd
		}
		text := "Saved to " + res.Path
		if res.SnapshotID != "" {
			text += fmt.Sprintf(" (snapshot %.8s)", res.SnapshotID)
		}
		m.succeed(text + ".")
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Flash("Saved "+res.Path, toaster.Success, toaster.DefaultDuration)
		return m, cmd
	}
	return m, nil
}

func (m *Model) changeDirectory(name string) {
	n, ok := m.sess.Forest().Lookup(name)
	if !ok {
		m.fail(fmt.Sprintf("'%s' is not a recognized directory. Nothing happened.", name))
		return
	}
	m.current = n.ID()
	m.succeed(fmt.Sprintf("Changed to '%s'.", name))
}

func (m *Model) goToParent() {
	cur := m.Current()
	parentID, ok := cur.Parent()
	if !ok {
		m.fail(fmt.Sprintf("'%s' has no parent directory.", cur.Name()))
		return
	}
	parent, ok := m.sess.Forest().Node(parentID)
	if !ok {
		m.fail(fmt.Sprintf("The parent of '%s' was removed.", cur.Name()))
		return
	}
	m.current = parentID
	m.succeed(fmt.Sprintf("Changed to '%s'.", parent.Name()))
}

func (m *Model) fail(text string) {
	m.screen = screenMenu
	m.input.Blur()
	m.alert = alert{text: text}
}

func (m *Model) succeed(text string) {
	m.alert = alert{text: text, ok: true}
}

// refreshListing loads the subtree of the current directory into the tree
// view. A leaf shows the empty state.
func (m *Model) refreshListing() {
	f := m.sess.Forest()
	key := fmt.Sprintf("v%d/n%d", f.Version(), m.current)
	rows, err := m.listings.Get(m.ctx, key, m.current, cachemanager.DefaultExpiration)
	if err != nil && !errors.Is(err, dirtree.ErrEmptyTree) {
		m.fail(err.Error())
		return
	}
	m.tree.SetItems(rows)
}

// loadRows flattens the subtree under id in report order.
func (m Model) loadRows(_ context.Context, id dirtree.NodeID) ([]treeview.Row, error) {
	f := m.sess.Forest()
	if _, err := f.Listing(id); err != nil {
		return nil, err
	}

	var rows []treeview.Row
	var walk func(id dirtree.NodeID, depth int)
	walk = func(id dirtree.NodeID, depth int) {
		for _, child := range f.Children(id) {
			rows = append(rows, treeview.Row{Name: child.Name(), Depth: depth, Children: child.ChildCount()})
			walk(child.ID(), depth+1)
		}
	}
	walk(id, 0)
	return rows, nil
}
