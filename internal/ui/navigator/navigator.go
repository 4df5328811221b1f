// Package navigator is the interactive menu for growing a directory tree one
// scraped page at a time.
package navigator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	bubbleshelp "github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/webwalker/internal/cachemanager"
	"github.com/zjrosen/webwalker/internal/dirtree"
	"github.com/zjrosen/webwalker/internal/keys"
	"github.com/zjrosen/webwalker/internal/log"
	"github.com/zjrosen/webwalker/internal/session"
	"github.com/zjrosen/webwalker/internal/ui/help"
	"github.com/zjrosen/webwalker/internal/ui/toaster"
	"github.com/zjrosen/webwalker/internal/ui/treeview"
)

// Action is a menu entry. Its value is the digit that selects it.
type Action int

const (
	ActionShow Action = iota + 1
	ActionPopulate
	ActionAdd
	ActionRemove
	ActionChange
	ActionParent
	ActionSave
	ActionHelp
	ActionQuit
)

var menu = []struct {
	action Action
	label  string
}{
	{ActionShow, "Show directory tree"},
	{ActionPopulate, "Populate child directory"},
	{ActionAdd, "Add a directory"},
	{ActionRemove, "Remove a directory"},
	{ActionChange, "Change directory"},
	{ActionParent, "Go to parent directory"},
	{ActionSave, "Save directory tree"},
	{ActionHelp, "Help"},
	{ActionQuit, "Quit"},
}

func menuZoneID(i int) string {
	return fmt.Sprintf("menu-%d", i)
}

type screen int

const (
	screenMenu screen = iota
	screenListing
	screenPrompt
	screenHelp
)

// Options configures New.
type Options struct {
	Session *session.Session
	// Changes delivers a value whenever the input file changes. May be nil.
	Changes <-chan struct{}
	// Listings caches subtree listings. A fresh in-memory cache is used
	// when nil.
	Listings      cachemanager.Manager[[]treeview.Row]
	ShowCounts    bool
	MarkdownStyle string
}

// InputChangedMsg reports that the watched input file was written.
type InputChangedMsg struct{}

// alert is the one-line result of the last action.
type alert struct {
	text string
	ok   bool
}

// prompt collects one or more answers for an action.
type prompt struct {
	action Action
	labels []string
	values []string
}

func (p prompt) step() int { return len(p.values) }

// Model is the navigator's bubbletea model.
type Model struct {
	ctx      context.Context
	sess     *session.Session
	current  dirtree.NodeID
	changes  <-chan struct{}
	listings *cachemanager.ReadThrough[[]treeview.Row, dirtree.NodeID]

	screen  screen
	cursor  int
	prompt  prompt
	input   textinput.Model
	alert   alert
	tree    treeview.Model
	help    help.Model
	footer  bubbleshelp.Model
	toaster toaster.Model

	width  int
	height int
}

// New returns a navigator positioned at the session's root.
func New(ctx context.Context, opts Options) Model {
	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 2048

	tree := treeview.New()
	tree.ShowCounts(opts.ShowCounts)

	m := Model{
		ctx:     ctx,
		sess:    opts.Session,
		current: opts.Session.Root().ID(),
		changes: opts.Changes,
		input:   input,
		tree:    tree,
		help:    help.New(opts.MarkdownStyle),
		footer:  bubbleshelp.New(),
		toaster: toaster.New(),
		width:   80,
		height:  24,
	}

	cache := opts.Listings
	if cache == nil {
		cache = cachemanager.NewInMemory[[]treeview.Row]("listings",
			cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval)
	}
	m.listings = cachemanager.NewReadThrough[[]treeview.Row, dirtree.NodeID](cache, m.loadRows, false)

	if w := opts.Session.Warnings(); len(w) > 0 {
		m.alert = alert{text: strings.Join(w, "; ")}
	}
	return m
}

// Init starts listening for input file changes.
func (m Model) Init() tea.Cmd {
	return waitForChange(m.changes)
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return InputChangedMsg{}
	}
}

// Current returns the directory the navigator is in.
func (m Model) Current() *dirtree.Node {
	n, _ := m.sess.Forest().Node(m.current)
	return n
}

// Update handles a message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.tree.SetSize(max(m.width-4, 10), max(m.height-8, 3))
		m.help = m.help.SetSize(m.width, max(m.height-4, 3))
		return m, nil

	case InputChangedMsg:
		cmd := m.reload()
		return m, tea.Batch(cmd, waitForChange(m.changes))

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if key.Matches(msg, keys.Navigator.Quit) {
			return m, tea.Quit
		}
		switch m.screen {
		case screenListing:
			return m.updateListing(msg)
		case screenPrompt:
			return m.updatePrompt(msg)
		case screenHelp:
			return m.updateHelp(msg)
		default:
			return m.updateMenu(msg)
		}
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.screen != screenMenu || msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	for i, item := range menu {
		if z := zone.Get(menuZoneID(i)); z != nil && z.InBounds(msg) {
			m.cursor = i
			return m.run(item.action)
		}
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Navigator.Up):
		m.cursor = (m.cursor - 1 + len(menu)) % len(menu)
		return m, nil
	case key.Matches(msg, keys.Navigator.Down):
		m.cursor = (m.cursor + 1) % len(menu)
		return m, nil
	case key.Matches(msg, keys.Navigator.Select):
		return m.run(menu[m.cursor].action)
	case key.Matches(msg, keys.Navigator.Reload):
		return m, m.reload()
	}

	if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		i := int(s[0] - '1')
		m.cursor = i
		return m.run(menu[i].action)
	}
	return m, nil
}

func (m Model) updateListing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Navigator.Back):
		m.screen = screenMenu
	case key.Matches(msg, keys.Navigator.Up):
		m.tree.MoveCursor(-1)
	case key.Matches(msg, keys.Navigator.Down):
		m.tree.MoveCursor(1)
	case key.Matches(msg, keys.Navigator.Select):
		if name := m.tree.Selected(); name != "" {
			m.changeDirectory(name)
			m.refreshListing()
		}
	}
	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.screen = screenMenu
		m.input.Blur()
		m.alert = alert{text: "Cancelled. Nothing happened."}
		return m, nil
	case tea.KeyEnter:
		return m.submit(strings.TrimSpace(m.input.Value()))
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Navigator.Back) {
		m.screen = screenMenu
		return m, nil
	}
	var cmd tea.Cmd
	m.help, cmd = m.help.Update(msg)
	return m, cmd
}

// reload populates the root from the input file again.
func (m *Model) reload() tea.Cmd {
	res, err := m.sess.Reload(m.ctx)
	var cmd tea.Cmd
	switch {
	case errors.Is(err, session.ErrNoInputFile):
		m.toaster, cmd = m.toaster.Flash("No input file to reload", toaster.Warn, toaster.DefaultDuration)
	case err != nil:
		log.ErrorErr(log.CatUI, "reload failed", err)
		m.toaster, cmd = m.toaster.Flash("Reload failed: "+err.Error(), toaster.Error, toaster.DefaultDuration)
	default:
		m.listings.Invalidate(m.ctx)
		if m.screen == screenListing {
			m.refreshListing()
		}
		m.toaster, cmd = m.toaster.Flash(
			fmt.Sprintf("Input reloaded: %d new directories", len(res.Added)),
			toaster.Info, toaster.DefaultDuration)
	}
	return cmd
}
