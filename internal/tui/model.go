// Package tui is the terminal collaborator: it decodes bubbletea key events
// into core key events, feeds them to the editor session and renders the
// session state. No editing logic lives here.
package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"tedit/internal/config"
	"tedit/internal/editor"
	"tedit/internal/log"
	"tedit/internal/watch"
	"tedit/pkg/types"
)

// Model implements tea.Model around an editor session.
type Model struct {
	session *editor.Session
	watcher *watch.Watcher
	styles  Styles

	width  int
	height int

	// Scroll offsets of the text area.
	top  int
	left int

	pager     viewport.Model
	showPager bool

	quitting bool
	lastPath string
}

// New creates the TUI model. The watcher may be nil, notably in tests.
func New(session *editor.Session, watcher *watch.Watcher, cfg *config.Config) *Model {
	return &Model{
		session:  session,
		watcher:  watcher,
		styles:   NewStyles(cfg),
		width:    80,
		height:   24,
		lastPath: session.Buffer().Path(),
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	if m.lastPath != "" {
		if err := m.watcher.SetFile(m.lastPath); err != nil {
			log.Warnf("cannot watch %s: %v", m.lastPath, err)
		}
	}
	return waitForFileEvent(m.watcher)
}

// waitForFileEvent blocks on the watcher channel and resurfaces the change
// as a bubbletea message.
func waitForFileEvent(w *watch.Watcher) tea.Cmd {
	return func() tea.Msg {
		mod, ok := <-w.FileChannel()
		if !ok {
			return nil
		}
		return FileChangedMsg{Path: mod.Path}
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.pager.Width = max(msg.Width-4, 1)
		m.pager.Height = max(msg.Height-5, 1)
		return m, nil

	case FileChangedMsg:
		m.session.Notify("file changed on disk: " + msg.Path)
		return m, waitForFileEvent(m.watcher)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showPager {
		return m.handlePagerKey(msg)
	}

	keys, ok := translateKey(msg)
	if !ok {
		return m, nil
	}

	var last editor.Event
	for _, k := range keys {
		last = m.session.HandleKey(k)
	}
	m.syncWatcher()

	if last.Quit {
		m.quitting = true
		return m, tea.Quit
	}
	if last.Output != "" {
		m.openPager(last.Output)
	}
	return m, nil
}

func (m *Model) handlePagerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.showPager = false
		return m, nil
	}
	if msg.String() == "q" {
		m.showPager = false
		return m, nil
	}
	var cmd tea.Cmd
	m.pager, cmd = m.pager.Update(msg)
	return m, cmd
}

func (m *Model) openPager(content string) {
	m.pager = viewport.New(max(m.width-4, 1), max(m.height-5, 1))
	m.pager.SetContent(content)
	m.showPager = true
}

// syncWatcher points the file watcher at the buffer's current path after a
// command may have changed it.
func (m *Model) syncWatcher() {
	if m.watcher == nil {
		return
	}
	path := m.session.Buffer().Path()
	if path == m.lastPath {
		return
	}
	if err := m.watcher.SetFile(path); err != nil {
		log.Warnf("cannot watch %s: %v", path, err)
	}
	m.lastPath = path
}

// translateKey decodes a bubbletea key event into core key events. A paste
// arrives as multiple runes, hence the slice.
func translateKey(msg tea.KeyMsg) ([]types.Key, bool) {
	one := func(k types.KeyKind) ([]types.Key, bool) {
		return []types.Key{{Kind: k}}, true
	}
	switch msg.Type {
	case tea.KeyEsc:
		return one(types.KeyEscape)
	case tea.KeyEnter:
		return one(types.KeyEnter)
	case tea.KeyBackspace:
		return one(types.KeyBackspace)
	case tea.KeyTab:
		return one(types.KeyTab)
	case tea.KeyLeft:
		return one(types.KeyLeft)
	case tea.KeyRight:
		return one(types.KeyRight)
	case tea.KeyUp:
		return one(types.KeyUp)
	case tea.KeyDown:
		return one(types.KeyDown)
	case tea.KeySpace:
		return []types.Key{types.RuneKey(' ')}, true
	case tea.KeyRunes:
		keys := make([]types.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			keys = append(keys, types.RuneKey(r))
		}
		return keys, len(keys) > 0
	}
	return nil, false
}
