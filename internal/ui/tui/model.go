package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"essaipanel/internal/app/browser"
	appcatalog "essaipanel/internal/app/catalog"
	"essaipanel/internal/domain"
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeHelp
)

// loadedMsg carries a finished load back to the event loop.
type loadedMsg struct {
	result domain.LoadResult
}

// changedMsg reports a write to the local database file.
type changedMsg struct {
	change appcatalog.Change
}

// Options configures the browser model.
type Options struct {
	Context context.Context
	State   *browser.State
	Changes <-chan appcatalog.Change
	Logger  *zap.Logger
}

// Model is the bubbletea model of the tool browser. All state changes happen
// in Update; loads run as commands and come back as loadedMsg.
type Model struct {
	ctx     context.Context
	state   *browser.State
	changes <-chan appcatalog.Change
	logger  *zap.Logger
	styles  Styles

	list   list.Model
	search textinput.Model
	detail viewport.Model
	help   viewport.Model

	mode    mode
	pending int
	visible []int
	notice  string
	width   int
	height  int
}

func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	state := opts.State
	if state == nil {
		state = browser.NewState(browser.Options{Logger: logger})
	}

	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Tools"
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ShowFullHelp.SetEnabled(false)

	search := textinput.New()
	search.Placeholder = "Search tool names..."
	search.Prompt = "/ "
	search.CharLimit = 120

	m := Model{
		ctx:     ctx,
		state:   state,
		changes: opts.Changes,
		logger:  logger.Named("tui"),
		styles:  DefaultStyles(),
		list:    l,
		search:  search,
		detail:  viewport.New(0, 0),
		help:    viewport.New(0, 0),
	}
	m.setSize(100, 30)
	m.syncList()
	// Init dispatches the first load.
	m.pending = 1
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.waitForChange())
}

// Loading reports whether a load is in flight.
func (m Model) Loading() bool {
	return m.pending > 0
}

func (m *Model) startLoad() tea.Cmd {
	m.pending++
	return m.loadCmd()
}

func (m Model) loadCmd() tea.Cmd {
	source := m.state.CurrentSource()
	ctx := m.ctx
	state := m.state
	return func() tea.Msg {
		return loadedMsg{result: state.Fetch(ctx, source)}
	}
}

func (m Model) waitForChange() tea.Cmd {
	changes := m.changes
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		change, ok := <-changes
		if !ok {
			return nil
		}
		return changedMsg{change: change}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case loadedMsg:
		if m.pending > 0 {
			m.pending--
		}
		if m.state.Apply(msg.result) {
			m.notice = ""
			m.list.ResetSelected()
		}
		m.syncList()
		return m, nil

	case changedMsg:
		var cmds []tea.Cmd
		if m.state.View().Source == domain.SourceLocal {
			cmds = append(cmds, m.startLoad())
		}
		cmds = append(cmds, m.waitForChange())
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.state.View().ShowLocalWarning {
			return m.updateWarning(msg)
		}
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeHelp:
			return m.updateHelp(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateWarning(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", " ", "y":
		m.state.AcknowledgeLocalWarning()
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.mode = modeBrowse
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.search.Blur()
		m.search.SetValue("")
		m.state.SetSearch("")
		m.syncList()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.state.SetSearch(m.search.Value())
	m.syncList()
	return m, cmd
}

func (m Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?", "esc", "q":
		m.mode = modeBrowse
		return m, nil
	}
	var cmd tea.Cmd
	m.help, cmd = m.help.Update(msg)
	return m, cmd
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.mode = modeSearch
		return m, m.search.Focus()
	case "?":
		m.mode = modeHelp
		m.help.SetContent(renderHelp(m.help.Width))
		m.help.GotoTop()
		return m, nil
	case "enter":
		if index, ok := m.cursorIndex(); ok {
			if err := m.state.Toggle(index); err != nil {
				m.logger.Debug("toggle selection failed", zap.Error(err))
			}
			m.syncList()
		}
		return m, nil
	case "esc":
		m.state.ClearSelection()
		m.syncList()
		return m, nil
	case "f":
		m.applyContextFilter(m.state.FilterByFamily)
		return m, nil
	case "c":
		m.applyContextFilter(m.state.FilterByClass)
		return m, nil
	case "x":
		m.state.ClearToolFilter()
		m.syncList()
		return m, nil
	case "m":
		m.state.CycleManufacturer()
		m.syncList()
		return m, nil
	case "M":
		m.state.ClearManufacturer()
		m.syncList()
		return m, nil
	case "tab":
		m.state.NextTab()
		m.refreshDetail()
		return m, nil
	case "1", "2", "3":
		m.state.SetTab(domain.AllSchemas()[int(msg.Runes[0]-'1')])
		m.refreshDetail()
		return m, nil
	case "s":
		m.state.ToggleSource()
		m.syncList()
		return m, m.startLoad()
	case "r":
		return m, m.startLoad()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) applyContextFilter(install func(int) bool) {
	index, ok := m.cursorIndex()
	if !ok {
		return
	}
	if !install(index) {
		m.notice = "Tool has no essai part; filter not applied"
		return
	}
	m.notice = ""
	m.list.ResetSelected()
	m.syncList()
}

// cursorIndex maps the list cursor to a snapshot index.
func (m Model) cursorIndex() (int, bool) {
	pos := m.list.Index()
	if pos < 0 || pos >= len(m.visible) {
		return -1, false
	}
	return m.visible[pos], true
}

func (m *Model) syncList() {
	snapshot := m.state.Snapshot()
	m.visible = m.state.Visible()
	cursor := m.list.Index()
	m.list.SetItems(toListItems(snapshot.Items, m.visible, m.state.View().Selected))
	if cursor >= len(m.visible) {
		cursor = len(m.visible) - 1
	}
	if cursor >= 0 {
		m.list.Select(cursor)
	}
	m.refreshDetail()
}

func (m *Model) refreshDetail() {
	m.detail.SetContent(m.renderDetail())
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height

	listWidth := width * 2 / 5
	if listWidth < 24 {
		listWidth = 24
	}
	bodyHeight := height - headerLines - footerLines
	if bodyHeight < 5 {
		bodyHeight = 5
	}
	m.list.SetSize(listWidth, bodyHeight)
	m.detail.Width = width - listWidth - 4
	m.detail.Height = bodyHeight - 2
	m.help.Width = width
	m.help.Height = height - 2
	m.search.Width = listWidth - 4
	m.refreshDetail()
}
