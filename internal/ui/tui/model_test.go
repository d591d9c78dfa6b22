package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"essaipanel/internal/app/browser"
	appcatalog "essaipanel/internal/app/catalog"
	"essaipanel/internal/domain"
)

type fakeLoader struct {
	items map[domain.SourceKind][]domain.ToolItem
}

func (f *fakeLoader) Load(_ context.Context, source domain.Source) domain.LoadResult {
	items, ok := f.items[source.Kind]
	if !ok {
		return domain.Empty(source, domain.ErrFetchFailed)
	}
	return domain.Loaded(source, items)
}

func testItems() []domain.ToolItem {
	return []domain.ToolItem{
		{Name: "Drill 6mm", EssaiPart: "D-6", HolderName: "ER16", Manufacturer: "Guhring",
			Solfex: domain.SectionOf("A", 1)},
		{Name: "Drill 6mm long", EssaiPart: "D-6", HolderName: "ER32", Manufacturer: "Guhring"},
		{Name: "End Mill 12", EssaiPart: "EM-12", HolderName: "ER32", Manufacturer: "Harvey",
			Milling: domain.SectionOf("Diameter", 12)},
		{Name: "Probe"},
	}
}

func newTestModel(t *testing.T, loader *fakeLoader) Model {
	t.Helper()
	state := browser.NewState(browser.Options{
		Sources: domain.SourceSet{LocalPath: "/tmp/MasterToolDatabase.txt", RemoteURL: "https://example.com/db.txt"},
		Loader:  loader,
	})
	return New(Options{State: state})
}

// run executes cmd and feeds loadedMsg results back into the model.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	msg := cmd()
	switch msg := msg.(type) {
	case loadedMsg:
		next, _ := m.Update(msg)
		return next.(Model)
	case tea.BatchMsg:
		for _, inner := range msg {
			m = run(t, m, inner)
		}
	}
	return m
}

func press(t *testing.T, m Model, key string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func loaded(t *testing.T) Model {
	t.Helper()
	m := newTestModel(t, &fakeLoader{items: map[domain.SourceKind][]domain.ToolItem{
		domain.SourceOnline: testItems(),
		domain.SourceLocal:  testItems()[:2],
	}})
	require.True(t, m.Loading())
	m = run(t, m, m.Init())
	require.False(t, m.Loading())
	return m
}

func TestModel_InitialLoad(t *testing.T) {
	m := loaded(t)
	require.Len(t, m.visible, 4)
	require.Contains(t, m.StatusLine(), "4 tools from online database")
	require.Contains(t, m.View(), "Select a tool from the list")
}

func TestModel_LoadFailureShowsIndicator(t *testing.T) {
	m := newTestModel(t, &fakeLoader{})
	m = run(t, m, m.Init())
	require.Empty(t, m.visible)
	require.Contains(t, m.StatusLine(), "Load failed [SOURCE_UNREACHABLE]")
}

func TestModel_ToggleSelection(t *testing.T) {
	m := loaded(t)

	m, _ = press(t, m, "down")
	m, _ = press(t, m, "enter")
	item, ok := m.state.Selected()
	require.True(t, ok)
	require.Equal(t, "Drill 6mm long", item.Name)
	require.Contains(t, m.detail.View(), "Assembly Details")

	m, _ = press(t, m, "enter")
	_, ok = m.state.Selected()
	require.False(t, ok)
}

func TestModel_Search(t *testing.T) {
	m := loaded(t)

	m, _ = press(t, m, "/")
	require.Equal(t, modeSearch, m.mode)
	for _, r := range "mill" {
		m, _ = press(t, m, string(r))
	}
	require.Equal(t, "mill", m.state.View().Search)
	require.Equal(t, []int{2}, m.visible)

	m, _ = press(t, m, "q")
	require.Equal(t, "millq", m.state.View().Search)

	m, _ = press(t, m, "esc")
	require.Equal(t, modeBrowse, m.mode)
	require.Empty(t, m.state.View().Search)
	require.Len(t, m.visible, 4)
}

func TestModel_ContextFilters(t *testing.T) {
	m := loaded(t)

	m, _ = press(t, m, "f")
	require.Equal(t, "Family: D-6", m.state.Chip())
	require.Equal(t, []int{0, 1}, m.visible)

	m, _ = press(t, m, "down")
	m, _ = press(t, m, "c")
	require.Equal(t, "Class: D-6 | ER32", m.state.Chip())
	require.Equal(t, []int{1}, m.visible)
	require.Contains(t, m.View(), "Class: D-6 | ER32")

	m, _ = press(t, m, "x")
	require.Empty(t, m.state.Chip())
	require.Len(t, m.visible, 4)

	// Probe has no essai part.
	for i := 0; i < 3; i++ {
		m, _ = press(t, m, "down")
	}
	m, _ = press(t, m, "f")
	require.Empty(t, m.state.Chip())
	require.NotEmpty(t, m.notice)
}

func TestModel_ManufacturerFilter(t *testing.T) {
	m := loaded(t)

	m, _ = press(t, m, "m")
	require.Equal(t, "Guhring", m.state.View().Manufacturer)
	require.Equal(t, []int{0, 1}, m.visible)

	m, _ = press(t, m, "m")
	require.Equal(t, []int{2}, m.visible)

	m, _ = press(t, m, "M")
	require.Empty(t, m.state.View().Manufacturer)
	require.Len(t, m.visible, 4)
}

func TestModel_Tabs(t *testing.T) {
	m := loaded(t)

	m, _ = press(t, m, "tab")
	require.Equal(t, domain.SchemaMilling, m.state.View().Tab)
	m, _ = press(t, m, "3")
	require.Equal(t, domain.SchemaDrilling, m.state.View().Tab)
	m, _ = press(t, m, "1")
	require.Equal(t, domain.SchemaSolfex, m.state.View().Tab)
}

func TestModel_SwitchSourceShowsWarning(t *testing.T) {
	m := loaded(t)

	m, cmd := press(t, m, "s")
	require.NotNil(t, cmd)
	require.True(t, m.Loading())
	require.True(t, m.state.View().ShowLocalWarning)
	require.Contains(t, m.View(), domain.LocalSourceWarning)

	m = run(t, m, cmd)
	require.Len(t, m.visible, 2)

	m, _ = press(t, m, "f")
	require.Empty(t, m.state.Chip(), "keys are ignored while the warning is shown")

	m, _ = press(t, m, "enter")
	require.False(t, m.state.View().ShowLocalWarning)
	require.Contains(t, m.StatusLine(), "2 tools from local database")
}

func TestModel_ReloadClearsSelection(t *testing.T) {
	m := loaded(t)

	m, _ = press(t, m, "enter")
	m, _ = press(t, m, "f")
	_, ok := m.state.Selected()
	require.True(t, ok)

	m, cmd := press(t, m, "r")
	m = run(t, m, cmd)
	_, ok = m.state.Selected()
	require.False(t, ok)
	require.Empty(t, m.state.Chip())
}

func TestModel_FileChangeReloadsLocalOnly(t *testing.T) {
	changes := make(chan appcatalog.Change, 1)
	state := browser.NewState(browser.Options{
		InitialSource: domain.SourceOnline,
		Sources:       domain.SourceSet{LocalPath: "/tmp/MasterToolDatabase.txt", RemoteURL: "https://example.com/db.txt"},
		Loader:        &fakeLoader{items: map[domain.SourceKind][]domain.ToolItem{domain.SourceOnline: testItems()}},
	})
	m := New(Options{State: state, Changes: changes})

	next, _ := m.Update(changedMsg{})
	m = next.(Model)
	require.Equal(t, 1, m.pending, "online source ignores file changes")

	state.ToggleSource()
	next, _ = m.Update(changedMsg{})
	m = next.(Model)
	require.Equal(t, 2, m.pending)
}

func TestModel_HelpAndQuit(t *testing.T) {
	m := loaded(t)

	m, _ = press(t, m, "?")
	require.Equal(t, modeHelp, m.mode)
	require.True(t, strings.Contains(m.View(), "search") || strings.Contains(m.View(), "Tool database"))

	m, _ = press(t, m, "?")
	require.Equal(t, modeBrowse, m.mode)

	_, cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}
