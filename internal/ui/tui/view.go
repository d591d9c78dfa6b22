package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"essaipanel/internal/app/browser"
	"essaipanel/internal/domain"
	"essaipanel/internal/ui"
)

const (
	headerLines = 4
	footerLines = 1
)

func (m Model) View() string {
	if m.state.View().ShowLocalWarning {
		return m.renderWarning()
	}
	if m.mode == modeHelp {
		return m.help.View()
	}

	var sb strings.Builder
	sb.WriteString(m.renderHeader())
	sb.WriteString("\n")

	left := lipgloss.JoinVertical(lipgloss.Left, m.search.View(), m.list.View())
	right := m.styles.Panel.Render(m.detail.View())
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Footer.Render("/ search · enter select · f family · c class · x clear · m/M manufacturer · tab schema · s source · r reload · ? help · q quit"))
	return sb.String()
}

func (m Model) renderHeader() string {
	view := m.state.View()

	title := m.styles.Title.Render("Essai Tool Database") + "  " +
		m.styles.Muted.Render("source: "+view.Source.Label())

	filters := make([]string, 0, 2)
	if chip := m.state.Chip(); chip != "" {
		filters = append(filters, m.styles.Chip.Render(chip+"  x"))
	}
	if view.Manufacturer != "" {
		filters = append(filters, m.styles.Chip.Render("Manufacturer: "+view.Manufacturer+"  M"))
	}
	filterLine := strings.Join(filters, " ")
	if filterLine == "" {
		filterLine = m.styles.Muted.Render("no filters")
	}

	lines := []string{title, m.StatusLine(), filterLine}
	if m.notice != "" {
		lines = append(lines, m.styles.Warning.Render(m.notice))
	}
	return strings.Join(lines, "\n")
}

// StatusLine is the load indicator: progress, record count or the mapped
// load error.
func (m Model) StatusLine() string {
	snapshot := m.state.Snapshot()
	source := m.state.View().Source.Label()

	switch {
	case m.Loading():
		return m.styles.Status.Render(fmt.Sprintf("Loading %s database...", strings.ToLower(source)))
	case snapshot.Revision == 0:
		return m.styles.Muted.Render("No data loaded")
	case snapshot.Result.IsEmpty():
		uiErr := ui.MapLoadError(snapshot.Result.Reason)
		if uiErr == nil {
			return m.styles.Error.Render("Load failed: no tools available")
		}
		return m.styles.Error.Render(fmt.Sprintf("Load failed [%s]: %s", uiErr.Code, uiErr.Message))
	default:
		return m.styles.Status.Render(fmt.Sprintf("%d tools from %s database, %d shown",
			len(snapshot.Items), strings.ToLower(source), len(m.visible)))
	}
}

func (m Model) renderDetail() string {
	var sb strings.Builder

	groups := m.state.Details()
	if groups == nil {
		sb.WriteString(m.styles.Muted.Render(browser.NoSelectionText))
		sb.WriteString("\n")
	}
	for _, group := range groups {
		sb.WriteString(m.styles.GroupTitle.Render(group.Title))
		sb.WriteString("\n")
		for _, row := range group.Rows {
			sb.WriteString(m.styles.Label.Render(row.Label))
			sb.WriteString(m.styles.Value.Render(row.Value))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(m.renderTabs())
	sb.WriteString("\n")
	rows := m.state.ActiveSchemaTable()
	if len(rows) == 0 {
		sb.WriteString(m.styles.Muted.Render("No keys in this schema"))
		sb.WriteString("\n")
	}
	for _, row := range rows {
		sb.WriteString(m.styles.Label.Render(row.Key))
		sb.WriteString(m.styles.Value.Render(row.Value))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m Model) renderTabs() string {
	active := m.state.View().Tab
	tabs := make([]string, 0, len(domain.AllSchemas()))
	for i, schema := range domain.AllSchemas() {
		label := fmt.Sprintf("%d %s", i+1, schema)
		if schema == active {
			tabs = append(tabs, m.styles.TabActive.Render(label))
			continue
		}
		tabs = append(tabs, m.styles.TabIdle.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)
}

func (m Model) renderWarning() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Warning.Render("Local database"),
		"",
		domain.LocalSourceWarning,
		"",
		m.styles.Muted.Render("press enter to continue"),
	)
	dialog := m.styles.Dialog.Render(body)
	if m.width <= 0 || m.height <= 0 {
		return dialog
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog)
}
