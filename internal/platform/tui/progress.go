package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/colorplace/internal/config"
	"github.com/vovakirdan/colorplace/internal/games/colorplace"
)

// progressSections is the sidebar order.
var progressSections = []string{"Tiles", "Skills", "Hidden", "Collection"}

// ProgressModel shows what the player has unlocked and how close the rest is.
type ProgressModel struct {
	progress    colorplace.Progress
	items       []colorplace.ProgressItem
	section     int
	rows        []colorplace.ProgressItem // Items of the current section
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewProgressModel creates the progress screen for p.
func NewProgressModel(p colorplace.Progress, rules config.ColorPlaceConfig, width, height int) ProgressModel {
	m := ProgressModel{
		progress:    p,
		items:       colorplace.ProgressItems(p, rules),
		keys:        DefaultScoreboardKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.loadSection()
	return m
}

func (m *ProgressModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Name", Width: 20},
		{Title: "Progress", Width: 10},
		{Title: "", Width: 2},
		{Title: "Condition", Width: 24},
	}
	return newStyledTable(columns, m.height-12)
}

// loadSection fills the table with the items of the selected section.
func (m *ProgressModel) loadSection() {
	name := progressSections[m.section]
	m.rows = m.rows[:0]
	for _, it := range m.items {
		if it.Section == name {
			m.rows = append(m.rows, it)
		}
	}

	rows := make([]table.Row, len(m.rows))
	for i, it := range m.rows {
		done := ""
		if it.Done {
			done = "✓"
		}
		rows[i] = table.Row{
			it.Name,
			fmt.Sprintf("%d/%d", it.Current, it.Goal),
			done,
			it.Condition,
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the progress model.
func (m ProgressModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the progress screen.
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab), key.Matches(msg, m.keys.Right):
			m.section = (m.section + 1) % len(progressSections)
			m.loadSection()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab), key.Matches(msg, m.keys.Left):
			m.section--
			if m.section < 0 {
				m.section = len(progressSections) - 1
			}
			m.loadSection()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.loadSection()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the progress screen.
func (m ProgressModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(centerText("PROGRESS", m.width)))
	b.WriteString("\n\n")

	summary := fmt.Sprintf("%d games  ·  best %d  ·  score x%.1f",
		m.progress.TotalGames, m.progress.HighScore, m.progress.ScoreMultiplier)
	b.WriteString(centerText(labelStyle.Render(summary), m.width))
	b.WriteString("\n\n")

	content := m.table.View()
	if i := m.table.Cursor(); i >= 0 && i < len(m.rows) && m.rows[i].Description != "" {
		content += "\n" + labelStyle.Render(m.rows[i].Description)
	}
	tableRendered := panelStyle.Render(content)

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", tableRendered))
	} else {
		tab := fmt.Sprintf("< %s >", progressSections[m.section])
		b.WriteString(centerText(tab, m.width))
		b.WriteString("\n\n")
		b.WriteString(tableRendered)
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderSidebar lists the sections with the current one highlighted.
func (m ProgressModel) renderSidebar() string {
	sidebarStyle := panelStyle.Width(sidebarWidth)

	var sidebar strings.Builder
	sidebar.WriteString("Sections\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, name := range progressSections {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.section {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	return sidebarStyle.Render(sidebar.String())
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ProgressModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ProgressModel) IsQuitting() bool {
	return m.quitting
}

// RunProgress runs the progress screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunProgress(p colorplace.Progress, rules config.ColorPlaceConfig, width, height int) (goBack bool, err error) {
	model := NewProgressModel(p, rules, width, height)

	finalModel, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ProgressModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
