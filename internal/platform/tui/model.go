package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/colorplace/internal/config"
	"github.com/vovakirdan/colorplace/internal/core"
	"github.com/vovakirdan/colorplace/internal/games/colorplace"
	"github.com/vovakirdan/colorplace/internal/storage"
)

const feedLines = 4

// Model is the Bubble Tea model for one Color Place board.
type Model struct {
	game       *colorplace.Game
	store      *storage.Store
	rules      config.ColorPlaceConfig
	config     core.RuntimeConfig
	feed       *Feed
	keys       GameKeyMap
	help       help.Model
	cursor     colorplace.Coord
	ticking    bool // A TickMsg is in flight
	embedded   bool // Back returns to the session menu instead of quitting
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a model and starts the first game. store and sink may
// be nil.
func NewModel(rules config.ColorPlaceConfig, store *storage.Store, cfg core.RuntimeConfig, sink colorplace.Sink) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	// A nil *Store must not become a non-nil interface.
	var progress colorplace.ProgressStore
	if store != nil {
		progress = store
	}

	feed := NewFeed(feedLines)
	game := colorplace.New(rules, progress, colorplace.MultiSink{feed, sink})
	game.Reset(cfg)

	m := Model{
		game:   game,
		store:  store,
		rules:  rules,
		config: cfg,
		feed:   feed,
		keys:   DefaultGameKeyMap(),
		help:   help.New(),
		cursor: colorplace.At(colorplace.BoardSize/2, colorplace.BoardSize/2),
	}
	m.help.Width = cfg.ScreenW
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("Color Place")
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		if m.game.Busy() {
			return m, nil
		}
		m.backToMenu = true
		if m.embedded {
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Restart):
		if m.game.Phase() == colorplace.PhaseGameOver {
			m.restart()
		}

	case key.Matches(msg, m.keys.Up):
		m.cursor.R = max(0, m.cursor.R-1)
	case key.Matches(msg, m.keys.Down):
		m.cursor.R = min(colorplace.BoardSize-1, m.cursor.R+1)
	case key.Matches(msg, m.keys.Left):
		m.cursor.C = max(0, m.cursor.C-1)
	case key.Matches(msg, m.keys.Right):
		m.cursor.C = min(colorplace.BoardSize-1, m.cursor.C+1)

	case key.Matches(msg, m.keys.Select):
		return m.click(m.cursor)
	}

	return m, nil
}

// handleMouse turns a left click on the board into a cell click.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	pos, ok := cellAt(msg.X, msg.Y)
	if !ok {
		return m, nil
	}
	m.cursor = pos
	return m.click(pos)
}

// click forwards a cell to the game and starts pacing the turn if one began.
func (m Model) click(pos colorplace.Coord) (tea.Model, tea.Cmd) {
	if !m.game.Click(pos) {
		return m, nil
	}
	cmd := m.schedule()
	return m, cmd
}

// handleTick runs one resolution step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.ticking = false
	if m.game.Busy() {
		m.game.Step()
	}
	m.saveScore()
	cmd := m.schedule()
	return m, cmd
}

// schedule arms the next tick while the turn is still resolving.
func (m *Model) schedule() tea.Cmd {
	if m.ticking || !m.game.Busy() {
		m.saveScore()
		return nil
	}
	m.ticking = true
	return tickCmd(phaseDelay(m.game.Phase(), m.rules.Timing, m.config.TickRate))
}

// saveScore records the finished game once.
func (m *Model) saveScore() {
	state := m.game.State()
	if m.scoreSaved || !state.GameOver {
		return
	}
	if m.store != nil {
		//nolint:errcheck // Best-effort save, progress is stored by the game itself
		m.store.SaveScore(m.game.ID(), state.Score, m.game.MaxCombo(), m.game.Turns())
	}
	m.scoreSaved = true
}

// restart begins a new game with a fresh seed.
func (m *Model) restart() {
	m.config.Seed = time.Now().UnixNano()
	m.feed.Reset()
	m.game.Reset(m.config)
	m.scoreSaved = false
	m.ticking = false
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("COLOR PLACE"))
	b.WriteString(labelStyle.Render(fmt.Sprintf("   level %d  ·  %d colors", m.game.LevelIndex()+1, len(m.game.ActiveColors()))))
	b.WriteString("\n\n")

	view := boardView{
		cursor:     m.cursor,
		showCursor: !m.game.Busy() && m.game.Phase() != colorplace.PhaseGameOver,
		targets:    colorplace.ModeCells(m.game.Mode()),
		flash:      m.feed.Flash(),
	}
	board := panelStyle.Render(renderBoard(m.game.Board(), view))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, board, "  ", m.renderSide()))
	b.WriteString("\n")

	for _, line := range m.feed.Lines() {
		b.WriteString(labelStyle.Render("  " + line))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderSide draws the HUD next to the board.
func (m Model) renderSide() string {
	g := m.game
	var b strings.Builder

	fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("Score"), g.Score())
	fmt.Fprintf(&b, "%s %d\n", labelStyle.Render("Best "), max(g.Progress().HighScore, g.Score()))
	if g.Combo() > 1 {
		fmt.Fprintf(&b, "%s x%d\n", labelStyle.Render("Combo"), g.Combo())
	}
	fmt.Fprintf(&b, "%s %d\n\n", labelStyle.Render("Turns"), g.Turns())

	mission := g.Mission()
	left := m.rules.Missions.TimeoutTurns - g.MissionTurns()
	fmt.Fprintf(&b, "%s %s +%d (%d left)\n", labelStyle.Render("Mission"), mission.Name, g.MissionBonus(), left)
	b.WriteString(renderMission(mission))
	b.WriteString("\n\n")

	if g.Phase() == colorplace.PhaseGameOver {
		b.WriteString(titleStyle.Render("GAME OVER"))
		b.WriteString("\n")
		for _, u := range g.Unlocks() {
			b.WriteString(targetStyle.Render("★ " + u.Label))
			b.WriteString("\n")
		}
		if err := g.Err(); err != nil {
			b.WriteString(labelStyle.Render("progress: " + err.Error()))
			b.WriteString("\n")
		}
		b.WriteString(labelStyle.Render("r: new game  esc: menu"))
		return b.String()
	}

	b.WriteString(labelStyle.Render("Next"))
	b.WriteString("\n")
	for i, t := range g.Queue() {
		marker := "  "
		if i == 0 {
			marker = cursorStyle.Render("▶ ")
		}
		b.WriteString(marker)
		b.WriteString(renderTile(t, i == 0))
		b.WriteString("\n")
	}
	if def, ok := colorplace.LookupSkill(g.PendingSkill()); ok {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Queued"), def.Name)
	}
	b.WriteString("\n")
	b.WriteString(targetStyle.Render(m.prompt()))

	return b.String()
}

// prompt tells the player what the next click does.
func (m Model) prompt() string {
	switch mode := m.game.Mode().(type) {
	case colorplace.ModePlacement:
		return "Place the tile"
	case colorplace.ModeDropper:
		return "Pick a board color to copy"
	case colorplace.ModeColorChange:
		return "Pick a tile to recolor"
	case colorplace.ModeSkillTarget:
		if def, ok := colorplace.LookupSkill(mode.Skill); ok {
			return "Pick a target for " + def.Name
		}
		return "Pick a target"
	}
	return "..."
}

// Game returns the running game.
func (m Model) Game() *colorplace.Game {
	return m.game
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a standalone board. It reports whether the player asked to
// go back to the menu rather than quit.
func Run(rules config.ColorPlaceConfig, store *storage.Store, cfg core.RuntimeConfig, sink colorplace.Sink) (backToMenu bool, err error) {
	model := NewModel(rules, store, cfg, sink)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Board cells are clickable
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(Model)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
