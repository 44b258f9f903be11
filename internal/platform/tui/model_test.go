package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/colorplace/internal/config"
	"github.com/vovakirdan/colorplace/internal/core"
	"github.com/vovakirdan/colorplace/internal/games/colorplace"
)

func TestPhaseDelay(t *testing.T) {
	timing := config.DefaultColorPlaceConfig().Timing

	tests := []struct {
		name     string
		phase    colorplace.Phase
		tickRate int
		want     time.Duration
	}{
		{"landing", colorplace.PhasePlaced, 60, time.Duration(timing.PlaceMS) * time.Millisecond},
		{"popping", colorplace.PhaseCascade, 60, time.Duration(timing.PopMS) * time.Millisecond},
		{"skill", colorplace.PhasePendingSkill, 60, time.Duration(timing.SkillMS) * time.Millisecond},
		{"auto change", colorplace.PhaseAutoChange, 60, time.Duration(timing.AutoChangeMS) * time.Millisecond},
		{"bookkeeping", colorplace.PhaseFinalize, 0, time.Duration(timing.StepMS) * time.Millisecond},
		{"frame floor", colorplace.PhaseFinalize, 2, 500 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := phaseDelay(tt.phase, timing, tt.tickRate); got != tt.want {
				t.Errorf("phaseDelay() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCellAt(t *testing.T) {
	tests := []struct {
		x, y int
		want colorplace.Coord
		ok   bool
	}{
		{boardOriginX, boardOriginY, colorplace.At(0, 0), true},
		{boardOriginX + cellW - 1, boardOriginY + cellH - 1, colorplace.At(0, 0), true},
		{boardOriginX + 4*cellW, boardOriginY + 4*cellH + 1, colorplace.At(4, 4), true},
		{boardOriginX + 2*cellW + 3, boardOriginY + cellH, colorplace.At(1, 2), true},
		{boardOriginX - 1, boardOriginY, colorplace.Coord{}, false},
		{boardOriginX + 5*cellW, boardOriginY, colorplace.Coord{}, false},
		{boardOriginX, boardOriginY + 5*cellH, colorplace.Coord{}, false},
	}

	for _, tt := range tests {
		got, ok := cellAt(tt.x, tt.y)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("cellAt(%d, %d) = %v, %v, want %v, %v", tt.x, tt.y, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFeedKeepsLastLines(t *testing.T) {
	feed := NewFeed(2)
	feed.Emit(colorplace.Event{Kind: colorplace.EventCombo, Value: 2})
	feed.Emit(colorplace.Event{Kind: colorplace.EventTilePlaced, Cells: []colorplace.Coord{colorplace.At(1, 1)}})
	feed.Emit(colorplace.Event{Kind: colorplace.EventCombo, Value: 3})
	feed.Emit(colorplace.Event{Kind: colorplace.EventBoardClear, Value: 100})

	want := []string{"Combo x3!", "Board clear +100"}
	got := feed.Lines()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Lines() = %q, want %q", got, want)
	}
	if flash := feed.Flash(); len(flash) != 1 || flash[0] != colorplace.At(1, 1) {
		t.Errorf("Flash() = %v, want [(1,1)]", flash)
	}

	feed.Reset()
	if len(feed.Lines()) != 0 || len(feed.Flash()) != 0 {
		t.Error("Reset() left entries behind")
	}
}

func TestLogSinkLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.InfoLevel)
	sink := NewLogSink(logger)

	sink.Emit(colorplace.Event{Kind: colorplace.EventTilePlaced, Label: "c1"})
	if buf.Len() != 0 {
		t.Errorf("debug event written at info level: %q", buf.String())
	}

	sink.Emit(colorplace.Event{Kind: colorplace.EventSaveFailed, Label: "disk full"})
	out := buf.String()
	if !strings.Contains(out, "progress not saved") || !strings.Contains(out, "disk full") {
		t.Errorf("save failure log = %q", out)
	}

	// A nil logger is allowed.
	NewLogSink(nil).Emit(colorplace.Event{Kind: colorplace.EventGameOver})
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 60, Seed: 7}
	return NewModel(config.DefaultColorPlaceConfig(), nil, cfg, nil)
}

func TestModelCursorStaysOnBoard(t *testing.T) {
	var model tea.Model = newTestModel(t)
	for range 7 {
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyUp})
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyLeft})
	}
	if got := model.(Model).cursor; got != colorplace.At(0, 0) {
		t.Errorf("cursor = %v, want (0,0)", got)
	}
	for range 7 {
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRight})
	}
	if got := model.(Model).cursor; got != colorplace.At(4, 4) {
		t.Errorf("cursor = %v, want (4,4)", got)
	}
}

func TestModelClickResolvesTurn(t *testing.T) {
	m := newTestModel(t)
	cells := colorplace.ModeCells(m.Game().Mode())
	if len(cells) == 0 {
		t.Fatal("new game offers no placement cells")
	}
	target := cells[0]

	click := tea.MouseMsg{
		X:      boardOriginX + target.C*cellW + 1,
		Y:      boardOriginY + target.R*cellH,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	}
	model, cmd := m.Update(click)
	if cmd == nil {
		t.Fatal("placement did not schedule a tick")
	}

	for i := 0; cmd != nil; i++ {
		if i > 100 {
			t.Fatal("turn never settled")
		}
		model, cmd = model.Update(TickMsg(time.Now()))
	}

	g := model.(Model).Game()
	if g.Turns() != 1 {
		t.Errorf("Turns() = %d, want 1", g.Turns())
	}
	if g.Busy() {
		t.Errorf("game still busy in phase %v", g.Phase())
	}
	if b := g.Board(); !b.IsOccupiedNonVoid(target) {
		t.Errorf("cell %v is empty after placement", target)
	}
}

func TestModelIgnoresInvalidClick(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if cmd != nil {
		t.Error("click outside the board scheduled a tick")
	}
	if m.Game().Turns() != 0 {
		t.Errorf("Turns() = %d, want 0", m.Game().Turns())
	}
}

func TestModelBackWhenEmbedded(t *testing.T) {
	m := newTestModel(t)
	m.embedded = true
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd != nil {
		t.Error("embedded back should not quit the program")
	}
	if !model.(Model).BackToMenu() {
		t.Error("BackToMenu() = false after esc")
	}
}
