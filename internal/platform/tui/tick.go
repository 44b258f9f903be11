// Package tui provides the Bubble Tea front end for Color Place.
// It handles the terminal UI loop, input mapping and turn pacing.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/colorplace/internal/config"
	"github.com/vovakirdan/colorplace/internal/games/colorplace"
)

// TickMsg is sent to advance a resolving turn by one step.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends a single tick after d.
func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// phaseDelay returns how long to show the board before running the step
// that leaves phase p. The delay never drops below one frame at tickRate.
func phaseDelay(p colorplace.Phase, timing config.ColorPlaceTiming, tickRate int) time.Duration {
	var ms int
	switch p {
	case colorplace.PhasePlaced:
		ms = timing.PlaceMS
	case colorplace.PhaseCascade:
		ms = timing.PopMS
	case colorplace.PhaseImmediateSkill, colorplace.PhasePendingSkill:
		ms = timing.SkillMS
	case colorplace.PhaseColorChange:
		ms = timing.ColorSwapMS
	case colorplace.PhaseAutoChange:
		ms = timing.AutoChangeMS
	default:
		ms = timing.StepMS
	}

	d := time.Duration(ms) * time.Millisecond
	if tickRate > 0 {
		d = max(d, time.Second/time.Duration(tickRate))
	}
	return d
}
