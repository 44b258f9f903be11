package tui

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/colorplace/internal/games/colorplace"
)

// LogSink writes game events to a structured logger.
type LogSink struct {
	logger *log.Logger
}

// NewLogSink adapts logger to colorplace.Sink. A nil logger yields a sink
// that drops everything.
func NewLogSink(logger *log.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Emit logs e at a level matching its weight.
func (s *LogSink) Emit(e colorplace.Event) {
	if s == nil || s.logger == nil {
		return
	}

	kv := []any{"kind", string(e.Kind)}
	if e.Label != "" {
		kv = append(kv, "label", e.Label)
	}
	if e.Skill != colorplace.SkillNone {
		kv = append(kv, "skill", string(e.Skill))
	}
	if e.Value != 0 {
		kv = append(kv, "value", e.Value)
	}
	if len(e.Cells) > 0 {
		kv = append(kv, "cells", fmt.Sprint(e.Cells))
	}

	switch e.Kind {
	case colorplace.EventSaveFailed:
		s.logger.Warn("progress not saved", kv...)
	case colorplace.EventLevelUp, colorplace.EventGameOver, colorplace.EventUnlocked, colorplace.EventBoardClear:
		s.logger.Info("game event", kv...)
	default:
		s.logger.Debug("game event", kv...)
	}
}

// Feed keeps the last few announcements for the HUD, plus the cells touched
// by the most recent event so the board can flash them.
type Feed struct {
	lines []string
	limit int
	flash []colorplace.Coord
}

// NewFeed creates a feed holding up to limit lines.
func NewFeed(limit int) *Feed {
	return &Feed{limit: max(1, limit)}
}

// Emit records the announcement for e, if it has one.
func (f *Feed) Emit(e colorplace.Event) {
	if len(e.Cells) > 0 {
		f.flash = append(f.flash[:0], e.Cells...)
	}
	msg := Announce(e)
	if msg == "" {
		return
	}
	f.lines = append(f.lines, msg)
	if len(f.lines) > f.limit {
		f.lines = f.lines[len(f.lines)-f.limit:]
	}
}

// Lines returns the buffered announcements, oldest first.
func (f *Feed) Lines() []string {
	return f.lines
}

// Flash returns the cells of the last event that carried any.
func (f *Feed) Flash() []colorplace.Coord {
	return f.flash
}

// Reset clears the feed for a new game.
func (f *Feed) Reset() {
	f.lines = f.lines[:0]
	f.flash = f.flash[:0]
}

// Announce renders an event as a short player-facing line. Events that
// are only visible on the board return "".
func Announce(e colorplace.Event) string {
	switch e.Kind {
	case colorplace.EventSkillFired:
		return "Skill: " + e.Label
	case colorplace.EventSkillRemoved:
		if e.Value > 0 {
			return fmt.Sprintf("%s +%d", e.Label, e.Value)
		}
	case colorplace.EventDropper:
		return "Dropper picked " + e.Label
	case colorplace.EventMatchRemoved:
		return fmt.Sprintf("Match %d tiles +%d", len(e.Cells), e.Value)
	case colorplace.EventCombo:
		return fmt.Sprintf("Combo x%d!", e.Value)
	case colorplace.EventMissionComplete:
		return fmt.Sprintf("Mission %s +%d", e.Label, e.Value)
	case colorplace.EventMissionExpired:
		return "Mission expired"
	case colorplace.EventLevelUp:
		if e.Label != "" {
			return fmt.Sprintf("Level %d: %s", e.Value, e.Label)
		}
		return fmt.Sprintf("Level %d", e.Value)
	case colorplace.EventBoardClear:
		return fmt.Sprintf("Board clear +%d", e.Value)
	case colorplace.EventVoidCracked:
		return "Void cracked"
	case colorplace.EventVoidSpawned:
		return "Void block!"
	case colorplace.EventAutoChanged:
		return "Auto recolor to " + e.Label
	case colorplace.EventUnlocked:
		return "Unlocked: " + e.Label
	case colorplace.EventSaveFailed:
		return "Save failed: " + e.Label
	case colorplace.EventGameOver:
		return fmt.Sprintf("Game over, score %d", e.Value)
	}
	return ""
}
