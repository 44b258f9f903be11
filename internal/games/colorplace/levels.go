package colorplace

import (
	"github.com/vovakirdan/colorplace/internal/config"
)

// Level is one row of the score-to-feature table.
type Level struct {
	MinScore   int
	Colors     int
	AutoChange bool
	VoidBlocks bool
	Label      string
}

// LevelTable maps score to unlocked features. Levels are ordered by MinScore.
type LevelTable []Level

// NewLevelTable converts the configured levels.
func NewLevelTable(levels []config.ColorPlaceLevel) LevelTable {
	table := make(LevelTable, 0, len(levels))
	for _, l := range levels {
		table = append(table, Level{
			MinScore:   l.MinScore,
			Colors:     l.Colors,
			AutoChange: l.AutoChange,
			VoidBlocks: l.VoidBlocks,
			Label:      l.Label,
		})
	}
	return table
}

// Index returns the position of the highest level with MinScore <= score.
func (t LevelTable) Index(score int) int {
	idx := 0
	for i, l := range t {
		if score >= l.MinScore {
			idx = i
		}
	}
	return idx
}

// Active returns the level in force at score.
func (t LevelTable) Active(score int) Level {
	if len(t) == 0 {
		return Level{Colors: 4}
	}
	return t[t.Index(score)]
}

// Colors returns the colors in play at score.
func (t LevelTable) Colors(score int) []Color {
	return ActiveColors(t.Active(score).Colors)
}
