// Package config provides YAML-based rule configuration for Color Place:
// scoring constants, mission shapes, the level table, tile-type unlocks,
// skill weights and the pacing used by the terminal front end.
package config

import (
	"errors"
	"fmt"
)

// ColorPlaceConfig contains every tunable rule of the game.
type ColorPlaceConfig struct {
	Board     ColorPlaceBoard      `yaml:"board"`
	Scoring   ColorPlaceScoring    `yaml:"scoring"`
	Missions  ColorPlaceMissions   `yaml:"missions"`
	Levels    []ColorPlaceLevel    `yaml:"levels"`
	TileTypes []ColorPlaceTileType `yaml:"tile_types"`
	Skills    ColorPlaceSkills     `yaml:"skills"`
	Rules     ColorPlaceRules      `yaml:"rules"`
	Timing    ColorPlaceTiming     `yaml:"timing"`
}

// ColorPlaceBoard defines queue and generation parameters.
type ColorPlaceBoard struct {
	QueueSize        int `yaml:"queue_size"`        // Look-ahead slots, front is the current tile
	GenerateAttempts int `yaml:"generate_attempts"` // Retries per slot when refilling against the board
	MinMatch         int `yaml:"min_match"`         // Smallest removable group
}

// ColorPlaceScoring defines point values.
type ColorPlaceScoring struct {
	TilePoints      int     `yaml:"tile_points"`       // Per cleared tile, multiplied by combo
	SkillTilePoints int     `yaml:"skill_tile_points"` // Per tile removed by a scored skill
	BoardClearBonus int     `yaml:"board_clear_bonus"`
	CrossMultiplier float64 `yaml:"cross_multiplier"` // Permanent multiplier granted by the cross-clear unlock
}

// ColorPlaceMissions defines the mission catalog and its timeout.
type ColorPlaceMissions struct {
	TimeoutTurns int            `yaml:"timeout_turns"`
	StreakBonus  int            `yaml:"streak_bonus"` // Added to the base bonus on the second consecutive success
	Shapes       []MissionShape `yaml:"shapes"`
}

// MissionShape is a 3-cell target pattern given as (row, col) offsets.
type MissionShape struct {
	ID    string  `yaml:"id"`
	Name  string  `yaml:"name"`
	Cells [][]int `yaml:"cells"`
	Bonus int     `yaml:"bonus"`
}

// ColorPlaceLevel is one row of the score-to-feature table.
type ColorPlaceLevel struct {
	MinScore   int    `yaml:"min_score"`
	Colors     int    `yaml:"colors"`
	AutoChange bool   `yaml:"auto_change"`
	VoidBlocks bool   `yaml:"void_blocks"`
	Label      string `yaml:"label"`
}

// ColorPlaceTileType defines the draw weight and unlock threshold of a tile type.
type ColorPlaceTileType struct {
	Type        int    `yaml:"type"`
	Weight      int    `yaml:"weight"`
	UnlockGames int    `yaml:"unlock_games"`
	Name        string `yaml:"name"`
}

// ColorPlaceSkills defines the skill draw pool.
type ColorPlaceSkills struct {
	Pool   int `yaml:"pool"`   // Total mass of the draw, the unassigned rest means "no skill"
	Weight int `yaml:"weight"` // Mass contributed by each unlocked skill
}

// ColorChangePolicy selects which tiles the player may recolor after a match.
type ColorChangePolicy string

const (
	ColorChangeNeighbors ColorChangePolicy = "neighbors" // 8-neighbours of the last placed tile
	ColorChangeBoard     ColorChangePolicy = "board"     // any non-void tile
)

// ColorPlaceRules holds rule switches.
type ColorPlaceRules struct {
	ColorChange       ColorChangePolicy `yaml:"color_change"`
	VoidSpawnInterval int               `yaml:"void_spawn_interval"` // Placements between void spawns at the void level
}

// ColorPlaceTiming defines front-end pauses in milliseconds.
type ColorPlaceTiming struct {
	PlaceMS      int `yaml:"place_ms"`
	PopMS        int `yaml:"pop_ms"`
	ColorSwapMS  int `yaml:"color_swap_ms"`
	SkillMS      int `yaml:"skill_ms"`
	AutoChangeMS int `yaml:"auto_change_ms"`
	StepMS       int `yaml:"step_ms"`
}

// Validate reports every problem that would make the rules unplayable,
// joined into one error.
func (c ColorPlaceConfig) Validate() error {
	var errs []error

	if c.Board.QueueSize < 1 {
		errs = append(errs, fmt.Errorf("board.queue_size must be positive, got %d", c.Board.QueueSize))
	}
	if c.Board.GenerateAttempts < 1 {
		errs = append(errs, fmt.Errorf("board.generate_attempts must be positive, got %d", c.Board.GenerateAttempts))
	}
	if c.Board.MinMatch < 2 {
		errs = append(errs, fmt.Errorf("board.min_match must be at least 2, got %d", c.Board.MinMatch))
	}
	if len(c.Levels) == 0 {
		errs = append(errs, errors.New("levels must not be empty"))
	}
	for i, lvl := range c.Levels {
		if lvl.Colors < 1 || lvl.Colors > 7 {
			errs = append(errs, fmt.Errorf("levels[%d].colors must be within 1..7, got %d", i, lvl.Colors))
		}
		if i > 0 && lvl.MinScore <= c.Levels[i-1].MinScore {
			errs = append(errs, fmt.Errorf("levels[%d].min_score must be increasing", i))
		}
	}
	if len(c.Levels) > 0 && c.Levels[0].MinScore != 0 {
		errs = append(errs, errors.New("levels[0].min_score must be 0"))
	}

	baseType := false
	for i, tt := range c.TileTypes {
		if tt.Type < 1 || tt.Type > 6 {
			errs = append(errs, fmt.Errorf("tile_types[%d].type must be within 1..6, got %d", i, tt.Type))
		}
		if tt.Weight <= 0 {
			errs = append(errs, fmt.Errorf("tile_types[%d].weight must be positive", i))
		}
		if tt.UnlockGames == 0 {
			baseType = true
		}
	}
	if !baseType {
		errs = append(errs, errors.New("tile_types needs at least one type with unlock_games 0"))
	}

	if len(c.Missions.Shapes) == 0 {
		errs = append(errs, errors.New("missions.shapes must not be empty"))
	}
	for i, s := range c.Missions.Shapes {
		if len(s.Cells) == 0 {
			errs = append(errs, fmt.Errorf("missions.shapes[%d] has no cells", i))
		}
		for _, cell := range s.Cells {
			if len(cell) != 2 || cell[0] < 0 || cell[1] < 0 {
				errs = append(errs, fmt.Errorf("missions.shapes[%d] has a malformed cell %v", i, cell))
				break
			}
		}
	}

	if c.Skills.Pool <= 0 || c.Skills.Weight < 0 || c.Skills.Weight*17 > c.Skills.Pool {
		errs = append(errs, fmt.Errorf("skills: weight %d does not fit pool %d", c.Skills.Weight, c.Skills.Pool))
	}

	switch c.Rules.ColorChange {
	case ColorChangeNeighbors, ColorChangeBoard:
	default:
		errs = append(errs, fmt.Errorf("rules.color_change must be %q or %q, got %q",
			ColorChangeNeighbors, ColorChangeBoard, c.Rules.ColorChange))
	}
	if c.Rules.VoidSpawnInterval < 1 {
		errs = append(errs, fmt.Errorf("rules.void_spawn_interval must be positive, got %d", c.Rules.VoidSpawnInterval))
	}

	return errors.Join(errs...)
}
