package config

import (
	_ "embed"
)

//go:embed defaults/colorplace.yaml
var defaultColorPlaceYAML []byte

// DefaultColorPlaceConfig returns the default Color Place rules.
func DefaultColorPlaceConfig() ColorPlaceConfig {
	return ColorPlaceConfig{
		Board: ColorPlaceBoard{
			QueueSize:        3,
			GenerateAttempts: 20,
			MinMatch:         3,
		},
		Scoring: ColorPlaceScoring{
			TilePoints:      10,
			SkillTilePoints: 10,
			BoardClearBonus: 100,
			CrossMultiplier: 1.2,
		},
		Missions: ColorPlaceMissions{
			TimeoutTurns: 3,
			StreakBonus:  10,
			Shapes: []MissionShape{
				{ID: "h3", Name: "I horizontal", Cells: [][]int{{0, 0}, {0, 1}, {0, 2}}, Bonus: 30},
				{ID: "v3", Name: "I vertical", Cells: [][]int{{0, 0}, {1, 0}, {2, 0}}, Bonus: 30},
				{ID: "giyeok", Name: "L top-right", Cells: [][]int{{0, 0}, {0, 1}, {1, 1}}, Bonus: 40},
				{ID: "nieun", Name: "L bottom-left", Cells: [][]int{{0, 0}, {1, 0}, {1, 1}}, Bonus: 40},
				{ID: "giyeok_flip", Name: "L top-left", Cells: [][]int{{0, 0}, {0, 1}, {1, 0}}, Bonus: 40},
				{ID: "nieun_flip", Name: "L bottom-right", Cells: [][]int{{0, 1}, {1, 0}, {1, 1}}, Bonus: 40},
			},
		},
		Levels: []ColorPlaceLevel{
			{MinScore: 0, Colors: 4},
			{MinScore: 500, Colors: 5, Label: "New color!"},
			{MinScore: 1000, Colors: 6, Label: "New color!"},
			{MinScore: 1500, Colors: 6, AutoChange: true, Label: "Auto recolor!"},
			{MinScore: 2000, Colors: 7, AutoChange: true, Label: "New color!"},
			{MinScore: 2500, Colors: 7, AutoChange: true, VoidBlocks: true, Label: "Void blocks!"},
		},
		TileTypes: []ColorPlaceTileType{
			{Type: 3, Weight: 90, UnlockGames: 0, Name: "Line (fixed color)"},
			{Type: 4, Weight: 2, UnlockGames: 100, Name: "Line (random color)"},
			{Type: 5, Weight: 2, UnlockGames: 200, Name: "Cross (fixed color)"},
			{Type: 6, Weight: 2, UnlockGames: 300, Name: "Cross (random color)"},
			{Type: 1, Weight: 2, UnlockGames: 500, Name: "Free (fixed color)"},
			{Type: 2, Weight: 2, UnlockGames: 1000, Name: "Free (random color)"},
		},
		Skills: ColorPlaceSkills{
			Pool:   10000,
			Weight: 25,
		},
		Rules: ColorPlaceRules{
			ColorChange:       ColorChangeNeighbors,
			VoidSpawnInterval: 5,
		},
		Timing: ColorPlaceTiming{
			PlaceMS:      300,
			PopMS:        450,
			ColorSwapMS:  600,
			SkillMS:      550,
			AutoChangeMS: 600,
			StepMS:       60,
		},
	}
}

// GetDefaultYAML returns the embedded default rules file.
func GetDefaultYAML() []byte {
	return defaultColorPlaceYAML
}
