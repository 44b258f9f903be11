package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := decode(GetDefaultYAML())
	if err != nil {
		t.Fatalf("decode(embedded) failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultColorPlaceConfig()) {
		t.Errorf("embedded defaults differ from DefaultColorPlaceConfig():\n got %+v\nwant %+v", cfg, DefaultColorPlaceConfig())
	}
}

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultColorPlaceConfig().Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestLoadCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	data := []byte("scoring:\n  board_clear_bonus: 250\nrules:\n  color_change: board\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadColorPlace(path)
	if err != nil {
		t.Fatalf("LoadColorPlace() failed: %v", err)
	}
	if cfg.Scoring.BoardClearBonus != 250 {
		t.Errorf("BoardClearBonus = %d, want 250", cfg.Scoring.BoardClearBonus)
	}
	if cfg.Rules.ColorChange != ColorChangeBoard {
		t.Errorf("ColorChange = %q, want %q", cfg.Rules.ColorChange, ColorChangeBoard)
	}
	// Untouched sections keep their defaults.
	if cfg.Scoring.TilePoints != 10 {
		t.Errorf("TilePoints = %d, want 10", cfg.Scoring.TilePoints)
	}
	if len(cfg.Levels) != 6 {
		t.Errorf("len(Levels) = %d, want 6", len(cfg.Levels))
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadColorPlace(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadColorPlace(missing) returned nil error")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("board: [not, a, map"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := LoadColorPlace(bad); err == nil || !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("LoadColorPlace(bad) error = %v, want parse error", err)
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("rules:\n  color_change: everywhere\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := LoadColorPlace(invalid); err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Errorf("LoadColorPlace(invalid) error = %v, want validation error", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ColorPlaceConfig)
		want   string
	}{
		{"zero queue", func(c *ColorPlaceConfig) { c.Board.QueueSize = 0 }, "queue_size"},
		{"no levels", func(c *ColorPlaceConfig) { c.Levels = nil }, "levels must not be empty"},
		{"unsorted levels", func(c *ColorPlaceConfig) { c.Levels[2].MinScore = 100 }, "increasing"},
		{"too many colors", func(c *ColorPlaceConfig) { c.Levels[0].Colors = 8 }, "colors"},
		{"no base tile", func(c *ColorPlaceConfig) { c.TileTypes = c.TileTypes[1:] }, "unlock_games 0"},
		{"bad shape cell", func(c *ColorPlaceConfig) { c.Missions.Shapes[0].Cells[1] = []int{1} }, "malformed"},
		{"skill pool too small", func(c *ColorPlaceConfig) { c.Skills.Pool = 100 }, "skills"},
		{"void interval", func(c *ColorPlaceConfig) { c.Rules.VoidSpawnInterval = 0 }, "void_spawn_interval"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultColorPlaceConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := DefaultColorPlaceConfig()
	cfg.Board.QueueSize = 0
	cfg.Rules.VoidSpawnInterval = 0
	cfg.Rules.ColorChange = "anywhere"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	for _, want := range []string{"queue_size", "void_spawn_interval", "color_change"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() = %v, missing %q", err, want)
		}
	}
}
