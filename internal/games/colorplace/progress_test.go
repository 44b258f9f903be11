package colorplace

import (
	"slices"
	"testing"

	"github.com/vovakirdan/colorplace/internal/config"
)

func unlockedSkills(unlocks []Unlock) []SkillID {
	var ids []SkillID
	for _, u := range unlocks {
		if u.Kind == UnlockSkill {
			ids = append(ids, u.Skill)
		}
	}
	return ids
}

func TestSettle(t *testing.T) {
	cfg := config.DefaultColorPlaceConfig()

	tests := []struct {
		name    string
		before  Progress
		summary SessionSummary
		want    []SkillID
	}{
		{
			name:    "quiet game unlocks nothing",
			before:  DefaultProgress(),
			summary: SessionSummary{Score: 120, MaxCombo: 2},
		},
		{
			name:    "combos and board clear",
			before:  DefaultProgress(),
			summary: SessionSummary{Score: 400, MaxCombo: 5, Stats: SessionStats{BoardCleared: true}},
			want:    []SkillID{SkillS2, SkillS3, SkillS4, SkillS1},
		},
		{
			name:    "zero score",
			before:  DefaultProgress(),
			summary: SessionSummary{},
			want:    []SkillID{SkillH1},
		},
		{
			name:    "row and column clears",
			before:  DefaultProgress(),
			summary: SessionSummary{Score: 10, Stats: SessionStats{RowCleared: true, ColCleared: true}},
			want:    []SkillID{SkillH2, SkillH3},
		},
		{
			name: "lifetime color collection",
			before: Progress{
				ScoreMultiplier: 1,
				ColorCollected:  ColorCounts{C5: 95, C6: 300, C7: 499},
			},
			summary: SessionSummary{Score: 10, Stats: SessionStats{Collected: ColorCounts{C5: 10, C7: 1}}},
			want:    []SkillID{SkillS5, SkillS6, SkillS7, SkillS9, SkillS10, SkillS13},
		},
		{
			name: "already unlocked skills are not repeated",
			before: Progress{
				ScoreMultiplier: 1,
				UnlockedSkills:  []SkillID{SkillS2},
				Achievements:    Achievements{Combo3: true},
			},
			summary: SessionSummary{Score: 10, MaxCombo: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			after, unlocks := Settle(tt.before, tt.summary, cfg)
			got := unlockedSkills(unlocks)
			if !slices.Equal(got, tt.want) {
				t.Errorf("unlocked %v, want %v", got, tt.want)
			}
			if after.TotalGames != tt.before.TotalGames+1 {
				t.Errorf("TotalGames = %d, want %d", after.TotalGames, tt.before.TotalGames+1)
			}
			if after.HighScore != max(tt.before.HighScore, tt.summary.Score) {
				t.Errorf("HighScore = %d, want %d", after.HighScore, max(tt.before.HighScore, tt.summary.Score))
			}
			for _, id := range tt.want {
				if !after.HasSkill(id) {
					t.Errorf("HasSkill(%q) = false after unlock", id)
				}
			}
		})
	}
}

func TestSettleCrossMultiplierOnce(t *testing.T) {
	cfg := config.DefaultColorPlaceConfig()
	summary := SessionSummary{Score: 50, Stats: SessionStats{CrossCleared: true}}

	p, unlocks := Settle(DefaultProgress(), summary, cfg)
	if p.ScoreMultiplier != cfg.Scoring.CrossMultiplier {
		t.Errorf("ScoreMultiplier = %v, want %v", p.ScoreMultiplier, cfg.Scoring.CrossMultiplier)
	}
	if !p.Hidden.CrossClear || !p.HasSkill(SkillH4) {
		t.Error("cross clear did not unlock h4")
	}
	kinds := 0
	for _, u := range unlocks {
		if u.Kind == UnlockMultiplier {
			kinds++
		}
	}
	if kinds != 1 {
		t.Errorf("multiplier unlocks = %d, want 1", kinds)
	}

	_, again := Settle(p, summary, cfg)
	if len(again) != 0 {
		t.Errorf("second cross clear unlocked %v, want nothing", again)
	}
}

func TestSettleTileUnlock(t *testing.T) {
	cfg := config.DefaultColorPlaceConfig()
	p := DefaultProgress()
	p.TotalGames = 99

	_, unlocks := Settle(p, SessionSummary{Score: 10}, cfg)
	if len(unlocks) != 1 || unlocks[0].Kind != UnlockTile || unlocks[0].Tile != 4 {
		t.Errorf("unlocks at 100 games = %+v, want tile type 4", unlocks)
	}
}

func TestNormalize(t *testing.T) {
	p := Progress{
		TotalGames:      -3,
		HighScore:       -1,
		UnlockedSkills:  []SkillID{SkillH2, "bogus", SkillS1, SkillH2},
		ColorCollected:  ColorCounts{C5: -10, C6: 4},
		ScoreMultiplier: 0,
	}
	got := p.Normalize()

	if got.TotalGames != 0 || got.HighScore != 0 {
		t.Errorf("counters = %d/%d, want 0/0", got.TotalGames, got.HighScore)
	}
	if got.ColorCollected != (ColorCounts{C6: 4}) {
		t.Errorf("ColorCollected = %+v, want {C6:4}", got.ColorCollected)
	}
	if got.ScoreMultiplier != 1 {
		t.Errorf("ScoreMultiplier = %v, want 1", got.ScoreMultiplier)
	}
	if want := []SkillID{SkillS1, SkillH2}; !slices.Equal(got.UnlockedSkills, want) {
		t.Errorf("UnlockedSkills = %v, want %v", got.UnlockedSkills, want)
	}
}

func TestProgressItemsMaskHidden(t *testing.T) {
	cfg := config.DefaultColorPlaceConfig()
	p := DefaultProgress()
	p.Hidden.RowClear = true
	p.UnlockedSkills = []SkillID{SkillH2}

	masked := 0
	for _, item := range ProgressItems(p, cfg) {
		if item.Section != "Hidden" {
			continue
		}
		if item.Name == "???" {
			masked++
			if item.Done {
				t.Error("masked item reported done")
			}
		} else if item.Name != "Row Clear" {
			t.Errorf("revealed hidden item %q, want Row Clear", item.Name)
		}
	}
	if masked != 3 {
		t.Errorf("masked hidden items = %d, want 3", masked)
	}
}

func TestMemoryStoreCopies(t *testing.T) {
	store := NewMemoryStore(DefaultProgress())
	p, _ := store.LoadProgress()
	p.UnlockedSkills = append(p.UnlockedSkills, SkillS1)
	if err := store.SaveProgress(p); err != nil {
		t.Fatalf("SaveProgress() error = %v", err)
	}
	p.UnlockedSkills[0] = SkillS2

	loaded, _ := store.LoadProgress()
	if !loaded.HasSkill(SkillS1) || loaded.HasSkill(SkillS2) {
		t.Errorf("stored skills = %v, want [s1]", loaded.UnlockedSkills)
	}
	if store.Saves() != 1 {
		t.Errorf("Saves() = %d, want 1", store.Saves())
	}
}
