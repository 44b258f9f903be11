package colorplace

import (
	"testing"

	"github.com/vovakirdan/colorplace/internal/config"
)

func TestRotations(t *testing.T) {
	rots := Rotations([]Coord{At(0, 0), At(0, 1), At(0, 2)})
	if len(rots) != 4 {
		t.Fatalf("Rotations() = %d variants, want 4", len(rots))
	}
	vertical := []Coord{At(0, 0), At(1, 0), At(2, 0)}
	for i, want := range [][]Coord{rots[0], vertical, rots[0], vertical} {
		for j := range want {
			if rots[i][j] != want[j] {
				t.Errorf("rotation %d = %v, want %v", i, rots[i], want)
				break
			}
		}
	}
	for i, rot := range rots {
		for _, c := range rot {
			if c.R < 0 || c.C < 0 {
				t.Errorf("rotation %d not normalized: %v", i, rot)
			}
		}
	}
}

func TestMissionRotationInvariance(t *testing.T) {
	for _, m := range MissionsFromConfig(config.DefaultColorPlaceConfig().Missions) {
		t.Run(m.ID, func(t *testing.T) {
			for ri, rot := range Rotations(m.Cells) {
				for dr := range BoardSize {
					for dc := range BoardSize {
						placed := make([]Coord, 0, len(rot))
						fits := true
						for _, c := range rot {
							p := c.Add(dr, dc)
							if !p.InBounds() {
								fits = false
								break
							}
							placed = append(placed, p)
						}
						if !fits {
							continue
						}
						if !m.MatchedBy(placed) {
							t.Fatalf("rotation %d at (%d,%d) not detected: %v", ri, dr, dc, placed)
						}
						withExtra := append(append([]Coord(nil), placed...), At(4, 4), At(0, 0))
						if !m.MatchedBy(withExtra) {
							t.Fatalf("rotation %d at (%d,%d) missed inside a larger removal", ri, dr, dc)
						}
						for skip := range placed {
							subset := make([]Coord, 0, len(placed)-1)
							for i, c := range placed {
								if i != skip {
									subset = append(subset, c)
								}
							}
							if m.MatchedBy(subset) {
								t.Fatalf("strict subset %v matched %s", subset, m.ID)
							}
						}
					}
				}
			}
		})
	}
}

func TestMissionStreakBonus(t *testing.T) {
	cfg := config.DefaultColorPlaceConfig().Missions
	tracker := NewMissionTracker(cfg, NewSource(4))

	complete := func() int {
		t.Helper()
		base := tracker.Current().Bonus
		ok, bonus := tracker.Complete(tracker.Current().Cells)
		if !ok {
			t.Fatalf("Complete(%v) = false", tracker.Current().Cells)
		}
		if tracker.Turns() != 0 {
			t.Errorf("Turns() after success = %d, want 0", tracker.Turns())
		}
		return bonus - base
	}

	if extra := complete(); extra != 0 {
		t.Errorf("first success paid base%+d, want base", extra)
	}
	if extra := complete(); extra != cfg.StreakBonus {
		t.Errorf("second success paid base%+d, want base+%d", extra, cfg.StreakBonus)
	}
	base := tracker.Current().Bonus
	_, bonus := tracker.Complete(tracker.Current().Cells)
	if bonus != base*2 {
		t.Errorf("third success bonus = %d, want %d", bonus, base*2)
	}
	if tracker.Streak() != 3 {
		t.Errorf("Streak() = %d, want 3", tracker.Streak())
	}
}

func TestMissionExpire(t *testing.T) {
	tracker := NewMissionTracker(config.DefaultColorPlaceConfig().Missions, NewSource(2))
	tracker.Complete(tracker.Current().Cells)

	tracker.Turn()
	tracker.Turn()
	if tracker.Expire() {
		t.Fatal("Expire() after 2 turns = true")
	}
	tracker.Turn()
	if !tracker.Expire() {
		t.Fatal("Expire() after 3 turns = false")
	}
	if tracker.Streak() != 0 {
		t.Errorf("Streak() after timeout = %d, want 0", tracker.Streak())
	}
	if tracker.Turns() != 0 {
		t.Errorf("Turns() after timeout = %d, want 0", tracker.Turns())
	}
}

func TestCheckHiddenMissions(t *testing.T) {
	tests := []struct {
		name    string
		board   string
		placed  Coord
		bySkill bool
		want    HiddenClears
	}{
		{
			name:   "uniform row",
			board:  "33333 ..... ..... ..... .....",
			placed: At(0, 4),
			want:   HiddenClears{Row: true},
		},
		{
			name:   "uniform column",
			board:  "2.... 2.... 2.... 2.... 2....",
			placed: At(4, 0),
			want:   HiddenClears{Col: true},
		},
		{
			name:   "row with a void does not count",
			board:  "333c3 ..... ..... ..... .....",
			placed: At(0, 4),
		},
		{
			name:   "cross through the placed tile",
			board:  "..1.. ..1.. 11111 ..1.. ..1..",
			placed: At(2, 2),
			want:   HiddenClears{Row: true, Col: true, Cross: true},
		},
		{
			name:    "cross placed by a skill",
			board:   "..1.. ..1.. 11111 ..1.. ..1..",
			placed:  At(2, 2),
			bySkill: true,
			want:    HiddenClears{Row: true, Col: true},
		},
		{
			name:   "row and column in different colors",
			board:  "..2.. ..2.. 11211 ..2.. ..2..",
			placed: At(2, 2),
			want:   HiddenClears{Col: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ParseBoard(tt.board)
			if got := CheckHiddenMissions(&b, tt.placed, tt.bySkill); got != tt.want {
				t.Errorf("CheckHiddenMissions() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
