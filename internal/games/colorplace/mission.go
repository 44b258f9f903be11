package colorplace

import (
	"slices"

	"github.com/vovakirdan/colorplace/internal/config"
)

// Mission is a target shape to clear in a single removal step.
type Mission struct {
	ID    string
	Name  string
	Cells []Coord // Offsets relative to the top-left of the shape
	Bonus int
}

// MissionsFromConfig converts the configured shapes.
func MissionsFromConfig(cfg config.ColorPlaceMissions) []Mission {
	missions := make([]Mission, 0, len(cfg.Shapes))
	for _, s := range cfg.Shapes {
		m := Mission{ID: s.ID, Name: s.Name, Bonus: s.Bonus}
		for _, cell := range s.Cells {
			if len(cell) == 2 {
				m.Cells = append(m.Cells, At(cell[0], cell[1]))
			}
		}
		missions = append(missions, m)
	}
	return missions
}

// Rotations returns the four 90-degree rotations of cells, each shifted so
// its smallest row and column are zero.
func Rotations(cells []Coord) [][]Coord {
	rots := make([][]Coord, 0, 4)
	cur := cells
	for range 4 {
		rots = append(rots, normalize(cur))
		next := make([]Coord, len(cur))
		for i, c := range cur {
			next[i] = Coord{R: c.C, C: -c.R}
		}
		cur = next
	}
	return rots
}

func normalize(cells []Coord) []Coord {
	if len(cells) == 0 {
		return nil
	}
	minR, minC := cells[0].R, cells[0].C
	for _, c := range cells[1:] {
		minR = min(minR, c.R)
		minC = min(minC, c.C)
	}
	out := make([]Coord, len(cells))
	for i, c := range cells {
		out[i] = Coord{R: c.R - minR, C: c.C - minC}
	}
	sortCoords(out)
	return out
}

// MatchedBy reports whether some rotation of the mission, translated so its
// first cell lands on a removed cell, fits entirely inside removed.
func (m Mission) MatchedBy(removed []Coord) bool {
	if len(m.Cells) == 0 {
		return false
	}
	for _, rot := range Rotations(m.Cells) {
		for _, anchor := range removed {
			// Any cell of the shape may sit on the anchor.
			for _, pivot := range rot {
				dr, dc := anchor.R-pivot.R, anchor.C-pivot.C
				fits := true
				for _, cell := range rot {
					if !slices.Contains(removed, cell.Add(dr, dc)) {
						fits = false
						break
					}
				}
				if fits {
					return true
				}
			}
		}
	}
	return false
}

// MissionTracker holds the active mission, the success streak and the
// timeout counter.
type MissionTracker struct {
	catalog    []Mission
	current    Mission
	streak     int
	turns      int
	timeout    int
	streakStep int
	rng        Source
}

// NewMissionTracker creates a tracker and draws the first mission.
func NewMissionTracker(cfg config.ColorPlaceMissions, rng Source) *MissionTracker {
	t := &MissionTracker{
		catalog:    MissionsFromConfig(cfg),
		timeout:    cfg.TimeoutTurns,
		streakStep: cfg.StreakBonus,
		rng:        rng,
	}
	t.Next()
	return t
}

// Next draws a uniformly random mission and resets the timeout counter.
func (t *MissionTracker) Next() Mission {
	if len(t.catalog) > 0 {
		t.current = pick(t.rng, t.catalog)
	}
	t.turns = 0
	return t.current
}

// Current returns the active mission.
func (t *MissionTracker) Current() Mission { return t.current }

// Streak returns the number of consecutive successes.
func (t *MissionTracker) Streak() int { return t.streak }

// Turns returns the placements since the mission was drawn.
func (t *MissionTracker) Turns() int { return t.turns }

// Bonus returns what completing the active mission would pay now.
func (t *MissionTracker) Bonus() int {
	base := t.current.Bonus
	switch {
	case t.streak >= 2:
		return base * 2
	case t.streak == 1:
		return base + t.streakStep
	default:
		return base
	}
}

// Complete checks the removed cells against the active mission. On success
// it returns the bonus earned, bumps the streak and draws a new mission.
func (t *MissionTracker) Complete(removed []Coord) (bool, int) {
	if !t.current.MatchedBy(removed) {
		return false, 0
	}
	bonus := t.Bonus()
	t.streak++
	t.Next()
	return true, bonus
}

// Turn records one placement.
func (t *MissionTracker) Turn() {
	t.turns++
}

// Expire replaces the mission and breaks the streak once the timeout has
// elapsed. It reports whether that happened.
func (t *MissionTracker) Expire() bool {
	if t.turns < t.timeout {
		return false
	}
	t.streak = 0
	t.Next()
	return true
}

// HiddenClears records the hidden-mission patterns seen after a placement.
type HiddenClears struct {
	Row   bool
	Col   bool
	Cross bool
}

// CheckHiddenMissions looks for a uniform full row, a uniform full column,
// and a uniform cross through the placed tile. Cross only counts for tiles
// placed by the player.
func CheckHiddenMissions(b *Board, placed Coord, bySkill bool) HiddenClears {
	var h HiddenClears
	for i := range BoardSize {
		if b.rowUniform(i) {
			h.Row = true
		}
		if b.colUniform(i) {
			h.Col = true
		}
	}
	if !bySkill && placed.InBounds() && b.IsOccupiedNonVoid(placed) {
		color := b.At(placed).Color
		if b.rowUniform(placed.R) && b.colUniform(placed.C) &&
			b[placed.R][0].Color == color && b[0][placed.C].Color == color {
			h.Cross = true
		}
	}
	return h
}
