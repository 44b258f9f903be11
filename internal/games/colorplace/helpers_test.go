package colorplace

import (
	"testing"

	"github.com/vovakirdan/colorplace/internal/config"
	"github.com/vovakirdan/colorplace/internal/core"
)

// scriptedSource replays fixed values, then falls back to zeros.
type scriptedSource struct {
	floats []float64
	ints   []int
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedSource) Intn(n int) int {
	if len(s.ints) == 0 || n <= 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

// unreachable is a mission no test board completes by accident.
var unreachable = Mission{
	ID:    "square",
	Name:  "Square",
	Cells: []Coord{At(0, 0), At(0, 1), At(1, 0), At(1, 1), At(2, 2)},
	Bonus: 50,
}

type recorder struct {
	events []Event
}

func (r *recorder) Emit(e Event) { r.events = append(r.events, e) }

func (r *recorder) count(kind EventKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func newTestGame(t *testing.T, store ProgressStore) (*Game, *recorder) {
	t.Helper()
	rec := &recorder{}
	g := New(config.DefaultColorPlaceConfig(), store, rec)
	g.Reset(core.RuntimeConfig{Seed: 1})
	g.missions.current = unreachable
	rec.events = nil
	return g, rec
}

// arrange replaces the board and queue and re-arms input.
func arrange(g *Game, board string, queue ...Tile) {
	g.board = ParseBoard(board)
	g.queue = queue
	g.enterIdle()
}

func free(color Color, skill SkillID) Tile {
	return Tile{Type: 1, Shape: ShapeFree, Color: color, Skill: skill}
}

func mustClick(t *testing.T, g *Game, c Coord) {
	t.Helper()
	if !g.Click(c) {
		t.Fatalf("Click(%v) rejected in mode %T, phase %v", c, g.Mode(), g.Phase())
	}
}

func stepPhases(g *Game) []Phase {
	var phases []Phase
	for g.Step() {
		phases = append(phases, g.Phase())
	}
	return phases
}
