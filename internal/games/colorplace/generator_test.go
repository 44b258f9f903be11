package colorplace

import (
	"testing"

	"github.com/vovakirdan/colorplace/internal/config"
)

func TestValidCells(t *testing.T) {
	tests := []struct {
		name  string
		board string
		tile  Tile
		want  int
	}{
		{
			name:  "free on empty board",
			board: "..... ..... ..... ..... .....",
			tile:  Tile{Shape: ShapeFree},
			want:  25,
		},
		{
			name:  "row with one occupied cell",
			board: "..... ..... 1.... ..... .....",
			tile:  Tile{Shape: ShapeLine, Dir: DirRow, Index: 2},
			want:  4,
		},
		{
			name:  "column blocked by void",
			board: "..... a.... ..... ..... .....",
			tile:  Tile{Shape: ShapeLine, Dir: DirCol, Index: 0},
			want:  4,
		},
		{
			name:  "cross counts the intersection once",
			board: "..... ..... ..... ..... .....",
			tile:  Tile{Shape: ShapeCross, Index: 1},
			want:  9,
		},
		{
			name:  "overwrite allows normal tiles but not voids",
			board: "1a... ..... ..... ..... .....",
			tile:  Tile{Shape: ShapeFree, Skill: SkillH1},
			want:  24,
		},
		{
			name:  "full row has no cells",
			board: "..... 12121 ..... ..... .....",
			tile:  Tile{Shape: ShapeLine, Dir: DirRow, Index: 1},
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ParseBoard(tt.board)
			cells := ValidCells(&b, tt.tile)
			if len(cells) != tt.want {
				t.Fatalf("ValidCells() = %d cells, want %d", len(cells), tt.want)
			}
			seen := make(map[Coord]bool)
			for _, c := range cells {
				if seen[c] {
					t.Errorf("duplicate cell %v", c)
				}
				seen[c] = true
			}
		})
	}
}

func TestTileTypeShapes(t *testing.T) {
	tests := []struct {
		typ   TileType
		shape Shape
		fixed bool
	}{
		{1, ShapeFree, true},
		{2, ShapeFree, false},
		{3, ShapeLine, true},
		{4, ShapeLine, false},
		{5, ShapeCross, true},
		{6, ShapeCross, false},
	}
	for _, tt := range tests {
		if got := tt.typ.Shape(); got != tt.shape {
			t.Errorf("TileType(%d).Shape() = %v, want %v", tt.typ, got, tt.shape)
		}
		if got := tt.typ.ColorFixed(); got != tt.fixed {
			t.Errorf("TileType(%d).ColorFixed() = %v, want %v", tt.typ, got, tt.fixed)
		}
	}
}

func TestPickTileType(t *testing.T) {
	cfg := config.DefaultColorPlaceConfig()

	t.Run("only type 3 before any unlock", func(t *testing.T) {
		gen := NewGenerator(cfg, NewSource(1))
		for range 200 {
			if got := gen.PickTileType(0); got != 3 {
				t.Fatalf("PickTileType(0) = %d, want 3", got)
			}
		}
	})

	t.Run("renormalized over unlocked types", func(t *testing.T) {
		// At 100 games types 3 (90) and 4 (2) are unlocked: total 92.
		src := &scriptedSource{floats: []float64{0.5, 0.99}}
		gen := NewGenerator(cfg, src)
		if got := gen.PickTileType(100); got != 3 {
			t.Errorf("roll 0.5: PickTileType(100) = %d, want 3", got)
		}
		if got := gen.PickTileType(100); got != 4 {
			t.Errorf("roll 0.99: PickTileType(100) = %d, want 4", got)
		}
	})
}

func TestPickSkill(t *testing.T) {
	cfg := config.DefaultColorPlaceConfig()

	t.Run("nothing unlocked", func(t *testing.T) {
		gen := NewGenerator(cfg, &scriptedSource{floats: []float64{0.9999}})
		p := DefaultProgress()
		if got := gen.PickSkill(&p); got != SkillNone {
			t.Errorf("PickSkill() = %q, want none", got)
		}
	})

	t.Run("one skill owns the top of the pool", func(t *testing.T) {
		p := DefaultProgress()
		p.UnlockedSkills = []SkillID{SkillS1}
		gen := NewGenerator(cfg, &scriptedSource{floats: []float64{0.5, 0.999}})
		if got := gen.PickSkill(&p); got != SkillNone {
			t.Errorf("roll 0.5: PickSkill() = %q, want none", got)
		}
		if got := gen.PickSkill(&p); got != SkillS1 {
			t.Errorf("roll 0.999: PickSkill() = %q, want s1", got)
		}
	})

	t.Run("catalog order with everything unlocked", func(t *testing.T) {
		p := DefaultProgress()
		for _, s := range Skills {
			p.UnlockedSkills = append(p.UnlockedSkills, s.ID)
		}
		// 17 x 25 = 425 units of skill mass at the top of 10000.
		gen := NewGenerator(cfg, &scriptedSource{floats: []float64{0.958, 0.99999}})
		if got := gen.PickSkill(&p); got != SkillS1 {
			t.Errorf("bottom of skill mass: PickSkill() = %q, want s1", got)
		}
		if got := gen.PickSkill(&p); got != SkillH4 {
			t.Errorf("top of skill mass: PickSkill() = %q, want h4", got)
		}
	})
}

func TestGenerateConstrained(t *testing.T) {
	cfg := config.DefaultColorPlaceConfig()
	gen := NewGenerator(cfg, NewSource(5))
	p := DefaultProgress()
	p.TotalGames = 1000

	// Only (3,3) is open.
	b := ParseBoard("12121 21212 12121 212.2 12121")
	for range 300 {
		tile, ok := gen.Generate(&b, ActiveColors(4), &p, true)
		if !ok {
			t.Fatal("Generate() failed although every shape has an open line")
		}
		if len(ValidCells(&b, tile)) == 0 {
			t.Fatalf("Generate() produced unplaceable tile %v", tile)
		}
		if tile.Type.ColorFixed() && !tile.Color.Valid() {
			t.Fatalf("color-fixed tile %v has no color", tile)
		}
		if !tile.Type.ColorFixed() && tile.Color != ColorNone {
			t.Fatalf("colorless tile %v got a color at generation", tile)
		}
	}
}

func TestRefill(t *testing.T) {
	cfg := config.DefaultColorPlaceConfig()
	gen := NewGenerator(cfg, NewSource(9))
	p := DefaultProgress()

	var empty Board
	queue := gen.Refill(nil, &empty, ActiveColors(4), &p, 3, 20)
	if len(queue) != 3 {
		t.Fatalf("Refill() on empty board = %d tiles, want 3", len(queue))
	}
	for _, tile := range queue {
		if tile.Type != 3 {
			t.Errorf("fresh player drew type %d, want 3", tile.Type)
		}
	}

	full := ParseBoard("12121 21212 12121 21212 12121")
	queue = gen.Refill(queue[:1], &full, ActiveColors(4), &p, 3, 20)
	if len(queue) != 1 {
		t.Errorf("Refill() on full board = %d tiles, want 1", len(queue))
	}
}

func TestIntRange(t *testing.T) {
	tests := []struct {
		lo, hi int
		ints   []int
		want   int
	}{
		{0, 4, []int{3}, 3},
		{2, 5, []int{0}, 2},
		{2, 5, []int{3}, 5},
		{7, 7, []int{9}, 7},
		{5, 1, nil, 5},
	}

	for _, tt := range tests {
		src := &scriptedSource{ints: tt.ints}
		if got := IntRange(src, tt.lo, tt.hi); got != tt.want {
			t.Errorf("IntRange(%d, %d) = %d, want %d", tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestGenerateUnconstrainedIndex(t *testing.T) {
	cfg := config.DefaultColorPlaceConfig()
	gen := NewGenerator(cfg, NewSource(11))
	p := DefaultProgress()
	p.TotalGames = 1000

	var b Board
	for range 500 {
		tile, ok := gen.Generate(&b, ActiveColors(4), &p, false)
		if !ok {
			t.Fatal("unconstrained Generate() failed")
		}
		if tile.Index < 0 || tile.Index >= BoardSize {
			t.Fatalf("tile %v has index %d outside the board", tile, tile.Index)
		}
	}
}
