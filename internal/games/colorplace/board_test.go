package colorplace

import (
	"slices"
	"testing"
)

func TestFindMatchGroups(t *testing.T) {
	tests := []struct {
		name   string
		board  string
		sizes  []int
		colors []Color
	}{
		{
			name:   "row of three",
			board:  "111.. ..... ..... ..... .....",
			sizes:  []int{3},
			colors: []Color{C1},
		},
		{
			name:  "pair is not a match",
			board: "11... ..... ..... ..... .....",
		},
		{
			name:  "diagonals do not connect",
			board: "1.... .1... ..1.. ..... .....",
		},
		{
			name:  "void is a wall",
			board: "11a11 ..... ..... ..... .....",
		},
		{
			name:   "L shape",
			board:  "1.... 1.... 11... ..... .....",
			sizes:  []int{4},
			colors: []Color{C1},
		},
		{
			name:   "two disjoint groups",
			board:  "111.. ..... ..... ..... ..222",
			sizes:  []int{3, 3},
			colors: []Color{C1, C2},
		},
		{
			name:   "same color disconnected",
			board:  "111.. ..... ..... ..... ..111",
			sizes:  []int{3, 3},
			colors: []Color{C1, C1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ParseBoard(tt.board)
			groups := b.FindMatchGroups(3)
			if len(groups) != len(tt.sizes) {
				t.Fatalf("FindMatchGroups() found %d groups, want %d", len(groups), len(tt.sizes))
			}
			for i, g := range groups {
				if len(g.Cells) != tt.sizes[i] {
					t.Errorf("group %d size = %d, want %d", i, len(g.Cells), tt.sizes[i])
				}
				if g.Color != tt.colors[i] {
					t.Errorf("group %d color = %v, want %v", i, g.Color, tt.colors[i])
				}
			}
		})
	}
}

func randomBoard(src Source) Board {
	var b Board
	for r := range BoardSize {
		for c := range BoardSize {
			switch roll := src.Intn(10); {
			case roll < 3:
			case roll == 3:
				b[r][c] = VoidCell(Color(1 + src.Intn(3)))
			default:
				b[r][c] = TileCell(Color(1 + src.Intn(3)))
			}
		}
	}
	return b
}

func TestMatchGroupValidity(t *testing.T) {
	src := NewSource(7)
	for range 300 {
		b := randomBoard(src)
		for _, g := range b.FindMatchGroups(3) {
			if len(g.Cells) < 3 {
				t.Fatalf("group smaller than 3 on\n%s", b.String())
			}
			for _, c := range g.Cells {
				cell := b.At(c)
				if cell.Void || !cell.Filled {
					t.Fatalf("group holds non-matchable cell %v on\n%s", c, b.String())
				}
				if cell.Color != g.Color {
					t.Fatalf("group of %v holds %v at %v", g.Color, cell.Color, c)
				}
			}

			// Every cell must be reachable from the first through the group.
			seen := map[Coord]bool{g.Cells[0]: true}
			stack := []Coord{g.Cells[0]}
			for len(stack) > 0 {
				cur := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				for _, d := range orthogonal {
					n := cur.Add(d[0], d[1])
					if slices.Contains(g.Cells, n) && !seen[n] {
						seen[n] = true
						stack = append(stack, n)
					}
				}
			}
			if len(seen) != len(g.Cells) {
				t.Fatalf("group not 4-connected on\n%s", b.String())
			}
		}
	}
}

func TestCascadeTerminates(t *testing.T) {
	src := NewSource(11)
	for range 100 {
		b := randomBoard(src)
		for rounds := 0; ; rounds++ {
			if rounds > BoardSize*BoardSize {
				t.Fatalf("cascade did not terminate on\n%s", b.String())
			}
			groups := b.FindMatchGroups(3)
			if len(groups) == 0 {
				break
			}
			before := b.FilledCount()
			var removed []Coord
			for _, g := range groups {
				removed = append(removed, g.Cells...)
			}
			b.CrackAdjacentVoids(removed)
			b.Remove(removed)
			if got := b.FilledCount(); got != before-len(removed) {
				t.Fatalf("FilledCount after removal = %d, want %d", got, before-len(removed))
			}
		}
	}
}

func TestCrackAdjacentVoids(t *testing.T) {
	b := ParseBoard("111a. ...b. ..... ..... .....")
	removed := []Coord{At(0, 0), At(0, 1), At(0, 2)}

	cracked := b.CrackAdjacentVoids(removed)
	if len(cracked) != 1 || cracked[0] != At(0, 3) {
		t.Fatalf("CrackAdjacentVoids() = %v, want [(0,3)]", cracked)
	}
	if cell := b.At(At(0, 3)); cell.Void || !cell.Filled || cell.Color != C1 {
		t.Errorf("cracked cell = %+v, want normal c1 tile", cell)
	}
	if cell := b.At(At(1, 3)); !cell.Void {
		t.Errorf("void at (1,3) cracked without an adjacent removal")
	}

	before := b.FilledCount()
	if n := b.Remove(removed); n != 3 {
		t.Errorf("Remove() = %d, want 3", n)
	}
	if got := b.FilledCount(); got != before-3 {
		t.Errorf("FilledCount() = %d, want %d", got, before-3)
	}
}

func TestSpawnVoidBlock(t *testing.T) {
	var b Board
	pos, ok := b.SpawnVoidBlock(NewSource(3), ActiveColors(4))
	if !ok {
		t.Fatal("SpawnVoidBlock() on empty board failed")
	}
	cell := b.At(pos)
	if !cell.Void || !cell.Filled {
		t.Errorf("spawned cell = %+v, want void", cell)
	}
	if cell.Color < C1 || cell.Color > C4 {
		t.Errorf("void color = %v, want one of c1..c4", cell.Color)
	}

	full := ParseBoard("12121 21212 12121 21212 12121")
	if _, ok := full.SpawnVoidBlock(NewSource(3), ActiveColors(4)); ok {
		t.Error("SpawnVoidBlock() on full board succeeded")
	}
}

func TestBoardPredicates(t *testing.T) {
	b := ParseBoard("1a... ..... ..... ..... .....")

	if b.IsEmpty(At(0, 0)) || b.IsEmpty(At(0, 1)) {
		t.Error("occupied cells reported empty")
	}
	if !b.IsEmpty(At(4, 4)) {
		t.Error("IsEmpty(4,4) = false, want true")
	}
	if b.IsEmpty(At(-1, 0)) || b.IsEmpty(At(0, 5)) {
		t.Error("out-of-bounds cell reported empty")
	}
	if !b.IsOccupiedNonVoid(At(0, 0)) || b.IsOccupiedNonVoid(At(0, 1)) {
		t.Error("IsOccupiedNonVoid misclassifies tile or void")
	}
	if b.IsFullyEmpty() {
		t.Error("IsFullyEmpty() = true, want false")
	}

	voidsOnly := ParseBoard("a.... ..... ..... ..... .....")
	if voidsOnly.HasTiles() {
		t.Error("HasTiles() = true with only a void")
	}
	if voidsOnly.IsFullyEmpty() {
		t.Error("IsFullyEmpty() = true with a void present")
	}
}

func TestParseBoardString(t *testing.T) {
	in := "1.a..\n.....\n..7..\n.....\n....g"
	b := ParseBoard(in)
	if got := b.String(); got != in {
		t.Errorf("String() = %q, want %q", got, in)
	}
	if cell := b.At(At(4, 4)); !cell.Void || cell.Color != C7 {
		t.Errorf("cell (4,4) = %+v, want void c7", cell)
	}
}
