package colorplace

import (
	"cmp"
	"slices"
	"strings"
)

// Board is the 5x5 grid. It is a value type; copying a Board copies its cells.
type Board [BoardSize][BoardSize]Cell

// MatchGroup is a maximal 4-connected set of same-colored, non-void cells.
type MatchGroup struct {
	Color Color
	Cells []Coord
}

var (
	orthogonal = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	around     = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
)

// At returns the cell at c. Out-of-bounds coordinates read as empty.
func (b *Board) At(c Coord) Cell {
	if !c.InBounds() {
		return Cell{}
	}
	return b[c.R][c.C]
}

// Set writes a cell. Out-of-bounds writes are ignored.
func (b *Board) Set(c Coord, cell Cell) {
	if c.InBounds() {
		b[c.R][c.C] = cell
	}
}

// IsEmpty reports whether c holds no tile.
func (b *Board) IsEmpty(c Coord) bool {
	return c.InBounds() && !b[c.R][c.C].Filled
}

// IsOccupiedNonVoid reports whether c holds a normal tile.
func (b *Board) IsOccupiedNonVoid(c Coord) bool {
	return c.InBounds() && b[c.R][c.C].Matchable()
}

// HasEmptyCell reports whether any cell is empty.
func (b *Board) HasEmptyCell() bool {
	for r := range BoardSize {
		for c := range BoardSize {
			if !b[r][c].Filled {
				return true
			}
		}
	}
	return false
}

// IsFullyEmpty reports whether no cell holds anything, voids included.
func (b *Board) IsFullyEmpty() bool {
	return b.FilledCount() == 0
}

// HasTiles reports whether at least one normal (non-void) tile is present.
func (b *Board) HasTiles() bool {
	for r := range BoardSize {
		for c := range BoardSize {
			if b[r][c].Matchable() {
				return true
			}
		}
	}
	return false
}

// FilledCount returns the number of occupied cells, voids included.
func (b *Board) FilledCount() int {
	n := 0
	for r := range BoardSize {
		for c := range BoardSize {
			if b[r][c].Filled {
				n++
			}
		}
	}
	return n
}

// EmptyCells lists empty cells in row-major order.
func (b *Board) EmptyCells() []Coord {
	var cells []Coord
	for r := range BoardSize {
		for c := range BoardSize {
			if !b[r][c].Filled {
				cells = append(cells, At(r, c))
			}
		}
	}
	return cells
}

// TileCells lists normal (non-void) tiles in row-major order.
func (b *Board) TileCells() []Coord {
	var cells []Coord
	for r := range BoardSize {
		for c := range BoardSize {
			if b[r][c].Matchable() {
				cells = append(cells, At(r, c))
			}
		}
	}
	return cells
}

// FindMatchGroups flood-fills over non-void tiles using 4-directional
// adjacency and returns every group of at least minSize cells. Groups are
// discovered in row-major order and their cells are sorted row-major.
func (b *Board) FindMatchGroups(minSize int) []MatchGroup {
	var visited [BoardSize][BoardSize]bool
	var groups []MatchGroup

	for r := range BoardSize {
		for c := range BoardSize {
			if visited[r][c] || !b[r][c].Matchable() {
				continue
			}
			color := b[r][c].Color
			group := []Coord{}
			stack := []Coord{At(r, c)}
			visited[r][c] = true

			for len(stack) > 0 {
				cur := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				group = append(group, cur)

				for _, d := range orthogonal {
					n := cur.Add(d[0], d[1])
					if !n.InBounds() || visited[n.R][n.C] {
						continue
					}
					cell := b[n.R][n.C]
					if cell.Matchable() && cell.Color == color {
						visited[n.R][n.C] = true
						stack = append(stack, n)
					}
				}
			}

			if len(group) >= minSize {
				sortCoords(group)
				groups = append(groups, MatchGroup{Color: color, Cells: group})
			}
		}
	}
	return groups
}

// CrackAdjacentVoids turns every void tile 4-adjacent to a removed cell (and
// not removed itself) into a normal tile of the same color. It returns the
// cracked cells in row-major order.
func (b *Board) CrackAdjacentVoids(removed []Coord) []Coord {
	var cracked []Coord
	for _, cell := range removed {
		for _, d := range orthogonal {
			n := cell.Add(d[0], d[1])
			if !n.InBounds() || slices.Contains(removed, n) || slices.Contains(cracked, n) {
				continue
			}
			if b[n.R][n.C].Filled && b[n.R][n.C].Void {
				cracked = append(cracked, n)
			}
		}
	}
	for _, c := range cracked {
		b[c.R][c.C].Void = false
	}
	sortCoords(cracked)
	return cracked
}

// SpawnVoidBlock places a void tile of a random color from colors on a
// random empty cell. It returns false when the board is full.
func (b *Board) SpawnVoidBlock(rng Source, colors []Color) (Coord, bool) {
	empty := b.EmptyCells()
	if len(empty) == 0 || len(colors) == 0 {
		return Coord{}, false
	}
	pos := pick(rng, empty)
	b.Set(pos, VoidCell(pick(rng, colors)))
	return pos, true
}

// Remove clears the given cells and returns how many were occupied.
func (b *Board) Remove(cells []Coord) int {
	n := 0
	for _, c := range cells {
		if c.InBounds() && b[c.R][c.C].Filled {
			b[c.R][c.C] = Cell{}
			n++
		}
	}
	return n
}

// Neighbors8 returns the in-bounds 8-neighbours of c.
func Neighbors8(c Coord) []Coord {
	result := make([]Coord, 0, len(around))
	for _, d := range around {
		n := c.Add(d[0], d[1])
		if n.InBounds() {
			result = append(result, n)
		}
	}
	return result
}

// OccupiedNeighbors returns the 8-neighbours of c that hold a normal tile.
func (b *Board) OccupiedNeighbors(c Coord) []Coord {
	var result []Coord
	for _, n := range Neighbors8(c) {
		if b[n.R][n.C].Matchable() {
			result = append(result, n)
		}
	}
	return result
}

// rowUniform reports whether row r is five normal tiles of one color.
func (b *Board) rowUniform(r int) bool {
	first := b[r][0]
	if !first.Matchable() {
		return false
	}
	for c := 1; c < BoardSize; c++ {
		if !b[r][c].Matchable() || b[r][c].Color != first.Color {
			return false
		}
	}
	return true
}

// colUniform reports whether column c is five normal tiles of one color.
func (b *Board) colUniform(c int) bool {
	first := b[0][c]
	if !first.Matchable() {
		return false
	}
	for r := 1; r < BoardSize; r++ {
		if !b[r][c].Matchable() || b[r][c].Color != first.Color {
			return false
		}
	}
	return true
}

// String renders the board as rows of "." (empty), "1".."7" (tiles) and
// "a".."g" (voids). ParseBoard reads the same format.
func (b *Board) String() string {
	var sb strings.Builder
	for r := range BoardSize {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range BoardSize {
			cell := b[r][c]
			switch {
			case !cell.Filled:
				sb.WriteByte('.')
			case cell.Void:
				sb.WriteByte('a' + byte(cell.Color) - 1)
			default:
				sb.WriteByte('0' + byte(cell.Color))
			}
		}
	}
	return sb.String()
}

// ParseBoard builds a board from the String format. Whitespace separating
// rows is ignored; unknown characters read as empty cells.
func ParseBoard(s string) Board {
	var b Board
	rows := strings.Fields(s)
	for r := 0; r < len(rows) && r < BoardSize; r++ {
		for c := 0; c < len(rows[r]) && c < BoardSize; c++ {
			ch := rows[r][c]
			switch {
			case ch >= '1' && ch <= '7':
				b[r][c] = TileCell(Color(ch - '0'))
			case ch >= 'a' && ch <= 'g':
				b[r][c] = VoidCell(Color(ch-'a') + 1)
			}
		}
	}
	return b
}

func sortCoords(cells []Coord) {
	slices.SortFunc(cells, func(a, b Coord) int {
		if a.R != b.R {
			return cmp.Compare(a.R, b.R)
		}
		return cmp.Compare(a.C, b.C)
	})
}
