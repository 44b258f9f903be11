// Package colorplace implements the rule engine of Color Place, a turn-based
// tile-matching puzzle on a 5x5 board. The package is pure game logic: every
// random choice goes through a Source and every visible effect is reported to
// a Sink, so a seed plus a sequence of clicks fully determines a game.
package colorplace

import "fmt"

// BoardSize is the board dimension.
const BoardSize = 5

// Color identifies a tile color. ColorNone marks a colorless tile whose color
// is drawn at placement time.
type Color uint8

const (
	ColorNone Color = iota
	C1
	C2
	C3
	C4
	C5
	C6
	C7
)

// ColorCount is the number of real colors.
const ColorCount = 7

// String returns the short name of the color ("c1".."c7").
func (c Color) String() string {
	if c >= C1 && c <= C7 {
		return fmt.Sprintf("c%d", int(c))
	}
	return "none"
}

// Valid reports whether c is one of the seven real colors.
func (c Color) Valid() bool {
	return c >= C1 && c <= C7
}

// ActiveColors returns the first n colors, clamped to 1..7.
func ActiveColors(n int) []Color {
	n = max(1, min(n, ColorCount))
	colors := make([]Color, n)
	for i := range n {
		colors[i] = C1 + Color(i)
	}
	return colors
}

// Coord addresses a board cell by row and column.
type Coord struct {
	R int
	C int
}

// At is a convenience constructor for Coord.
func At(r, c int) Coord {
	return Coord{R: r, C: c}
}

// String returns "(r,c)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.R, c.C)
}

// Add returns c offset by (dr, dc).
func (c Coord) Add(dr, dc int) Coord {
	return Coord{R: c.R + dr, C: c.C + dc}
}

// InBounds reports whether c lies on the board.
func (c Coord) InBounds() bool {
	return c.R >= 0 && c.R < BoardSize && c.C >= 0 && c.C < BoardSize
}

// Cell is one board square. The zero value is an empty cell.
type Cell struct {
	Filled bool
	Color  Color
	Void   bool // Occupies the cell but never joins a match until cracked
}

// TileCell returns a normal occupied cell of the given color.
func TileCell(c Color) Cell {
	return Cell{Filled: true, Color: c}
}

// VoidCell returns a void cell of the given color.
func VoidCell(c Color) Cell {
	return Cell{Filled: true, Color: c, Void: true}
}

// Matchable reports whether the cell can take part in a match group.
func (c Cell) Matchable() bool {
	return c.Filled && !c.Void
}
