package colorplace

import (
	"fmt"

	"github.com/vovakirdan/colorplace/internal/config"
)

// TileType is the numbered tile kind. Odd types carry a fixed color,
// even types draw their color when placed.
type TileType int

// Shape is the placement rule of a tile.
type Shape uint8

const (
	ShapeFree  Shape = iota // any empty cell
	ShapeLine               // empty cells of one row or column
	ShapeCross              // empty cells of row i and column i
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeFree:
		return "free"
	case ShapeLine:
		return "line"
	case ShapeCross:
		return "cross"
	default:
		return "unknown"
	}
}

// LineDir is the orientation of a line tile.
type LineDir uint8

const (
	DirRow LineDir = iota
	DirCol
)

// Shape maps a tile type to its placement rule.
func (t TileType) Shape() Shape {
	switch t {
	case 1, 2:
		return ShapeFree
	case 5, 6:
		return ShapeCross
	default:
		return ShapeLine
	}
}

// ColorFixed reports whether tiles of this type get their color at generation.
func (t TileType) ColorFixed() bool {
	return t%2 == 1
}

// Tile is a queued piece waiting to be placed.
type Tile struct {
	Type  TileType
	Shape Shape
	Dir   LineDir // Line tiles only
	Index int     // Row/column index for line and cross tiles
	Color Color   // ColorNone until placement for colorless types
	Skill SkillID
}

// String returns a short human-readable description.
func (t Tile) String() string {
	color := t.Color.String()
	if t.Color == ColorNone {
		color = "?"
	}
	var where string
	switch t.Shape {
	case ShapeLine:
		if t.Dir == DirRow {
			where = fmt.Sprintf("row %d", t.Index+1)
		} else {
			where = fmt.Sprintf("col %d", t.Index+1)
		}
	case ShapeCross:
		where = fmt.Sprintf("cross %d", t.Index+1)
	default:
		where = "free"
	}
	if t.Skill != SkillNone {
		return fmt.Sprintf("%s %s [%s]", color, where, t.Skill)
	}
	return fmt.Sprintf("%s %s", color, where)
}

// ValidCells enumerates the cells where t may be placed, row-major and
// without duplicates. A tile carrying the overwrite skill may also land on
// occupied normal tiles.
func ValidCells(b *Board, t Tile) []Coord {
	check := b.IsEmpty
	if t.Skill == SkillH1 {
		check = func(c Coord) bool { return b.IsEmpty(c) || b.IsOccupiedNonVoid(c) }
	}

	var cells []Coord
	switch t.Shape {
	case ShapeFree:
		for r := range BoardSize {
			for c := range BoardSize {
				if check(At(r, c)) {
					cells = append(cells, At(r, c))
				}
			}
		}
	case ShapeLine:
		for i := range BoardSize {
			p := At(t.Index, i)
			if t.Dir == DirCol {
				p = At(i, t.Index)
			}
			if check(p) {
				cells = append(cells, p)
			}
		}
	case ShapeCross:
		for r := range BoardSize {
			for c := range BoardSize {
				if (r == t.Index || c == t.Index) && check(At(r, c)) {
					cells = append(cells, At(r, c))
				}
			}
		}
	}
	return cells
}

// Generator draws tiles from the unlocked tile types and skills.
type Generator struct {
	types  []config.ColorPlaceTileType
	skills config.ColorPlaceSkills
	rng    Source
}

// NewGenerator creates a generator over the configured tables.
func NewGenerator(cfg config.ColorPlaceConfig, rng Source) *Generator {
	return &Generator{
		types:  cfg.TileTypes,
		skills: cfg.Skills,
		rng:    rng,
	}
}

// PickTileType draws a type among those unlocked at totalGames, weighted and
// renormalised over the unlocked set.
func (gen *Generator) PickTileType(totalGames int) TileType {
	total := 0
	for _, tt := range gen.types {
		if totalGames >= tt.UnlockGames {
			total += tt.Weight
		}
	}
	if total <= 0 {
		return 3
	}

	roll := gen.rng.Float64() * float64(total)
	var last TileType = 3
	for _, tt := range gen.types {
		if totalGames < tt.UnlockGames {
			continue
		}
		last = TileType(tt.Type)
		roll -= float64(tt.Weight)
		if roll < 0 {
			return last
		}
	}
	return last
}

// PickSkill draws from a fixed pool: each unlocked skill owns the configured
// weight and the remaining mass means no skill.
func (gen *Generator) PickSkill(p *Progress) SkillID {
	var unlocked []SkillID
	for _, s := range Skills {
		if p.HasSkill(s.ID) {
			unlocked = append(unlocked, s.ID)
		}
	}
	if len(unlocked) == 0 || gen.skills.Weight <= 0 {
		return SkillNone
	}

	skillMass := len(unlocked) * gen.skills.Weight
	noSkill := gen.skills.Pool - skillMass
	roll := gen.rng.Float64() * float64(gen.skills.Pool)
	if roll < float64(noSkill) {
		return SkillNone
	}
	idx := int(roll-float64(noSkill)) / gen.skills.Weight
	return unlocked[min(idx, len(unlocked)-1)]
}

// Generate builds one tile. With constrain set, the tile is guaranteed at
// least one empty target cell on b, and ok is false when its type cannot
// satisfy that.
func (gen *Generator) Generate(b *Board, colors []Color, p *Progress, constrain bool) (Tile, bool) {
	tt := gen.PickTileType(p.TotalGames)
	t := Tile{Type: tt, Shape: tt.Shape()}
	if tt.ColorFixed() {
		t.Color = pick(gen.rng, colors)
	}
	t.Skill = gen.PickSkill(p)

	switch t.Shape {
	case ShapeFree:
		if constrain && !b.HasEmptyCell() {
			return Tile{}, false
		}

	case ShapeLine:
		if !constrain {
			t.Dir = LineDir(gen.rng.Intn(2))
			t.Index = IntRange(gen.rng, 0, BoardSize-1)
			break
		}
		type line struct {
			dir LineDir
			idx int
		}
		var open []line
		for _, dir := range []LineDir{DirRow, DirCol} {
			for i := range BoardSize {
				if len(ValidCells(b, Tile{Shape: ShapeLine, Dir: dir, Index: i})) > 0 {
					open = append(open, line{dir, i})
				}
			}
		}
		if len(open) == 0 {
			return Tile{}, false
		}
		l := pick(gen.rng, open)
		t.Dir, t.Index = l.dir, l.idx

	case ShapeCross:
		if !constrain {
			t.Index = IntRange(gen.rng, 0, BoardSize-1)
			break
		}
		var open []int
		for i := range BoardSize {
			if len(ValidCells(b, Tile{Shape: ShapeCross, Index: i})) > 0 {
				open = append(open, i)
			}
		}
		if len(open) == 0 {
			return Tile{}, false
		}
		t.Index = pick(gen.rng, open)
	}
	return t, true
}

// Refill tops the queue up to size, trying attempts generations per slot
// against the live board. It stops early when the board is full or a slot
// cannot be filled.
func (gen *Generator) Refill(queue []Tile, b *Board, colors []Color, p *Progress, size, attempts int) []Tile {
	for len(queue) < size {
		if !b.HasEmptyCell() {
			break
		}
		var (
			tile Tile
			ok   bool
		)
		for range attempts {
			if tile, ok = gen.Generate(b, colors, p, true); ok {
				break
			}
		}
		if !ok {
			break
		}
		queue = append(queue, tile)
	}
	return queue
}
