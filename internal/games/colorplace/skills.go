package colorplace

import "slices"

// SkillID identifies a skill. The empty ID means "no skill".
type SkillID string

const (
	SkillNone SkillID = ""
	SkillS1   SkillID = "s1"
	SkillS2   SkillID = "s2"
	SkillS3   SkillID = "s3"
	SkillS4   SkillID = "s4"
	SkillS5   SkillID = "s5"
	SkillS6   SkillID = "s6"
	SkillS7   SkillID = "s7"
	SkillS8   SkillID = "s8"
	SkillS9   SkillID = "s9"
	SkillS10  SkillID = "s10"
	SkillS11  SkillID = "s11"
	SkillS12  SkillID = "s12"
	SkillS13  SkillID = "s13"
	SkillH1   SkillID = "h1"
	SkillH2   SkillID = "h2"
	SkillH3   SkillID = "h3"
	SkillH4   SkillID = "h4"
)

// SkillCategory decides when a skill runs relative to the placement cascade.
type SkillCategory uint8

const (
	// Immediate skills run right after placement, before matching.
	Immediate SkillCategory = iota
	// MatchFirst skills are deferred until the whole cascade is exhausted.
	MatchFirst
	// Modifier skills change placement rules and are never dispatched.
	Modifier
)

// SkillDef describes one catalog entry.
type SkillDef struct {
	ID          SkillID
	Name        string
	Description string
	Category    SkillCategory
	Interactive bool
	Hidden      bool // Unlocked by a hidden mission
	Effect      Effect
}

// Effect is the closed set of skill behaviours.
type Effect interface {
	isEffect()
}

// TargetScope restricts the cells a chosen-target effect may pick.
type TargetScope uint8

const (
	ScopeNeighbors TargetScope = iota // 8-neighbours of the placed tile
	ScopeBoard                        // any tile except the placed one
)

type (
	// RecolorAll paints every normal tile with the placed color.
	RecolorAll struct{}
	// RecolorRandomNeighbors paints Count random occupied neighbours.
	RecolorRandomNeighbors struct{ Count int }
	// RecolorChosenNeighbor paints one neighbour picked by the player.
	RecolorChosenNeighbor struct{}
	// RemoveChosen removes one tile picked by the player within Scope.
	RemoveChosen struct {
		Scope  TargetScope
		Scored bool
	}
	// RemoveNeighbors removes every occupied neighbour of the placed tile.
	RemoveNeighbors struct{}
	// RemoveNeighborsOfChosen removes the neighbours of a tile picked by the player.
	RemoveNeighborsOfChosen struct{}
	// UnifyNeighborsOfChosen paints the neighbours of a picked tile with its color.
	UnifyNeighborsOfChosen struct{}
	// RemoveColor removes every tile of the placed color, voids included,
	// except the placed tile.
	RemoveColor struct{}
	// RemoveAllOthers removes everything except the placed tile.
	RemoveAllOthers struct{}
	// RemoveLines removes the normal tiles in the placed row and/or column,
	// the placed tile included.
	RemoveLines struct{ Row, Col bool }
	// Overwrite lets the tile be placed onto an occupied normal tile.
	Overwrite struct{}
	// Dropper copies a board color into the current tile before placement.
	Dropper struct{}
)

func (RecolorAll) isEffect()              {}
func (RecolorRandomNeighbors) isEffect()  {}
func (RecolorChosenNeighbor) isEffect()   {}
func (RemoveChosen) isEffect()            {}
func (RemoveNeighbors) isEffect()         {}
func (RemoveNeighborsOfChosen) isEffect() {}
func (UnifyNeighborsOfChosen) isEffect()  {}
func (RemoveColor) isEffect()             {}
func (RemoveAllOthers) isEffect()         {}
func (RemoveLines) isEffect()             {}
func (Overwrite) isEffect()               {}
func (Dropper) isEffect()                 {}

// Skills is the catalog in draw order.
var Skills = []SkillDef{
	{ID: SkillS1, Name: "All Change", Description: "Recolor every tile to the placed color", Category: Immediate, Effect: RecolorAll{}},
	{ID: SkillS2, Name: "Tint 1", Description: "Recolor 1 random neighbour to the placed color", Category: Immediate, Effect: RecolorRandomNeighbors{Count: 1}},
	{ID: SkillS3, Name: "Tint 2", Description: "Recolor 2 random neighbours to the placed color", Category: Immediate, Effect: RecolorRandomNeighbors{Count: 2}},
	{ID: SkillS4, Name: "Tint Pick", Description: "Recolor a chosen neighbour to the placed color", Category: Immediate, Interactive: true, Effect: RecolorChosenNeighbor{}},
	{ID: SkillS5, Name: "Nudge", Description: "Remove a chosen neighbour (no score)", Category: Immediate, Interactive: true, Effect: RemoveChosen{Scope: ScopeNeighbors}},
	{ID: SkillS6, Name: "Nudge+", Description: "Remove a chosen neighbour (scored)", Category: Immediate, Interactive: true, Effect: RemoveChosen{Scope: ScopeNeighbors, Scored: true}},
	{ID: SkillS7, Name: "Snipe", Description: "Remove any chosen tile (scored)", Category: Immediate, Interactive: true, Effect: RemoveChosen{Scope: ScopeBoard, Scored: true}},
	{ID: SkillS8, Name: "Blast", Description: "Remove all neighbours after matching", Category: MatchFirst, Effect: RemoveNeighbors{}},
	{ID: SkillS9, Name: "Remote Blast", Description: "Remove the neighbours of a chosen tile after matching", Category: MatchFirst, Interactive: true, Effect: RemoveNeighborsOfChosen{}},
	{ID: SkillS10, Name: "Unify", Description: "Recolor the neighbours of a chosen tile to its color after matching", Category: MatchFirst, Interactive: true, Effect: UnifyNeighborsOfChosen{}},
	{ID: SkillS11, Name: "Dropper", Description: "Copy a board color before placing", Category: Modifier, Interactive: true, Effect: Dropper{}},
	{ID: SkillS12, Name: "Purge", Description: "Remove every tile of the placed color", Category: Immediate, Effect: RemoveColor{}},
	{ID: SkillS13, Name: "Wipe", Description: "Remove every other tile on the board", Category: Immediate, Effect: RemoveAllOthers{}},
	{ID: SkillH1, Name: "Overwrite", Description: "Place on top of an existing tile", Category: Modifier, Hidden: true, Effect: Overwrite{}},
	{ID: SkillH2, Name: "Row Clear", Description: "Remove the placed row", Category: Immediate, Hidden: true, Effect: RemoveLines{Row: true}},
	{ID: SkillH3, Name: "Column Clear", Description: "Remove the placed column", Category: Immediate, Hidden: true, Effect: RemoveLines{Col: true}},
	{ID: SkillH4, Name: "Cross Clear", Description: "Remove the placed row and column", Category: Immediate, Hidden: true, Effect: RemoveLines{Row: true, Col: true}},
}

// LookupSkill returns the catalog entry for id.
func LookupSkill(id SkillID) (SkillDef, bool) {
	for _, s := range Skills {
		if s.ID == id {
			return s, true
		}
	}
	return SkillDef{}, false
}

// IsMatchFirst reports whether id is deferred until after the cascade.
func IsMatchFirst(id SkillID) bool {
	def, ok := LookupSkill(id)
	return ok && def.Category == MatchFirst
}

// SkillContext carries the placement a skill acts on.
type SkillContext struct {
	Placed Coord
	Color  Color // Color of the placed tile
	Target Coord // Player's pick, only read by interactive effects
	Points int   // Score per removed tile for scored effects
}

// Outcome is the result of applying an effect.
type Outcome struct {
	Board      Board
	Recolored  []Coord
	Removed    []Coord
	ScoreDelta int
}

// Candidates lists the cells a player may pick for an interactive effect.
// Non-interactive effects return nil.
func Candidates(e Effect, b *Board, ctx SkillContext) []Coord {
	switch e := e.(type) {
	case RecolorChosenNeighbor:
		return b.OccupiedNeighbors(ctx.Placed)
	case RemoveChosen:
		if e.Scope == ScopeNeighbors {
			return b.OccupiedNeighbors(ctx.Placed)
		}
		var cells []Coord
		for _, c := range b.TileCells() {
			if c != ctx.Placed {
				cells = append(cells, c)
			}
		}
		return cells
	case RemoveNeighborsOfChosen, UnifyNeighborsOfChosen, Dropper:
		return b.TileCells()
	}
	return nil
}

// ApplyEffect applies e to a copy of b and reports what changed. It never
// mutates b. Interactive effects read ctx.Target, which the caller must have
// taken from Candidates.
func ApplyEffect(e Effect, b Board, ctx SkillContext, rng Source) Outcome {
	out := Outcome{Board: b}
	nb := &out.Board

	recolor := func(cells []Coord, color Color) {
		for _, c := range cells {
			nb[c.R][c.C].Color = color
		}
		out.Recolored = append(out.Recolored, cells...)
	}
	remove := func(cells []Coord, scored bool) {
		n := nb.Remove(cells)
		out.Removed = append(out.Removed, cells...)
		if scored {
			out.ScoreDelta += n * ctx.Points
		}
	}

	switch e := e.(type) {
	case RecolorAll:
		recolor(nb.TileCells(), ctx.Color)

	case RecolorRandomNeighbors:
		pool := nb.OccupiedNeighbors(ctx.Placed)
		var picks []Coord
		for i := 0; i < e.Count && len(pool) > 0; i++ {
			idx := rng.Intn(len(pool))
			picks = append(picks, pool[idx])
			pool = append(pool[:idx], pool[idx+1:]...)
		}
		recolor(picks, ctx.Color)

	case RecolorChosenNeighbor:
		recolor([]Coord{ctx.Target}, ctx.Color)

	case RemoveChosen:
		remove([]Coord{ctx.Target}, e.Scored)

	case RemoveNeighbors:
		remove(nb.OccupiedNeighbors(ctx.Placed), true)

	case RemoveNeighborsOfChosen:
		remove(nb.OccupiedNeighbors(ctx.Target), true)

	case UnifyNeighborsOfChosen:
		center := nb.At(ctx.Target).Color
		recolor(nb.OccupiedNeighbors(ctx.Target), center)

	case RemoveColor:
		var targets []Coord
		for r := range BoardSize {
			for c := range BoardSize {
				cell := nb[r][c]
				if cell.Filled && cell.Color == ctx.Color && At(r, c) != ctx.Placed {
					targets = append(targets, At(r, c))
				}
			}
		}
		remove(targets, true)

	case RemoveAllOthers:
		var targets []Coord
		for r := range BoardSize {
			for c := range BoardSize {
				if nb[r][c].Filled && At(r, c) != ctx.Placed {
					targets = append(targets, At(r, c))
				}
			}
		}
		remove(targets, true)

	case RemoveLines:
		var targets []Coord
		if e.Row {
			for c := range BoardSize {
				if nb.IsOccupiedNonVoid(At(ctx.Placed.R, c)) {
					targets = append(targets, At(ctx.Placed.R, c))
				}
			}
		}
		if e.Col {
			for r := range BoardSize {
				p := At(r, ctx.Placed.C)
				if nb.IsOccupiedNonVoid(p) && !slices.Contains(targets, p) {
					targets = append(targets, p)
				}
			}
		}
		remove(targets, true)

	case Overwrite, Dropper:
		// Placement-time modifiers; nothing to do on the board.
	}

	return out
}
