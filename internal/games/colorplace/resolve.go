package colorplace

import (
	"math"

	"github.com/vovakirdan/colorplace/internal/config"
)

// enterIdle arms the next placement, or ends the game when the front tile
// has nowhere to go.
func (g *Game) enterIdle() {
	g.phase = PhaseIdle
	g.mode = ModeIdle{}
	if len(g.queue) == 0 {
		g.endGame()
		return
	}
	front := g.queue[0]
	cells := ValidCells(&g.board, front)
	if len(cells) == 0 {
		g.endGame()
		return
	}
	if front.Skill == SkillS11 && g.board.HasTiles() {
		g.mode = ModeDropper{Candidates: g.board.TileCells()}
		return
	}
	g.mode = ModePlacement{Cells: cells}
}

// place puts the front tile on pos and advances the queue.
func (g *Game) place(pos Coord) {
	tile := g.queue[0]
	color := tile.Color
	if color == ColorNone {
		color = pick(g.rng, g.colors())
	}
	g.board.Set(pos, TileCell(color))
	g.last = placement{pos: pos, color: color, skill: tile.Skill}
	g.turnCount++
	g.missions.Turn()

	if g.Level().VoidBlocks {
		g.voidTurns++
		if g.voidTurns >= g.cfg.Rules.VoidSpawnInterval {
			g.voidTurns = 0
			g.spawnVoid()
		}
	}

	hidden := CheckHiddenMissions(&g.board, pos, false)
	g.stats.RowCleared = g.stats.RowCleared || hidden.Row
	g.stats.ColCleared = g.stats.ColCleared || hidden.Col
	g.stats.CrossCleared = g.stats.CrossCleared || hidden.Cross

	rest := append([]Tile(nil), g.queue[1:]...)
	g.queue = g.gen.Refill(rest, &g.board, g.colors(), &g.progress, g.cfg.Board.QueueSize, g.cfg.Board.GenerateAttempts)

	g.emit(Event{Kind: EventTilePlaced, Label: color.String(), Skill: tile.Skill, Cells: []Coord{pos}})
	g.mode = ModeIdle{}
	g.phase = PhasePlaced
	g.placementMatched = false
}

// copyColor consumes the dropper: the front tile takes the color at c.
func (g *Game) copyColor(c Coord) {
	color := g.board.At(c).Color
	g.queue[0].Color = color
	g.queue[0].Skill = SkillNone
	g.emit(Event{Kind: EventDropper, Label: color.String(), Skill: SkillS11, Cells: []Coord{c}})
	g.enterIdle()
}

func (g *Game) stepPlaced() {
	def, ok := LookupSkill(g.last.skill)
	switch {
	case !ok || def.Category == Modifier:
		g.enterCascade(StageInitial)
	case def.Category == MatchFirst:
		g.pending = def.ID
		g.enterCascade(StageInitial)
	default:
		g.phase = PhaseImmediateSkill
	}
}

func (g *Game) skillContext() SkillContext {
	return SkillContext{
		Placed: g.last.pos,
		Color:  g.last.color,
		Points: g.cfg.Scoring.SkillTilePoints,
	}
}

// startSkill announces and runs a skill, or suspends on its target pick.
// Control then resumes with a cascade of the given stage.
func (g *Game) startSkill(id SkillID, then CascadeStage) {
	g.after = then
	def, ok := LookupSkill(id)
	if !ok || def.Category == Modifier {
		g.enterCascade(then)
		return
	}
	g.emit(Event{Kind: EventSkillFired, Label: def.Name, Skill: id, Cells: []Coord{g.last.pos}})

	ctx := g.skillContext()
	if def.Interactive {
		candidates := Candidates(def.Effect, &g.board, ctx)
		if len(candidates) == 0 {
			g.enterCascade(then)
			return
		}
		g.mode = ModeSkillTarget{Skill: id, Candidates: candidates}
		return
	}
	g.applySkill(def, ctx)
	g.enterCascade(then)
}

// targetSkill finishes an interactive skill on the picked cell.
func (g *Game) targetSkill(id SkillID, target Coord) {
	def, _ := LookupSkill(id)
	g.mode = ModeIdle{}
	ctx := g.skillContext()
	ctx.Target = target
	g.applySkill(def, ctx)
	g.enterCascade(g.after)
}

func (g *Game) applySkill(def SkillDef, ctx SkillContext) {
	out := ApplyEffect(def.Effect, g.board, ctx, g.rng)
	g.board = out.Board
	if len(out.Recolored) > 0 {
		g.emit(Event{Kind: EventSkillRecolored, Label: def.Name, Skill: def.ID, Cells: out.Recolored})
	}
	if len(out.Removed) > 0 {
		g.emit(Event{Kind: EventSkillRemoved, Label: def.Name, Skill: def.ID, Value: out.ScoreDelta, Cells: out.Removed})
	}
	if out.ScoreDelta > 0 {
		g.score += out.ScoreDelta
		g.checkLevelUp()
	}
}

func (g *Game) enterCascade(stage CascadeStage) {
	g.phase = PhaseCascade
	g.stage = stage
	g.stageMatched = false
}

// stepCascade removes one round of match groups, or routes onward when
// there are none.
func (g *Game) stepCascade() {
	groups := g.board.FindMatchGroups(g.cfg.Board.MinMatch)
	if len(groups) == 0 {
		g.cascadeDone()
		return
	}

	if g.stage == StageAfterPendingSkill && !g.stageMatched {
		g.combo = 1
	} else {
		g.combo++
	}
	g.stageMatched = true
	g.placementMatched = true
	g.roundMatched = true
	g.maxCombo = max(g.maxCombo, g.combo)
	if g.combo >= 2 {
		g.emit(Event{Kind: EventCombo, Value: g.combo})
	}

	var removed []Coord
	for _, grp := range groups {
		removed = append(removed, grp.Cells...)
	}
	sortCoords(removed)

	mission := g.missions.Current()
	done, bonus := g.missions.Complete(removed)
	gain := matchScore(len(removed), g.combo, g.progress.ScoreMultiplier, g.cfg.Scoring) + bonus
	g.score += gain
	g.emit(Event{Kind: EventMatchRemoved, Value: gain, Cells: removed})
	if done {
		g.emit(Event{Kind: EventMissionComplete, Label: mission.Name, Value: bonus})
	}
	g.checkLevelUp()

	if cracked := g.board.CrackAdjacentVoids(removed); len(cracked) > 0 {
		g.emit(Event{Kind: EventVoidCracked, Cells: cracked})
	}
	for _, c := range removed {
		g.stats.Collected.Add(g.board.At(c).Color)
	}
	g.board.Remove(removed)

	if g.board.IsFullyEmpty() {
		g.score += g.cfg.Scoring.BoardClearBonus
		g.stats.BoardCleared = true
		g.emit(Event{Kind: EventBoardClear, Value: g.cfg.Scoring.BoardClearBonus})
		g.checkLevelUp()
	}
}

// matchScore is cleared x points x max(combo,1), scaled by the permanent
// multiplier and floored.
func matchScore(cleared, combo int, multiplier float64, scoring config.ColorPlaceScoring) int {
	base := cleared * scoring.TilePoints * max(combo, 1)
	return int(math.Floor(float64(base) * multiplier))
}

func (g *Game) cascadeDone() {
	switch g.stage {
	case StageInitial:
		if !g.placementMatched {
			g.combo = 0
			g.phase = PhasePendingSkill
			return
		}
		g.enterColorChange()
	case StageAfterColorChange:
		g.phase = PhaseAutoChange
	case StageAfterAutoChange:
		g.endRound()
	default:
		g.phase = PhaseFinalize
	}
}

func (g *Game) enterColorChange() {
	g.roundMatched = false
	g.phase = PhaseColorChange
}

// endRound loops back into color change while the round produced matches.
func (g *Game) endRound() {
	if g.roundMatched {
		g.enterColorChange()
		return
	}
	g.phase = PhasePendingSkill
}

func (g *Game) colorChangeCandidates() []Coord {
	if g.cfg.Rules.ColorChange == config.ColorChangeBoard {
		var cells []Coord
		for _, c := range g.board.TileCells() {
			if c != g.last.pos {
				cells = append(cells, c)
			}
		}
		return cells
	}
	return g.board.OccupiedNeighbors(g.last.pos)
}

func (g *Game) stepColorChange() {
	if !g.board.HasTiles() {
		g.phase = PhasePendingSkill
		return
	}
	candidates := g.colorChangeCandidates()
	if len(candidates) == 0 {
		g.phase = PhaseAutoChange
		return
	}
	g.mode = ModeColorChange{Candidates: candidates}
}

// recolor applies the player's color change.
func (g *Game) recolor(c Coord) {
	g.board[c.R][c.C].Color = g.last.color
	g.mode = ModeIdle{}
	g.emit(Event{Kind: EventColorChanged, Label: g.last.color.String(), Cells: []Coord{c}})
	g.enterCascade(StageAfterColorChange)
}

func (g *Game) stepAutoChange() {
	if !g.Level().AutoChange || !g.board.HasTiles() {
		g.endRound()
		return
	}
	pos := pick(g.rng, g.board.TileCells())
	old := g.board.At(pos).Color
	var others []Color
	for _, c := range g.colors() {
		if c != old {
			others = append(others, c)
		}
	}
	if len(others) == 0 {
		g.endRound()
		return
	}
	color := pick(g.rng, others)
	g.board[pos.R][pos.C].Color = color
	g.emit(Event{Kind: EventAutoChanged, Label: color.String(), Cells: []Coord{pos}})
	g.enterCascade(StageAfterAutoChange)
}

func (g *Game) stepPendingSkill() {
	if g.pending == SkillNone {
		g.phase = PhaseFinalize
		return
	}
	id := g.pending
	g.pending = SkillNone
	g.startSkill(id, StageAfterPendingSkill)
}

func (g *Game) stepFinalize() {
	if g.missions.Expire() {
		g.emit(Event{Kind: EventMissionExpired, Label: g.missions.Current().Name})
	}
	g.enterIdle()
}

// checkLevelUp announces a level reached by the current score. The first
// time the void level is reached a void block appears at once.
func (g *Game) checkLevelUp() {
	idx := g.levels.Index(g.score)
	if idx <= g.levelIdx {
		return
	}
	g.levelIdx = idx
	lv := g.levels[idx]
	if lv.Label != "" {
		g.emit(Event{Kind: EventLevelUp, Label: lv.Label, Value: idx + 1})
	}
	if lv.VoidBlocks && !g.voidSpawned {
		g.voidSpawned = true
		g.voidTurns = 0
		g.spawnVoid()
	}
}

func (g *Game) spawnVoid() {
	if pos, ok := g.board.SpawnVoidBlock(g.rng, g.colors()); ok {
		g.emit(Event{Kind: EventVoidSpawned, Cells: []Coord{pos}})
	}
}

// endGame settles the session into the ledger and saves it once.
func (g *Game) endGame() {
	g.phase = PhaseGameOver
	g.mode = ModeIdle{}

	summary := SessionSummary{Score: g.score, MaxCombo: g.maxCombo, Stats: g.stats}
	g.progress, g.unlocks = Settle(g.progress, summary, g.cfg)
	if err := g.store.SaveProgress(g.progress); err != nil {
		g.err = err
		g.emit(Event{Kind: EventSaveFailed, Label: err.Error()})
	}
	for _, u := range g.unlocks {
		g.emit(Event{Kind: EventUnlocked, Label: u.Label, Skill: u.Skill})
	}
	g.emit(Event{Kind: EventGameOver, Value: g.score})
}
