package colorplace

import (
	"slices"

	"github.com/vovakirdan/colorplace/internal/config"
	"github.com/vovakirdan/colorplace/internal/core"
)

// Phase is the step of the turn state machine the game is in.
type Phase uint8

const (
	PhaseIdle           Phase = iota // waiting for a placement or dropper click
	PhasePlaced                      // tile landed, skill routing pending
	PhaseImmediateSkill              // non-deferred skill of the placed tile
	PhaseCascade                     // one match-and-remove iteration
	PhaseColorChange                 // player recolors a tile
	PhaseAutoChange                  // level-driven random recolor
	PhasePendingSkill                // deferred match-first skill
	PhaseFinalize                    // mission timeout and game-over check
	PhaseGameOver
)

var phaseNames = [...]string{
	PhaseIdle:           "idle",
	PhasePlaced:         "placed",
	PhaseImmediateSkill: "immediate_skill",
	PhaseCascade:        "cascade",
	PhaseColorChange:    "color_change",
	PhaseAutoChange:     "auto_change",
	PhasePendingSkill:   "pending_skill",
	PhaseFinalize:       "finalize",
	PhaseGameOver:       "game_over",
}

// String returns the phase name.
func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// CascadeStage records which part of the turn a cascade belongs to, which
// decides where control goes once it finds no more matches.
type CascadeStage uint8

const (
	StageInitial           CascadeStage = iota // right after placement
	StageAfterColorChange                      // after the player's recolor
	StageAfterAutoChange                       // after the automatic recolor
	StageAfterPendingSkill                     // after the deferred skill
)

// InputMode is what a click on the board currently means.
type InputMode interface {
	isInputMode()
}

type (
	// ModeIdle rejects every click.
	ModeIdle struct{}
	// ModePlacement accepts a click on one of Cells to place the front tile.
	ModePlacement struct{ Cells []Coord }
	// ModeColorChange accepts a click on one of Candidates to recolor it.
	ModeColorChange struct{ Candidates []Coord }
	// ModeSkillTarget accepts the target of an interactive skill.
	ModeSkillTarget struct {
		Skill      SkillID
		Candidates []Coord
	}
	// ModeDropper accepts a board tile whose color the front tile copies.
	ModeDropper struct{ Candidates []Coord }
)

func (ModeIdle) isInputMode()        {}
func (ModePlacement) isInputMode()   {}
func (ModeColorChange) isInputMode() {}
func (ModeSkillTarget) isInputMode() {}
func (ModeDropper) isInputMode()     {}

// ModeCells returns the clickable cells of m.
func ModeCells(m InputMode) []Coord {
	switch m := m.(type) {
	case ModePlacement:
		return m.Cells
	case ModeColorChange:
		return m.Candidates
	case ModeSkillTarget:
		return m.Candidates
	case ModeDropper:
		return m.Candidates
	}
	return nil
}

// placement is the last tile the player put down.
type placement struct {
	pos   Coord
	color Color
	skill SkillID
}

// Game is one Color Place session. It is not safe for concurrent use; the
// front end drives it from a single goroutine.
type Game struct {
	cfg   config.ColorPlaceConfig
	store ProgressStore
	sink  Sink

	rng      Source
	gen      *Generator
	levels   LevelTable
	missions *MissionTracker

	board    Board
	queue    []Tile
	progress Progress

	score       int
	combo       int
	maxCombo    int
	turnCount   int
	levelIdx    int
	voidTurns   int
	voidSpawned bool
	last        placement
	pending     SkillID
	stats       SessionStats

	phase Phase
	stage CascadeStage
	mode  InputMode
	after CascadeStage // where control resumes once a skill is done

	placementMatched bool // any match since the tile landed
	roundMatched     bool // any match since the last color change
	stageMatched     bool // any match in the current cascade stage

	unlocks []Unlock
	err     error
}

// New creates a game. A nil store keeps progress in memory and a nil sink
// drops events. Call Reset before playing.
func New(cfg config.ColorPlaceConfig, store ProgressStore, sink Sink) *Game {
	if store == nil {
		store = NewMemoryStore(DefaultProgress())
	}
	if sink == nil {
		sink = Discard
	}
	return &Game{
		cfg:    cfg,
		store:  store,
		sink:   sink,
		levels: NewLevelTable(cfg.Levels),
		mode:   ModeIdle{},
	}
}

// GameID keys this game's rows in the score history.
const GameID = "colorplace"

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Color Place"
}

// Reset starts a new session. Progress is read from the store once here; a
// load failure falls back to a fresh record and is reported by Err.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rng = NewSource(cfg.Seed)
	g.gen = NewGenerator(g.cfg, g.rng)
	g.missions = NewMissionTracker(g.cfg.Missions, g.rng)

	g.err = nil
	p, err := g.store.LoadProgress()
	if err != nil {
		g.err = err
		p = DefaultProgress()
	}
	g.progress = p.Normalize()

	g.board = Board{}
	g.score = 0
	g.combo = 0
	g.maxCombo = 0
	g.turnCount = 0
	g.levelIdx = 0
	g.voidTurns = 0
	g.voidSpawned = false
	g.last = placement{pos: Coord{R: -1, C: -1}}
	g.pending = SkillNone
	g.stats = SessionStats{}
	g.unlocks = nil
	g.placementMatched = false
	g.roundMatched = false
	g.stageMatched = false

	g.queue = g.gen.Refill(nil, &g.board, g.colors(), &g.progress, g.cfg.Board.QueueSize, g.cfg.Board.GenerateAttempts)
	g.enterIdle()
}

// State returns the platform-facing summary.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.phase == PhaseGameOver,
		Busy:     g.Busy(),
	}
}

// Board returns a copy of the board.
func (g *Game) Board() Board { return g.board }

// Queue returns a copy of the upcoming tiles, front first.
func (g *Game) Queue() []Tile { return append([]Tile(nil), g.queue...) }

// Mission returns the active mission.
func (g *Game) Mission() Mission { return g.missions.Current() }

// MissionStreak returns the consecutive mission successes.
func (g *Game) MissionStreak() int { return g.missions.Streak() }

// MissionTurns returns the placements since the mission was drawn.
func (g *Game) MissionTurns() int { return g.missions.Turns() }

// MissionBonus returns what completing the mission would pay now.
func (g *Game) MissionBonus() int { return g.missions.Bonus() }

// Level returns the level in force.
func (g *Game) Level() Level { return g.levels.Active(g.score) }

// LevelIndex returns the 0-based position of the level in force.
func (g *Game) LevelIndex() int { return g.levelIdx }

// Score returns the session score.
func (g *Game) Score() int { return g.score }

// Combo returns the current combo counter.
func (g *Game) Combo() int { return g.combo }

// MaxCombo returns the best combo of the session.
func (g *Game) MaxCombo() int { return g.maxCombo }

// Turns returns the number of placements made.
func (g *Game) Turns() int { return g.turnCount }

// PendingSkill returns the deferred skill, if any.
func (g *Game) PendingSkill() SkillID { return g.pending }

// Phase returns the state machine phase.
func (g *Game) Phase() Phase { return g.phase }

// Mode returns what a click means right now.
func (g *Game) Mode() InputMode { return g.mode }

// LastPlaced returns the cell and color of the last placement.
func (g *Game) LastPlaced() (Coord, Color) { return g.last.pos, g.last.color }

// Stats returns the session counters read by the ledger.
func (g *Game) Stats() SessionStats { return g.stats }

// Progress returns the persistent record as of now. After game over it
// includes this session.
func (g *Game) Progress() Progress { return g.progress }

// Unlocks returns what the finished session unlocked.
func (g *Game) Unlocks() []Unlock { return g.unlocks }

// Err returns the last store failure, if any.
func (g *Game) Err() error { return g.err }

// ActiveColors returns the colors in play.
func (g *Game) ActiveColors() []Color { return g.colors() }

// Waiting reports whether the machine is suspended on a mid-turn click.
func (g *Game) Waiting() bool {
	switch g.mode.(type) {
	case ModeColorChange, ModeSkillTarget:
		return true
	}
	return false
}

// Busy reports whether input is locked because a turn is resolving.
func (g *Game) Busy() bool {
	return g.phase != PhaseIdle && g.phase != PhaseGameOver && !g.Waiting()
}

// Step runs one transition of the state machine. It returns false when
// nothing can advance without a click, or the game is idle or over.
func (g *Game) Step() bool {
	if g.Waiting() {
		return false
	}
	switch g.phase {
	case PhasePlaced:
		g.stepPlaced()
	case PhaseImmediateSkill:
		g.startSkill(g.last.skill, StageInitial)
	case PhaseCascade:
		g.stepCascade()
	case PhaseColorChange:
		g.stepColorChange()
	case PhaseAutoChange:
		g.stepAutoChange()
	case PhasePendingSkill:
		g.stepPendingSkill()
	case PhaseFinalize:
		g.stepFinalize()
	default:
		return false
	}
	return true
}

// Resolve steps until the machine needs a click or the turn is over.
func (g *Game) Resolve() {
	for g.Step() {
	}
}

// Click routes a board click to the active mode. Clicks outside the mode's
// candidate cells, or while a turn is resolving, are ignored. It reports
// whether the click was accepted.
func (g *Game) Click(c Coord) bool {
	if !slices.Contains(ModeCells(g.mode), c) {
		return false
	}
	switch m := g.mode.(type) {
	case ModePlacement:
		g.place(c)
	case ModeDropper:
		g.copyColor(c)
	case ModeColorChange:
		g.recolor(c)
	case ModeSkillTarget:
		g.targetSkill(m.Skill, c)
	default:
		return false
	}
	return true
}

func (g *Game) colors() []Color {
	return g.levels.Colors(g.score)
}

func (g *Game) emit(e Event) {
	g.sink.Emit(e)
}
