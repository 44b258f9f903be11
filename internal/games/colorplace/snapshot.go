package colorplace

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlacing     GameStateType = "placing"
	StateDropper     GameStateType = "dropper"
	StateResolving   GameStateType = "resolving"
	StateColorChange GameStateType = "color_change"
	StateSkillTarget GameStateType = "skill_target"
	StateGameOver    GameStateType = "game_over"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Board         string // Board.String form
	Queue         []string
	Score         int
	Combo         int
	MaxCombo      int
	Turns         int
	Level         int // 1-indexed for display
	Mission       string
	MissionStreak int
	Pending       SkillID
	Phase         string
	State         GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StateResolving
	switch g.mode.(type) {
	case ModePlacement:
		state = StatePlacing
	case ModeDropper:
		state = StateDropper
	case ModeColorChange:
		state = StateColorChange
	case ModeSkillTarget:
		state = StateSkillTarget
	}
	if g.phase == PhaseGameOver {
		state = StateGameOver
	}

	queue := make([]string, len(g.queue))
	for i, t := range g.queue {
		queue[i] = t.String()
	}

	return Snapshot{
		Board:         g.board.String(),
		Queue:         queue,
		Score:         g.score,
		Combo:         g.combo,
		MaxCombo:      g.maxCombo,
		Turns:         g.turnCount,
		Level:         g.levelIdx + 1,
		Mission:       g.missions.Current().ID,
		MissionStreak: g.missions.Streak(),
		Pending:       g.pending,
		Phase:         g.phase.String(),
		State:         state,
	}
}
