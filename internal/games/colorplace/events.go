package colorplace

// EventKind names a visible game event.
type EventKind string

const (
	EventTilePlaced      EventKind = "tile_placed"
	EventSkillFired      EventKind = "skill_fired"
	EventSkillRecolored  EventKind = "skill_recolored"
	EventSkillRemoved    EventKind = "skill_removed"
	EventDropper         EventKind = "dropper"
	EventMatchRemoved    EventKind = "match_removed"
	EventCombo           EventKind = "combo"
	EventMissionComplete EventKind = "mission_complete"
	EventMissionExpired  EventKind = "mission_expired"
	EventLevelUp         EventKind = "level_up"
	EventBoardClear      EventKind = "board_clear"
	EventVoidCracked     EventKind = "void_cracked"
	EventVoidSpawned     EventKind = "void_spawned"
	EventColorChanged    EventKind = "color_changed"
	EventAutoChanged     EventKind = "auto_changed"
	EventGameOver        EventKind = "game_over"
	EventUnlocked        EventKind = "unlocked"
	EventSaveFailed      EventKind = "save_failed"
)

// Event is a fire-and-forget notification for the front end.
type Event struct {
	Kind  EventKind
	Label string  // Human-readable text (skill name, level label, error)
	Value int     // Score delta, combo count or bonus
	Skill SkillID // Set for skill events
	Cells []Coord // Cells affected, if any
}

// Sink receives events. Implementations must not call back into the Game.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

// Emit calls f(e).
func (f SinkFunc) Emit(e Event) { f(e) }

type discard struct{}

func (discard) Emit(Event) {}

// Discard is a Sink that drops every event.
var Discard Sink = discard{}

// MultiSink fans events out to several sinks in order.
type MultiSink []Sink

// Emit forwards e to every sink.
func (m MultiSink) Emit(e Event) {
	for _, s := range m {
		if s != nil {
			s.Emit(e)
		}
	}
}
