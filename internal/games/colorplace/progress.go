package colorplace

import (
	"fmt"
	"math"
	"sync"

	"github.com/vovakirdan/colorplace/internal/config"
)

// ColorCounts tracks collected tiles of the three rare colors.
type ColorCounts struct {
	C5 int
	C6 int
	C7 int
}

// Add increments the counter for c; other colors are ignored.
func (cc *ColorCounts) Add(c Color) {
	switch c {
	case C5:
		cc.C5++
	case C6:
		cc.C6++
	case C7:
		cc.C7++
	}
}

// Get returns the counter for c.
func (cc ColorCounts) Get(c Color) int {
	switch c {
	case C5:
		return cc.C5
	case C6:
		return cc.C6
	case C7:
		return cc.C7
	}
	return 0
}

// Achievements are the one-time flags behind the achievement skills.
type Achievements struct {
	BoardClear bool
	Combo3     bool
	Combo4     bool
	Combo5     bool
}

// HiddenFlags are the one-time flags behind the hidden skills.
type HiddenFlags struct {
	ZeroScore  bool
	RowClear   bool
	ColClear   bool
	CrossClear bool
}

// Progress is the persistent record carried between games.
type Progress struct {
	TotalGames      int
	HighScore       int
	UnlockedSkills  []SkillID // Catalog order, no duplicates
	ColorCollected  ColorCounts
	Achievements    Achievements
	Hidden          HiddenFlags
	ScoreMultiplier float64
}

// DefaultProgress returns the record of a fresh player.
func DefaultProgress() Progress {
	return Progress{ScoreMultiplier: 1}
}

// Normalize repairs a loaded record field by field: negative counters become
// zero, unknown or duplicate skills are dropped, and a missing multiplier
// becomes 1.
func (p Progress) Normalize() Progress {
	p.TotalGames = max(p.TotalGames, 0)
	p.HighScore = max(p.HighScore, 0)
	p.ColorCollected.C5 = max(p.ColorCollected.C5, 0)
	p.ColorCollected.C6 = max(p.ColorCollected.C6, 0)
	p.ColorCollected.C7 = max(p.ColorCollected.C7, 0)
	if p.ScoreMultiplier <= 0 || math.IsNaN(p.ScoreMultiplier) || math.IsInf(p.ScoreMultiplier, 0) {
		p.ScoreMultiplier = 1
	}

	seen := make(map[SkillID]bool, len(p.UnlockedSkills))
	for _, id := range p.UnlockedSkills {
		seen[id] = true
	}
	skills := make([]SkillID, 0, len(seen))
	for _, s := range Skills {
		if seen[s.ID] {
			skills = append(skills, s.ID)
		}
	}
	p.UnlockedSkills = skills
	return p
}

// HasSkill reports whether id is unlocked.
func (p *Progress) HasSkill(id SkillID) bool {
	for _, s := range p.UnlockedSkills {
		if s == id {
			return true
		}
	}
	return false
}

func (p *Progress) unlockSkill(id SkillID) bool {
	if p.HasSkill(id) {
		return false
	}
	p.UnlockedSkills = append(p.UnlockedSkills, id)
	*p = p.Normalize()
	return true
}

// SessionStats are the per-game counters the ledger reads at game over.
type SessionStats struct {
	RowCleared   bool
	ColCleared   bool
	CrossCleared bool
	BoardCleared bool
	Collected    ColorCounts
}

// SessionSummary is what a finished game hands to Settle.
type SessionSummary struct {
	Score    int
	MaxCombo int
	Stats    SessionStats
}

// UnlockKind classifies an unlock.
type UnlockKind string

const (
	UnlockSkill      UnlockKind = "skill"
	UnlockTile       UnlockKind = "tile"
	UnlockMultiplier UnlockKind = "multiplier"
)

// Unlock is one newly earned reward.
type Unlock struct {
	Kind  UnlockKind
	Skill SkillID
	Tile  TileType
	Label string
}

type colorUnlock struct {
	color Color
	count int
	skill SkillID
}

// colorUnlocks maps lifetime color collection to skills.
var colorUnlocks = []colorUnlock{
	{C5, 100, SkillS5}, {C6, 100, SkillS6}, {C7, 100, SkillS7},
	{C5, 300, SkillS8}, {C6, 300, SkillS9}, {C7, 300, SkillS10},
	{C5, 500, SkillS11}, {C6, 500, SkillS12}, {C7, 500, SkillS13},
}

func skillUnlock(id SkillID) Unlock {
	def, _ := LookupSkill(id)
	prefix := "Skill"
	if def.Hidden {
		prefix = "Hidden skill"
	}
	return Unlock{Kind: UnlockSkill, Skill: id, Label: fmt.Sprintf("%s: %s", prefix, def.Name)}
}

// Settle folds a finished game into the persistent record and returns the
// updated record together with everything newly unlocked.
func Settle(p Progress, s SessionSummary, cfg config.ColorPlaceConfig) (Progress, []Unlock) {
	p = p.Normalize()
	var unlocks []Unlock
	grant := func(id SkillID) {
		if p.unlockSkill(id) {
			unlocks = append(unlocks, skillUnlock(id))
		}
	}

	p.TotalGames++
	p.HighScore = max(p.HighScore, s.Score)
	p.ColorCollected.C5 += s.Stats.Collected.C5
	p.ColorCollected.C6 += s.Stats.Collected.C6
	p.ColorCollected.C7 += s.Stats.Collected.C7

	combos := []struct {
		n    int
		flag *bool
		id   SkillID
	}{
		{3, &p.Achievements.Combo3, SkillS2},
		{4, &p.Achievements.Combo4, SkillS3},
		{5, &p.Achievements.Combo5, SkillS4},
	}
	for _, c := range combos {
		if s.MaxCombo >= c.n && !*c.flag {
			*c.flag = true
			grant(c.id)
		}
	}
	if s.Stats.BoardCleared && !p.Achievements.BoardClear {
		p.Achievements.BoardClear = true
		grant(SkillS1)
	}

	for _, cu := range colorUnlocks {
		if p.ColorCollected.Get(cu.color) >= cu.count {
			grant(cu.skill)
		}
	}

	if s.Score == 0 && !p.Hidden.ZeroScore {
		p.Hidden.ZeroScore = true
		grant(SkillH1)
	}
	if s.Stats.RowCleared && !p.Hidden.RowClear {
		p.Hidden.RowClear = true
		grant(SkillH2)
	}
	if s.Stats.ColCleared && !p.Hidden.ColClear {
		p.Hidden.ColClear = true
		grant(SkillH3)
	}
	if s.Stats.CrossCleared && !p.Hidden.CrossClear {
		p.Hidden.CrossClear = true
		grant(SkillH4)
		p.ScoreMultiplier = cfg.Scoring.CrossMultiplier
		unlocks = append(unlocks, Unlock{
			Kind:  UnlockMultiplier,
			Label: fmt.Sprintf("Match score x%.1f permanently", cfg.Scoring.CrossMultiplier),
		})
	}

	for _, tt := range cfg.TileTypes {
		if tt.UnlockGames > 0 && p.TotalGames == tt.UnlockGames {
			unlocks = append(unlocks, Unlock{
				Kind:  UnlockTile,
				Tile:  TileType(tt.Type),
				Label: "Tile: " + tt.Name,
			})
		}
	}

	return p, unlocks
}

// ProgressItem is one line of the unlock overview.
type ProgressItem struct {
	Section     string
	Name        string
	Current     int
	Goal        int
	Done        bool
	Condition   string
	Description string
}

// ProgressItems lists tile, skill, hidden and collection progress for display.
// Hidden entries stay masked until earned.
func ProgressItems(p Progress, cfg config.ColorPlaceConfig) []ProgressItem {
	var items []ProgressItem

	for _, tt := range cfg.TileTypes {
		item := ProgressItem{Section: "Tiles", Name: tt.Name, Goal: max(tt.UnlockGames, 1)}
		if tt.UnlockGames == 0 {
			item.Current, item.Done, item.Condition = 1, true, "Default"
		} else {
			item.Current = min(p.TotalGames, tt.UnlockGames)
			item.Done = p.TotalGames >= tt.UnlockGames
			item.Condition = fmt.Sprintf("Play %d games", tt.UnlockGames)
		}
		items = append(items, item)
	}

	boolProgress := func(done bool, goal int) int {
		if done {
			return goal
		}
		return 0
	}
	achievements := []struct {
		id   SkillID
		cur  int
		goal int
		cond string
	}{
		{SkillS1, boolProgress(p.Achievements.BoardClear, 1), 1, "Clear the board once"},
		{SkillS2, boolProgress(p.Achievements.Combo3, 3), 3, "Reach a 3 combo"},
		{SkillS3, boolProgress(p.Achievements.Combo4, 4), 4, "Reach a 4 combo"},
		{SkillS4, boolProgress(p.Achievements.Combo5, 5), 5, "Reach a 5 combo"},
	}
	for _, a := range achievements {
		def, _ := LookupSkill(a.id)
		items = append(items, ProgressItem{
			Section: "Skills", Name: def.Name, Current: a.cur, Goal: a.goal,
			Done: p.HasSkill(a.id), Condition: a.cond, Description: def.Description,
		})
	}
	for _, cu := range colorUnlocks {
		def, _ := LookupSkill(cu.skill)
		items = append(items, ProgressItem{
			Section:     "Skills",
			Name:        def.Name,
			Current:     min(p.ColorCollected.Get(cu.color), cu.count),
			Goal:        cu.count,
			Done:        p.HasSkill(cu.skill),
			Condition:   fmt.Sprintf("Collect %d of %s", cu.count, cu.color),
			Description: def.Description,
		})
	}

	hidden := []struct {
		id   SkillID
		done bool
		cond string
	}{
		{SkillH1, p.Hidden.ZeroScore, "Finish a game with 0 points"},
		{SkillH2, p.Hidden.RowClear, "Fill a row with one color"},
		{SkillH3, p.Hidden.ColClear, "Fill a column with one color"},
		{SkillH4, p.Hidden.CrossClear, "Complete a one-color cross through your tile"},
	}
	for _, h := range hidden {
		item := ProgressItem{Section: "Hidden", Name: "???", Goal: 1, Done: h.done}
		if h.done {
			def, _ := LookupSkill(h.id)
			item.Name, item.Current, item.Condition, item.Description = def.Name, 1, h.cond, def.Description
		}
		items = append(items, item)
	}

	for _, c := range []Color{C5, C6, C7} {
		count := p.ColorCollected.Get(c)
		items = append(items, ProgressItem{
			Section:   "Collection",
			Name:      "Color " + c.String(),
			Current:   min(count, 500),
			Goal:      500,
			Done:      count >= 500,
			Condition: "Collect 500",
		})
	}
	return items
}

// ProgressStore persists Progress between games. It is read once when a game
// starts and written once when it ends.
type ProgressStore interface {
	LoadProgress() (Progress, error)
	SaveProgress(Progress) error
}

// MemoryStore is an in-process ProgressStore.
type MemoryStore struct {
	mu       sync.Mutex
	progress Progress
	saves    int
}

// NewMemoryStore returns a store holding p.
func NewMemoryStore(p Progress) *MemoryStore {
	return &MemoryStore{progress: p}
}

// LoadProgress returns the stored record.
func (m *MemoryStore) LoadProgress() (Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.progress
	p.UnlockedSkills = append([]SkillID(nil), p.UnlockedSkills...)
	return p, nil
}

// SaveProgress replaces the stored record.
func (m *MemoryStore) SaveProgress(p Progress) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.UnlockedSkills = append([]SkillID(nil), p.UnlockedSkills...)
	m.progress = p
	m.saves++
	return nil
}

// Saves returns how many times SaveProgress has been called.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
