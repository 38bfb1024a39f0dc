package engine

import "strings"

type QuestKind string

const (
	// KindStatic is a count-based quest (reps, sets, repetitions).
	KindStatic QuestKind = "static"
	// KindDistance is a kilometer-based quest fed by location tracking.
	KindDistance QuestKind = "distance"
)

func (k QuestKind) IsValid() bool {
	switch k {
	case KindStatic, KindDistance:
		return true
	default:
		return false
	}
}

// ParseQuestKind parses user/oracle input to a QuestKind.
func ParseQuestKind(input string) (QuestKind, bool) {
	k := QuestKind(strings.TrimSpace(strings.ToLower(input)))
	return k, k.IsValid()
}

// Rank is the player's overall difficulty tier, E (lowest) to S (highest).
type Rank string

const (
	RankE Rank = "E"
	RankD Rank = "D"
	RankC Rank = "C"
	RankB Rank = "B"
	RankA Rank = "A"
	RankS Rank = "S"
)

var rankOrder = []Rank{RankE, RankD, RankC, RankB, RankA, RankS}

func (r Rank) IsValid() bool {
	for _, v := range rankOrder {
		if r == v {
			return true
		}
	}
	return false
}

// DefaultRank is used when onboarding input is missing/invalid.
const DefaultRank Rank = RankE

func ParseRank(input string) Rank {
	r := Rank(strings.TrimSpace(strings.ToUpper(input)))
	if r.IsValid() {
		return r
	}
	return DefaultRank
}

type Quest struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	XPReward    int       `json:"xpReward"`
	Kind        QuestKind `json:"kind"`
	Goal        float64   `json:"goal"`
	Progress    float64   `json:"progress"`
}

// Complete reports whether the quest has reached its goal.
func (q Quest) Complete() bool {
	return q.Progress >= q.Goal
}

type Skill struct {
	Name        string `json:"name"`
	Level       int    `json:"level"`
	Description string `json:"description"`
}

// Player is the root aggregate: the one persisted record per installation.
type Player struct {
	Name            string  `json:"name"`
	Level           int     `json:"level"`
	XP              int     `json:"xp"`
	Rank            Rank    `json:"rank"`
	Quests          []Quest `json:"quests"`
	Skills          []Skill `json:"skills"`
	LastActive      string  `json:"lastActive"` // calendar date, YYYY-MM-DD, local tz
	DailySteps      int     `json:"dailySteps"`
	DailyDistanceKM float64 `json:"dailyDistanceKm"`

	// PendingLevelUp holds the level of an unacknowledged level-up notice,
	// 0 when there is none. Cleared only by explicit acknowledgment.
	PendingLevelUp int `json:"pendingLevelUp,omitempty"`
}

// NewPlayer returns a fresh level-1 record with no quests.
func NewPlayer(name string, rank Rank, today string) Player {
	if !rank.IsValid() {
		rank = DefaultRank
	}
	return Player{
		Name:       name,
		Level:      1,
		XP:         0,
		Rank:       rank,
		LastActive: today,
	}
}

// Quest returns the active quest with the given id, if any.
func (p Player) Quest(id string) (Quest, bool) {
	for _, q := range p.Quests {
		if q.ID == id {
			return q, true
		}
	}
	return Quest{}, false
}
