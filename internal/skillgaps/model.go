package skillgaps

import (
	"math"
	"sort"
	"time"
)

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"

	MaxLevel = 5
)

// Skill is one assessed skill. Gap and Priority are derived.
type Skill struct {
	Name          string `json:"name" binding:"required,max=100"`
	CurrentLevel  int    `json:"currentLevel" binding:"min=0,max=5"`
	RequiredLevel int    `json:"requiredLevel" binding:"min=0,max=5"`
	Gap           int    `json:"gap"`
	Priority      string `json:"priority"`
}

// Recommendation lists study actions for one skill with a gap.
type Recommendation struct {
	Skill    string   `json:"skill"`
	Priority string   `json:"priority"`
	Actions  []string `json:"actions"`
}

// Analysis compares a user's skills against a target role.
type Analysis struct {
	ID              string           `json:"id"`
	UserID          string           `json:"userId"`
	TargetRole      string           `json:"targetRole"`
	Skills          []Skill          `json:"skills"`
	ReadinessScore  int              `json:"readinessScore"`
	Recommendations []Recommendation `json:"recommendations"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// Recommender supplies study actions for a skill gap.
type Recommender interface {
	Recommendations(skill string, gap int) []string
}

// priorityFor maps a gap onto its priority band.
func priorityFor(gap int) string {
	switch {
	case gap >= 3:
		return PriorityHigh
	case gap == 2:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// Readiness is round(100 * sum(min(cur, req)) / sum(req)), 100 when nothing is required.
func Readiness(skills []Skill) int {
	var met, required int
	for _, s := range skills {
		required += s.RequiredLevel
		met += min(s.CurrentLevel, s.RequiredLevel)
	}
	if required == 0 {
		return 100
	}
	return int(math.Round(100 * float64(met) / float64(required)))
}

// derive recomputes every derived field of a.
func derive(a Analysis, rec Recommender) Analysis {
	skills := make([]Skill, len(a.Skills))
	for i, s := range a.Skills {
		s.Gap = max(0, s.RequiredLevel-s.CurrentLevel)
		s.Priority = priorityFor(s.Gap)
		skills[i] = s
	}
	a.Skills = skills
	a.ReadinessScore = Readiness(skills)

	gaps := make([]Skill, 0, len(skills))
	for _, s := range skills {
		if s.Gap > 0 {
			gaps = append(gaps, s)
		}
	}
	sort.SliceStable(gaps, func(i, j int) bool { return gaps[i].Gap > gaps[j].Gap })

	a.Recommendations = make([]Recommendation, 0, len(gaps))
	for _, s := range gaps {
		var actions []string
		if rec != nil {
			actions = rec.Recommendations(s.Name, s.Gap)
		}
		if actions == nil {
			actions = []string{}
		}
		a.Recommendations = append(a.Recommendations, Recommendation{Skill: s.Name, Priority: s.Priority, Actions: actions})
	}
	return a
}
