package recommend

import (
	"sort"
	"strings"

	"job-pulse/internal/domain/skillgap"
)

// Level is the ordinal experience scale entry < mid < senior.
type Level int

const (
	LevelEntry Level = iota
	LevelMid
	LevelSenior
)

// DefaultLevel is assumed for roles without reference data.
const DefaultLevel = LevelMid

const mismatchPenalty = 10

var experienceBonus = map[Level]float64{
	LevelEntry:  0,
	LevelMid:    5,
	LevelSenior: 10,
}

// ParseLevel normalizes a level string; anything unrecognized maps to
// the mid default.
func ParseLevel(raw string) Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "entry", "junior":
		return LevelEntry
	case "senior":
		return LevelSenior
	default:
		return DefaultLevel
	}
}

func (l Level) String() string {
	switch l {
	case LevelEntry:
		return "entry"
	case LevelSenior:
		return "senior"
	default:
		return "mid"
	}
}

// RoleProfile is the reference data needed to score one role.
type RoleProfile struct {
	Role           string
	RequiredSkills []string
	ExpectedLevel  Level
}

type Result struct {
	Role  string
	Score float64
	Rank  int
}

// Rank scores every known role against a candidate and orders the
// results descending by score, ties broken by ascending role name.
// Rank is the 1-based post-sort position.
func Rank(candidateSkills []string, candidateLevel Level, profiles []RoleProfile) []Result {
	out := make([]Result, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, Result{
			Role:  p.Role,
			Score: Score(candidateSkills, candidateLevel, p),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Role < out[j].Role
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// Score is overlap_ratio x 100 plus an experience bonus when the
// candidate meets the role's expected level, minus a fixed penalty
// when the candidate sits more than one step below it. One step below
// carries no bonus and no penalty. Scores never go below 0.
func Score(candidateSkills []string, candidateLevel Level, profile RoleProfile) float64 {
	score := skillgap.Ratio(candidateSkills, profile.RequiredSkills) * 100

	switch {
	case candidateLevel >= profile.ExpectedLevel:
		score += experienceBonus[candidateLevel]
	case profile.ExpectedLevel-candidateLevel > 1:
		score -= mismatchPenalty
	}

	if score < 0 {
		score = 0
	}
	return score
}
