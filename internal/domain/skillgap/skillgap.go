package skillgap

import (
	"math"
	"sort"
	"strings"
)

// Result scores a candidate's skill overlap against a role's required
// set. An unknown role yields an empty required set and a zero score,
// which is a valid outcome meaning "no reference data".
type Result struct {
	Role          string
	MatchedSkills []string
	MissingSkills []string
	Score         int
}

// Normalize is the canonical skill comparison form: trimmed and
// lowercased. Synonyms are deliberately not resolved.
func Normalize(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}

// Ratio returns the matched fraction in [0,1], 0 when nothing is
// required.
func Ratio(candidateSkills, requiredSkills []string) float64 {
	matched, _ := split(candidateSkills, requiredSkills)
	required := normalizedSet(requiredSkills)
	if len(required) == 0 {
		return 0
	}
	return float64(len(matched)) / float64(len(required))
}

// Analyze compares candidate skills against a role's required skills.
func Analyze(role string, candidateSkills, requiredSkills []string) Result {
	matched, missing := split(candidateSkills, requiredSkills)

	required := normalizedSet(requiredSkills)
	score := 0
	if len(required) > 0 {
		score = int(math.Round(float64(len(matched)) / float64(len(required)) * 100))
	}

	return Result{
		Role:          role,
		MatchedSkills: matched,
		MissingSkills: missing,
		Score:         score,
	}
}

func split(candidateSkills, requiredSkills []string) (matched, missing []string) {
	candidate := make(map[string]struct{}, len(candidateSkills))
	for _, s := range candidateSkills {
		n := Normalize(s)
		if n == "" {
			continue
		}
		candidate[n] = struct{}{}
	}

	matched = make([]string, 0, len(requiredSkills))
	missing = make([]string, 0, len(requiredSkills))
	seen := make(map[string]struct{}, len(requiredSkills))
	for _, s := range requiredSkills {
		n := Normalize(s)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		if _, ok := candidate[n]; ok {
			matched = append(matched, n)
		} else {
			missing = append(missing, n)
		}
	}
	sort.Strings(matched)
	sort.Strings(missing)
	return matched, missing
}

func normalizedSet(skills []string) map[string]struct{} {
	out := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		n := Normalize(s)
		if n == "" {
			continue
		}
		out[n] = struct{}{}
	}
	return out
}
