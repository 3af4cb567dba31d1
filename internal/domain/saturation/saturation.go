package saturation

import (
	"math"
	"sort"

	"job-pulse/internal/domain/timeseries"
)

const (
	StatusSaturated = "saturated"
	StatusModerate  = "moderate"
	StatusEmerging  = "emerging"
)

// Result is a dataset-relative saturation figure: the same role can
// score differently across two datasets.
type Result struct {
	Role     string
	JobCount int
	Score    int
	Status   string
}

// ScoreAll computes 0-100 saturation per role from full-history
// posting totals, relative to the busiest role in the dataset. With a
// single role the maximum is its own total, so it always scores 100.
func ScoreAll(series map[string]timeseries.Series) []Result {
	maxCount := 0
	totals := make(map[string]int, len(series))
	for role, s := range series {
		total := s.Total()
		totals[role] = total
		if total > maxCount {
			maxCount = total
		}
	}

	out := make([]Result, 0, len(series))
	for role, total := range totals {
		score := 0
		if maxCount > 0 {
			score = int(math.Round(float64(total) / float64(maxCount) * 100))
		}
		out = append(out, Result{
			Role:     role,
			JobCount: total,
			Score:    score,
			Status:   statusFor(score),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Role < out[j].Role
	})
	return out
}

func statusFor(score int) string {
	switch {
	case score >= 70:
		return StatusSaturated
	case score >= 30:
		return StatusModerate
	default:
		return StatusEmerging
	}
}
