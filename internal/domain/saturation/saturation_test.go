package saturation

import (
	"testing"
	"time"

	"job-pulse/internal/domain/timeseries"
)

func seriesWith(role string, counts ...int) timeseries.Series {
	points := make([]timeseries.Point, 0, len(counts))
	for i, c := range counts {
		points = append(points, timeseries.Point{
			Month: time.Date(2024, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC),
			Count: c,
		})
	}
	return timeseries.Series{Role: role, Points: points}
}

func TestScoreAll_SingleRoleAlwaysSaturated(t *testing.T) {
	out := ScoreAll(map[string]timeseries.Series{
		"DevOps Engineer": seriesWith("DevOps Engineer", 300),
	})

	if len(out) != 1 {
		t.Fatalf("expected 1 result, got %d", len(out))
	}
	if out[0].Score != 100 {
		t.Fatalf("single role must score 100, got %d", out[0].Score)
	}
	if out[0].Status != StatusSaturated {
		t.Fatalf("expected saturated, got %s", out[0].Status)
	}
}

func TestScoreAll_RelativeToMaxRole(t *testing.T) {
	out := ScoreAll(map[string]timeseries.Series{
		"Data Scientist":    seriesWith("Data Scientist", 100, 100),   // 200
		"Software Engineer": seriesWith("Software Engineer", 50, 50),  // 100
		"Niche Role":        seriesWith("Niche Role", 10),             // 10
	})

	byRole := make(map[string]Result, len(out))
	for _, r := range out {
		byRole[r.Role] = r
	}

	if byRole["Data Scientist"].Score != 100 {
		t.Fatalf("max role must score exactly 100, got %d", byRole["Data Scientist"].Score)
	}
	if byRole["Software Engineer"].Score != 50 || byRole["Software Engineer"].Status != StatusModerate {
		t.Fatalf("unexpected mid result %+v", byRole["Software Engineer"])
	}
	if byRole["Niche Role"].Score != 5 || byRole["Niche Role"].Status != StatusEmerging {
		t.Fatalf("unexpected low result %+v", byRole["Niche Role"])
	}

	for _, r := range out {
		if r.Score < 0 || r.Score > 100 {
			t.Fatalf("score out of bounds: %+v", r)
		}
	}
}

func TestScoreAll_StatusBoundaries(t *testing.T) {
	out := ScoreAll(map[string]timeseries.Series{
		"A": seriesWith("A", 100), // 100 saturated
		"B": seriesWith("B", 70),  // 70 saturated (boundary)
		"C": seriesWith("C", 30),  // 30 moderate (boundary)
		"D": seriesWith("D", 29),  // 29 emerging
	})

	want := map[string]string{
		"A": StatusSaturated,
		"B": StatusSaturated,
		"C": StatusModerate,
		"D": StatusEmerging,
	}
	for _, r := range out {
		if r.Status != want[r.Role] {
			t.Fatalf("role %s: expected %s, got %s (score %d)", r.Role, want[r.Role], r.Status, r.Score)
		}
	}
}

func TestScoreAll_SortedDescendingThenByName(t *testing.T) {
	out := ScoreAll(map[string]timeseries.Series{
		"B Role": seriesWith("B Role", 50),
		"A Role": seriesWith("A Role", 50),
		"Top":    seriesWith("Top", 100),
	})

	if out[0].Role != "Top" || out[1].Role != "A Role" || out[2].Role != "B Role" {
		t.Fatalf("unexpected order: %+v", out)
	}
}

func TestScoreAll_EmptyInput(t *testing.T) {
	if out := ScoreAll(nil); len(out) != 0 {
		t.Fatalf("expected empty output, got %+v", out)
	}
}
