package timeseries

import (
	"sort"
	"time"
)

// PostingRecord is one parsed dataset row: a role observed in a given
// month with a posting count. Count defaults to 1 upstream when the
// source row represents a single posting.
type PostingRecord struct {
	Role  string
	Month time.Time
	Count int
}

type Point struct {
	Month time.Time
	Count int
}

// Series is a role's monthly posting counts, months strictly
// increasing, bucketed to the first of the month in UTC.
type Series struct {
	Role   string
	Points []Point
}

func (s Series) Len() int {
	return len(s.Points)
}

// Last returns the most recent month's count, 0 for an empty series.
func (s Series) Last() int {
	if len(s.Points) == 0 {
		return 0
	}
	return s.Points[len(s.Points)-1].Count
}

// Window returns up to the trailing n counts, oldest first.
func (s Series) Window(n int) []float64 {
	if n <= 0 || len(s.Points) == 0 {
		return nil
	}
	start := len(s.Points) - n
	if start < 0 {
		start = 0
	}
	out := make([]float64, 0, len(s.Points)-start)
	for _, p := range s.Points[start:] {
		out = append(out, float64(p.Count))
	}
	return out
}

// Total sums counts across the full observed history.
func (s Series) Total() int {
	total := 0
	for _, p := range s.Points {
		total += p.Count
	}
	return total
}

// BucketMonth truncates a timestamp to first-of-month UTC granularity.
func BucketMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Aggregate groups posting records into one series per role. Counts
// for duplicate months are summed, output months are sorted ascending
// and the result is deterministic for a given input.
func Aggregate(records []PostingRecord) map[string]Series {
	buckets := make(map[string]map[time.Time]int)
	for _, r := range records {
		if r.Role == "" {
			continue
		}
		month := BucketMonth(r.Month)
		if buckets[r.Role] == nil {
			buckets[r.Role] = make(map[time.Time]int)
		}
		buckets[r.Role][month] += r.Count
	}

	out := make(map[string]Series, len(buckets))
	for role, months := range buckets {
		points := make([]Point, 0, len(months))
		for m, c := range months {
			points = append(points, Point{Month: m, Count: c})
		}
		sort.Slice(points, func(i, j int) bool {
			return points[i].Month.Before(points[j].Month)
		})
		out[role] = Series{Role: role, Points: points}
	}
	return out
}
