package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"job-pulse/internal/domain/timeseries"
)

var ErrInvalidSchema = errors.New("invalid dataset schema")

// Accepted header aliases, resolved once into a canonical schema.
var (
	roleAliases   = []string{"job_title", "role"}
	dateAliases   = []string{"date"}
	countAliases  = []string{"postings_count"}
	skillsAliases = []string{"skills", "required_skills"}
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006/01/02",
	"01/02/2006",
	time.RFC3339,
}

// SchemaError reports which required columns could not be resolved
// and which aliases would have been accepted.
type SchemaError struct {
	MissingColumns  []string
	AcceptedAliases map[string][]string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid dataset schema: missing columns %s", strings.Join(e.MissingColumns, ", "))
}

func (e *SchemaError) Unwrap() error {
	return ErrInvalidSchema
}

// Summary describes one parse run; skipped rows are a metric, never a
// failure.
type Summary struct {
	RowsParsed  int
	RowsSkipped int
	Roles       []string
	SkillCounts map[string]int
}

type schema struct {
	roleIdx   int
	dateIdx   int
	countIdx  int
	skillsIdx int
}

// Parse reads a postings CSV into records plus a parse summary. Rows
// with unparsable dates or missing role values are dropped and
// counted; a header without resolvable role/date columns is the only
// hard failure.
func Parse(r io.Reader) ([]timeseries.PostingRecord, Summary, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, Summary{}, fmt.Errorf("%w: empty dataset", ErrInvalidSchema)
	}

	sc, err := resolveSchema(header)
	if err != nil {
		return nil, Summary{}, err
	}

	summary := Summary{SkillCounts: make(map[string]int)}
	records := make([]timeseries.PostingRecord, 0, 256)
	seenRoles := make(map[string]struct{})

	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			summary.RowsSkipped++
			continue
		}

		role := fieldAt(row, sc.roleIdx)
		month, ok := parseDate(fieldAt(row, sc.dateIdx))
		if role == "" || !ok {
			summary.RowsSkipped++
			continue
		}

		count := 1
		if sc.countIdx >= 0 {
			if v, err := strconv.Atoi(fieldAt(row, sc.countIdx)); err == nil && v >= 0 {
				count = v
			}
		}

		if sc.skillsIdx >= 0 {
			for _, skill := range splitSkills(fieldAt(row, sc.skillsIdx)) {
				summary.SkillCounts[skill]++
			}
		}

		records = append(records, timeseries.PostingRecord{Role: role, Month: month, Count: count})
		seenRoles[role] = struct{}{}
		summary.RowsParsed++
	}

	summary.Roles = make([]string, 0, len(seenRoles))
	for role := range seenRoles {
		summary.Roles = append(summary.Roles, role)
	}
	sort.Strings(summary.Roles)

	return records, summary, nil
}

func resolveSchema(header []string) (schema, error) {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}

	find := func(aliases []string) int {
		for _, a := range aliases {
			if i, ok := index[a]; ok {
				return i
			}
		}
		return -1
	}

	sc := schema{
		roleIdx:   find(roleAliases),
		dateIdx:   find(dateAliases),
		countIdx:  find(countAliases),
		skillsIdx: find(skillsAliases),
	}

	var missing []string
	if sc.roleIdx < 0 {
		missing = append(missing, "role")
	}
	if sc.dateIdx < 0 {
		missing = append(missing, "date")
	}
	if len(missing) > 0 {
		return schema{}, &SchemaError{
			MissingColumns: missing,
			AcceptedAliases: map[string][]string{
				"role": roleAliases,
				"date": dateAliases,
			},
		}
	}
	return sc, nil
}

func fieldAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return timeseries.BucketMonth(t), true
		}
	}
	return time.Time{}, false
}

func splitSkills(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
