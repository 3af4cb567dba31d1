package ingest

import (
	"errors"
	"strings"
	"testing"
)

func TestParse_CanonicalColumns(t *testing.T) {
	data := strings.Join([]string{
		"job_title,date,postings_count,skills",
		"Data Scientist,2024-01-15,5,\"Python, SQL\"",
		"Data Scientist,2024-02-03,7,Python",
		"DevOps Engineer,2024-01-20,3,Docker",
	}, "\n")

	records, summary, err := Parse(strings.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if summary.RowsParsed != 3 || summary.RowsSkipped != 0 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].Count != 5 {
		t.Fatalf("expected postings_count honored, got %d", records[0].Count)
	}
	if len(summary.Roles) != 2 || summary.Roles[0] != "Data Scientist" {
		t.Fatalf("unexpected roles %v", summary.Roles)
	}
	if summary.SkillCounts["python"] != 2 || summary.SkillCounts["sql"] != 1 {
		t.Fatalf("unexpected skill counts %v", summary.SkillCounts)
	}
}

func TestParse_RoleAliasAndDefaultCount(t *testing.T) {
	data := "role,date\nBackend Developer,2024-03-01\n"

	records, _, err := Parse(strings.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Count != 1 {
		t.Fatalf("row without count column must default to 1, got %d", records[0].Count)
	}
}

func TestParse_SkipsBadRowsWithoutFailing(t *testing.T) {
	data := strings.Join([]string{
		"job_title,date",
		"Data Scientist,not-a-date",
		",2024-01-01",
		"Data Scientist,2024-01-01",
	}, "\n")

	records, summary, err := Parse(strings.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if summary.RowsSkipped != 2 {
		t.Fatalf("expected 2 skipped rows, got %d", summary.RowsSkipped)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 good record, got %d", len(records))
	}
}

func TestParse_MissingRequiredColumnsIsStructuredError(t *testing.T) {
	data := "title,when\nX,2024-01-01\n"

	_, _, err := Parse(strings.NewReader(data))
	if err == nil {
		t.Fatalf("expected schema error")
	}
	if !errors.Is(err, ErrInvalidSchema) {
		t.Fatalf("expected ErrInvalidSchema, got %v", err)
	}

	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected *SchemaError, got %T", err)
	}
	if len(schemaErr.MissingColumns) != 2 {
		t.Fatalf("expected role and date reported missing, got %v", schemaErr.MissingColumns)
	}
	if len(schemaErr.AcceptedAliases["role"]) == 0 {
		t.Fatalf("expected accepted aliases in error")
	}
}

func TestParse_EmptyInput(t *testing.T) {
	_, _, err := Parse(strings.NewReader(""))
	if !errors.Is(err, ErrInvalidSchema) {
		t.Fatalf("expected ErrInvalidSchema for empty input, got %v", err)
	}
}

func TestParse_MonthBucketing(t *testing.T) {
	data := "job_title,date\nData Scientist,2024-05-31\n"
	records, _, err := Parse(strings.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	m := records[0].Month
	if m.Day() != 1 || m.Month() != 5 || m.Year() != 2024 {
		t.Fatalf("expected first-of-month bucket, got %v", m)
	}
}
