package repository

import (
	"context"
	"reflect"
	"testing"
)

func staticFixture() *StaticRoleProfileRepository {
	return NewStaticRoleProfileRepository([]StaticProfile{
		{Role: "Software Engineer", ExpectedLevel: "mid", RequiredSkills: []string{"Git", "Algorithms"}},
		{Role: "Data Analyst", ExpectedLevel: "entry", RequiredSkills: []string{"SQL"}},
	})
}

func TestStaticRepository_RequiredSkills(t *testing.T) {
	repo := staticFixture()

	got, err := repo.RequiredSkills(context.Background(), "  SOFTWARE engineer ")
	if err != nil {
		t.Fatalf("RequiredSkills: %v", err)
	}
	want := []string{"Algorithms", "Git"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("skills = %v, want %v", got, want)
	}
}

func TestStaticRepository_UnknownRoleIsEmptyNotError(t *testing.T) {
	repo := staticFixture()

	skills, err := repo.RequiredSkills(context.Background(), "astronaut")
	if err != nil {
		t.Fatalf("RequiredSkills: %v", err)
	}
	if len(skills) != 0 {
		t.Fatalf("skills = %v, want empty", skills)
	}

	level, err := repo.ExpectedLevel(context.Background(), "astronaut")
	if err != nil {
		t.Fatalf("ExpectedLevel: %v", err)
	}
	if level != "" {
		t.Fatalf("level = %q, want empty", level)
	}
}

func TestStaticRepository_ListRolesSorted(t *testing.T) {
	repo := staticFixture()

	roles, err := repo.ListRoles(context.Background())
	if err != nil {
		t.Fatalf("ListRoles: %v", err)
	}
	want := []string{"Data Analyst", "Software Engineer"}
	if !reflect.DeepEqual(roles, want) {
		t.Fatalf("roles = %v, want %v", roles, want)
	}
}
