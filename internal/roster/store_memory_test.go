package roster_test

import (
	"context"
	"testing"

	"github.com/edufuturoia-commits/aula-core/internal/roster"
)

func seed(t *testing.T) roster.Repository {
	t.Helper()
	repo := roster.NewInMemoryStore()
	people := []roster.Person{
		{ID: "s1", Name: "Ana", Kind: roster.KindStudent, Grade: "5", Group: "A", Jornada: "morning"},
		{ID: "s2", Name: "Luis", Kind: roster.KindStudent, Grade: "5", Group: "B", Jornada: "afternoon"},
		{ID: "s3", Name: "Mia", Kind: roster.KindStudent, Grade: "6", Group: "A", Jornada: "morning"},
		{ID: "t1", Name: "Prof. Gomez", Kind: roster.KindTeacher, Subject: "math"},
		{ID: "g1", Name: "Carla", Kind: roster.KindGuardian, WardIDs: []string{"s1"}},
	}
	for _, p := range people {
		if err := repo.Put(context.Background(), p); err != nil {
			t.Fatalf("put %s: %v", p.ID, err)
		}
	}
	return repo
}

func TestListStudents_FiltersAndExcludesNonStudents(t *testing.T) {
	repo := seed(t)

	all, err := repo.ListStudents(context.Background(), roster.Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 students (teachers and guardians excluded), got %d", len(all))
	}

	cases := []struct {
		name string
		f    roster.Filter
		want []string
	}{
		{"by grade", roster.Filter{Grade: "5"}, []string{"s1", "s2"}},
		{"by grade and group", roster.Filter{Grade: "5", Group: "A"}, []string{"s1"}},
		{"by jornada", roster.Filter{Jornada: "morning"}, []string{"s1", "s3"}},
		{"no match", roster.Filter{Grade: "9"}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.ListStudents(context.Background(), tc.f)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("expected %d students, got %+v", len(tc.want), got)
			}
			for i, id := range tc.want {
				if got[i].ID != id {
					t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
				}
			}
		})
	}
}

func TestAsStudent_ProjectsOnlyStudents(t *testing.T) {
	repo := seed(t)

	p, err := repo.Get(context.Background(), "t1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, ok := p.AsStudent(); ok {
		t.Fatalf("teacher must not project to a student")
	}

	p, err = repo.Get(context.Background(), "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	st, ok := p.AsStudent()
	if !ok || st.Grade != "5" || st.Group != "A" {
		t.Fatalf("bad projection: %+v", st)
	}
}
