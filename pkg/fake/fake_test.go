package fake

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGenerator_SeedIsReproducible(t *testing.T) {
	a := New(WithSeed(42))
	b := New(WithSeed(42))

	if diff := cmp.Diff(a.Teachers(5), b.Teachers(5)); diff != "" {
		t.Fatalf("teachers differ for same seed (-a +b):\n%s", diff)
	}
	if diff := cmp.Diff(a.Students(5), b.Students(5)); diff != "" {
		t.Fatalf("students differ for same seed (-a +b):\n%s", diff)
	}
}

func TestGenerator_FillsFieldsFromWordLists(t *testing.T) {
	g := New(WithSeed(7))
	for _, teacher := range g.Teachers(20) {
		if !slices.Contains(firstNames, teacher.FirstName) {
			t.Fatalf("unexpected first name %q", teacher.FirstName)
		}
		if !slices.Contains(lastNames, teacher.LastName) {
			t.Fatalf("unexpected last name %q", teacher.LastName)
		}
		if !slices.Contains(subjects, teacher.Subject) {
			t.Fatalf("unexpected subject %q", teacher.Subject)
		}
	}
	student := g.Student()
	if !slices.Contains(schools, student.School) {
		t.Fatalf("unexpected school %q", student.School)
	}
	if student.MainTeacher.FirstName == "" || student.MainTeacher.Subject == "" {
		t.Fatalf("expected main teacher to be filled: %#v", student.MainTeacher)
	}
}

func TestGenerator_IDsAreUnique(t *testing.T) {
	g := New(WithSeed(1), WithStartID(10))
	seen := map[int]struct{}{}
	for _, teacher := range g.Teachers(5) {
		seen[teacher.ID] = struct{}{}
	}
	for _, student := range g.Students(5) {
		if _, dup := seen[student.ID]; dup {
			t.Fatalf("duplicate id %d", student.ID)
		}
		seen[student.ID] = struct{}{}
		if _, dup := seen[student.MainTeacher.ID]; dup {
			t.Fatalf("duplicate main teacher id %d", student.MainTeacher.ID)
		}
		seen[student.MainTeacher.ID] = struct{}{}
	}
	if _, ok := seen[10]; !ok {
		t.Fatalf("expected first id to honour WithStartID")
	}
}

func TestGenerator_ReserveSkipsUsedIDs(t *testing.T) {
	g := New(WithSeed(3))
	g.Reserve(99)
	if got := g.Teacher().ID; got != 100 {
		t.Fatalf("expected id 100 after reserve, got %d", got)
	}
	g.Reserve(5)
	if got := g.Teacher().ID; got != 101 {
		t.Fatalf("reserve must not move the counter backwards, got %d", got)
	}
}

func TestRandHelpers(t *testing.T) {
	first := RandTeacher()
	second := RandStudent()
	if first.ID == 0 || second.ID == 0 || first.ID == second.ID {
		t.Fatalf("expected distinct non-zero ids, got %d and %d", first.ID, second.ID)
	}
}
