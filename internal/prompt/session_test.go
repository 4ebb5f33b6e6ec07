package prompt

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-cards/components/cards"
	"github.com/goliatone/go-cards/pkg/fake"
	"github.com/goliatone/go-cards/pkg/model"
	"github.com/goliatone/go-cards/pkg/store"
)

type scriptedDriver struct {
	selects  []int
	inputs   []string
	confirms []bool
	infos    []string
}

func (d *scriptedDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", ErrInterrupted
	}
	next := d.inputs[0]
	d.inputs = d.inputs[1:]
	return next, nil
}

func (d *scriptedDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		return 0, ErrInterrupted
	}
	next := d.selects[0]
	d.selects = d.selects[1:]
	return next, nil
}

func (d *scriptedDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if len(d.confirms) == 0 {
		return false, ErrInterrupted
	}
	next := d.confirms[0]
	d.confirms = d.confirms[1:]
	return next, nil
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func newBoard() (*cards.Board, *store.TeacherStore, *store.StudentStore) {
	teachers := store.NewTeacherStore(model.Teacher{ID: 1, FirstName: "Ada"})
	students := store.NewStudentStore()
	board := cards.NewBoard("/cards",
		cards.WithTeacherStore(teachers),
		cards.WithStudentStore(students),
		cards.WithGenerator(fake.New(fake.WithSeed(4))),
	)
	return board, teachers, students
}

func TestSession_AddDeleteAndQuit(t *testing.T) {
	board, teachers, students := newBoard()
	driver := &scriptedDriver{
		// teacher card: list, add, delete, back; student card: add, back; quit
		selects:  []int{0, 0, 1, 2, 4, 1, 1, 4, 2},
		inputs:   []string{"1"},
		confirms: []bool{true},
	}
	s := &Session{Driver: driver, Board: board}

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if teachers.Len() != 1 || teachers.Items()[0].ID == 1 {
		t.Fatalf("expected teacher 1 replaced by a generated teacher, got %#v", teachers.Items())
	}
	if students.Len() != 1 {
		t.Fatalf("expected one student, got %d", students.Len())
	}
	if len(driver.infos) == 0 || !strings.Contains(driver.infos[0], "Ada") {
		t.Fatalf("expected first listing to show Ada, got %#v", driver.infos)
	}
}

func TestSession_DeleteMissingRecordReports(t *testing.T) {
	board, teachers, _ := newBoard()
	driver := &scriptedDriver{
		selects:  []int{0, 2, 4, 2},
		inputs:   []string{"99"},
		confirms: []bool{true},
	}
	s := &Session{Driver: driver, Board: board}

	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if diff := cmp.Diff([]string{"no record 99"}, driver.infos); diff != "" {
		t.Fatalf("infos mismatch (-want +got):\n%s", diff)
	}
	if teachers.Len() != 1 {
		t.Fatalf("expected store untouched, got %d", teachers.Len())
	}
}

func TestSession_DeclinedDeleteKeepsRecord(t *testing.T) {
	board, teachers, _ := newBoard()
	driver := &scriptedDriver{
		selects:  []int{0, 2, 4, 2},
		inputs:   []string{"1"},
		confirms: []bool{false},
	}
	if err := (&Session{Driver: driver, Board: board}).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if teachers.Len() != 1 {
		t.Fatalf("expected record kept, got %d", teachers.Len())
	}
}

func TestSession_RenderWritesCard(t *testing.T) {
	board, _, _ := newBoard()
	var out strings.Builder
	driver := &scriptedDriver{selects: []int{0, 3, 4, 2}}

	if err := (&Session{Driver: driver, Board: board, Out: &out}).Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), `data-card-type="teacher"`) || !strings.Contains(out.String(), ">Ada<") {
		t.Fatalf("expected teacher card html, got %q", out.String())
	}
}

func TestSession_InterruptEndsCleanly(t *testing.T) {
	board, _, _ := newBoard()
	if err := (&Session{Driver: &scriptedDriver{}, Board: board}).Run(context.Background()); err != nil {
		t.Fatalf("expected nil on interrupt, got %v", err)
	}
	if err := (&Session{}).Run(context.Background()); err == nil {
		t.Fatalf("expected error without driver")
	}
}

func TestSession_PropagatesDriverErrors(t *testing.T) {
	board, _, _ := newBoard()
	boom := errors.New("tty gone")
	s := &Session{Driver: failingDriver{err: boom}, Board: board}
	if err := s.Run(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected driver error, got %v", err)
	}
}

type failingDriver struct{ err error }

func (d failingDriver) Input(context.Context, InputConfig) (string, error) { return "", d.err }
func (d failingDriver) Select(context.Context, SelectConfig) (int, error) { return 0, d.err }
func (d failingDriver) Confirm(context.Context, ConfirmConfig) (bool, error) { return false, d.err }
func (d failingDriver) Info(context.Context, string) error { return d.err }

func TestValidateID(t *testing.T) {
	if err := validateID(" 12 "); err != nil {
		t.Fatalf("expected valid id, got %v", err)
	}
	for _, raw := range []string{"", "abc", "0", "-3"} {
		if err := validateID(raw); err == nil {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}
