package model

import (
	"errors"
	"testing"
)

func TestParseCardType_Normalises(t *testing.T) {
	got, err := ParseCardType("  Teacher ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != CardTypeTeacher {
		t.Fatalf("expected teacher, got %q", got)
	}
}

func TestParseCardType_RejectsUnknown(t *testing.T) {
	_, err := ParseCardType("city")
	if !errors.Is(err, ErrUnknownCardType) {
		t.Fatalf("expected ErrUnknownCardType, got %v", err)
	}
	if err := CardType("").Validate(); !errors.Is(err, ErrUnknownCardType) {
		t.Fatalf("expected empty type to be invalid, got %v", err)
	}
}

func TestRecords_DisplayFirstName(t *testing.T) {
	teacher := Teacher{ID: 3, FirstName: "Ada", LastName: "Lovelace"}
	if teacher.RecordID() != 3 || teacher.DisplayName() != "Ada" {
		t.Fatalf("unexpected teacher record view: %d %q", teacher.RecordID(), teacher.DisplayName())
	}
	student := Student{ID: 9, FirstName: "Alan", MainTeacher: teacher}
	if student.RecordID() != 9 || student.DisplayName() != "Alan" {
		t.Fatalf("unexpected student record view: %d %q", student.RecordID(), student.DisplayName())
	}
}
