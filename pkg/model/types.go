package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCardType is returned when a value outside the closed CardType set
// reaches a parser or an exhaustive switch.
var ErrUnknownCardType = errors.New("model: unknown card type")

// Record is the minimal contract a card row needs from an item.
type Record interface {
	RecordID() int
	DisplayName() string
}

// CardType selects which collection a card belongs to.
type CardType string

const (
	CardTypeTeacher CardType = "teacher"
	CardTypeStudent CardType = "student"
)

// CardTypes lists every valid card type in display order.
func CardTypes() []CardType {
	return []CardType{CardTypeTeacher, CardTypeStudent}
}

// ParseCardType normalises raw and returns the matching CardType.
func ParseCardType(raw string) (CardType, error) {
	switch CardType(strings.ToLower(strings.TrimSpace(raw))) {
	case CardTypeTeacher:
		return CardTypeTeacher, nil
	case CardTypeStudent:
		return CardTypeStudent, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCardType, raw)
	}
}

// Validate reports whether t is a member of the closed set.
func (t CardType) Validate() error {
	_, err := ParseCardType(string(t))
	return err
}

func (t CardType) String() string {
	return string(t)
}

// Label returns the human readable heading for the card type.
func (t CardType) Label() string {
	switch t {
	case CardTypeTeacher:
		return "Teachers"
	case CardTypeStudent:
		return "Students"
	default:
		return ""
	}
}

// Teacher is the record stored by the teacher collection.
type Teacher struct {
	ID        int    `json:"id" yaml:"id"`
	FirstName string `json:"firstName" yaml:"firstName"`
	LastName  string `json:"lastName" yaml:"lastName"`
	Subject   string `json:"subject" yaml:"subject"`
}

func (t Teacher) RecordID() int { return t.ID }

func (t Teacher) DisplayName() string { return t.FirstName }

// Student is the record stored by the student collection.
type Student struct {
	ID          int     `json:"id" yaml:"id"`
	FirstName   string  `json:"firstName" yaml:"firstName"`
	LastName    string  `json:"lastName" yaml:"lastName"`
	MainTeacher Teacher `json:"mainTeacher" yaml:"mainTeacher"`
	School      string  `json:"school" yaml:"school"`
}

func (s Student) RecordID() int { return s.ID }

func (s Student) DisplayName() string { return s.FirstName }

var (
	_ Record = Teacher{}
	_ Record = Student{}
)
