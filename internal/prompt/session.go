package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goliatone/go-cards/components/cards"
	"github.com/goliatone/go-cards/pkg/model"
	"github.com/goliatone/go-cards/pkg/store"
)

const (
	actionList   = "List records"
	actionAdd    = "Add a record"
	actionDelete = "Delete a record"
	actionRender = "Render card HTML"
	actionBack   = "Back"
	choiceQuit   = "Quit"
)

// Session drives a board from terminal prompts.
type Session struct {
	Driver Driver
	Board  *cards.Board
	// Out receives rendered HTML. Informational lines go through Driver.Info.
	Out io.Writer
}

// Run loops until the user quits or interrupts. An interrupt ends the session
// without error.
func (s *Session) Run(ctx context.Context) error {
	if s.Driver == nil || s.Board == nil {
		return fmt.Errorf("prompt: driver and board are required")
	}
	err := s.loop(ctx)
	if errors.Is(err, ErrInterrupted) {
		return nil
	}
	return err
}

func (s *Session) loop(ctx context.Context) error {
	types := model.CardTypes()
	choices := make([]string, 0, len(types)+1)
	for _, t := range types {
		choices = append(choices, t.Label())
	}
	choices = append(choices, choiceQuit)

	for {
		idx, err := s.Driver.Select(ctx, SelectConfig{Message: "Card", Options: choices})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(types) {
			return nil
		}
		if err := s.cardMenu(ctx, types[idx]); err != nil {
			return err
		}
	}
}

func (s *Session) cardMenu(ctx context.Context, t model.CardType) error {
	actions := []string{actionList, actionAdd, actionDelete, actionRender, actionBack}
	for {
		idx, err := s.Driver.Select(ctx, SelectConfig{
			Message: t.Label(),
			Options: actions,
		})
		if err != nil {
			return err
		}
		if idx < 0 {
			return nil
		}

		switch actions[idx] {
		case actionList:
			err = s.list(ctx, t)
		case actionAdd:
			err = s.add(ctx, t)
		case actionDelete:
			err = s.remove(ctx, t)
		case actionRender:
			err = s.render(ctx, t)
		default:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (s *Session) list(ctx context.Context, t model.CardType) error {
	items, err := s.Board.Items(t)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return s.Driver.Info(ctx, "no records")
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%4d  %s", item.RecordID(), item.DisplayName()))
	}
	return s.Driver.Info(ctx, strings.Join(lines, "\n"))
}

func (s *Session) add(ctx context.Context, t model.CardType) error {
	if err := s.Board.Add(ctx, t); err != nil {
		return err
	}
	return s.list(ctx, t)
}

func (s *Session) remove(ctx context.Context, t model.CardType) error {
	raw, err := s.Driver.Input(ctx, InputConfig{
		Message:   "Record id",
		Validator: validateID,
	})
	if err != nil {
		return err
	}
	if err := validateID(raw); err != nil {
		return s.Driver.Info(ctx, err.Error())
	}
	id, _ := strconv.Atoi(strings.TrimSpace(raw))

	ok, err := s.Driver.Confirm(ctx, ConfirmConfig{
		Message: fmt.Sprintf("Delete %s %d?", t, id),
		Default: true,
	})
	if err != nil || !ok {
		return err
	}

	if err := s.Board.Delete(t, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return s.Driver.Info(ctx, fmt.Sprintf("no record %d", id))
		}
		return err
	}
	return s.list(ctx, t)
}

func (s *Session) render(ctx context.Context, t model.CardType) error {
	c, err := s.Board.Card(t)
	if err != nil {
		return err
	}
	out := s.Out
	if out == nil {
		out = io.Discard
	}
	if err := c.Render(ctx, out); err != nil {
		return err
	}
	_, err = io.WriteString(out, "\n")
	return err
}
