package cards

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/goliatone/go-cards/pkg/card"
	"github.com/goliatone/go-cards/pkg/model"
)

// Board owns one card per card type and the collections behind them.
type Board struct {
	opts     Options
	basePath string
}

// NewBoard builds a board whose controls post under basePath.
func NewBoard(basePath string, fns ...OptionFn) *Board {
	return newBoard(basePath, NewOptions(fns...))
}

func newBoard(basePath string, opts Options) *Board {
	b := &Board{opts: opts, basePath: basePath}
	b.opts.Generator.Reserve(b.opts.Teachers.MaxID())
	b.opts.Generator.Reserve(b.opts.Students.MaxID())
	return b
}

// TeacherCard builds the teacher card from the current collection.
func (b *Board) TeacherCard() (*card.Card[model.Teacher], error) {
	t := model.CardTypeTeacher
	return card.New(
		card.WithType[model.Teacher](t),
		card.WithList(b.opts.Teachers.Items()),
		card.WithCustomClass[model.Teacher](b.opts.Styles.ClassFor(t)),
		card.WithHeader[model.Teacher](b.header(t)),
		card.WithRowTemplate(b.opts.TeacherRow),
		card.WithStore[model.Teacher](card.AppendGenerated(b.opts.Teachers, b.opts.Generator.Teacher)),
		card.WithAddAction[model.Teacher](b.addAction(t)),
		card.WithDeleteAction[model.Teacher](b.deleteAction),
	)
}

// StudentCard builds the student card from the current collection.
func (b *Board) StudentCard() (*card.Card[model.Student], error) {
	t := model.CardTypeStudent
	return card.New(
		card.WithType[model.Student](t),
		card.WithList(b.opts.Students.Items()),
		card.WithCustomClass[model.Student](b.opts.Styles.ClassFor(t)),
		card.WithHeader[model.Student](b.header(t)),
		card.WithRowTemplate(b.opts.StudentRow),
		card.WithStore[model.Student](card.AppendGenerated(b.opts.Students, b.opts.Generator.Student)),
		card.WithAddAction[model.Student](b.addAction(t)),
		card.WithDeleteAction[model.Student](b.deleteAction),
	)
}

// Card returns the card for t as a renderable component.
func (b *Board) Card(t model.CardType) (templ.Component, error) {
	switch t {
	case model.CardTypeTeacher:
		c, err := b.TeacherCard()
		if err != nil {
			return nil, err
		}
		return c, nil
	case model.CardTypeStudent:
		c, err := b.StudentCard()
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("cards: %w: %q", model.ErrUnknownCardType, t)
	}
}

// Add appends one generated record to the collection for t.
func (b *Board) Add(ctx context.Context, t model.CardType) error {
	switch t {
	case model.CardTypeTeacher:
		c, err := b.TeacherCard()
		if err != nil {
			return err
		}
		return c.AddNewItem(ctx)
	case model.CardTypeStudent:
		c, err := b.StudentCard()
		if err != nil {
			return err
		}
		return c.AddNewItem(ctx)
	default:
		return fmt.Errorf("cards: %w: %q", model.ErrUnknownCardType, t)
	}
}

// Delete removes the record id from the collection for t.
func (b *Board) Delete(t model.CardType, id int) error {
	switch t {
	case model.CardTypeTeacher:
		return b.opts.Teachers.DeleteOne(id)
	case model.CardTypeStudent:
		return b.opts.Students.DeleteOne(id)
	default:
		return fmt.Errorf("cards: %w: %q", model.ErrUnknownCardType, t)
	}
}

// Items returns the records for t.
func (b *Board) Items(t model.CardType) ([]model.Record, error) {
	switch t {
	case model.CardTypeTeacher:
		return toRecords(b.opts.Teachers.Items()), nil
	case model.CardTypeStudent:
		return toRecords(b.opts.Students.Items()), nil
	default:
		return nil, fmt.Errorf("cards: %w: %q", model.ErrUnknownCardType, t)
	}
}

// Render writes the cards side by side, without a page wrapper.
func (b *Board) Render(ctx context.Context, w io.Writer) error {
	types := model.CardTypes()
	cards := make([]templ.Component, 0, len(types))
	for _, t := range types {
		c, err := b.Card(t)
		if err != nil {
			return err
		}
		cards = append(cards, renderCard(t, c))
	}
	return boardView(cards).Render(ctx, w)
}

// Page wraps the board in a minimal HTML document.
func (b *Board) Page() templ.Component {
	return page(b.opts.Title, b)
}

func renderCard(t model.CardType, c templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := c.Render(ctx, w); err != nil {
			return fmt.Errorf("cards: render %s card: %w", t, err)
		}
		return nil
	})
}

func (b *Board) header(t model.CardType) templ.Component {
	src := b.opts.Styles.HeaderFor(t)
	if src == "" {
		return nil
	}
	return card.HeaderImage(src, 200)
}

func (b *Board) addAction(t model.CardType) string {
	return b.basePath + "/" + t.String() + "/items"
}

func (b *Board) deleteAction(t model.CardType, id int) string {
	return b.basePath + "/" + t.String() + "/items/" + strconv.Itoa(id) + "/delete"
}

func toRecords[T model.Record](items []T) []model.Record {
	out := make([]model.Record, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}
