package card

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/a-h/templ"

	"github.com/goliatone/go-cards/pkg/model"
)

var (
	// ErrMissingRowTemplate is returned when a card is built or rendered
	// without a row template.
	ErrMissingRowTemplate = errors.New("card: row template is required")
	// ErrMissingStore is returned by AddNewItem when no store was injected.
	ErrMissingStore = errors.New("card: store is required")
)

const baseClass = "flex w-fit flex-col gap-3 rounded-md border-2 border-black p-4"

// Store is the mutation capability a card needs for its Add control.
type Store interface {
	AddNew(ctx context.Context) error
}

// StoreFunc adapts a function into a Store.
type StoreFunc func(ctx context.Context) error

func (fn StoreFunc) AddNew(ctx context.Context) error {
	return fn(ctx)
}

// DeleteActionFunc builds the URL a row's delete control posts to.
type DeleteActionFunc func(cardType model.CardType, id int) string

// Option configures a Card.
type Option[T model.Record] func(*Card[T])

// WithList sets the records to render. A nil slice renders zero rows.
func WithList[T model.Record](items []T) Option[T] {
	return func(c *Card[T]) {
		c.list = slices.Clone(items)
	}
}

// WithType sets the card's item type.
func WithType[T model.Record](cardType model.CardType) Option[T] {
	return func(c *Card[T]) {
		c.cardType = cardType
	}
}

// WithCustomClass appends extra CSS classes to the container.
func WithCustomClass[T model.Record](class string) Option[T] {
	return func(c *Card[T]) {
		c.customClass = strings.TrimSpace(class)
	}
}

// WithHeader projects a component into the card's header slot.
func WithHeader[T model.Record](header templ.Component) Option[T] {
	return func(c *Card[T]) {
		c.header = header
	}
}

// WithRowTemplate sets the template instantiated once per record.
func WithRowTemplate[T model.Record](row RowTemplate[T]) Option[T] {
	return func(c *Card[T]) {
		c.row = row
	}
}

// WithStore injects the store used by AddNewItem.
func WithStore[T model.Record](store Store) Option[T] {
	return func(c *Card[T]) {
		c.store = store
	}
}

// WithAddAction sets the URL the Add control posts to. Without one the
// control renders as a plain button.
func WithAddAction[T model.Record](action string) Option[T] {
	return func(c *Card[T]) {
		c.addAction = strings.TrimSpace(action)
	}
}

// WithDeleteAction sets the builder for per-row delete URLs.
func WithDeleteAction[T model.Record](fn DeleteActionFunc) Option[T] {
	return func(c *Card[T]) {
		c.deleteAction = fn
	}
}

// Card is a container rendering a header slot and a list of rows.
type Card[T model.Record] struct {
	mu sync.RWMutex

	list         []T
	cardType     model.CardType
	customClass  string
	header       templ.Component
	row          RowTemplate[T]
	store        Store
	addAction    string
	deleteAction DeleteActionFunc
}

var _ templ.Component = (*Card[model.Teacher])(nil)

// New builds a card. The card type must be valid and a row template is
// required.
func New[T model.Record](options ...Option[T]) (*Card[T], error) {
	c := &Card[T]{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}

	if err := c.cardType.Validate(); err != nil {
		return nil, fmt.Errorf("card: %w", err)
	}
	if c.row == nil {
		return nil, ErrMissingRowTemplate
	}
	return c, nil
}

// MustNew panics when New fails. Useful for static wiring.
func MustNew[T model.Record](options ...Option[T]) *Card[T] {
	c, err := New(options...)
	if err != nil {
		panic(err)
	}
	return c
}

// Type returns the card's item type.
func (c *Card[T]) Type() model.CardType {
	return c.cardType
}

// List returns a copy of the records the card will render.
func (c *Card[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.list)
}

// SetList replaces the records to render. Typically wired to a store
// subscription.
func (c *Card[T]) SetList(items []T) {
	c.mu.Lock()
	c.list = slices.Clone(items)
	c.mu.Unlock()
}

// AddNewItem asks the injected store to append one freshly generated record.
func (c *Card[T]) AddNewItem(ctx context.Context) error {
	if c.store == nil {
		return ErrMissingStore
	}
	if err := c.store.AddNew(ctx); err != nil {
		return fmt.Errorf("card: add %s: %w", c.cardType, err)
	}
	return nil
}

// Render writes the card markup to w. Markup lives in card.templ.
func (c *Card[T]) Render(ctx context.Context, w io.Writer) error {
	if c == nil || c.row == nil {
		return ErrMissingRowTemplate
	}

	var header templ.Component
	if c.header != nil {
		header = wrapErr(c.header, "card: render header")
	}
	rows := c.Rows()
	for idx, row := range rows {
		rows[idx] = wrapErr(row, fmt.Sprintf("card: render row %d", idx))
	}
	return cardView(c.className(), c.cardType.String(), header, rows, c.addAction).Render(ctx, w)
}

// Rows instantiates the row template once per record, in list order.
func (c *Card[T]) Rows() []templ.Component {
	if c == nil || c.row == nil {
		return nil
	}
	list := c.List()
	rows := make([]templ.Component, 0, len(list))
	for idx, item := range list {
		rows = append(rows, c.row(c.rowContext(idx, item)))
	}
	return rows
}

func (c *Card[T]) rowContext(idx int, item T) RowContext[T] {
	rc := RowContext[T]{
		Item:  item,
		Index: idx,
		Type:  c.cardType,
	}
	if c.deleteAction != nil {
		rc.DeleteAction = c.deleteAction(c.cardType, item.RecordID())
	}
	return rc
}

func (c *Card[T]) className() string {
	if c.customClass == "" {
		return baseClass
	}
	return baseClass + " " + c.customClass
}

func wrapErr(component templ.Component, msg string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := component.Render(ctx, w); err != nil {
			return fmt.Errorf("%s: %w", msg, err)
		}
		return nil
	})
}
