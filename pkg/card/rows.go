package card

import (
	"context"

	"github.com/a-h/templ"

	"github.com/goliatone/go-cards/pkg/model"
	"github.com/goliatone/go-cards/pkg/store"
)

// RowContext is the per-row binding handed to a row template. The current
// record is always available as Item.
type RowContext[T model.Record] struct {
	Item         T
	Index        int
	Type         model.CardType
	DeleteAction string
}

// Map exposes the context with lower-case keys, matching the names used by
// string templates (`item`, `index`, `type`, `deleteAction`).
func (rc RowContext[T]) Map() map[string]any {
	return map[string]any{
		"item":         rc.Item,
		"index":        rc.Index,
		"type":         rc.Type.String(),
		"deleteAction": rc.DeleteAction,
	}
}

// RowTemplate renders one row from its context.
type RowTemplate[T model.Record] func(rc RowContext[T]) templ.Component

// AppendGenerated returns a Store that appends one record produced by
// generate to the collection.
func AppendGenerated[T model.Record](c *store.Collection[T], generate func() T) Store {
	return StoreFunc(func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if c == nil || generate == nil {
			return ErrMissingStore
		}
		c.AddOne(generate())
		return nil
	})
}

// Follow keeps the card's list in sync with the collection. The returned
// function stops following.
func Follow[T model.Record](c *Card[T], coll *store.Collection[T]) (stop func()) {
	if c == nil || coll == nil {
		return func() {}
	}
	c.SetList(coll.Items())
	return coll.Subscribe(func(items []T) {
		c.SetList(items)
	})
}
