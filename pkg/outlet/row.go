package outlet

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/goliatone/go-cards/pkg/card"
	"github.com/goliatone/go-cards/pkg/model"
)

// Row adapts the named template into a card row template. The name must
// resolve now so a missing template fails at wiring time.
func Row[T model.Record](r *Registry, name string) (card.RowTemplate[T], error) {
	if r == nil {
		return nil, card.ErrMissingRowTemplate
	}
	if _, err := r.lookup(name); err != nil {
		return nil, err
	}
	return func(rc card.RowContext[T]) templ.Component {
		data := rc.Map()
		return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
			return r.Execute(name, data, w)
		})
	}, nil
}

// MustRow panics when Row fails.
func MustRow[T model.Record](r *Registry, name string) card.RowTemplate[T] {
	row, err := Row[T](r, name)
	if err != nil {
		panic(err)
	}
	return row
}
