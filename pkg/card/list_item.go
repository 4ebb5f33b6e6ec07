package card

import (
	"github.com/a-h/templ"

	"github.com/goliatone/go-cards/pkg/model"
)

// ListItemProps are the inputs of the stock row.
type ListItemProps struct {
	Name         string
	ID           int
	Type         model.CardType
	DeleteAction string
}

// ListItem renders one row with the display name and a delete control bound
// to the record id. Markup lives in list_item.templ.
func ListItem(props ListItemProps) templ.Component {
	return listItem(props)
}

// ListItemRow adapts ListItem into a row template.
func ListItemRow[T model.Record]() RowTemplate[T] {
	return func(rc RowContext[T]) templ.Component {
		return ListItem(ListItemProps{
			Name:         rc.Item.DisplayName(),
			ID:           rc.Item.RecordID(),
			Type:         rc.Type,
			DeleteAction: rc.DeleteAction,
		})
	}
}
