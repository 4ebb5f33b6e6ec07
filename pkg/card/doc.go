// Package card renders a card container: a projected header region, one row
// per record produced by a caller-supplied row template, and an "Add" control.
//
// The row template is a plain function from RowContext to templ.Component.
// The card captures it once and calls it once per record on every render, in
// list order, so callers change row appearance without touching this
// package. ListItemRow provides the stock row with a delete control; the
// outlet package adapts named pongo2 templates into the same shape.
//
// Mutations go through the Store capability injected per card, never through
// a type switch, and re-rendering after a mutation is left to whoever listens
// to the backing collection.
package card
