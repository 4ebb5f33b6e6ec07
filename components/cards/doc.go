// Package cards serves a board with one teacher card and one student card
// over net/http.
//
// Routes, relative to the mount path (default /cards):
//
//	GET  /                        full board page
//	GET  /{type}/items            JSON list of records
//	POST /{type}/items            append one generated record, 303 back
//	POST /{type}/items/{id}/delete remove a record, 303 back
//
// {type} is one of the closed card types; anything else is a 404.
package cards
