// Package model defines the records rendered by cards and the closed set of
// card types. Records expose camelCase JSON names so template contexts can
// read fields such as `item.id` and `item.firstName` directly.
package model
