// Package forms maps record fields to form controls and back.
//
// A Binder is built from typed field accessors (Text, Textarea, Number). It
// seeds controls from a snapshot and patches a snapshot with user input.
// Only the listed fields are ever exposed, so a record's key cannot be edited
// through a binder. Numeric fields accept non-negative numbers only; an empty
// numeric input means 0.
package forms
