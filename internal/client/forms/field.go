package forms

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrBelowMinimum = errors.New("value is below the minimum")
	ErrNotANumber   = errors.New("value is not a number")
)

type ControlType string

const (
	ControlText     ControlType = "text"
	ControlTextarea ControlType = "textarea"
	ControlNumber   ControlType = "number"
)

// FieldError ties a validation failure to the field that caused it.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Field binds one exposed control to a field of T.
type Field[T any] struct {
	name  string
	label string
	typ   ControlType
	min   float64

	get   func(*T) string
	set   func(*T, string) error
	clamp func(*T)
}

func (f Field[T]) Name() string { return f.name }

func Text[T any](name, label string, ptr func(*T) *string) Field[T] {
	return textField(name, label, ControlText, ptr)
}

func Textarea[T any](name, label string, ptr func(*T) *string) Field[T] {
	return textField(name, label, ControlTextarea, ptr)
}

func textField[T any](name, label string, typ ControlType, ptr func(*T) *string) Field[T] {
	return Field[T]{
		name:  name,
		label: label,
		typ:   typ,
		get:   func(v *T) string { return *ptr(v) },
		set: func(v *T, raw string) error {
			*ptr(v) = raw
			return nil
		},
	}
}

// Number binds a float field with a minimum of 0.
func Number[T any](name, label string, ptr func(*T) *float64) Field[T] {
	f := Field[T]{name: name, label: label, typ: ControlNumber}
	f.get = func(v *T) string { return FormatNumber(clampTo(*ptr(v), f.min)) }
	f.set = func(v *T, raw string) error {
		n, err := ParseNumber(raw, f.min)
		if err != nil {
			return err
		}
		*ptr(v) = n
		return nil
	}
	f.clamp = func(v *T) { *ptr(v) = clampTo(*ptr(v), f.min) }
	return f
}

// ParseNumber parses a numeric control value. Blank input is 0; a comma is
// accepted as the decimal separator.
func ParseNumber(raw string, min float64) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return clampTo(0, min), nil
	}

	n, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, ErrNotANumber
	}
	if n < min {
		return 0, ErrBelowMinimum
	}
	return n, nil
}

func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func clampTo(v, min float64) float64 {
	if math.IsNaN(v) || v < min {
		return min
	}
	return v
}
