package forms

import "errors"

// Values is raw user input keyed by field name. A field missing from Values
// keeps its snapshot value.
type Values map[string]string

// Control is the render model of one field.
type Control struct {
	Name  string
	Label string
	Type  ControlType
	Value string
	Min   float64
	Error string
}

type Binder[T any] struct {
	fields []Field[T]
}

func NewBinder[T any](fields ...Field[T]) *Binder[T] {
	return &Binder[T]{fields: fields}
}

// Controls seeds one control per field from snapshot. Values present in draft
// replace the snapshot value so a rejected input is shown back unchanged;
// field errors found in errs are attached to their controls.
func (b *Binder[T]) Controls(snapshot T, draft Values, errs error) []Control {
	byField := FieldErrors(errs)

	out := make([]Control, 0, len(b.fields))
	for _, f := range b.fields {
		c := Control{
			Name:  f.name,
			Label: f.label,
			Type:  f.typ,
			Min:   f.min,
			Value: f.get(&snapshot),
		}
		if raw, ok := draft[f.name]; ok {
			c.Value = raw
		}
		if err, ok := byField[f.name]; ok {
			c.Error = err.Error()
		}
		out = append(out, c)
	}
	return out
}

// Patch returns snapshot with every field present in in overwritten. All
// field errors are reported together via errors.Join. Numeric fields of the
// result are always clamped to their minimum.
func (b *Binder[T]) Patch(snapshot T, in Values) (T, error) {
	out := snapshot

	var errs []error
	for _, f := range b.fields {
		raw, ok := in[f.name]
		if !ok {
			continue
		}
		if err := f.set(&out, raw); err != nil {
			errs = append(errs, &FieldError{Field: f.name, Err: err})
		}
	}
	if len(errs) > 0 {
		return snapshot, errors.Join(errs...)
	}

	b.Clamp(&out)
	return out, nil
}

// Clamp forces every numeric field of v to its minimum or above.
func (b *Binder[T]) Clamp(v *T) {
	for _, f := range b.fields {
		if f.clamp != nil {
			f.clamp(v)
		}
	}
}

// FieldErrors indexes the *FieldError values found in err by field name.
func FieldErrors(err error) map[string]error {
	out := map[string]error{}
	collect(err, out)
	return out
}

func collect(err error, out map[string]error) {
	if err == nil {
		return
	}
	if fe, ok := err.(*FieldError); ok {
		out[fe.Field] = fe.Err
		return
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			collect(e, out)
		}
		return
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		out[fe.Field] = fe.Err
	}
}
