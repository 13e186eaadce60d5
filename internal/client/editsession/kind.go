package editsession

import (
	"context"

	"github.com/dmitrijs2005/myhealth/internal/client/forms"
)

// Kind describes how to edit records of one type.
type Kind[T any] struct {
	// Name addresses the kind in caches and logs, e.g. "food".
	Name string

	Fetch  func(ctx context.Context, key string) (T, error)
	Upsert func(ctx context.Context, record T) error

	// Defaults builds the initial record for key. Used by create flows and by
	// NotFoundIsDefault kinds.
	Defaults func(key string) T

	// NewKey generates the key of a created record. Nil disables create flows.
	NewKey func() string

	// RequiresKey rejects edit flows opened with an empty key before any
	// backend call.
	RequiresKey bool

	// NotFoundIsDefault treats a not-found fetch as "use Defaults".
	NotFoundIsDefault bool

	Binder *forms.Binder[T]
}

// CanCreate reports whether the kind supports create flows.
func (k *Kind[T]) CanCreate() bool { return k.NewKey != nil }
