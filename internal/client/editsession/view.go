package editsession

import (
	"github.com/dmitrijs2005/myhealth/internal/client/backend"
	"github.com/dmitrijs2005/myhealth/internal/client/forms"
)

// View is everything a page needs to render a session.
type View struct {
	Kind   string
	Key    string
	Create bool
	Status Status

	// Controls is set whenever the form should be shown.
	Controls []forms.Control

	// Err is the failure of the last load or submit, if any.
	Err error
	// InputErr holds field errors of the last rejected input.
	InputErr error
	// Notice is an informational message, e.g. defaults were loaded.
	Notice string
	// FailedFrom tells a failed load from a failed submit.
	FailedFrom Status
}

// Editable reports whether the form accepts input.
func (v View) Editable() bool {
	return v.Status == StatusReady || (v.Status == StatusFailed && v.FailedFrom == StatusSubmitting)
}

// TransportFailure reports whether Err should be shown as a dismissible
// notice rather than inline next to the form.
func (v View) TransportFailure() bool {
	return v.Err != nil && backend.KindOf(v.Err) == backend.KindTransport
}

// View derives the render model from the current state. It has no side
// effects.
func (s *Session[T]) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Kind:       s.kind.Name,
		Key:        s.key,
		Create:     s.create,
		Status:     s.status(),
		Notice:     s.notice,
		InputErr:   s.inputErr,
		FailedFrom: s.failedFrom,
	}
	if v.Status == StatusFailed {
		v.Err = s.lastErr
	}

	switch {
	case v.Status == StatusReady, v.Status == StatusSubmitting,
		v.Status == StatusFailed && s.failedFrom == StatusSubmitting:
		v.Controls = s.kind.Binder.Controls(s.snapshot, s.draft, s.inputErr)
	}
	return v
}
