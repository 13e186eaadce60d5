package backend

import (
	"errors"
	"fmt"
)

// Kind classifies a backend failure.
type Kind int

const (
	KindTransport Kind = iota + 1
	KindApplication
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindApplication:
		return "application"
	case KindNotFound:
		return "not found"
	default:
		return "unknown"
	}
}

var ErrInvalidBaseURL = errors.New("invalid backend base URL")

// Error is the error type of every backend call that reached the transport.
// Keys rejected before sending are reported with the common key errors.
type Error struct {
	Kind    Kind
	Status  int    // HTTP status, 0 when no response was received
	Message string // envelope error string for application and not-found errors
	Err     error  // underlying transport or decode error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return fmt.Sprintf("backend %s error: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("backend %s error: status %d", e.Kind, e.Status)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, or 0 when err is not a backend error.
func KindOf(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return 0
}

func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

func transportError(status int, err error) *Error {
	return &Error{Kind: KindTransport, Status: status, Err: err}
}
