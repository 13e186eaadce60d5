package common

import "errors"

var (
	// ErrInvalidKey reports an entity key that cannot be parsed for its kind
	// (for example a non-numeric weight timestamp).
	ErrInvalidKey = errors.New("invalid key")

	// ErrEmptyKey reports an edit flow started without an entity key.
	ErrEmptyKey = errors.New("empty key")

	// ErrInvalidToken reports a browsing-session token that failed verification.
	ErrInvalidToken = errors.New("invalid token")
)
