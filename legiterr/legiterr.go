// Package legiterr defines the error taxonomy shared across the
// scanner, renderer, and engine (spec §7 "Error taxonomy"): each
// error carries a Kind tag and a context string (file/line or
// offset), wrapped with github.com/pkg/errors as it propagates so
// callers can recover the original Kind via Cause.
package legiterr

import "github.com/pkg/errors"

// Kind tags one of the six error categories spec §7 defines.
type Kind string

const (
	Parse    Kind = "PARSE"
	NotFound Kind = "NOT_FOUND"
	NoMem    Kind = "NOMEM"
	Assert   Kind = "ASSERT"
	Duplicate Kind = "DUPLICATE"
	System   Kind = "SYSTEM"
)

// Error is a taxonomy-tagged error with a context string (spec §7
// "a context string (file/line or offset) is prefixed to each
// message").
type Error struct {
	Kind    Kind
	Context string
	Message string
}

func (e *Error) Error() string {
	if e.Context != "" {
		return string(e.Kind) + ": " + e.Context + ": " + e.Message
	}
	return string(e.Kind) + ": " + e.Message
}

// New constructs a taxonomy error.
func New(kind Kind, context, message string) *Error {
	return &Error{Kind: kind, Context: context, Message: message}
}

// Wrap attaches additional context to err as it propagates out of a
// nested compile/render call, preserving the original Kind so callers
// can still recover it via As.
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, context)
}

// As reports whether err (or something it wraps) is a *Error, and
// returns it.
func As(err error) (*Error, bool) {
	var target *Error
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
