package service

import "errors"

// Kind tags every service failure so callers branch on the kind of error
// rather than matching message text.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindForbidden
	KindConflict
	KindUnauthenticated
)

// Error is the uniform failure shape returned by every service operation.
// Message is safe to show to API callers.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func NotFound(msg string) *Error        { return &Error{Kind: KindNotFound, Message: msg} }
func Forbidden(msg string) *Error       { return &Error{Kind: KindForbidden, Message: msg} }
func Conflict(msg string) *Error        { return &Error{Kind: KindConflict, Message: msg} }
func Unauthenticated(msg string) *Error { return &Error{Kind: KindUnauthenticated, Message: msg} }
func Internal(msg string) *Error        { return &Error{Kind: KindInternal, Message: msg} }

// KindOf extracts the kind from err, defaulting to KindInternal for any
// error that did not originate in a service.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}
