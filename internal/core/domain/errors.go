package domain

import "errors"

// Kind classifies an error so the transport layer can pick a status code
// without inspecting message text.
type Kind uint8

const (
	KindInternal Kind = iota
	KindInvalidInput
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindConflict
	KindUnavailable
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid input"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "conflict"
	case KindUnavailable:
		return "unavailable"
	case KindUpstream:
		return "upstream failure"
	default:
		return "internal error"
	}
}

// Error is the typed error returned by the core services.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same kind. A target without a message
// matches every error of its kind; a target with a message only matches
// errors carrying the same message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Msg == "" || t.Msg == e.Msg)
}

// Kind sentinels, usable with errors.Is to test the category only.
var (
	ErrInvalidInput    = &Error{Kind: KindInvalidInput}
	ErrUnauthenticated = &Error{Kind: KindUnauthenticated}
	ErrForbidden       = &Error{Kind: KindForbidden, Msg: "forbidden"}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrConflict        = &Error{Kind: KindConflict}
)

var (
	ErrUserExists   = &Error{Kind: KindConflict, Msg: "user with this email already exists"}
	ErrUserNotFound = &Error{Kind: KindNotFound, Msg: "user not found"}
	ErrNoteNotFound = &Error{Kind: KindNotFound, Msg: "note not found"}
	ErrInvalidToken = &Error{Kind: KindUnauthenticated, Msg: "invalid token"}
	ErrAIDisabled   = &Error{Kind: KindUnavailable, Msg: "ai assistant is not configured"}
)

// InvalidInput builds a validation error with a client-facing message.
func InvalidInput(msg string) error {
	return &Error{Kind: KindInvalidInput, Msg: msg}
}

// Upstream wraps a failure of an external collaborator.
func Upstream(msg string, err error) error {
	return &Error{Kind: KindUpstream, Msg: msg, Err: err}
}

// KindOf reports the kind of err, or KindInternal for untyped errors.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// Message returns the client-safe message of a typed error.
func Message(err error) string {
	var de *Error
	if errors.As(err, &de) {
		if de.Msg != "" {
			return de.Msg
		}
		return de.Kind.String()
	}
	return KindInternal.String()
}
