package weather

import (
	"errors"
)

// Error kinds. Match with errors.Is.
var (
	ErrConfiguration     = errors.New("configuration error")
	ErrValidation        = errors.New("validation error")
	ErrUpstream          = errors.New("upstream error")
	ErrMalformedResponse = errors.New("malformed response")
	ErrNetwork           = errors.New("network error")
)

// DefaultUpstreamMessage is shown when the provider fails without saying why.
const DefaultUpstreamMessage = "Failed to fetch weather."

// Error is a pipeline failure. Message is the human-readable text shown to the user.
type Error struct {
	Kind       error
	Message    string
	StatusCode int // provider status, set for ErrUpstream
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// NewError builds an Error of the given kind.
func NewError(kind error, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// KindOf returns the error kind sentinel carried by err, or nil.
func KindOf(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return nil
}

// UserMessage renders err as the single message presented to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
