package service

import "fmt"

type ErrorKind string

const (
	KindValidation  ErrorKind = "VALIDATION"
	KindUnavailable ErrorKind = "DEPENDENCY_UNAVAILABLE"
	KindUpstream    ErrorKind = "UPSTREAM"
)

// Error is the closed error type the service layer returns. Handlers map
// each kind to a transport status; Message is what ends up in the
// response envelope.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}
