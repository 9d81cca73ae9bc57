// Package apperror defines the error kinds the API reports to clients.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindValidation
	KindUnsupported
	KindTooLarge
	KindAuth
	KindProvider
	KindUpstream
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindUnsupported:
		return "unsupported_media"
	case KindTooLarge:
		return "too_large"
	case KindAuth:
		return "auth"
	case KindProvider:
		return "provider"
	case KindUpstream:
		return "upstream"
	case KindStorage:
		return "storage"
	}
	return "internal"
}

// Status is the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindUnsupported:
		return http.StatusUnsupportedMediaType
	case KindTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindAuth:
		return http.StatusUnauthorized
	case KindProvider, KindUpstream:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// Error carries a client-facing message and the cause behind it.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NotFound(message string) *Error   { return New(KindNotFound, message) }
func Validation(message string) *Error { return New(KindValidation, message) }
func Auth(message string) *Error       { return New(KindAuth, message) }

func Storage(message string, err error) *Error  { return Wrap(KindStorage, message, err) }
func Provider(message string, err error) *Error { return Wrap(KindProvider, message, err) }
func Upstream(message string, err error) *Error { return Wrap(KindUpstream, message, err) }

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
