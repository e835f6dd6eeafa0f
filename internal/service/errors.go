package service

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so the HTTP layer can map them to status codes
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindForbidden  ErrorKind = "forbidden"
	KindStorage    ErrorKind = "storage"
)

// Error is returned by the catalog and recommendation services
type Error struct {
	Kind    ErrorKind
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

// Is matches any *Error of the same kind, so the sentinels below work with errors.Is
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is checks
var (
	ErrValidation = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrNotFound   = &Error{Kind: KindNotFound, Message: "not found"}
	ErrForbidden  = &Error{Kind: KindForbidden, Message: "forbidden"}
	ErrStorage    = &Error{Kind: KindStorage, Message: "storage failure"}
)

// Access gate errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token has been revoked")
)

func validationError(msg string) error {
	return &Error{Kind: KindValidation, Message: msg}
}

func notFoundError(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func forbiddenError(msg string) error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func storageError(msg string, err error) error {
	return &Error{Kind: KindStorage, Message: msg, Err: err}
}

// KindOf returns the kind of a service error, or KindStorage for anything unclassified
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorage
}
