package store

import (
	"errors"
	"fmt"
)

type Code int

const (
	CodeNotFound Code = iota + 1
	CodeUnauthorized
	CodeConflict
)

// Error is returned for every expected failure of a store operation. Message is
// safe to show to the caller.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func notFound(format string, args ...any) error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func unauthorized(format string, args ...any) error {
	return &Error{Code: CodeUnauthorized, Message: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...any) error {
	return &Error{Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

// CodeOf returns the Code carried by err, or zero when err is not a store error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return 0
}

var errEmpty = &Error{Code: CodeNotFound, Message: "Empty"}
