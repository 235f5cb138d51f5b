package model

import (
	"errors"
	"fmt"
)

// Error kinds returned by the store and auth layers. Match with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrDuplicate  = errors.New("duplicate entity")
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage failure")
)

// Error carries an error kind together with the operation that failed.
type Error struct {
	Kind error
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Kind.Error()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Validationf returns an ErrValidation error for op.
func Validationf(op, format string, args ...any) error {
	return &Error{Kind: ErrValidation, Op: op, Err: fmt.Errorf(format, args...)}
}

// NotFound returns an ErrNotFound error naming the missing row.
func NotFound(op, entity string, id int64) error {
	return &Error{Kind: ErrNotFound, Op: op, Err: fmt.Errorf("%s %d", entity, id)}
}

// Storage wraps a driver failure as ErrStorage.
func Storage(op string, err error) error {
	return &Error{Kind: ErrStorage, Op: op, Err: err}
}
