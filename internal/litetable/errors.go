package litetable

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidLayout      = errors.New("invalid layout")
	ErrInvalidRequest     = errors.New("invalid data request")
	ErrTableNotFound      = errors.New("table not found")
	ErrTableAlreadyExists = errors.New("table already exists")
	ErrTableDisabled      = errors.New("table is disabled")
	ErrPagingNotEnabled   = errors.New("paging not enabled")
	ErrNoSuchPage         = errors.New("no such page")
	ErrIllegalState       = errors.New("illegal state")
	ErrRemoteStore        = errors.New("remote store failure")
)

// errorClasses is ordered: the first sentinel matched names the class.
var errorClasses = []struct {
	err   error
	class string
}{
	{ErrInvalidLayout, "InvalidLayoutError"},
	{ErrInvalidRequest, "InvalidRequestError"},
	{ErrTableNotFound, "TableNotFoundError"},
	{ErrTableAlreadyExists, "TableAlreadyExistsError"},
	{ErrTableDisabled, "TableDisabledError"},
	{ErrPagingNotEnabled, "PagingNotEnabledError"},
	{ErrNoSuchPage, "NoSuchPageError"},
	{ErrIllegalState, "IllegalStateError"},
	{ErrRemoteStore, "RemoteStoreError"},
}

// Error wraps a sentinel error with additional context
type Error struct {
	err     error  // The underlying sentinel error
	context string // Additional error context
}

// Error satisfies the error interface
func (e *Error) Error() string {
	if e.context == "" {
		return e.err.Error()
	}
	return fmt.Sprintf("%s: %s", e.err.Error(), e.context)
}

// Unwrap implements the errors.Unwrap interface for compatibility with errors.Is/As
func (e *Error) Unwrap() error {
	return e.err
}

// NewError creates a new error with context
func NewError(err error, format string, args ...interface{}) *Error {
	return &Error{
		err:     err,
		context: fmt.Sprintf(format, args...),
	}
}

// ErrorClass names the class of err for user facing output.
func ErrorClass(err error) string {
	for _, c := range errorClasses {
		if errors.Is(err, c.err) {
			return c.class
		}
	}
	return "Error"
}
