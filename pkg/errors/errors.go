// Package errors provides error construction and wrapping with stack traces.
package errors

import (
	"errors"

	goerrors "github.com/go-errors/errors"
	pkgerrors "github.com/pkg/errors"
)

// New returns an error with the supplied message and a captured stack.
func New(msg string) error {
	return pkgerrors.New(msg)
}

// Errorf formats an error with a captured stack.
func Errorf(format string, args ...interface{}) error {
	return pkgerrors.Errorf(format, args...)
}

// Wrap annotates err with msg. It returns nil if err is nil.
func Wrap(err error, msg string) error {
	return pkgerrors.Wrap(err, msg)
}

// Wrapf annotates err with a formatted message. It returns nil if err is nil.
func Wrapf(err error, format string, args ...interface{}) error {
	return pkgerrors.Wrapf(err, format, args...)
}

// Cause returns the innermost error in a Wrap chain.
func Cause(err error) error {
	return pkgerrors.Cause(err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// ErrorStack renders err together with the stack of the call site that
// observed it, suitable for a stack_trace log field.
func ErrorStack(err error) string {
	if err == nil {
		return ""
	}
	return goerrors.Wrap(err, 1).ErrorStack()
}
