// Package errors provides the error types shared by every pcaplot package.
//
// It is a thin layer over github.com/cockroachdb/errors: the constructors
// and wrappers below carry stack traces (visible with "%+v") while staying
// compatible with the standard errors.Is / errors.As helpers.
//
// Typed errors describe the failing operation:
//
//   - DimensionError: a matrix or row has the wrong shape
//   - ValueError: an argument is invalid for the operation
//   - NotFittedError: a transformer was used before Fit
//   - ModelError: a fit or transform step failed, wrapping a cause
//   - ParseError: a dataset field could not be parsed
//
// Sentinel errors (ErrEmptyData, ErrDegenerateData, ErrUnknownLabel, ...)
// can be matched anywhere in a chain with Is.
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors.
var (
	// ErrEmptyData is returned when an input has no rows or no columns.
	ErrEmptyData = errors.New("empty data")
	// ErrDegenerateData is returned when the data has fewer dimensions of
	// variance than requested.
	ErrDegenerateData = errors.New("degenerate data")
	// ErrUnknownLabel is returned when a class label has no display color.
	ErrUnknownLabel = errors.New("unknown label")
	// ErrNotImplemented marks features that are not available.
	ErrNotImplemented = errors.New("not implemented")
)

// New creates an error with a stack trace.
func New(msg string) error {
	return errors.New(msg)
}

// Newf creates a formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// Wrap annotates err with msg. Wrap(nil, ...) returns nil.
func Wrap(err error, msg string) error {
	return errors.Wrap(err, msg)
}

// Wrapf annotates err with a formatted message. Wrapf(nil, ...) returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// DimensionError reports a shape mismatch along Axis (0 = rows, 1 = columns).
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int
}

// NewDimensionError creates a DimensionError.
func NewDimensionError(op string, expected, got, axis int) *DimensionError {
	return &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
}

func (e *DimensionError) Error() string {
	axis := "rows"
	if e.Axis == 1 {
		axis = "columns"
	}
	return fmt.Sprintf("pcaplot: %s: dimension mismatch on %s: expected %d, got %d",
		e.Op, axis, e.Expected, e.Got)
}

// ValueError reports an invalid argument.
type ValueError struct {
	Op      string
	Message string
}

// NewValueError creates a ValueError.
func NewValueError(op, message string) *ValueError {
	return &ValueError{Op: op, Message: message}
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("pcaplot: %s: %s", e.Op, e.Message)
}

// NotFittedError reports use of a transformer before Fit.
type NotFittedError struct {
	ModelName string
	Method    string
}

// NewNotFittedError creates a NotFittedError.
func NewNotFittedError(modelName, method string) *NotFittedError {
	return &NotFittedError{ModelName: modelName, Method: method}
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("pcaplot: %s: this instance is not fitted yet, call Fit before %s",
		e.ModelName, e.Method)
}

// ModelError wraps the cause of a failed operation.
type ModelError struct {
	Op      string
	Message string
	Err     error
}

// NewModelError creates a ModelError wrapping err.
func NewModelError(op, message string, err error) *ModelError {
	return &ModelError{Op: op, Message: message, Err: err}
}

func (e *ModelError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("pcaplot: %s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("pcaplot: %s: %s: %v", e.Op, e.Message, e.Err)
}

// Unwrap returns the wrapped cause.
func (e *ModelError) Unwrap() error {
	return e.Err
}

// ParseError reports a malformed field in a delimited input. Line is
// 1-based, Column is 0-based.
type ParseError struct {
	Line   int
	Column int
	Field  string
	Err    error
}

// NewParseError creates a ParseError.
func NewParseError(line, column int, field string, err error) *ParseError {
	return &ParseError{Line: line, Column: column, Field: field, Err: err}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pcaplot: line %d, column %d: cannot parse %q: %v",
		e.Line, e.Column, e.Field, e.Err)
}

// Unwrap returns the underlying parse failure.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Recover converts a panic raised inside op (gonum panics on shape
// mismatches) into an error stored in *errp. Use it as
//
//	defer errors.Recover(&err, "PCA.Fit")
func Recover(errp *error, op string) {
	r := recover()
	if r == nil {
		return
	}
	var cause error
	switch v := r.(type) {
	case error:
		cause = v
	default:
		cause = errors.Newf("%v", v)
	}
	*errp = errors.WithStack(NewModelError(op, "panic recovered", cause))
}
