package errors

import (
	stderrors "errors"
	"fmt"
	"github.com/hashicorp/go-multierror"
	"github.com/kadaan/tracerr"
)

var (
	customTracerr = tracerr.NewTracerr(tracerr.DefaultFrameCapacity, tracerr.DefaultFrameSkipCount+1)
)

func New(message string, a ...any) tracerr.Error {
	return customTracerr.New(fmt.Sprintf(message, a...))
}

func NewMulti(errs []error, message string, a ...any) tracerr.Error {
	var multiError *multierror.Error
	for _, err := range errs {
		multiError = multierror.Append(multiError, err)
	}
	return customTracerr.Wrap(fmt.Errorf("%s: %w", fmt.Sprintf(message, a...), multiError))
}

func Errorf(format string, a ...any) tracerr.Error {
	return customTracerr.Wrap(fmt.Errorf(format, a...))
}

func Wrap(err error, message string, a ...any) tracerr.Error {
	if err == nil {
		return nil
	}
	return customTracerr.Wrap(fmt.Errorf("%s: %w", fmt.Sprintf(message, a...), err))
}

func ToString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// ConfigError reports a missing or unparsable parameter. It aborts a run
// before any data is processed.
type ConfigError struct {
	cause tracerr.Error
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.cause.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.cause
}

func NewConfigError(message string, a ...any) error {
	return &ConfigError{cause: customTracerr.New(fmt.Sprintf(message, a...))}
}

// NewMultiConfigError reports several configuration problems together.
func NewMultiConfigError(errs []error, message string, a ...any) error {
	return &ConfigError{cause: NewMulti(errs, message, a...)}
}

func IsConfigError(err error) bool {
	var target *ConfigError
	return stderrors.As(err, &target)
}

// DataError reports an ingested source that cannot be used: too few rows,
// too few columns or a non-numeric field.
type DataError struct {
	cause tracerr.Error
}

func (e *DataError) Error() string {
	return "invalid data: " + e.cause.Error()
}

func (e *DataError) Unwrap() error {
	return e.cause
}

func NewDataError(message string, a ...any) error {
	return &DataError{cause: customTracerr.New(fmt.Sprintf(message, a...))}
}

func WrapDataError(err error, message string, a ...any) error {
	if err == nil {
		return nil
	}
	return &DataError{cause: customTracerr.Wrap(fmt.Errorf("%s: %w", fmt.Sprintf(message, a...), err))}
}

func IsDataError(err error) bool {
	var target *DataError
	return stderrors.As(err, &target)
}

// InvariantViolation is a programming error: a precondition the caller had
// to guarantee did not hold.
type InvariantViolation struct {
	cause tracerr.Error
}

func (e *InvariantViolation) Error() string {
	return "invariant violation: " + e.cause.Error()
}

func (e *InvariantViolation) Unwrap() error {
	return e.cause
}

func NewInvariantViolation(message string, a ...any) error {
	return &InvariantViolation{cause: customTracerr.New(fmt.Sprintf(message, a...))}
}

func IsInvariantViolation(err error) bool {
	var target *InvariantViolation
	return stderrors.As(err, &target)
}
