package errors

import (
	"fmt"
)

// ErrorWrapper attaches module/operation context to errors from one call site.
type ErrorWrapper struct {
	module    string
	operation string
}

// NewWrapper creates a new error wrapper with module and operation context.
func NewWrapper(module, operation string) *ErrorWrapper {
	return &ErrorWrapper{
		module:    module,
		operation: operation,
	}
}

// Wrap wraps an error with operation context.
// Returns nil if err is nil.
func (w *ErrorWrapper) Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &WrappedError{
		Module:    w.module,
		Operation: w.operation,
		Message:   message,
		Cause:     err,
	}
}

// Wrapf wraps an error with a formatted message.
func (w *ErrorWrapper) Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return w.Wrap(err, fmt.Sprintf(format, args...))
}

// WrappedError records where an error happened.
type WrappedError struct {
	Module    string // e.g. "whatsapp", "webhook"
	Operation string // e.g. "ug_list", "decode"
	Message   string
	Cause     error
}

func (e *WrappedError) Error() string {
	return fmt.Sprintf("[%s:%s] %s: %v", e.Module, e.Operation, e.Message, e.Cause)
}

func (e *WrappedError) Unwrap() error {
	return e.Cause
}
