// Package errors provides structured error reporting for KARTO components.
//
// Components in this module do not surface errors to their callers for
// conditions they can absorb (a panicking callback, a failed cache write in
// the background). Those are reported to a process-wide [ErrorHandler]
// instead, which logs them by default.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates an invalid or unreadable configuration.
	KindConfig
	// KindStorage indicates a key-value cache failure.
	KindStorage
	// KindGesture indicates malformed pointer input.
	KindGesture
	// KindRender indicates a rendering or rasterization failure.
	KindRender
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindValidation indicates user input that failed validation.
	KindValidation
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindStorage:
		return "storage"
	case KindGesture:
		return "gesture"
	case KindRender:
		return "render"
	case KindPanic:
		return "panic"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// KartoError is a structured error carrying the failed operation and a kind.
type KartoError struct {
	// Op is the operation that failed (e.g., "platform.SQLiteStore.Set").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

// New returns a KartoError for op wrapping err.
func New(op string, kind ErrorKind, err error) *KartoError {
	return &KartoError{Op: op, Kind: kind, Err: err}
}

func (e *KartoError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *KartoError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "sheet.onClose").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives reported errors.
type ErrorHandler interface {
	// HandleError is called when an error is reported.
	HandleError(err *KartoError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
