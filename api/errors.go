// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for the osthread library.

package api

import "fmt"

// Common errors used across the library.
var (
	ErrAlreadyRunning   = fmt.Errorf("thread is already running")
	ErrNotJoinable      = fmt.Errorf("no thread to join")
	ErrStillRunning     = fmt.Errorf("thread is still running")
	ErrNotRunning       = fmt.Errorf("thread is not running")
	ErrSpawnFailed      = fmt.Errorf("native thread creation failed")
	ErrNotSupported     = fmt.Errorf("operation not supported")
	ErrInvalidProcessor = fmt.Errorf("invalid processor index")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeAlreadyRunning
	ErrCodeNotJoinable
	ErrCodeStillRunning
	ErrCodeNotRunning
	ErrCodeSpawnFailed
	ErrCodeNotSupported
	ErrCodeInvalidProcessor
	ErrCodeInternal
)

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}
