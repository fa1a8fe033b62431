package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrNotFound     ErrorType = "NOT_FOUND"
	ErrInvalidInput ErrorType = "INVALID_INPUT"
	ErrConflict     ErrorType = "CONFLICT"
	ErrSyncFailed   ErrorType = "SYNC_FAILED"
	ErrInternal     ErrorType = "INTERNAL"
)

// AppError represents an application error
type AppError struct {
	Type      ErrorType
	Message   string
	Cause     error
	Timestamp time.Time
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:      errType,
		Message:   message,
		Cause:     cause,
		Timestamp: time.Now(),
	}
}

func hasType(err error, errType ErrorType) bool {
	var appErr *AppError
	for err != nil {
		if !stderrors.As(err, &appErr) {
			return false
		}
		if appErr.Type == errType {
			return true
		}
		err = appErr.Cause
	}
	return false
}

// IsNotFound checks if the error (or anything it wraps) is a not found error
func IsNotFound(err error) bool {
	return hasType(err, ErrNotFound)
}

// IsInvalidInput checks if the error is an invalid input error
func IsInvalidInput(err error) bool {
	return hasType(err, ErrInvalidInput)
}

// IsConflict checks if the error is a uniqueness conflict
func IsConflict(err error) bool {
	return hasType(err, ErrConflict)
}

// IsSyncFailed checks if the error is a sync failure
func IsSyncFailed(err error) bool {
	return hasType(err, ErrSyncFailed)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, err error) *AppError {
	return New(ErrNotFound, message, err)
}

// NewValidationError creates a new validation error
func NewValidationError(message string, err error) *AppError {
	return New(ErrInvalidInput, message, err)
}

// NewConflictError creates a new conflict error
func NewConflictError(message string, err error) *AppError {
	return New(ErrConflict, message, err)
}

// NewSyncFailedError wraps the cause of an aborted repository sync
func NewSyncFailedError(message string, err error) *AppError {
	return New(ErrSyncFailed, message, err)
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *AppError {
	return New(ErrInternal, message, err)
}

// RemoteError is returned when GitHub answers with a non-2xx status.
// Rate limiting is reported the same way, with the status GitHub sent.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("GitHub API error: %d - %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether GitHub answered 404
func (e *RemoteError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// NewRemoteError creates a new RemoteError
func NewRemoteError(statusCode int, message string) *RemoteError {
	return &RemoteError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// TransportError represents a connectivity failure or timeout talking to GitHub
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("GitHub transport error during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NewTransportError creates a new TransportError
func NewTransportError(op string, err error) *TransportError {
	return &TransportError{
		Op:  op,
		Err: err,
	}
}

// AsRemote extracts a RemoteError from the chain
func AsRemote(err error) (*RemoteError, bool) {
	var remoteErr *RemoteError
	if stderrors.As(err, &remoteErr) {
		return remoteErr, true
	}
	return nil, false
}

// IsRemote checks if the error is a RemoteError
func IsRemote(err error) bool {
	_, ok := AsRemote(err)
	return ok
}

// IsTransport checks if the error is a TransportError
func IsTransport(err error) bool {
	var transportErr *TransportError
	return stderrors.As(err, &transportErr)
}
