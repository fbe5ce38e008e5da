// Package errors provides typed error definitions for issuetree.
// This package consolidates error handling and provides structured error types
// that can be used for better error classification and handling.
package errors

import (
	"fmt"
)

// ErrorCode represents a unique identifier for different error types
type ErrorCode string

const (
	// Configuration errors
	ErrConfigUnreadable ErrorCode = "CONFIG_UNREADABLE"
	ErrConfigMalformed  ErrorCode = "CONFIG_MALFORMED"
	ErrProfileNotFound  ErrorCode = "CONFIG_PROFILE_NOT_FOUND"

	// Validation errors
	ErrValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrInvalidInput     ErrorCode = "INVALID_INPUT"
	ErrInvalidIssueURL  ErrorCode = "INVALID_ISSUE_URL"
	ErrInvalidPath      ErrorCode = "INVALID_PATH"

	// Issue tracker errors
	ErrIssueFetchFailed ErrorCode = "ISSUE_FETCH_FAILED"
	ErrIssueNotFound    ErrorCode = "ISSUE_NOT_FOUND"

	// Git errors
	ErrGitCommandFailed  ErrorCode = "GIT_COMMAND_FAILED"
	ErrGitOutputUnparsed ErrorCode = "GIT_OUTPUT_UNPARSED"
	ErrWorktreeExists    ErrorCode = "GIT_WORKTREE_EXISTS"
	ErrBranchInUse       ErrorCode = "GIT_BRANCH_IN_USE"
	ErrBaseRefNotFound   ErrorCode = "GIT_BASE_REF_NOT_FOUND"
	ErrWorktreeLocked    ErrorCode = "GIT_WORKTREE_LOCKED"
	ErrWorktreeNotClean  ErrorCode = "GIT_WORKTREE_NOT_CLEAN"
	ErrWorktreeNotFound  ErrorCode = "GIT_WORKTREE_NOT_FOUND"

	// Dependency install errors
	ErrInstallFailed ErrorCode = "INSTALL_FAILED"

	// Terminal launch errors
	ErrTerminalLaunchFailed ErrorCode = "TERMINAL_LAUNCH_FAILED"

	// Naming assistant errors
	ErrAssistantUnavailable ErrorCode = "ASSISTANT_UNAVAILABLE"
	ErrAssistantBadOutput   ErrorCode = "ASSISTANT_BAD_OUTPUT"

	// Internal errors
	ErrInternal ErrorCode = "INTERNAL_ERROR"
	ErrTimeout  ErrorCode = "TIMEOUT"
)

// IssuetreeError represents a structured error with additional context
type IssuetreeError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details string                 `json:"details,omitempty"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *IssuetreeError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *IssuetreeError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *IssuetreeError) WithContext(key string, value interface{}) *IssuetreeError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new IssuetreeError
func New(code ErrorCode, message string) *IssuetreeError {
	return &IssuetreeError{
		Code:    code,
		Message: message,
	}
}

// NewWithDetails creates a new IssuetreeError with details
func NewWithDetails(code ErrorCode, message, details string) *IssuetreeError {
	return &IssuetreeError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// Wrap creates a new IssuetreeError that wraps an existing error
func Wrap(code ErrorCode, message string, cause error) *IssuetreeError {
	return &IssuetreeError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithDetails creates a new IssuetreeError with details that wraps an existing error
func WrapWithDetails(code ErrorCode, message, details string, cause error) *IssuetreeError {
	return &IssuetreeError{
		Code:    code,
		Message: message,
		Details: details,
		Cause:   cause,
	}
}

// GetCode extracts the error code from an error, if it's an IssuetreeError
func GetCode(err error) ErrorCode {
	if te, ok := err.(*IssuetreeError); ok {
		return te.Code
	}
	return ""
}

// HasCode checks if an error has a specific error code
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// IsValidation reports whether the error belongs to the validation family.
// Validation errors are always fatal and never retried.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrValidationFailed, ErrInvalidInput, ErrInvalidIssueURL, ErrInvalidPath:
		return true
	}
	return false
}

// IsConfig reports whether the error belongs to the configuration family.
func IsConfig(err error) bool {
	switch GetCode(err) {
	case ErrConfigUnreadable, ErrConfigMalformed, ErrProfileNotFound:
		return true
	}
	return false
}

// Common pre-defined errors for consistency
var (
	// Worktree errors
	ErrWorktreeNotCleanError = New(ErrWorktreeNotClean, "worktree has uncommitted changes")
	ErrWorktreeLockedError   = New(ErrWorktreeLocked, "worktree is locked")

	// Assistant errors
	ErrAssistantNotInstalled = New(ErrAssistantUnavailable, "naming assistant binary not found")

	// Validation errors
	ErrEmptyInput = New(ErrInvalidInput, "input cannot be empty")
)
