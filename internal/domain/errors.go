package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrRepoUnavailable indicates the repository handle is invalid or absent
	ErrRepoUnavailable = errors.New("repository unavailable")

	// ErrArchiveUnavailable indicates the archive path is missing or corrupt
	ErrArchiveUnavailable = errors.New("archive unavailable")

	// ErrIncompatibleTask indicates the task cannot run against the selected source
	ErrIncompatibleTask = errors.New("task incompatible with source")

	// ErrEmptyContext indicates resolution succeeded but produced no content.
	// This is an expected terminal outcome, not a failure.
	ErrEmptyContext = errors.New("nothing to analyze")

	// ErrCacheMiss indicates a cache miss
	ErrCacheMiss = errors.New("cache miss")
)

// LLM sentinel errors
var (
	// ErrLLMNotConfigured indicates LLM provider is not configured
	ErrLLMNotConfigured = errors.New("LLM provider not configured")

	// ErrLLMMissingAPIKey indicates API key is required but not provided
	ErrLLMMissingAPIKey = errors.New("LLM API key is required")

	// ErrLLMMissingModel indicates model is required but not provided
	ErrLLMMissingModel = errors.New("LLM model is required")

	// ErrLLMInvalidProvider indicates an invalid provider type
	ErrLLMInvalidProvider = errors.New("invalid LLM provider")

	// ErrLLMRequestFailed indicates the LLM request failed
	ErrLLMRequestFailed = errors.New("LLM request failed")

	// ErrLLMRateLimited indicates rate limit was exceeded
	ErrLLMRateLimited = errors.New("LLM rate limit exceeded")

	// ErrLLMAuthFailed indicates authentication failed
	ErrLLMAuthFailed = errors.New("LLM authentication failed")

	// ErrLLMEmptyResponse indicates the model returned no content
	ErrLLMEmptyResponse = errors.New("LLM returned no content")

	// ErrLLMMaxRetriesExceeded indicates all retry attempts were exhausted
	ErrLLMMaxRetriesExceeded = errors.New("LLM max retries exceeded")
)

// UnknownTaskError reports a task name outside the supported set
type UnknownTaskError struct {
	Name string
}

func (e *UnknownTaskError) Error() string {
	return fmt.Sprintf("unknown task %q (available: improvements, documentation, commit-message, apply-improvements)", e.Name)
}

// NewUnknownTaskError creates a new UnknownTaskError
func NewUnknownTaskError(name string) *UnknownTaskError {
	return &UnknownTaskError{Name: name}
}

// IncompatibleTaskError reports a task requested against a source kind
// that cannot serve it. Raised before any extraction I/O runs.
type IncompatibleTaskError struct {
	Task   Task
	Source SourceKind
}

func (e *IncompatibleTaskError) Error() string {
	return fmt.Sprintf("task %q requires a %s source, got %s", e.Task, SourceGit, e.Source)
}

func (e *IncompatibleTaskError) Unwrap() error {
	return ErrIncompatibleTask
}

// NewIncompatibleTaskError creates a new IncompatibleTaskError
func NewIncompatibleTaskError(task Task, source SourceKind) *IncompatibleTaskError {
	return &IncompatibleTaskError{Task: task, Source: source}
}

// DecodeError reports a single file whose bytes could not be decoded as
// text. Recovered locally: the file is excluded and resolution continues.
type DecodeError struct {
	Path   string
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("cannot decode %s as text: %s", e.Path, e.Reason)
	}
	return fmt.Sprintf("cannot decode content as text: %s", e.Reason)
}

// NewDecodeError creates a new DecodeError
func NewDecodeError(path, reason string) *DecodeError {
	return &DecodeError{Path: path, Reason: reason}
}

// IsDecodeError checks if an error is a per-file decode failure
func IsDecodeError(err error) bool {
	var decodeErr *DecodeError
	return errors.As(err, &decodeErr)
}

// LLMError represents an LLM-specific error
type LLMError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *LLMError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s error (HTTP %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Provider, e.Message)
}

func (e *LLMError) Unwrap() error {
	return e.Err
}

// NewLLMError creates a new LLMError
func NewLLMError(provider string, statusCode int, message string, err error) *LLMError {
	return &LLMError{
		Provider:   provider,
		StatusCode: statusCode,
		Message:    message,
		Err:        err,
	}
}
