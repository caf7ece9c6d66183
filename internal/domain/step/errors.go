package step

import (
	"fmt"
	"strings"
)

// Error codes for provisioning failures.
const (
	ErrCodePrecondition = "PRECONDITION_FAILED"
	ErrCodeCheckFailed  = "CHECK_FAILED"
	ErrCodeApplyFailed  = "APPLY_FAILED"
	ErrCodeVerifyFailed = "VERIFY_FAILED"
	ErrCodeBadManifest  = "MANIFEST_INVALID"
)

// ProvisionError is a user-facing provisioning error with an actionable
// suggestion. The sequence aborts on the first one.
type ProvisionError struct {
	Code       string // Error code for categorization
	Message    string // User-friendly error message
	StepID     string // Step ID if applicable
	Suggestion string // Actionable suggestion to fix the error
	Underlying error  // Wrapped error for error chain
}

// Error returns the formatted error message.
func (e *ProvisionError) Error() string {
	if e.StepID != "" {
		return fmt.Sprintf("step %q: %s", e.StepID, e.Message)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain support.
func (e *ProvisionError) Unwrap() error {
	return e.Underlying
}

// Format returns a fully formatted error with all details.
func (e *ProvisionError) Format() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.StepID != "" {
		b.WriteString(fmt.Sprintf("\n  Step: %s", e.StepID))
	}
	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  Suggestion: %s", e.Suggestion))
	}
	if e.Underlying != nil {
		b.WriteString(fmt.Sprintf("\n  Cause: %s", e.Underlying.Error()))
	}

	return b.String()
}

// NewPreconditionError creates an error for a failed host precondition.
// Nothing has been executed when this is returned.
func NewPreconditionError(message, suggestion string) *ProvisionError {
	return &ProvisionError{
		Code:       ErrCodePrecondition,
		Message:    message,
		Suggestion: suggestion,
	}
}

// NewCheckFailedError creates an error for a presence check failure.
func NewCheckFailedError(stepID string, err error) *ProvisionError {
	return &ProvisionError{
		Code:       ErrCodeCheckFailed,
		Message:    "presence check failed",
		StepID:     stepID,
		Suggestion: "The step could not determine its current status. This may be a transient error.",
		Underlying: err,
	}
}

// NewApplyFailedError creates an error for a failed install action.
func NewApplyFailedError(stepID string, err error) *ProvisionError {
	return &ProvisionError{
		Code:       ErrCodeApplyFailed,
		Message:    "install action failed",
		StepID:     stepID,
		Suggestion: "Fix the underlying problem and re-run; completed steps will be skipped.",
		Underlying: err,
	}
}

// NewVerifyFailedError creates an error for a step whose install action
// succeeded but whose presence check still reports missing state.
func NewVerifyFailedError(stepID string) *ProvisionError {
	return &ProvisionError{
		Code:       ErrCodeVerifyFailed,
		Message:    "install action succeeded but the presence check still reports missing state",
		StepID:     stepID,
		Suggestion: "The installed tool may not be on PATH yet. Open a new shell and re-run.",
	}
}

// NewBadManifestError creates an error for an invalid manifest.
func NewBadManifestError(section string, err error) *ProvisionError {
	return &ProvisionError{
		Code:       ErrCodeBadManifest,
		Message:    fmt.Sprintf("invalid %s section in manifest", section),
		Suggestion: "Check the manifest for syntax errors or missing required fields.",
		Underlying: err,
	}
}
