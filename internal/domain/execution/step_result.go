// Package execution handles sequence planning and runtime execution.
package execution

import (
	"time"

	"github.com/termrig/termrig/internal/domain/step"
)

// StepResult captures the outcome of executing a single step.
type StepResult struct {
	stepID   step.ID
	status   step.Status
	err      error
	applied  bool
	duration time.Duration
	diff     step.Diff
	message  string
}

// NewStepResult creates a new StepResult.
func NewStepResult(stepID step.ID, status step.Status, err error) StepResult {
	return StepResult{
		stepID: stepID,
		status: status,
		err:    err,
	}
}

// StepID returns the ID of the step that was executed.
func (r StepResult) StepID() step.ID {
	return r.stepID
}

// Status returns the final status of the step.
func (r StepResult) Status() step.Status {
	return r.status
}

// Error returns any error that occurred during execution.
func (r StepResult) Error() error {
	return r.err
}

// Duration returns how long the step took to execute.
func (r StepResult) Duration() time.Duration {
	return r.duration
}

// Diff returns the diff that was applied (if any).
func (r StepResult) Diff() step.Diff {
	return r.diff
}

// Message returns the step's post-install note (set only when the step
// actually installed something).
func (r StepResult) Message() string {
	return r.message
}

// Success returns true if the step completed or was already satisfied.
func (r StepResult) Success() bool {
	return r.status == step.StatusSatisfied
}

// Skipped returns true if the step was not attempted.
func (r StepResult) Skipped() bool {
	return r.status == step.StatusSkipped
}

// Applied returns true if the step ran its install action, as opposed
// to being found already satisfied.
func (r StepResult) Applied() bool {
	return r.applied
}

// WithApplied returns a new StepResult with the install-action marker set.
func (r StepResult) WithApplied(applied bool) StepResult {
	r.applied = applied
	return r
}

// WithDuration returns a new StepResult with duration set.
func (r StepResult) WithDuration(d time.Duration) StepResult {
	r.duration = d
	return r
}

// WithDiff returns a new StepResult with diff set.
func (r StepResult) WithDiff(d step.Diff) StepResult {
	r.diff = d
	return r
}

// WithMessage returns a new StepResult with the post-install note set.
func (r StepResult) WithMessage(msg string) StepResult {
	r.message = msg
	return r
}
