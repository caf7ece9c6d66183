package execution

import (
	"time"

	"github.com/google/uuid"

	"github.com/termrig/termrig/internal/domain/step"
)

// Report aggregates the outcome of one provisioning run.
type Report struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []StepResult
}

// NewReport creates a Report with a generated run ID.
func NewReport(results []StepResult, startedAt, finishedAt time.Time) Report {
	return Report{
		RunID:      uuid.New().String(),
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		Results:    results,
	}
}

// Installed returns the number of steps that ran their install action
// and ended satisfied.
func (r Report) Installed() int {
	n := 0
	for i := range r.Results {
		if r.Results[i].Status() == step.StatusSatisfied && r.Results[i].Applied() {
			n++
		}
	}
	return n
}

// AlreadyPresent returns the number of steps skipped as already satisfied.
func (r Report) AlreadyPresent() int {
	n := 0
	for i := range r.Results {
		if r.Results[i].Status() == step.StatusSatisfied && !r.Results[i].Applied() {
			n++
		}
	}
	return n
}

// Failed returns the number of failed steps (0 or 1: the run is fail-fast).
func (r Report) Failed() int {
	n := 0
	for i := range r.Results {
		if r.Results[i].Status() == step.StatusFailed {
			n++
		}
	}
	return n
}

// Skipped returns the number of steps never attempted because an earlier
// step failed.
func (r Report) Skipped() int {
	n := 0
	for i := range r.Results {
		if r.Results[i].Status() == step.StatusSkipped {
			n++
		}
	}
	return n
}

// Ok returns true if every step ended satisfied and no result carries
// an error. A post-apply check error leaves its step unknown rather
// than failed, but still makes the run not ok.
func (r Report) Ok() bool {
	return r.Failed() == 0 && r.Skipped() == 0 && r.FirstError() == nil
}

// FirstError returns the first error any result carries, or nil.
func (r Report) FirstError() error {
	for i := range r.Results {
		if err := r.Results[i].Error(); err != nil {
			return err
		}
	}
	return nil
}

// Duration returns the total wall time of the run.
func (r Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
