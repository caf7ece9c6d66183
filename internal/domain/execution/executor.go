package execution

import (
	"time"

	"github.com/termrig/termrig/internal/domain/step"
)

// Executor runs steps from a Plan strictly in order, aborting the rest of
// the sequence on the first failure. There is no rollback: completed steps
// stay installed and a re-run after a fix skips them via their presence
// checks.
type Executor struct {
	dryRun bool
}

// NewExecutor creates a new Executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// WithDryRun returns an Executor that simulates execution without applying.
func (e *Executor) WithDryRun(dryRun bool) *Executor {
	return &Executor{dryRun: dryRun}
}

// Execute runs all steps in the plan in order and returns one result per
// entry. On the first failure the remaining entries are reported skipped.
// Cancellation is observed between steps; a step already running blocks
// until its underlying tool returns.
func (e *Executor) Execute(runCtx step.RunContext, plan *Plan) []StepResult {
	results := make([]StepResult, 0, plan.Len())
	runCtx = runCtx.WithDryRun(e.dryRun)

	aborted := false

	for _, entry := range plan.Entries() {
		if aborted {
			results = append(results, NewStepResult(entry.Step().ID(), step.StatusSkipped, nil))
			continue
		}

		select {
		case <-runCtx.Context().Done():
			aborted = true
			results = append(results, NewStepResult(entry.Step().ID(), step.StatusSkipped, runCtx.Context().Err()))
			continue
		default:
		}

		result := e.executeEntry(entry, runCtx)
		results = append(results, result)

		if result.Status() == step.StatusFailed {
			aborted = true
		}
	}

	return results
}

// executeEntry executes a single plan entry.
func (e *Executor) executeEntry(entry PlanEntry, ctx step.RunContext) StepResult {
	s := entry.Step()
	stepID := s.ID()

	// Already satisfied: a normal skip, not an error.
	if entry.Status() == step.StatusSatisfied {
		return NewStepResult(stepID, step.StatusSatisfied, nil)
	}

	// Dry run: report what would happen.
	if ctx.DryRun() {
		return NewStepResult(stepID, entry.Status(), nil).WithDiff(entry.Diff())
	}

	start := time.Now()
	err := s.Apply(ctx)
	duration := time.Since(start)

	if err != nil {
		return NewStepResult(stepID, step.StatusFailed, step.NewApplyFailedError(stepID.String(), err)).
			WithApplied(true).
			WithDuration(duration)
	}

	// Re-run the presence check after a successful apply. An install that
	// leaves the check false would otherwise report "needs install" on
	// every future run, so it is surfaced as a failure here.
	status, checkErr := s.Check(ctx)
	if checkErr != nil {
		return NewStepResult(stepID, step.StatusUnknown, step.NewCheckFailedError(stepID.String(), checkErr)).
			WithApplied(true).
			WithDuration(duration)
	}
	if status == step.StatusNeedsApply {
		return NewStepResult(stepID, step.StatusFailed, step.NewVerifyFailedError(stepID.String())).
			WithApplied(true).
			WithDuration(duration)
	}

	return NewStepResult(stepID, step.StatusSatisfied, nil).
		WithApplied(true).
		WithDuration(duration).
		WithDiff(entry.Diff()).
		WithMessage(s.Message())
}
