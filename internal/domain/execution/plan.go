package execution

import (
	"github.com/termrig/termrig/internal/domain/step"
)

// PlanEntry represents a single step's planned execution.
type PlanEntry struct {
	step   step.Step
	status step.Status
	diff   step.Diff
}

// NewPlanEntry creates a new PlanEntry.
func NewPlanEntry(s step.Step, status step.Status, diff step.Diff) PlanEntry {
	return PlanEntry{
		step:   s,
		status: status,
		diff:   diff,
	}
}

// Step returns the step to be executed.
func (e PlanEntry) Step() step.Step {
	return e.step
}

// Status returns the current status of the step.
func (e PlanEntry) Status() step.Status {
	return e.status
}

// Diff returns the planned changes.
func (e PlanEntry) Diff() step.Diff {
	return e.diff
}

// PlanSummary provides aggregate statistics about the plan.
type PlanSummary struct {
	Total      int
	NeedsApply int
	Satisfied  int
	Unknown    int
}

// Plan represents the evaluated sequence: every step in declared order
// with its current status.
type Plan struct {
	entries []PlanEntry
}

// NewPlan creates an empty Plan.
func NewPlan() *Plan {
	return &Plan{
		entries: make([]PlanEntry, 0),
	}
}

// Add appends a plan entry.
func (p *Plan) Add(entry PlanEntry) {
	p.entries = append(p.entries, entry)
}

// Len returns the number of entries.
func (p *Plan) Len() int {
	return len(p.entries)
}

// IsEmpty returns true if there are no entries.
func (p *Plan) IsEmpty() bool {
	return len(p.entries) == 0
}

// Entries returns all plan entries.
func (p *Plan) Entries() []PlanEntry {
	return p.entries
}

// HasChanges returns true if any steps need to be applied.
func (p *Plan) HasChanges() bool {
	for _, e := range p.entries {
		if e.status == step.StatusNeedsApply {
			return true
		}
	}
	return false
}

// Summary returns aggregate statistics.
func (p *Plan) Summary() PlanSummary {
	summary := PlanSummary{Total: len(p.entries)}
	for _, e := range p.entries {
		switch e.status {
		case step.StatusNeedsApply:
			summary.NeedsApply++
		case step.StatusSatisfied:
			summary.Satisfied++
		case step.StatusUnknown:
			summary.Unknown++
		case step.StatusFailed, step.StatusSkipped:
			// Not produced by planning; terminal run states only.
		}
	}
	return summary
}
