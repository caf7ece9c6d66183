package execution

import (
	"context"

	"github.com/termrig/termrig/internal/domain/step"
)

// Planner evaluates each step's presence check and builds a Plan.
// Steps keep their declared order; there is no dependency graph beyond it.
type Planner struct{}

// NewPlanner creates a new Planner.
func NewPlanner() *Planner {
	return &Planner{}
}

// Plan checks every step in order and records what a run would do.
// Presence checks are pure, so planning never mutates the host.
func (p *Planner) Plan(ctx context.Context, steps []step.Step) (*Plan, error) {
	plan := NewPlan()
	runCtx := step.NewRunContext(ctx)

	for _, s := range steps {
		entry, err := p.planStep(s, runCtx)
		if err != nil {
			return nil, step.NewCheckFailedError(s.ID().String(), err)
		}
		plan.Add(entry)
	}

	return plan, nil
}

// planStep checks a single step and generates a PlanEntry.
func (p *Planner) planStep(s step.Step, ctx step.RunContext) (PlanEntry, error) {
	status, err := s.Check(ctx)
	if err != nil {
		return PlanEntry{}, err
	}

	var diff step.Diff

	// Only get a diff if the step needs to be applied.
	if status == step.StatusNeedsApply {
		diff, err = s.Plan(ctx)
		if err != nil {
			return PlanEntry{}, err
		}
	}

	return NewPlanEntry(s, status, diff), nil
}
