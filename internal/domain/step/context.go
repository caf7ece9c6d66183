package step

import "context"

// RunContext provides context for step execution (Check, Plan, Apply).
type RunContext struct {
	ctx    context.Context
	dryRun bool
}

// NewRunContext creates a new RunContext with the given context.
func NewRunContext(ctx context.Context) RunContext {
	return RunContext{
		ctx:    ctx,
		dryRun: false,
	}
}

// Context returns the underlying context.Context.
func (r RunContext) Context() context.Context {
	return r.ctx
}

// DryRun returns whether this is a dry-run execution.
func (r RunContext) DryRun() bool {
	return r.dryRun
}

// WithDryRun returns a new RunContext with the dry-run flag set.
func (r RunContext) WithDryRun(dryRun bool) RunContext {
	return RunContext{
		ctx:    r.ctx,
		dryRun: dryRun,
	}
}
