// Package app wires the providers, planner and executor into the
// termrig application.
package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/termrig/termrig/internal/adapters/command"
	"github.com/termrig/termrig/internal/adapters/filesystem"
	"github.com/termrig/termrig/internal/adapters/logging"
	"github.com/termrig/termrig/internal/domain/config"
	"github.com/termrig/termrig/internal/domain/execution"
	"github.com/termrig/termrig/internal/domain/platform"
	"github.com/termrig/termrig/internal/domain/step"
	"github.com/termrig/termrig/internal/ports"
	"github.com/termrig/termrig/internal/provider/brew"
	"github.com/termrig/termrig/internal/provider/shell"
	"github.com/termrig/termrig/internal/provider/terminal"
)

// Rig is the application orchestrator. It compiles a manifest into an
// ordered step sequence, plans it and executes it.
type Rig struct {
	planner  *execution.Planner
	executor *execution.Executor
	runner   ports.CommandRunner
	fs       ports.FileSystem
	platform *platform.Platform
	logger   ports.Logger
	out      io.Writer
	styles   Styles
}

// New creates a Rig backed by the real command runner and filesystem.
func New(out io.Writer) *Rig {
	return &Rig{
		planner:  execution.NewPlanner(),
		executor: execution.NewExecutor(),
		runner:   command.NewRealRunner(),
		fs:       filesystem.NewRealFileSystem(),
		platform: platform.Detect(),
		logger:   logging.NewNopLogger(),
		out:      out,
		styles:   DefaultStyles(),
	}
}

// WithPorts swaps the runner and filesystem, for tests.
func (r *Rig) WithPorts(runner ports.CommandRunner, fs ports.FileSystem) *Rig {
	r.runner = runner
	r.fs = fs
	return r
}

// WithPlatform overrides the detected platform.
func (r *Rig) WithPlatform(p *platform.Platform) *Rig {
	r.platform = p
	return r
}

// WithLogger sets the logger.
func (r *Rig) WithLogger(logger ports.Logger) *Rig {
	r.logger = logger
	return r
}

// Compile turns a manifest into the ordered step sequence: packages
// first, then shell environment, then terminal settings. Within each
// section the manifest's declared order is preserved.
func (r *Rig) Compile(m *config.Manifest) []step.Step {
	var steps []step.Step
	steps = append(steps, brew.NewProvider(r.runner).Compile(m.Brew)...)
	steps = append(steps, shell.NewProvider(r.fs, r.runner, r.platform.Shell()).Compile(m.Shell)...)
	steps = append(steps, terminal.NewProvider(r.fs).Compile(m.Terminal)...)
	return steps
}

// Plan guards the platform, compiles the manifest and checks every
// step's presence. No mutations happen during planning.
func (r *Rig) Plan(ctx context.Context, m *config.Manifest) (*execution.Plan, error) {
	ctx = ports.ContextWithLogger(ctx, r.logger)
	if err := platform.Guard(r.platform, platform.OS(m.Platform)); err != nil {
		return nil, err
	}

	steps := r.Compile(m)
	r.logger.Debug(ctx, "compiled manifest", ports.F("steps", len(steps)))

	plan, err := r.planner.Plan(ctx, steps)
	if err != nil {
		return nil, fmt.Errorf("failed to plan: %w", err)
	}
	return plan, nil
}

// Apply plans and executes the manifest. The first failed step aborts
// the run; remaining steps are reported as skipped.
func (r *Rig) Apply(ctx context.Context, m *config.Manifest, dryRun bool) (execution.Report, error) {
	plan, err := r.Plan(ctx, m)
	if err != nil {
		return execution.Report{}, err
	}

	startedAt := time.Now()
	runCtx := step.NewRunContext(ports.ContextWithLogger(ctx, r.logger)).WithDryRun(dryRun)
	results := r.executor.WithDryRun(dryRun).Execute(runCtx, plan)
	report := execution.NewReport(results, startedAt, time.Now())

	r.logger.Info(ctx, "run finished",
		ports.F("installed", report.Installed()),
		ports.F("present", report.AlreadyPresent()),
		ports.F("failed", report.Failed()),
		ports.F("skipped", report.Skipped()))
	return report, nil
}

// PrintPlan writes a human-readable plan to the output writer.
func (r *Rig) PrintPlan(plan *execution.Plan) {
	summary := plan.Summary()

	r.printf("%s\n\n", r.styles.Title.Render("termrig plan"))

	if !plan.HasChanges() {
		r.printf("%s\n", r.styles.Success.Render("Nothing to do. The machine matches the manifest."))
		return
	}

	r.printf("Steps: %d total, %d to apply, %d already present\n\n",
		summary.Total, summary.NeedsApply, summary.Satisfied)

	for _, entry := range plan.Entries() {
		if entry.Status() == step.StatusNeedsApply {
			r.printf("  %s %s\n", r.styles.Add.Render("+"), entry.Step().ID())
			if diff := entry.Diff(); !diff.IsEmpty() {
				r.printf("      %s\n", r.styles.Muted.Render(diff.Summary()))
			}
			continue
		}
		r.printf("  %s %s\n", r.styles.Success.Render("✓"), entry.Step().ID())
	}

	r.printf("\nRun 'termrig apply' to execute this plan.\n")
}

// PrintReport writes the execution results to the output writer.
func (r *Rig) PrintReport(report execution.Report) {
	r.printf("%s\n\n", r.styles.Title.Render("termrig apply"))

	for _, res := range report.Results {
		switch res.Status() {
		case step.StatusSatisfied:
			r.printf("  %s %s\n", r.styles.Success.Render("✓"), res.StepID())
			if msg := res.Message(); msg != "" {
				r.printf("      %s\n", r.styles.Muted.Render(msg))
			}
		case step.StatusFailed:
			r.printf("  %s %s: %v\n", r.styles.Error.Render("✗"), res.StepID(), res.Error())
		case step.StatusSkipped:
			r.printf("  %s\n", r.styles.Muted.Render("- "+res.StepID().String()+" (skipped)"))
		case step.StatusNeedsApply:
			r.printf("  %s %s\n", r.styles.Add.Render("+"), res.StepID())
		case step.StatusUnknown:
			if err := res.Error(); err != nil {
				r.printf("  %s %s: %v\n", r.styles.Warning.Render("?"), res.StepID(), err)
			} else {
				r.printf("  %s %s\n", r.styles.Warning.Render("?"), res.StepID())
			}
		}
	}

	r.printf("\n%d installed, %d already present, %d failed, %d skipped in %s\n",
		report.Installed(), report.AlreadyPresent(), report.Failed(), report.Skipped(),
		report.Duration().Round(time.Millisecond))

	if !report.Ok() {
		r.printf("%s\n", r.styles.Error.Render("The run stopped at the first failure. Fix it and re-run; completed steps are left in place."))
	}
}

func (r *Rig) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}
