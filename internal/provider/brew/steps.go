package brew

import (
	"fmt"
	"strings"

	"github.com/termrig/termrig/internal/domain/step"
	"github.com/termrig/termrig/internal/ports"
)

// installScript is the upstream Homebrew installer invocation.
const installScript = `$(curl -fsSL https://raw.githubusercontent.com/Homebrew/install/HEAD/install.sh)`

// BootstrapStep installs Homebrew itself when the brew binary is missing.
type BootstrapStep struct {
	id     step.ID
	runner ports.CommandRunner
}

// NewBootstrapStep creates a new BootstrapStep.
func NewBootstrapStep(runner ports.CommandRunner) *BootstrapStep {
	return &BootstrapStep{
		id:     step.MustNewID("brew:bootstrap:homebrew"),
		runner: runner,
	}
}

// ID returns the step identifier.
func (s *BootstrapStep) ID() step.ID {
	return s.id
}

// Check determines if Homebrew is already installed.
func (s *BootstrapStep) Check(_ step.RunContext) (step.Status, error) {
	if s.runner.LookPath("brew") {
		return step.StatusSatisfied, nil
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *BootstrapStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeAdd, "bootstrap", "homebrew", "run upstream install script"), nil
}

// Apply runs the upstream Homebrew install script.
func (s *BootstrapStep) Apply(ctx step.RunContext) error {
	result, err := s.runner.Run(ctx.Context(), "/bin/bash", "-c", installScript)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("homebrew install script failed: %s", result.Stderr)
	}
	return nil
}

// Message returns the post-install note.
func (s *BootstrapStep) Message() string {
	return "Homebrew installed. You may need to add it to your PATH; the installer prints the line to use."
}

// FormulaStep installs a Homebrew formula if absent.
type FormulaStep struct {
	formula string
	id      step.ID
	runner  ports.CommandRunner
}

// NewFormulaStep creates a new FormulaStep.
func NewFormulaStep(formula string, runner ports.CommandRunner) *FormulaStep {
	return &FormulaStep{
		formula: formula,
		id:      step.MustNewID("brew:formula:" + formula),
		runner:  runner,
	}
}

// ID returns the step identifier.
func (s *FormulaStep) ID() step.ID {
	return s.id
}

// Check determines if the formula is already installed. A missing brew
// binary means nothing is installed yet, not a check failure.
func (s *FormulaStep) Check(ctx step.RunContext) (step.Status, error) {
	if !s.runner.LookPath("brew") {
		return step.StatusNeedsApply, nil
	}
	result, err := s.runner.Run(ctx.Context(), "brew", "list", "--formula")
	if err != nil {
		return step.StatusUnknown, err
	}
	if !result.Success() {
		return step.StatusUnknown, fmt.Errorf("brew list failed: %s", result.Stderr)
	}

	for _, f := range strings.Split(strings.TrimSpace(result.Stdout), "\n") {
		if f == s.formula {
			return step.StatusSatisfied, nil
		}
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *FormulaStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeAdd, "formula", s.formula, "latest"), nil
}

// Apply installs the formula.
func (s *FormulaStep) Apply(ctx step.RunContext) error {
	result, err := s.runner.Run(ctx.Context(), "brew", "install", s.formula)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("brew install %s failed: %s", s.formula, result.Stderr)
	}
	return nil
}

// Message returns the post-install note.
func (s *FormulaStep) Message() string {
	return ""
}

// CaskStep installs a Homebrew cask if absent.
type CaskStep struct {
	cask   string
	id     step.ID
	runner ports.CommandRunner
}

// NewCaskStep creates a new CaskStep.
func NewCaskStep(cask string, runner ports.CommandRunner) *CaskStep {
	return &CaskStep{
		cask:   cask,
		id:     step.MustNewID("brew:cask:" + cask),
		runner: runner,
	}
}

// ID returns the step identifier.
func (s *CaskStep) ID() step.ID {
	return s.id
}

// Check determines if the cask is already installed. A missing brew
// binary means nothing is installed yet, not a check failure.
func (s *CaskStep) Check(ctx step.RunContext) (step.Status, error) {
	if !s.runner.LookPath("brew") {
		return step.StatusNeedsApply, nil
	}
	result, err := s.runner.Run(ctx.Context(), "brew", "list", "--cask")
	if err != nil {
		return step.StatusUnknown, err
	}
	if !result.Success() {
		return step.StatusUnknown, fmt.Errorf("brew list --cask failed: %s", result.Stderr)
	}

	for _, c := range strings.Split(strings.TrimSpace(result.Stdout), "\n") {
		if c == s.cask {
			return step.StatusSatisfied, nil
		}
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *CaskStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeAdd, "cask", s.cask, "latest"), nil
}

// Apply installs the cask.
func (s *CaskStep) Apply(ctx step.RunContext) error {
	result, err := s.runner.Run(ctx.Context(), "brew", "install", "--cask", s.cask)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("brew install --cask %s failed: %s", s.cask, result.Stderr)
	}
	return nil
}

// Message returns the post-install note.
func (s *CaskStep) Message() string {
	return ""
}
