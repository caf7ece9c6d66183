// Package brew provides the Homebrew provider for package management on macOS.
package brew

import (
	"github.com/termrig/termrig/internal/domain/config"
	"github.com/termrig/termrig/internal/domain/step"
	"github.com/termrig/termrig/internal/ports"
)

// Provider turns the brew manifest section into executable steps.
type Provider struct {
	runner ports.CommandRunner
}

// NewProvider creates a new Homebrew provider.
func NewProvider(runner ports.CommandRunner) *Provider {
	return &Provider{runner: runner}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "brew"
}

// Compile transforms brew configuration into steps in declared order.
// The bootstrap step comes first so later installs have a brew to run.
func (p *Provider) Compile(cfg config.BrewConfig) []step.Step {
	steps := make([]step.Step, 0, 1+len(cfg.Formulae)+len(cfg.Casks))

	if cfg.Bootstrap {
		steps = append(steps, NewBootstrapStep(p.runner))
	}

	for _, formula := range cfg.Formulae {
		steps = append(steps, NewFormulaStep(formula, p.runner))
	}

	for _, cask := range cfg.Casks {
		steps = append(steps, NewCaskStep(cask, p.runner))
	}

	return steps
}
