// Package shell provides the shell environment provider: default shell,
// framework, theme and plugin clones, and guarded startup-file appends.
package shell

import (
	"path/filepath"

	"github.com/termrig/termrig/internal/domain/config"
	"github.com/termrig/termrig/internal/domain/step"
	"github.com/termrig/termrig/internal/ports"
)

// frameworkDir is where oh-my-zsh installs itself.
const frameworkDir = "~/.oh-my-zsh"

// customDir is the oh-my-zsh custom directory for themes and plugins.
const customDir = "~/.oh-my-zsh/custom"

// Provider turns the shell manifest section into executable steps.
type Provider struct {
	fs           ports.FileSystem
	runner       ports.CommandRunner
	currentShell string
}

// NewProvider creates a new shell provider. currentShell is the user's
// present login shell (usually $SHELL).
func NewProvider(fs ports.FileSystem, runner ports.CommandRunner, currentShell string) *Provider {
	return &Provider{
		fs:           fs,
		runner:       runner,
		currentShell: currentShell,
	}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "shell"
}

// Compile transforms shell configuration into steps in declared order:
// default shell, framework, theme, plugins, then rc lines. Later steps
// depend on earlier ones only through this ordering (a plugin clone
// lands in a directory the framework install created).
func (p *Provider) Compile(cfg config.ShellConfig) []step.Step {
	steps := make([]step.Step, 0)

	if cfg.Default != "" {
		steps = append(steps, NewDefaultShellStep(cfg.Default, p.currentShell, p.runner))
	}

	if cfg.Framework != "" {
		steps = append(steps, NewFrameworkStep(cfg.Framework, frameworkDir, p.fs, p.runner))
	}

	if cfg.Theme != nil {
		steps = append(steps, NewCloneStep("theme", cfg.Theme.Name, cfg.Theme.Repo,
			cloneDest(cfg.Theme.Dest, "themes", cfg.Theme.Name), p.fs, p.runner))
	}

	for _, plugin := range cfg.Plugins {
		steps = append(steps, NewCloneStep("plugin", plugin.Name, plugin.Repo,
			cloneDest(plugin.Dest, "plugins", plugin.Name), p.fs, p.runner))
	}

	for _, line := range cfg.RCLines {
		steps = append(steps, NewRCLineStep(line.Name, line.Line, cfg.RCFile, p.fs))
	}

	return steps
}

// cloneDest resolves a clone destination. Absolute and ~-prefixed
// destinations are taken as-is; anything else lands under the custom
// directory.
func cloneDest(dest, kind, name string) string {
	if dest == "" {
		dest = filepath.Join(kind, name)
	}
	if filepath.IsAbs(dest) || dest[0] == '~' {
		return dest
	}
	return filepath.Join(customDir, dest)
}
