// Package terminal emits terminal emulator configuration.
package terminal

import (
	"github.com/termrig/termrig/internal/domain/config"
	"github.com/termrig/termrig/internal/domain/step"
	"github.com/termrig/termrig/internal/ports"
)

// Provider compiles the terminal section of a manifest into steps.
type Provider struct {
	fs ports.FileSystem
}

// NewProvider creates a new terminal provider.
func NewProvider(fs ports.FileSystem) *Provider {
	return &Provider{fs: fs}
}

// Compile returns the steps for the terminal section. An absent
// alacritty block yields no steps.
func (p *Provider) Compile(cfg config.TerminalConfig) []step.Step {
	if cfg.Alacritty == nil {
		return nil
	}
	return []step.Step{NewAlacrittyStep(cfg.Alacritty, p.fs)}
}

var _ step.Step = (*AlacrittyStep)(nil)
