package integration

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/termrig/termrig/internal/domain/platform"
	"github.com/termrig/termrig/internal/ports"
)

const shellManifest = `
platform: darwin
shell:
  default: /bin/zsh
  rc_file: /Users/dev/.zshrc
  rc_lines:
    - name: alias-ll
      line: "alias ll='eza -la'"
    - name: fzf-init
      line: "source <(fzf --zsh)"
terminal:
  alacritty:
    columns: 140
    rows: 40
    font_size: 13.5
    color_scheme: catppuccin-mocha
    opacity: 0.95
    target: /Users/dev/.config/alacritty/alacritty.toml
`

func TestApply_FreshMachineThenNoop(t *testing.T) {
	t.Setenv("SHELL", "/bin/zsh")

	h := NewHarness(t)
	m := h.LoadManifest(shellManifest)
	ctx := context.Background()

	report, err := h.Rig().Apply(ctx, m, false)
	require.NoError(t, err)
	require.True(t, report.Ok())
	assert.Equal(t, 3, report.Installed(), "two rc lines and the alacritty config")
	assert.Equal(t, 0, report.Failed())

	assert.Contains(t, h.FS.Content("/Users/dev/.zshrc"), "alias ll='eza -la'")
	assert.Contains(t, h.FS.Content("/Users/dev/.config/alacritty/alacritty.toml"), "columns = 140")

	// Second run finds everything in place and touches nothing.
	report, err = h.Rig().Apply(ctx, m, false)
	require.NoError(t, err)
	require.True(t, report.Ok())
	assert.Equal(t, 0, report.Installed())
	assert.Equal(t, 4, report.AlreadyPresent())
}

func TestApply_GuardedAppendLeavesOneOccurrence(t *testing.T) {
	t.Setenv("SHELL", "/bin/zsh")

	h := NewHarness(t)
	h.FS.AddFile("/Users/dev/.zshrc", "export EDITOR=nvim\n")
	m := h.LoadManifest(shellManifest)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		report, err := h.Rig().Apply(ctx, m, false)
		require.NoError(t, err)
		require.True(t, report.Ok())
	}

	content := h.FS.Content("/Users/dev/.zshrc")
	assert.Equal(t, 1, strings.Count(content, "alias ll='eza -la'"))
	assert.Equal(t, 1, strings.Count(content, "source <(fzf --zsh)"))
	assert.Contains(t, content, "export EDITOR=nvim", "existing content is preserved")
}

func TestApply_PlatformMismatchAbortsBeforeAnyStep(t *testing.T) {
	h := NewHarness(t)
	h.Rig().WithPlatform(platform.New(platform.OSLinux, "amd64"))
	m := h.LoadManifest(shellManifest)

	_, err := h.Rig().Apply(context.Background(), m, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported platform")
	assert.Empty(t, h.Runner.Calls(), "no commands before the platform guard")
	assert.False(t, h.FS.Exists("/Users/dev/.zshrc"))
}

func TestApply_FirstFailureSkipsTheRest(t *testing.T) {
	t.Setenv("SHELL", "/bin/bash")

	h := NewHarness(t)
	h.Runner.AddResult("chsh", []string{"-s", "/bin/zsh"}, ports.CommandResult{
		ExitCode: 1,
		Stderr:   "chsh: PAM: authentication failed",
	})
	m := h.LoadManifest(shellManifest)

	report, err := h.Rig().Apply(context.Background(), m, false)
	require.NoError(t, err)
	require.False(t, report.Ok())
	assert.Equal(t, 1, report.Failed())
	assert.Equal(t, 3, report.Skipped(), "everything after the failed step")
	assert.False(t, h.FS.Exists("/Users/dev/.zshrc"), "skipped steps must not run")
	require.Error(t, report.FirstError())
	assert.Contains(t, report.FirstError().Error(), "shell:default:zsh")
}

func TestPlan_SatisfiedBrewMachine(t *testing.T) {
	h := NewHarness(t)
	h.Runner.AddBinary("brew")
	h.Runner.AddResult("brew", []string{"list", "--formula"}, ports.CommandResult{
		ExitCode: 0,
		Stdout:   "git\nfzf\n",
	})
	h.Runner.AddResult("brew", []string{"list", "--cask"}, ports.CommandResult{
		ExitCode: 0,
		Stdout:   "alacritty\n",
	})
	m := h.LoadManifest(`
platform: darwin
brew:
  bootstrap: true
  formulae: [git, fzf]
  casks: [alacritty]
`)

	plan, err := h.Rig().Plan(context.Background(), m)
	require.NoError(t, err)
	assert.False(t, plan.HasChanges())
	assert.Empty(t, h.Out.String(), "planning writes nothing by itself")
}
