package shell

import (
	"fmt"
	"path/filepath"

	"github.com/mitchellh/go-homedir"

	"github.com/termrig/termrig/internal/domain/step"
	"github.com/termrig/termrig/internal/ports"
)

// ohMyZshInstaller is the upstream oh-my-zsh installer invocation.
// --unattended keeps it from changing the shell or starting zsh itself;
// those are separate steps.
const ohMyZshInstaller = `sh -c "$(curl -fsSL https://raw.githubusercontent.com/ohmyzsh/ohmyzsh/master/tools/install.sh)" "" --unattended`

// DefaultShellStep changes the user's login shell if it differs.
type DefaultShellStep struct {
	desired string
	current string
	id      step.ID
	runner  ports.CommandRunner
}

// NewDefaultShellStep creates a new DefaultShellStep. current is the
// user's present login shell (usually $SHELL).
func NewDefaultShellStep(desired, current string, runner ports.CommandRunner) *DefaultShellStep {
	return &DefaultShellStep{
		desired: desired,
		current: current,
		id:      step.MustNewID("shell:default:" + filepath.Base(desired)),
		runner:  runner,
	}
}

// ID returns the step identifier.
func (s *DefaultShellStep) ID() step.ID {
	return s.id
}

// Check compares the current login shell with the desired one.
func (s *DefaultShellStep) Check(_ step.RunContext) (step.Status, error) {
	if s.current == s.desired {
		return step.StatusSatisfied, nil
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *DefaultShellStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeModify, "login-shell", s.desired,
		fmt.Sprintf("%s -> %s", s.current, s.desired)), nil
}

// Apply changes the login shell via chsh.
func (s *DefaultShellStep) Apply(ctx step.RunContext) error {
	result, err := s.runner.Run(ctx.Context(), "chsh", "-s", s.desired)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("chsh -s %s failed: %s", s.desired, result.Stderr)
	}
	// chsh only affects new sessions; the in-flight run keeps the old
	// shell, so the presence check re-reads nothing here.
	s.current = s.desired
	return nil
}

// Message returns the post-install note.
func (s *DefaultShellStep) Message() string {
	return fmt.Sprintf("Default shell set to %s. Open a new terminal for it to take effect.", s.desired)
}

// FrameworkStep installs oh-my-zsh if its directory is absent.
type FrameworkStep struct {
	dir    string
	id     step.ID
	fs     ports.FileSystem
	runner ports.CommandRunner
}

// NewFrameworkStep creates a new FrameworkStep. dir is the framework's
// install directory (~/.oh-my-zsh).
func NewFrameworkStep(name, dir string, fs ports.FileSystem, runner ports.CommandRunner) *FrameworkStep {
	expanded, err := homedir.Expand(dir)
	if err != nil {
		expanded = dir
	}
	return &FrameworkStep{
		dir:    expanded,
		id:     step.MustNewID("shell:framework:" + name),
		fs:     fs,
		runner: runner,
	}
}

// ID returns the step identifier.
func (s *FrameworkStep) ID() step.ID {
	return s.id
}

// Check verifies if the framework directory exists.
func (s *FrameworkStep) Check(_ step.RunContext) (step.Status, error) {
	if s.fs.Exists(s.dir) {
		return step.StatusSatisfied, nil
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *FrameworkStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeAdd, "framework", "oh-my-zsh", s.dir), nil
}

// Apply runs the upstream installer.
func (s *FrameworkStep) Apply(ctx step.RunContext) error {
	result, err := s.runner.Run(ctx.Context(), "/bin/sh", "-c", ohMyZshInstaller)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("oh-my-zsh installer failed: %s", result.Stderr)
	}
	return nil
}

// Message returns the post-install note.
func (s *FrameworkStep) Message() string {
	return ""
}

// CloneStep clones a git repository if its target directory is absent.
// Used for shell themes and plugins installed into $ZSH_CUSTOM.
type CloneStep struct {
	kind   string
	name   string
	repo   string
	dest   string
	id     step.ID
	fs     ports.FileSystem
	runner ports.CommandRunner
}

// NewCloneStep creates a new CloneStep.
func NewCloneStep(kind, name, repo, dest string, fs ports.FileSystem, runner ports.CommandRunner) *CloneStep {
	expanded, err := homedir.Expand(dest)
	if err != nil {
		expanded = dest
	}
	return &CloneStep{
		kind:   kind,
		name:   name,
		repo:   repo,
		dest:   expanded,
		id:     step.MustNewID(fmt.Sprintf("shell:%s:%s", kind, name)),
		fs:     fs,
		runner: runner,
	}
}

// ID returns the step identifier.
func (s *CloneStep) ID() step.ID {
	return s.id
}

// Check verifies if the clone target already exists.
func (s *CloneStep) Check(_ step.RunContext) (step.Status, error) {
	if s.fs.Exists(s.dest) {
		return step.StatusSatisfied, nil
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *CloneStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeAdd, s.kind, s.name, fmt.Sprintf("clone %s", s.repo)), nil
}

// Apply clones the repository.
func (s *CloneStep) Apply(ctx step.RunContext) error {
	result, err := s.runner.Run(ctx.Context(), "git", "clone", "--depth=1", s.repo, s.dest)
	if err != nil {
		return err
	}
	if !result.Success() {
		return fmt.Errorf("git clone %s failed: %s", s.repo, result.Stderr)
	}
	return nil
}

// Message returns the post-install note.
func (s *CloneStep) Message() string {
	return ""
}

// RCLineStep appends one line to the shell startup file, guarded by a
// line-presence check so repeated runs leave exactly one occurrence.
type RCLineStep struct {
	name   string
	line   string
	rcFile string
	id     step.ID
	fs     ports.FileSystem
}

// NewRCLineStep creates a new RCLineStep.
func NewRCLineStep(name, line, rcFile string, fs ports.FileSystem) *RCLineStep {
	expanded, err := homedir.Expand(rcFile)
	if err != nil {
		expanded = rcFile
	}
	return &RCLineStep{
		name:   name,
		line:   line,
		rcFile: expanded,
		id:     step.MustNewID("shell:rc-line:" + name),
		fs:     fs,
	}
}

// ID returns the step identifier.
func (s *RCLineStep) ID() step.ID {
	return s.id
}

// Check reports satisfied when the startup file already has the line.
// A missing startup file simply means the line needs appending.
func (s *RCLineStep) Check(_ step.RunContext) (step.Status, error) {
	if !s.fs.Exists(s.rcFile) {
		return step.StatusNeedsApply, nil
	}
	content, err := s.fs.ReadFile(s.rcFile)
	if err != nil {
		return step.StatusUnknown, err
	}
	if containsLine(string(content), s.line) {
		return step.StatusSatisfied, nil
	}
	return step.StatusNeedsApply, nil
}

// Plan returns the diff for this step.
func (s *RCLineStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeAdd, "line", s.name, s.line), nil
}

// Apply appends the line. The guard is re-evaluated inside the append so
// the operation stays idempotent even if Check was skipped.
func (s *RCLineStep) Apply(_ step.RunContext) error {
	var content string
	if s.fs.Exists(s.rcFile) {
		data, err := s.fs.ReadFile(s.rcFile)
		if err != nil {
			return err
		}
		content = string(data)
	}

	chunk := appendChunk(content, s.line)
	if chunk == "" {
		return nil
	}
	return s.fs.AppendFile(s.rcFile, []byte(chunk), 0o644)
}

// Message returns the post-install note.
func (s *RCLineStep) Message() string {
	return ""
}
