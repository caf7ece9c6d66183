package app

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/termrig/termrig/internal/domain/config"
	"github.com/termrig/termrig/internal/domain/platform"
	"github.com/termrig/termrig/internal/domain/step"
	"github.com/termrig/termrig/internal/testutil/mocks"
)

func testManifest() *config.Manifest {
	return &config.Manifest{
		Platform: "darwin",
		Brew: config.BrewConfig{
			Bootstrap: true,
			Formulae:  []string{"git"},
		},
		Shell: config.ShellConfig{
			Default:   "/bin/zsh",
			Framework: "oh-my-zsh",
			RCFile:    "/home/user/.zshrc",
			RCLines: []config.RCLine{
				{Name: "alias-ll", Line: "alias ll='eza -la'"},
			},
		},
		Terminal: config.TerminalConfig{
			Alacritty: &config.AlacrittyConfig{
				Columns:     140,
				Rows:        40,
				FontSize:    13.5,
				ColorScheme: "catppuccin-mocha",
				Opacity:     0.95,
				Target:      "/home/user/.config/alacritty/alacritty.toml",
			},
		},
	}
}

func testRig(out *bytes.Buffer, runner *mocks.CommandRunner, fs *mocks.FileSystem) *Rig {
	return New(out).
		WithPorts(runner, fs).
		WithPlatform(platform.New(platform.OSDarwin, "arm64"))
}

func TestRig_Compile_Order(t *testing.T) {
	rig := testRig(&bytes.Buffer{}, mocks.NewCommandRunner(), mocks.NewFileSystem())

	steps := rig.Compile(testManifest())

	want := []string{
		"brew:bootstrap:homebrew",
		"brew:formula:git",
		"shell:default:zsh",
		"shell:framework:oh-my-zsh",
		"shell:rc-line:alias-ll",
		"terminal:alacritty:config",
	}
	if len(steps) != len(want) {
		t.Fatalf("Compile() returned %d steps, want %d", len(steps), len(want))
	}
	for i, id := range want {
		if got := steps[i].ID().String(); got != id {
			t.Errorf("steps[%d] = %q, want %q", i, got, id)
		}
	}
}

func TestRig_Plan_PlatformMismatch(t *testing.T) {
	rig := New(&bytes.Buffer{}).
		WithPorts(mocks.NewCommandRunner(), mocks.NewFileSystem()).
		WithPlatform(platform.New(platform.OSLinux, "amd64"))

	_, err := rig.Plan(context.Background(), testManifest())
	if err == nil {
		t.Fatal("Plan() should fail on a platform mismatch")
	}

	var perr *step.ProvisionError
	if !errors.As(err, &perr) {
		t.Fatalf("Plan() error = %T, want *step.ProvisionError", err)
	}
	if perr.Code != step.ErrCodePrecondition {
		t.Errorf("error code = %q, want %q", perr.Code, step.ErrCodePrecondition)
	}
}

func TestRig_Apply_DryRunMakesNoCalls(t *testing.T) {
	runner := mocks.NewCommandRunner()
	fs := mocks.NewFileSystem()
	rig := testRig(&bytes.Buffer{}, runner, fs)

	report, err := rig.Apply(context.Background(), testManifest(), true)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if report.Failed() != 0 {
		t.Errorf("dry run reported %d failures, want 0", report.Failed())
	}
	if calls := runner.Calls(); len(calls) != 0 {
		t.Errorf("dry run executed %d commands, want 0", len(calls))
	}
	if fs.Exists("/home/user/.zshrc") {
		t.Error("dry run must not create the rc file")
	}
}

func TestRig_PrintPlan_NoChanges(t *testing.T) {
	var out bytes.Buffer
	runner := mocks.NewCommandRunner()
	fs := mocks.NewFileSystem()
	rig := testRig(&out, runner, fs)

	m := &config.Manifest{
		Platform: "darwin",
		Shell: config.ShellConfig{
			RCFile: "/home/user/.zshrc",
			RCLines: []config.RCLine{
				{Name: "alias-ll", Line: "alias ll='eza -la'"},
			},
		},
	}
	fs.AddFile("/home/user/.zshrc", "alias ll='eza -la'\n")

	plan, err := rig.Plan(context.Background(), m)
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	rig.PrintPlan(plan)

	if !strings.Contains(out.String(), "Nothing to do") {
		t.Errorf("PrintPlan() output = %q, want a no-changes notice", out.String())
	}
}

func TestRig_PrintReport_MentionsFailure(t *testing.T) {
	var out bytes.Buffer
	runner := mocks.NewCommandRunner()
	fs := mocks.NewFileSystem()
	rig := testRig(&out, runner, fs)

	// No mock result for the installer command, so bootstrap fails its
	// apply and everything after it is skipped.
	m := &config.Manifest{
		Platform: "darwin",
		Brew:     config.BrewConfig{Bootstrap: true, Formulae: []string{"git"}},
	}

	report, err := rig.Apply(context.Background(), m, false)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if report.Ok() {
		t.Fatal("report should not be ok when bootstrap fails")
	}
	rig.PrintReport(report)

	if !strings.Contains(out.String(), "stopped at the first failure") {
		t.Errorf("PrintReport() output = %q, want failure notice", out.String())
	}
	if !strings.Contains(out.String(), "(skipped)") {
		t.Errorf("PrintReport() output = %q, want skipped steps listed", out.String())
	}
}
