// Package config loads and validates the termrig manifest.
//
// The manifest is the declarative source of the provisioning sequence:
// packages, shell setup, startup-file lines and terminal settings. Step
// order follows manifest order; a built-in default manifest is used when
// no file is given.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/termrig/termrig/internal/domain/step"
)

// Manifest is the root of the termrig configuration.
type Manifest struct {
	// Platform is the expected host OS identifier (e.g., "darwin").
	// A mismatch aborts the run before any step executes.
	Platform string `yaml:"platform"`

	Brew     BrewConfig     `yaml:"brew"`
	Shell    ShellConfig    `yaml:"shell"`
	Terminal TerminalConfig `yaml:"terminal"`
}

// BrewConfig declares Homebrew packages to install if absent.
type BrewConfig struct {
	// Bootstrap controls whether Homebrew itself is installed when missing.
	Bootstrap bool     `yaml:"bootstrap"`
	Formulae  []string `yaml:"formulae"`
	Casks     []string `yaml:"casks"`
}

// ShellConfig declares the shell environment: default shell, framework,
// theme, plugins and guarded startup-file lines.
type ShellConfig struct {
	// Default is the desired login shell path (e.g., "/bin/zsh").
	Default string `yaml:"default"`

	// Framework names the shell framework to install ("oh-my-zsh").
	Framework string `yaml:"framework"`

	Theme   *CloneConfig  `yaml:"theme,omitempty"`
	Plugins []CloneConfig `yaml:"plugins"`

	// RCFile is the startup file rc lines are appended to.
	RCFile string `yaml:"rc_file"`

	// RCLines are appended to RCFile, each guarded by a line-presence
	// check so repeated runs leave exactly one occurrence.
	RCLines []RCLine `yaml:"rc_lines"`
}

// CloneConfig declares a git repository cloned if its target directory
// is absent.
type CloneConfig struct {
	Name string `yaml:"name"`
	Repo string `yaml:"repo"`
	// Dest is the clone target. Relative destinations resolve under the
	// framework's custom directory.
	Dest string `yaml:"dest,omitempty"`
}

// RCLine is one guarded startup-file append.
type RCLine struct {
	Name string `yaml:"name"`
	Line string `yaml:"line"`
}

// TerminalConfig declares the terminal emulator settings document.
type TerminalConfig struct {
	Alacritty *AlacrittyConfig `yaml:"alacritty,omitempty"`
}

// AlacrittyConfig is the settings document consumed by Alacritty at its
// own startup. Keys are unique, last write wins; no validation beyond
// what Alacritty itself performs.
type AlacrittyConfig struct {
	Columns     int     `yaml:"columns"`
	Rows        int     `yaml:"rows"`
	FontSize    float64 `yaml:"font_size"`
	ColorScheme string  `yaml:"color_scheme"`
	Opacity     float64 `yaml:"opacity"`

	// Target overrides the config file location (tests).
	Target string `yaml:"target,omitempty"`
}

// Load reads a manifest from the given path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, step.NewBadManifestError("manifest", fmt.Errorf("read %s: %w", path, err))
	}
	return Parse(data)
}

// Parse decodes manifest YAML.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, step.NewBadManifestError("manifest", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks manifest invariants. Every name that ends up in a
// step ID is checked against the ID character set here, so providers
// can build IDs from accepted manifests without further validation.
func (m *Manifest) Validate() error {
	if m.Platform == "" {
		return step.NewBadManifestError("platform", fmt.Errorf("platform is required"))
	}
	for _, f := range m.Brew.Formulae {
		if err := validName("brew", "formula", f); err != nil {
			return err
		}
	}
	for _, c := range m.Brew.Casks {
		if err := validName("brew", "cask", c); err != nil {
			return err
		}
	}
	if m.Shell.Default != "" {
		if err := validName("shell", "default shell", filepath.Base(m.Shell.Default)); err != nil {
			return err
		}
	}
	if m.Shell.Framework != "" {
		if err := validName("shell", "framework", m.Shell.Framework); err != nil {
			return err
		}
	}
	if t := m.Shell.Theme; t != nil {
		if t.Name == "" || t.Repo == "" {
			return step.NewBadManifestError("shell", fmt.Errorf("theme needs name and repo"))
		}
		if err := validName("shell", "theme", t.Name); err != nil {
			return err
		}
	}
	if m.Shell.RCFile == "" && len(m.Shell.RCLines) > 0 {
		return step.NewBadManifestError("shell", fmt.Errorf("rc_lines declared without rc_file"))
	}
	for _, p := range m.Shell.Plugins {
		if p.Name == "" || p.Repo == "" {
			return step.NewBadManifestError("shell", fmt.Errorf("plugin entries need name and repo"))
		}
		if err := validName("shell", "plugin", p.Name); err != nil {
			return err
		}
	}
	for _, l := range m.Shell.RCLines {
		if l.Name == "" || l.Line == "" {
			return step.NewBadManifestError("shell", fmt.Errorf("rc_lines entries need name and line"))
		}
		if err := validName("shell", "rc_lines", l.Name); err != nil {
			return err
		}
	}
	if a := m.Terminal.Alacritty; a != nil {
		if a.Opacity < 0.0 || a.Opacity > 1.0 {
			return step.NewBadManifestError("terminal", fmt.Errorf("opacity %v out of range 0.0-1.0", a.Opacity))
		}
	}
	return nil
}

// validName rejects names that cannot form a step ID segment.
func validName(section, kind, name string) error {
	if !step.ValidSegment(name) {
		return step.NewBadManifestError(section, fmt.Errorf(
			"%s name %q: must start with a letter or digit and use only letters, digits, hyphens, underscores, dots, slashes or @", kind, name))
	}
	return nil
}
