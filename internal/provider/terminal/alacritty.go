package terminal

import (
	"fmt"
	"path/filepath"
	"reflect"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/termrig/termrig/internal/domain/config"
	"github.com/termrig/termrig/internal/domain/step"
	"github.com/termrig/termrig/internal/ports"
)

// defaultTarget is where Alacritty reads its configuration.
const defaultTarget = "~/.config/alacritty/alacritty.toml"

// AlacrittyStep merges the declared settings document into alacritty.toml.
// Alacritty itself consumes the file; no validation happens here beyond
// what Alacritty performs at its own startup.
type AlacrittyStep struct {
	cfg    *config.AlacrittyConfig
	target string
	fs     ports.FileSystem
}

// NewAlacrittyStep creates a new AlacrittyStep.
func NewAlacrittyStep(cfg *config.AlacrittyConfig, fs ports.FileSystem) *AlacrittyStep {
	target := cfg.Target
	if target == "" {
		target = defaultTarget
	}
	expanded, err := homedir.Expand(target)
	if err != nil {
		expanded = target
	}
	return &AlacrittyStep{
		cfg:    cfg,
		target: expanded,
		fs:     fs,
	}
}

// ID returns the step identifier.
func (s *AlacrittyStep) ID() step.ID {
	return step.MustNewID("terminal:alacritty:config")
}

// Check compares the declared settings with the file on disk. Foreign
// keys in the file are ignored; only declared keys decide the status.
func (s *AlacrittyStep) Check(_ step.RunContext) (step.Status, error) {
	if !s.fs.Exists(s.target) {
		return step.StatusNeedsApply, nil
	}

	content, err := s.fs.ReadFile(s.target)
	if err != nil {
		return step.StatusUnknown, err
	}

	existing := make(map[string]interface{})
	if err := toml.Unmarshal(content, &existing); err != nil {
		// Unparseable config gets rewritten with the declared settings.
		return step.StatusNeedsApply, nil
	}

	if !containsSettings(existing, s.settings()) {
		return step.StatusNeedsApply, nil
	}
	return step.StatusSatisfied, nil
}

// Plan returns the diff for this step.
func (s *AlacrittyStep) Plan(_ step.RunContext) (step.Diff, error) {
	return step.NewDiff(step.DiffTypeModify, "config", s.target,
		fmt.Sprintf("merge %d settings", len(s.settings()))), nil
}

// Apply merges the settings over the existing file. Keys are unique and
// last write wins; keys this tool does not declare survive untouched.
func (s *AlacrittyStep) Apply(_ step.RunContext) error {
	if err := s.fs.MkdirAll(filepath.Dir(s.target), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	existing := make(map[string]interface{})
	if s.fs.Exists(s.target) {
		content, err := s.fs.ReadFile(s.target)
		if err == nil {
			_ = toml.Unmarshal(content, &existing)
		}
	}

	mergeSettings(existing, s.settings())

	output, err := toml.Marshal(existing)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return s.fs.WriteFile(s.target, output, 0o644)
}

// Message returns the post-install note.
func (s *AlacrittyStep) Message() string {
	return "Alacritty settings written. Restart Alacritty to pick them up."
}

// settings builds the declared settings document. Value types mirror
// what TOML decoding produces so Check can compare byte-for-byte
// round-tripped values.
func (s *AlacrittyStep) settings() map[string]interface{} {
	out := make(map[string]interface{})

	window := make(map[string]interface{})
	if s.cfg.Columns > 0 && s.cfg.Rows > 0 {
		window["dimensions"] = map[string]interface{}{
			"columns": int64(s.cfg.Columns),
			"lines":   int64(s.cfg.Rows),
		}
	}
	if s.cfg.Opacity > 0 {
		window["opacity"] = s.cfg.Opacity
	}
	if len(window) > 0 {
		out["window"] = window
	}

	if s.cfg.FontSize > 0 {
		out["font"] = map[string]interface{}{
			"size": s.cfg.FontSize,
		}
	}

	if s.cfg.ColorScheme != "" {
		out["general"] = map[string]interface{}{
			"import": []interface{}{
				"~/.config/alacritty/themes/" + s.cfg.ColorScheme + ".toml",
			},
		}
	}

	return out
}

// mergeSettings writes desired into dst, recursing into nested tables so
// keys the tool does not declare survive untouched. Declared keys win.
func mergeSettings(dst, desired map[string]interface{}) {
	for k, v := range desired {
		desiredTable, dok := v.(map[string]interface{})
		dstTable, eok := dst[k].(map[string]interface{})
		if dok && eok {
			mergeSettings(dstTable, desiredTable)
			continue
		}
		dst[k] = v
	}
}

// containsSettings reports whether every declared key already holds its
// desired value. Extra keys in existing are ignored.
func containsSettings(existing, desired map[string]interface{}) bool {
	for k, v := range desired {
		desiredTable, dok := v.(map[string]interface{})
		existingTable, eok := existing[k].(map[string]interface{})
		if dok {
			if !eok || !containsSettings(existingTable, desiredTable) {
				return false
			}
			continue
		}
		if !reflect.DeepEqual(existing[k], v) {
			return false
		}
	}
	return true
}
