package step

import (
	"strings"
	"testing"
)

func TestDiff_Summary(t *testing.T) {
	add := NewDiff(DiffTypeAdd, "formula", "ripgrep", "latest")
	if !strings.HasPrefix(add.Summary(), "+ ") {
		t.Errorf("add summary = %q", add.Summary())
	}

	mod := NewDiff(DiffTypeModify, "config", "alacritty.toml", "merge 5 settings")
	if !strings.HasPrefix(mod.Summary(), "~ ") {
		t.Errorf("modify summary = %q", mod.Summary())
	}
}

func TestDiff_IsEmpty(t *testing.T) {
	var zero Diff
	if !zero.IsEmpty() {
		t.Error("zero diff should be empty")
	}

	d := NewDiff(DiffTypeAdd, "formula", "fzf", "latest")
	if d.IsEmpty() {
		t.Error("populated diff should not be empty")
	}
}

func TestDiff_Accessors(t *testing.T) {
	d := NewDiff(DiffTypeAdd, "line", "aliases", `alias ll="eza -la"`)
	if d.Type() != DiffTypeAdd {
		t.Errorf("Type() = %v", d.Type())
	}
	if d.Resource() != "line" {
		t.Errorf("Resource() = %q", d.Resource())
	}
	if d.Name() != "aliases" {
		t.Errorf("Name() = %q", d.Name())
	}
	if d.Detail() != `alias ll="eza -la"` {
		t.Errorf("Detail() = %q", d.Detail())
	}
}
