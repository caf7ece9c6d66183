package step

import (
	"errors"
	"testing"
)

func TestNewID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "valid simple ID",
			input:   "brew:formula:git",
			wantErr: nil,
		},
		{
			name:    "valid with hyphens",
			input:   "shell:plugin:zsh-autosuggestions",
			wantErr: nil,
		},
		{
			name:    "valid with slashes",
			input:   "shell:theme:romkatv/powerlevel10k",
			wantErr: nil,
		},
		{
			name:    "valid versioned formula",
			input:   "brew:formula:go@1.24",
			wantErr: nil,
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: ErrEmptyID,
		},
		{
			name:    "whitespace only",
			input:   "   ",
			wantErr: ErrEmptyID,
		},
		{
			name:    "contains spaces",
			input:   "brew formula git",
			wantErr: ErrInvalidID,
		},
		{
			name:    "leading colon",
			input:   ":brew:formula:git",
			wantErr: ErrInvalidID,
		},
		{
			name:    "trailing colon",
			input:   "brew:formula:git:",
			wantErr: ErrInvalidID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := NewID(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewID(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr == nil && id.String() != tt.input {
				t.Errorf("NewID(%q).String() = %q", tt.input, id.String())
			}
		})
	}
}

func TestID_Provider(t *testing.T) {
	id := MustNewID("brew:formula:ripgrep")
	if got := id.Provider(); got != "brew" {
		t.Errorf("Provider() = %q, want %q", got, "brew")
	}
}

func TestID_Equals(t *testing.T) {
	a := MustNewID("shell:rc-line:aliases")
	b := MustNewID("shell:rc-line:aliases")
	c := MustNewID("shell:rc-line:init")

	if !a.Equals(b) {
		t.Error("identical IDs should be equal")
	}
	if a.Equals(c) {
		t.Error("different IDs should not be equal")
	}
}

func TestID_IsZero(t *testing.T) {
	var zero ID
	if !zero.IsZero() {
		t.Error("zero-value ID should report IsZero")
	}
	if MustNewID("brew:formula:fzf").IsZero() {
		t.Error("constructed ID should not report IsZero")
	}
}

func TestMustNewID_PanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNewID should panic on invalid input")
		}
	}()
	MustNewID("bad id with spaces")
}

func TestValidSegment(t *testing.T) {
	valid := []string{"git", "go@1.24", "zsh-autosuggestions", "alias-ll", "font-meslo-lg-nerd-font", "p10k.zsh"}
	for _, s := range valid {
		if !ValidSegment(s) {
			t.Errorf("ValidSegment(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "alias ll", "-leading-hyphen", "has:colon", "tab\tname"}
	for _, s := range invalid {
		if ValidSegment(s) {
			t.Errorf("ValidSegment(%q) = true, want false", s)
		}
	}
}
