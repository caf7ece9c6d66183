// Package integration exercises the full manifest to apply pipeline
// against mock ports.
package integration

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/termrig/termrig/internal/app"
	"github.com/termrig/termrig/internal/domain/config"
	"github.com/termrig/termrig/internal/domain/platform"
	"github.com/termrig/termrig/internal/testutil/mocks"
)

// Harness wires a Rig to mock ports on a fake darwin host.
type Harness struct {
	t      *testing.T
	Runner *mocks.CommandRunner
	FS     *mocks.FileSystem
	Out    *bytes.Buffer
	rig    *app.Rig
}

// NewHarness creates an integration test harness.
func NewHarness(t *testing.T) *Harness {
	t.Helper()
	h := &Harness{
		t:      t,
		Runner: mocks.NewCommandRunner(),
		FS:     mocks.NewFileSystem(),
		Out:    &bytes.Buffer{},
	}
	h.rig = app.New(h.Out).
		WithPorts(h.Runner, h.FS).
		WithPlatform(platform.New(platform.OSDarwin, "arm64"))
	return h
}

// Rig returns the application under test.
func (h *Harness) Rig() *app.Rig {
	return h.rig
}

// LoadManifest writes manifest YAML to a temp file and loads it through
// the real config loader.
func (h *Harness) LoadManifest(yaml string) *config.Manifest {
	h.t.Helper()
	path := filepath.Join(h.t.TempDir(), "termrig.yaml")
	require.NoError(h.t, os.WriteFile(path, []byte(yaml), 0o644))

	m, err := config.Load(path)
	require.NoError(h.t, err)
	return m
}
