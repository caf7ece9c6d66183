// Package platform provides host platform detection and the precondition
// guard run before any provisioning step.
package platform

import (
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"
)

// OS represents the operating system type.
type OS string

const (
	// OSDarwin is macOS.
	OSDarwin OS = "darwin"
	// OSLinux is Linux.
	OSLinux OS = "linux"
	// OSWindows is Windows.
	OSWindows OS = "windows"
	// OSUnknown is an unsupported OS.
	OSUnknown OS = "unknown"
)

// Platform contains detected platform information.
type Platform struct {
	os   OS
	arch string
}

var (
	detected     *Platform
	detectOnce   sync.Once
	testPlatform *Platform // For testing
)

// Detect returns the current platform information.
// Results are cached after the first call.
func Detect() *Platform {
	if testPlatform != nil {
		return testPlatform
	}

	detectOnce.Do(func() {
		detected = detect()
	})
	return detected
}

// SetTestPlatform sets a mock platform for testing.
// Pass nil to reset to actual detection.
func SetTestPlatform(p *Platform) {
	testPlatform = p
}

func detect() *Platform {
	p := &Platform{arch: runtime.GOARCH}

	switch runtime.GOOS {
	case "darwin":
		p.os = OSDarwin
	case "linux":
		p.os = OSLinux
	case "windows":
		p.os = OSWindows
	default:
		p.os = OSUnknown
	}

	return p
}

// OS returns the operating system.
func (p *Platform) OS() OS {
	return p.os
}

// Arch returns the architecture.
func (p *Platform) Arch() string {
	return p.arch
}

// IsMacOS returns true if running on macOS.
func (p *Platform) IsMacOS() bool {
	return p.os == OSDarwin
}

// IsLinux returns true if running on Linux.
func (p *Platform) IsLinux() bool {
	return p.os == OSLinux
}

// HasCommand checks if a command is available in PATH.
func (p *Platform) HasCommand(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// Shell returns the user's current login shell from $SHELL.
func (p *Platform) Shell() string {
	return os.Getenv("SHELL")
}

// String returns a human-readable description.
func (p *Platform) String() string {
	return strings.Join([]string{string(p.os), p.arch}, "/")
}

// New creates a Platform with specified values (for testing).
func New(os OS, arch string) *Platform {
	return &Platform{os: os, arch: arch}
}
