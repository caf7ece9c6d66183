// Package mocks provides test doubles for testing.
package mocks

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/termrig/termrig/internal/ports"
)

// CommandRunner is a thread-safe test double for ports.CommandRunner.
type CommandRunner struct {
	mu       sync.RWMutex
	results  map[string]ports.CommandResult
	errors   map[string]error
	binaries map[string]bool
	calls    []ports.CommandCall
}

// NewCommandRunner creates a new CommandRunner mock.
func NewCommandRunner() *CommandRunner {
	return &CommandRunner{
		results:  make(map[string]ports.CommandResult),
		errors:   make(map[string]error),
		binaries: make(map[string]bool),
		calls:    make([]ports.CommandCall, 0),
	}
}

// AddResult registers an expected command and its result.
func (m *CommandRunner) AddResult(command string, args []string, result ports.CommandResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := buildKey(command, args)
	m.results[key] = result
}

// AddError registers an expected command that should return an error.
func (m *CommandRunner) AddError(command string, args []string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := buildKey(command, args)
	m.errors[key] = err
}

// AddBinary marks a binary as present on the fake search path.
func (m *CommandRunner) AddBinary(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.binaries[name] = true
}

// RemoveBinary marks a binary as absent on the fake search path.
func (m *CommandRunner) RemoveBinary(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.binaries, name)
}

// Run executes a mock command.
func (m *CommandRunner) Run(_ context.Context, command string, args ...string) (ports.CommandResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, ports.CommandCall{
		Command: command,
		Args:    args,
	})
	m.mu.Unlock()

	m.mu.RLock()
	defer m.mu.RUnlock()

	key := buildKey(command, args)

	// Check for registered error first
	if err, ok := m.errors[key]; ok {
		return ports.CommandResult{}, err
	}

	if result, ok := m.results[key]; ok {
		return result, nil
	}

	return ports.CommandResult{}, fmt.Errorf("no mock result for command: %s %v", command, args)
}

// LookPath reports whether the binary was registered via AddBinary.
func (m *CommandRunner) LookPath(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.binaries[name]
}

// Calls returns all recorded command invocations.
func (m *CommandRunner) Calls() []ports.CommandCall {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Return a copy to prevent data races
	calls := make([]ports.CommandCall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

// Reset clears all registered results, errors, and recorded calls.
func (m *CommandRunner) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = make(map[string]ports.CommandResult)
	m.errors = make(map[string]error)
	m.binaries = make(map[string]bool)
	m.calls = make([]ports.CommandCall, 0)
}

// buildKey creates a lookup key from a command and its args.
func buildKey(command string, args []string) string {
	if len(args) == 0 {
		return command
	}
	return command + " " + strings.Join(args, " ")
}

// Ensure CommandRunner implements ports.CommandRunner.
var _ ports.CommandRunner = (*CommandRunner)(nil)
