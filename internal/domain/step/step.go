// Package step defines the idempotent provisioning unit and its value objects.
package step

// Step represents one idempotent provisioning unit in the sequence.
// Each step can query the host's current state and conditionally install.
type Step interface {
	// ID returns the unique identifier for this step.
	ID() ID

	// Check determines whether the step's desired state is already met.
	// It must be a pure query of host state with no side effects.
	Check(ctx RunContext) (Status, error)

	// Plan returns the diff describing what Apply would change.
	Plan(ctx RunContext) (Diff, error)

	// Apply performs the installation. It must be idempotent: applying
	// an already-satisfied step is a no-op.
	Apply(ctx RunContext) error

	// Message returns the note printed after a successful install.
	// Empty means nothing to say.
	Message() string
}
