package step

// Status represents the state of a step in its lifecycle.
// A step moves pending → checking → (skipped | installing → (done | failed));
// the terminal observations are StatusSatisfied (skipped or done),
// StatusFailed and StatusSkipped.
type Status string

const (
	// StatusSatisfied indicates the step's desired state is already met,
	// or Apply completed and verification confirmed it.
	StatusSatisfied Status = "satisfied"
	// StatusNeedsApply indicates the presence check found work to do.
	StatusNeedsApply Status = "needs-apply"
	// StatusUnknown indicates the step's state could not be determined.
	StatusUnknown Status = "unknown"
	// StatusFailed indicates the step failed during check or apply.
	StatusFailed Status = "failed"
	// StatusSkipped indicates the step was not attempted because an
	// earlier step failed.
	StatusSkipped Status = "skipped"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// NeedsAction returns true if this status requires execution or attention.
func (s Status) NeedsAction() bool {
	switch s {
	case StatusNeedsApply, StatusUnknown, StatusFailed:
		return true
	case StatusSatisfied, StatusSkipped:
		return false
	}
	return false
}

// IsTerminal returns true if this status represents a final state.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusSatisfied, StatusFailed, StatusSkipped:
		return true
	case StatusNeedsApply, StatusUnknown:
		return false
	}
	return false
}
