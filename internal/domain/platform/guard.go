package platform

import (
	"fmt"

	"github.com/termrig/termrig/internal/domain/step"
)

// Guard verifies the host matches the expected OS before any step runs.
// A mismatch is fatal: zero install actions are performed.
func Guard(p *Platform, expected OS) error {
	if p.OS() == expected {
		return nil
	}
	return step.NewPreconditionError(
		fmt.Sprintf("unsupported platform %s: this tool provisions %s hosts", p, expected),
		fmt.Sprintf("Run on a %s machine.", expected),
	)
}
