package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/termrig/termrig/internal/domain/platform"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check host prerequisites and the manifest",
	Long: `Doctor verifies that the host can run the provisioning sequence:
the platform matches the manifest, the tools the steps shell out to are
on PATH, and the manifest itself parses and validates.

Nothing is modified.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(_ *cobra.Command, _ []string) error {
	m, err := loadManifest()
	if err != nil {
		return fmt.Errorf("manifest check failed: %w", err)
	}
	fmt.Println("✓ manifest parses and validates")

	p := platform.Detect()
	if err := platform.Guard(p, platform.OS(m.Platform)); err != nil {
		return err
	}
	fmt.Printf("✓ platform %s matches the manifest\n", p)

	issues := 0
	for _, tool := range []string{"curl", "git"} {
		if p.HasCommand(tool) {
			fmt.Printf("✓ %s on PATH\n", tool)
			continue
		}
		fmt.Printf("✗ %s missing: installs that shell out to it will fail\n", tool)
		issues++
	}

	if shell := p.Shell(); shell != "" {
		fmt.Printf("✓ login shell is %s\n", shell)
	} else {
		fmt.Println("? $SHELL is unset")
	}

	if issues > 0 {
		fmt.Fprintf(os.Stderr, "\nFound %d issues.\n", issues)
		return fmt.Errorf("%d prerequisites missing", issues)
	}
	fmt.Println("\nNo issues found. The host is ready for 'termrig apply'.")
	return nil
}
