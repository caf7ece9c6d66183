package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var applyDryRun bool

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Provision the machine from the manifest",
	Long: `Apply runs the provisioning sequence in manifest order. Steps whose
presence check passes are left alone; the rest are installed. The run
stops at the first failure and the remaining steps are skipped.
Re-running resumes from the current machine state.

Use --dry-run to see what would happen without making changes.`,
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)

	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "show what would be done without making changes")
}

func runApply(cmd *cobra.Command, _ []string) error {
	m, err := loadManifest()
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}

	rig := newRig(os.Stdout)
	report, err := rig.Apply(cmd.Context(), m, applyDryRun)
	if err != nil {
		return err
	}

	rig.PrintReport(report)

	if !report.Ok() {
		return report.FirstError()
	}
	return nil
}
