package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show what apply would change",
	Long: `Plan checks every step's presence against the machine and prints
what an apply would do. Nothing is modified.`,
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, _ []string) error {
	m, err := loadManifest()
	if err != nil {
		return fmt.Errorf("failed to load manifest: %w", err)
	}

	rig := newRig(os.Stdout)
	plan, err := rig.Plan(cmd.Context(), m)
	if err != nil {
		return err
	}

	rig.PrintPlan(plan)
	return nil
}
