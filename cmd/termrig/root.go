package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/termrig/termrig/internal/adapters/logging"
	"github.com/termrig/termrig/internal/app"
	"github.com/termrig/termrig/internal/domain/config"
	"github.com/termrig/termrig/internal/domain/step"
	"github.com/termrig/termrig/internal/ports"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "termrig",
	Short: "An idempotent dev machine provisioner",
	Long: `Termrig provisions a terminal-centric development machine from a
declarative manifest: Homebrew packages, shell framework, theme,
plugins, startup-file lines and Alacritty settings.

Every step checks presence before acting, so re-running is safe. A run
stops at the first failure; completed work stays in place and the next
run picks up where it left off.`,
	SilenceErrors: true, // We handle error formatting ourselves
	SilenceUsage:  true, // Don't show usage on error
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "manifest file (default: termrig.yaml, falling back to built-in)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(versionCmd)
}

// loadManifest resolves the manifest: an explicit --config path must
// exist, termrig.yaml in the working directory is used when present,
// otherwise the built-in default applies.
func loadManifest() (*config.Manifest, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	if _, err := os.Stat("termrig.yaml"); err == nil {
		return config.Load("termrig.yaml")
	}
	return config.Default(), nil
}

// newRig builds the application with a logger matching the verbosity.
func newRig(out io.Writer) *app.Rig {
	logger := ports.Logger(logging.NewNopLogger())
	if verbose {
		logger = logging.NewConsoleLogger(
			logging.WithOutput(os.Stderr),
			logging.WithLevel(ports.LevelDebug),
		)
	}
	return app.New(out).WithLogger(logger)
}

// formatError renders errors for humans. Provisioning errors carry a
// suggestion; the underlying cause only shows with --verbose.
func formatError(err error) string {
	var perr *step.ProvisionError
	if errors.As(err, &perr) {
		msg := perr.Message
		if perr.StepID != "" {
			msg = fmt.Sprintf("%s: %s", perr.StepID, msg)
		}
		if perr.Suggestion != "" {
			msg += fmt.Sprintf("\n\nSuggestion: %s", perr.Suggestion)
		}
		if verbose && perr.Underlying != nil {
			msg += fmt.Sprintf("\n\nTechnical details: %v", perr.Underlying)
		}
		return msg
	}
	return err.Error()
}

// printError prints an error message to stderr.
func printError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", formatError(err))
}
