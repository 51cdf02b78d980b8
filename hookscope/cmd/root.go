// Package cmd provides the command-line interface of hookscope.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hookscope",
		Short: "hookscope records the lifecycle hooks of components.",
		Long: `hookscope records the lifecycle hooks of components. ` +
			`It runs demo scenarios on instrumented components, prints the ` +
			`event log and the hook checklist, and exports the log to CSV, ` +
			`JSON lines or SQLite.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("env-file", ".env",
		"file with HOOKSCOPE_* variables, loaded if it exists")
	rootCmd.PersistentFlags().Bool("legacy", false,
		"use the legacy hook set")
	rootCmd.PersistentFlags().String("class", "",
		"demo class to use (ModernCounter, LegacyCounter, Minimal)")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newHooksCmd())

	return rootCmd
}

// Execute adds all child commands to the root command and sets flags
// appropriately. It exits through atexit so that exporters are flushed.
func Execute() {
	err := newRootCmd().Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
