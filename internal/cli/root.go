// Package cli defines Cobra command definitions for the swipe CLI.
// This file contains the root command, version flag, and help output.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/berth-dev/swipe/internal/tui"
	"github.com/berth-dev/swipe/internal/tui/app"
)

var (
	configPath string
	verbose    bool
	devMode    bool
	version    = "dev" // set via ldflags at build time
)

var rootCmd = &cobra.Command{
	Use:   "swipe",
	Short: "Classify a catalog by swiping cards",
	Long: `Swipe shows a stack of cards, one per catalog item. Drag or use the
arrow keys to keep (right), kill (left), or mark maybe (up). When the
last card is decided the results are sent to the configured endpoint.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// When not attached to a terminal, show help instead of the TUI
		if !tui.IsTTY() {
			fmt.Fprintln(cmd.ErrOrStderr(), "Not a terminal; use 'swipe play --verdicts ...' to run without one.")
			return cmd.Help()
		}

		p, err := loadProject(true)
		if err != nil {
			return err
		}
		defer p.close()

		return tui.Run(app.New(p.model()))
	},
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Verbose returns true if --verbose flag is set.
func Verbose() bool {
	return verbose
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default .swipe/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Debug-level diagnostic logging")
	rootCmd.PersistentFlags().BoolVar(&devMode, "dev", false, "Development mode: never send results")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(headersCmd)
	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(reportCmd)
}
