package main

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd is the entry point when bude is called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "bude",
	Short: "Networking BudE slot service",
	Long: `bude serves the featured event slots of each region and the curated
content slots, and runs the event auto-fill against configured organization pages.

Configuration is read from the environment (and .env outside production).`,
	SilenceUsage: true,
}

func setVersion(v string) {
	rootCmd.Version = v
}

func execute() {
	rootCmd.SetVersionTemplate(`{{printf "bude version %s\n" .Version}}`)
	rootCmd.AddCommand(newServeCmd(), newAutoFillCmd(), newTokenCmd())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
