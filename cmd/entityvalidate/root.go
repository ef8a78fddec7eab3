package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	envFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "entityvalidate",
	Short: "Validate entities against their field specifications",
	Long: `entityvalidate resolves the field specifications of an entity type and
variant, extracts each field value from an entity document and runs the
configured validators over it.

Schemas come from a YAML catalog, PostgreSQL or Redis (EV_SCHEMA_SOURCE).
Files referenced by image and file fields are looked up on the local disk or
in S3 (EV_STORAGE). Messages are rendered from the bundled translations,
optionally extended with EV_TRANSLATIONS_PATH.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "additional .env file loaded before the environment is read")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
}
